// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package flowfunc

import "golang.org/x/tools/go/ssa"

// StrongUpdatePredicate decides, for StrongUpdateStore, whether an
// incoming fact must be widened to also cover the store's address
// operand rather than simply passed through.
type StrongUpdatePredicate func(fact Fact) bool

type propagateLoad struct {
	load *ssa.UnOp // Op == token.MUL
}

// PropagateLoad returns the flow function for load (x = *p): the
// pointer operand generates the loaded value alongside itself; every
// other fact, including Zero, passes through unchanged.
func PropagateLoad(load *ssa.UnOp) FlowFunction {
	return &propagateLoad{load: load}
}

func (p *propagateLoad) Compute(d Fact) FactSet {
	if d == p.load.X {
		return pair(p.load.X, p.load)
	}
	return singleton(d)
}

type propagateStore struct {
	store *ssa.Store
}

// PropagateStore returns the flow function for store (*p <- v): the
// stored value generates the address alongside itself; every other
// fact, including Zero, passes through unchanged.
func PropagateStore(store *ssa.Store) FlowFunction {
	return &propagateStore{store: store}
}

func (p *propagateStore) Compute(d Fact) FactSet {
	if d == p.store.Val {
		return pair(p.store.Val, p.store.Addr)
	}
	return singleton(d)
}

type strongUpdateStore struct {
	store *ssa.Store
	q     StrongUpdatePredicate
}

// StrongUpdateStore returns the flow function for store (*p <- v) that
// kills the old contents of p: a fact equal to the address itself is
// killed outright (the old pointee is gone); a fact q says must widen
// onto the address produces both itself and the address; anything else
// passes through unchanged.
func StrongUpdateStore(store *ssa.Store, q StrongUpdatePredicate) FlowFunction {
	if q == nil {
		q = func(Fact) bool { return false }
	}
	return &strongUpdateStore{store: store, q: q}
}

func (s *strongUpdateStore) Compute(d Fact) FactSet {
	if d == s.store.Addr {
		return empty()
	}
	if s.q(d) {
		return pair(d, s.store.Addr)
	}
	return singleton(d)
}
