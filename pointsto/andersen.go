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

package pointsto

import (
	"go/types"

	"golang.org/x/tools/go/pointer"
	"golang.org/x/tools/go/ssa/ssautil"

	"github.com/icfgo/icfgo/ir"
)

// AndersenOracle wraps golang.org/x/tools/go/pointer's Andersen-style
// inclusion-constraint analysis. Unlike a one-shot analysis, it stays
// mutable across a sequence of Update calls so the OTF resolver can widen
// the query set as it discovers new values during ICFG construction, then
// call Solve to re-run the analysis over the widened set. The Builder owns
// it exclusively during construction; once the ICFG is built, callers
// should treat it as read-only.
type AndersenOracle struct {
	view   *ir.View
	cfg    *pointer.Config
	result *pointer.Result
	stale  bool
}

// NewAndersenOracle seeds the oracle with a query for every operand of
// every instruction in the functions for which filter returns true (or
// every function, if filter is nil), then runs an initial analysis.
func NewAndersenOracle(view *ir.View, filter func(ir.Function) bool) (*AndersenOracle, error) {
	prog := view.Program()
	cfg := &pointer.Config{
		Mains:           ssautil.MainPackages(prog.AllPackages()),
		Reflection:      false,
		BuildCallGraph:  false,
		Queries:         make(map[ir.Value]struct{}),
		IndirectQueries: make(map[ir.Value]struct{}),
	}
	o := &AndersenOracle{view: view, cfg: cfg, stale: true}

	for _, fn := range view.AllDefinedFunctions() {
		if filter != nil && !filter(fn) {
			continue
		}
		for _, instr := range view.Instructions(fn) {
			for _, operand := range view.Operands(instr) {
				o.seed(operand)
			}
		}
	}
	if err := o.Solve(); err != nil {
		return nil, err
	}
	return o, nil
}

// Update registers v as a points-to query, widening the set the next Solve
// will analyze. It is the hook OTF's HandlePossibleTargets uses to feed
// newly-discovered argument and receiver values back into the oracle.
func (o *AndersenOracle) Update(v ir.Value) {
	if o.seed(v) {
		o.stale = true
	}
}

func (o *AndersenOracle) seed(v ir.Value) bool {
	if v == nil || v.Type() == nil {
		return false
	}
	added := false
	if pointer.CanPoint(v.Type()) {
		if _, ok := o.cfg.Queries[v]; !ok {
			o.cfg.AddQuery(v)
			added = true
		}
	}
	if ptrType, ok := safeUnderlying(v.Type()); ok {
		if p, ok := ptrType.(*types.Pointer); ok && pointer.CanPoint(p.Elem()) {
			if _, ok := o.cfg.IndirectQueries[v]; !ok {
				o.cfg.AddIndirectQuery(v)
				added = true
			}
		}
	}
	return added
}

// safeUnderlying wraps typ.Underlying() because it can panic on some
// synthetic SSA types (e.g. *ssa.opaqueType) despite typ being non-nil.
func safeUnderlying(typ types.Type) (u types.Type, ok bool) {
	defer func() {
		if recover() != nil {
			u, ok = nil, false
		}
	}()
	u = typ.Underlying()
	return u, u != nil
}

// Solve re-runs the pointer analysis if the query set has widened since the
// last solve. It is a no-op otherwise.
func (o *AndersenOracle) Solve() error {
	if !o.stale && o.result != nil {
		return nil
	}
	result, err := pointer.Analyze(o.cfg)
	if err != nil {
		return err
	}
	o.result = result
	o.stale = false
	return nil
}

// PointsTo returns the abstract objects v may point to, according to the
// most recent Solve. Returns nil if v was never registered as a query.
func (o *AndersenOracle) PointsTo(v ir.Value) []Object {
	if o.result == nil {
		return nil
	}
	var ptr pointer.Pointer
	if p, ok := o.result.Queries[v]; ok {
		ptr = p
	} else if p, ok := o.result.IndirectQueries[v]; ok {
		ptr = p
	} else {
		return nil
	}
	labels := ptr.PointsTo().Labels()
	out := make([]Object, len(labels))
	for i, l := range labels {
		out[i] = Object{label: l}
	}
	return out
}
