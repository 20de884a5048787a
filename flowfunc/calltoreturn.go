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

import (
	"go/types"

	"github.com/icfgo/icfgo/ir"
)

// CallSitePredicate decides, for a call site and a candidate fact,
// whether that fact is handled by the call/return edges instead of
// flowing along the call-to-return edge.
type CallSitePredicate func(cs ir.CallSite, v Fact) bool

// PassedByPointer is the default CallSitePredicate: true when v is both
// pointer-typed and one of cs's actual arguments.
func PassedByPointer(cs ir.CallSite, v Fact) bool {
	if v == nil {
		return false
	}
	if _, ok := v.Type().Underlying().(*types.Pointer); !ok {
		return false
	}
	for _, a := range cs.Args() {
		if a == v {
			return true
		}
	}
	return false
}

type mapFactsAlongsideCallSite struct {
	cs   ir.CallSite
	pred CallSitePredicate
}

// MapFactsAlongsideCallSite returns the call-to-return flow function for
// cs: a fact that pred says is handled by the call/return edges is
// killed here; every other fact, including Zero, passes through
// unchanged. pred defaults to PassedByPointer when nil.
func MapFactsAlongsideCallSite(cs ir.CallSite, pred CallSitePredicate) FlowFunction {
	if pred == nil {
		pred = PassedByPointer
	}
	return &mapFactsAlongsideCallSite{cs: cs, pred: pred}
}

func (m *mapFactsAlongsideCallSite) Compute(d Fact) FactSet {
	if ir.IsZero(d) {
		return singleton(d)
	}
	if !m.pred(m.cs, d) {
		return singleton(d)
	}
	return empty()
}
