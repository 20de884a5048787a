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
	"golang.org/x/tools/go/ssa"

	"github.com/icfgo/icfgo/ir"
)

// ReturnPredicate decides whether the callee's returned value should be
// bound back onto the call site's own SSA value.
type ReturnPredicate func(callee ir.Function) bool

func alwaysTrueFn(ir.Function) bool { return true }

type mapFactsToCaller struct {
	cs     ir.CallSite
	callee ir.Function
	exit   *ssa.Return
	pparam ParamPredicate
	pret   ReturnPredicate
}

// MapFactsToCaller returns the return-edge flow function mapping
// callee's formal parameters and variadic marker, and its returned
// value, back onto cs's actuals and the call site's own SSA value.
// callee must not be a declaration; exit must be the return instruction
// this edge leaves through.
func MapFactsToCaller(cs ir.CallSite, callee ir.Function, exit *ssa.Return, pparam ParamPredicate, pret ReturnPredicate) FlowFunction {
	if pparam == nil {
		pparam = alwaysTrue
	}
	if pret == nil {
		pret = alwaysTrueFn
	}
	return &mapFactsToCaller{cs: cs, callee: callee, exit: exit, pparam: pparam, pret: pret}
}

func (m *mapFactsToCaller) Compute(d Fact) FactSet {
	if ir.IsZero(d) {
		return singleton(ir.Zero)
	}

	out := empty()
	actuals := m.cs.Args()
	formals := m.callee.Params

	if marker, ok := VarargsMarker(m.callee); ok && d == marker {
		for i := len(formals); i < len(actuals); i++ {
			out.Add(actuals[i])
		}
	}

	for i, f := range formals {
		if Fact(f) == d && m.pparam(f) && i < len(actuals) {
			out.Add(actuals[i])
		}
	}

	if m.exit != nil && m.pret(m.callee) {
		for _, rv := range m.exit.Results {
			if rv == d {
				if cv := m.cs.Instr.Value(); cv != nil {
					out.Add(cv)
				}
				break
			}
		}
	}

	return out
}
