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

import "github.com/icfgo/icfgo/ir"

// ParamPredicate filters which actual arguments MapFactsToCallee is
// willing to map onto a formal at all.
type ParamPredicate func(v Fact) bool

func alwaysTrue(Fact) bool { return true }

type mapFactsToCallee struct {
	view *ir.View
	cs   ir.CallSite
	dest ir.Function
	pred ParamPredicate
}

// MapFactsToCallee returns the call-edge flow function mapping cs's
// actual arguments onto dest's formal parameters. An actual beyond
// dest's formal count is mapped onto dest's variadic marker, when dest
// is variadic; declarations kill every fact, including Zero, since
// there is no function body to carry the fact into.
func MapFactsToCallee(view *ir.View, cs ir.CallSite, dest ir.Function, pred ParamPredicate) FlowFunction {
	if pred == nil {
		pred = alwaysTrue
	}
	return &mapFactsToCallee{view: view, cs: cs, dest: dest, pred: pred}
}

func (m *mapFactsToCallee) Compute(d Fact) FactSet {
	if m.view.IsDeclaration(m.dest) {
		return empty()
	}
	if ir.IsZero(d) {
		return singleton(ir.Zero)
	}

	actuals := m.cs.Args()
	formals := m.dest.Params
	marker, hasMarker := VarargsMarker(m.dest)

	out := empty()
	for i, a := range actuals {
		if a != d || !m.pred(a) {
			continue
		}
		switch {
		case i < len(formals):
			out.Add(formals[i])
		case hasMarker:
			out.Add(marker)
		}
	}
	return out
}
