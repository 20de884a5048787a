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

package callresolver

import (
	"golang.org/x/tools/go/callgraph"
	"golang.org/x/tools/go/callgraph/cha"
	"golang.org/x/tools/go/callgraph/rta"
	"golang.org/x/tools/go/callgraph/vta"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"

	"github.com/icfgo/icfgo/icfgerrors"
	"github.com/icfgo/icfgo/ir"
)

// soundnessChecker cross-checks a resolver's own per-call-site candidate
// set against a whole-program reference call graph built by one of
// golang.org/x/tools/go/callgraph's algorithms: the differential-testing
// signal Sound mode asks for. The reference graph is expensive (it walks
// the whole program), so it is built once, lazily, on the first call site
// checked, rather than up front for every resolver regardless of whether
// Sound mode was ever requested.
type soundnessChecker struct {
	build    func() *callgraph.Graph
	graph    *callgraph.Graph
	warnings []icfgerrors.ResolutionWarning
}

func newCHASoundnessChecker(prog *ssa.Program) *soundnessChecker {
	return &soundnessChecker{build: func() *callgraph.Graph {
		return cha.CallGraph(prog)
	}}
}

func newRTASoundnessChecker(prog *ssa.Program) *soundnessChecker {
	return &soundnessChecker{build: func() *callgraph.Graph {
		return rta.Analyze(mainRoots(prog), true).CallGraph
	}}
}

func newVTASoundnessChecker(prog *ssa.Program) *soundnessChecker {
	return &soundnessChecker{build: func() *callgraph.Graph {
		return vta.CallGraph(ssautil.AllFunctions(prog), cha.CallGraph(prog))
	}}
}

// mainRoots collects every loaded program's main function, the root set
// rta.Analyze needs; a program with no main package (a library under
// test) yields no roots and therefore an empty reference graph.
func mainRoots(prog *ssa.Program) []*ssa.Function {
	var roots []*ssa.Function
	for _, pkg := range ssautil.MainPackages(prog.AllPackages()) {
		if fn := pkg.Func("main"); fn != nil {
			roots = append(roots, fn)
		}
	}
	return roots
}

func (s *soundnessChecker) referenceGraph() *callgraph.Graph {
	if s.graph == nil {
		s.graph = s.build()
	}
	return s.graph
}

// check compares got, a resolver's own candidate set for cs, against the
// reference graph's edges recorded for the same call site, and records a
// ResolutionWarning when the two sets disagree.
func (s *soundnessChecker) check(cs ir.CallSite, got []ir.Function) {
	g := s.referenceGraph()
	node := g.Nodes[cs.Func]
	if node == nil {
		return
	}
	want := map[ir.Function]bool{}
	for _, e := range node.Out {
		if e.Site == cs.Instr {
			want[e.Callee.Func] = true
		}
	}
	gotSet := map[ir.Function]bool{}
	for _, fn := range got {
		gotSet[fn] = true
	}
	if setsEqual(want, gotSet) {
		return
	}
	s.warnings = append(s.warnings, icfgerrors.ResolutionWarning{
		Site:   cs.String(),
		Reason: "candidate set disagrees with the reference golang.org/x/tools/go/callgraph analysis in Sound mode",
	})
}

func setsEqual(a, b map[ir.Function]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

// Warnings returns every disagreement recorded so far between a
// resolver's candidate sets and the reference call graph.
func (s *soundnessChecker) Warnings() []icfgerrors.ResolutionWarning {
	return s.warnings
}
