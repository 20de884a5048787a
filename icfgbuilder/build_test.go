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

package icfgbuilder_test

import (
	"path/filepath"
	"testing"

	"github.com/icfgo/icfgo/callresolver"
	"github.com/icfgo/icfgo/icfgbuilder"
	"github.com/icfgo/icfgo/internal/icfgtest"
	"github.com/icfgo/icfgo/ir"
	"github.com/icfgo/icfgo/pointsto"
	"github.com/icfgo/icfgo/typehierarchy"
)

func TestBuildOverDirectCallsNeverTouchesPhaseTwo(t *testing.T) {
	view, err := icfgtest.LoadDir(filepath.Join("..", "testfixtures", "recursive"))
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	th := typehierarchy.NewHierarchy(view.Program())
	b := icfgbuilder.NewBuilder(icfgbuilder.Config{
		EntryPoints: []string{"main"},
		Resolver:    callresolver.NewNoResolve(view),
		Soundness:   icfgbuilder.Unsound,
	})

	g, warnings, err := b.Build(view, th)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings for an all-direct-call program, got %v", warnings)
	}

	f1, _ := view.FunctionByName("f1")
	f5, _ := view.FunctionByName("f5")
	if !g.HasVertex(f1) || !g.HasVertex(f5) {
		t.Fatalf("expected the mutual-recursion cycle to be fully discovered from main")
	}
}

func TestBuildWithCHAResolvesVirtualDispatch(t *testing.T) {
	view, err := icfgtest.LoadDir(filepath.Join("..", "testfixtures", "virtual"))
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	th := typehierarchy.NewHierarchy(view.Program())
	b := icfgbuilder.NewBuilder(icfgbuilder.Config{
		EntryPoints: []string{"main"},
		Resolver:    callresolver.NewCHA(view, th),
		Soundness:   icfgbuilder.Sound,
	})

	g, warnings, err := b.Build(view, th)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected CHA to resolve every virtual site, got warnings: %v", warnings)
	}

	announce, _ := view.FunctionByName("announce")
	dogSpeak := findMethod(t, view, "Dog", "Speak")
	catSpeak := findMethod(t, view, "Cat", "Speak")
	callees := g.CalleesOf(announce)
	if !containsFn(callees, dogSpeak) || !containsFn(callees, catSpeak) {
		t.Fatalf("expected announce to reach both Dog.Speak and Cat.Speak, got %v", callees)
	}
}

func TestBuildWithNoResolveAgainstIndirectCallsProducesWarnings(t *testing.T) {
	view, err := icfgtest.LoadDir(filepath.Join("..", "testfixtures", "indirect"))
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	th := typehierarchy.NewHierarchy(view.Program())
	b := icfgbuilder.NewBuilder(icfgbuilder.Config{
		EntryPoints: []string{"main"},
		Resolver:    callresolver.NewNoResolve(view),
		Soundness:   icfgbuilder.Unsound,
	})

	_, warnings, err := b.Build(view, th)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(warnings) == 0 {
		t.Fatalf("expected NoResolve to leave apply's indirect call site with zero targets")
	}
}

func TestBuildWithOTFGrowsIndirectCallTargetsToFixedPoint(t *testing.T) {
	view, err := icfgtest.LoadDir(filepath.Join("..", "testfixtures", "indirect"))
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	th := typehierarchy.NewHierarchy(view.Program())
	oracle, err := pointsto.NewAndersenOracle(view, nil)
	if err != nil {
		t.Fatalf("NewAndersenOracle: %v", err)
	}
	b := icfgbuilder.NewBuilder(icfgbuilder.Config{
		EntryPoints: []string{"main"},
		Resolver:    callresolver.NewOTF(view, th, oracle),
		Soundness:   icfgbuilder.Unsound,
	})

	g, warnings, err := b.Build(view, th)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, w := range warnings {
		t.Fatalf("expected OTF's fixed point to fully resolve apply's call site, got warning: %v", w)
	}

	// apply's call site has neither a static callee nor invoke-mode
	// dispatch: it is recorded as an indirect site in Phase 1 with zero
	// targets, and only grows past zero once OTF's points-to oracle
	// reports add and sub as possible values of the loop variable f,
	// which HandlePossibleTargets' Update/Solve cycle is what makes
	// visible across Phase 2 revisits. A resolver that only saw the
	// oracle's state as of its first visit (no feedback loop) would
	// leave this site at zero targets, exactly the case
	// TestBuildWithNoResolveAgainstIndirectCallsProducesWarnings covers
	// for NoResolve.
	apply, _ := view.FunctionByName("apply")
	add, _ := view.FunctionByName("add")
	sub, _ := view.FunctionByName("sub")
	callees := g.CalleesOf(apply)
	if !containsFn(callees, add) || !containsFn(callees, sub) {
		t.Fatalf("expected apply's function-pointer call to resolve to both add and sub, got %v", callees)
	}
}

func TestBuildRejectsNilResolver(t *testing.T) {
	view, err := icfgtest.LoadDir(filepath.Join("..", "testfixtures", "recursive"))
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	th := typehierarchy.NewHierarchy(view.Program())
	b := icfgbuilder.NewBuilder(icfgbuilder.Config{
		EntryPoints: []string{"main"},
		Soundness:   icfgbuilder.Unsound,
	})
	if _, _, err := b.Build(view, th); err == nil {
		t.Fatalf("expected a ConfigurationError for a nil Resolver")
	}
}

func TestBuildRejectsIncludeGlobalsWithExtraWorkspaces(t *testing.T) {
	view, err := icfgtest.LoadDir(filepath.Join("..", "testfixtures", "globals"))
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	th := typehierarchy.NewHierarchy(view.Program())
	b := icfgbuilder.NewBuilder(icfgbuilder.Config{
		EntryPoints:     []string{"main"},
		Resolver:        callresolver.NewNoResolve(view),
		Soundness:       icfgbuilder.Sound,
		IncludeGlobals:  true,
		ExtraWorkspaces: []*ir.View{view},
	})
	if _, _, err := b.Build(view, th); err == nil {
		t.Fatalf("expected a ConfigurationError when IncludeGlobals is combined with ExtraWorkspaces")
	}
}

func findMethod(t *testing.T, view *ir.View, recv, method string) ir.Function {
	t.Helper()
	for _, fn := range view.AllDefinedFunctions() {
		if fn.Name() == method {
			sig := fn.Signature
			if sig == nil || sig.Recv() == nil {
				continue
			}
			if sig.Recv().Type().String() == recv || sig.Recv().Type().String() == "main."+recv {
				return fn
			}
		}
	}
	t.Fatalf("expected to find %s.%s", recv, method)
	return nil
}

func containsFn(fns []ir.Function, target ir.Function) bool {
	for _, fn := range fns {
		if fn == target {
			return true
		}
	}
	return false
}
