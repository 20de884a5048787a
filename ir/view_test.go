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

package ir_test

import (
	"path/filepath"
	"testing"

	"github.com/icfgo/icfgo/internal/icfgtest"
	"github.com/icfgo/icfgo/ir"
)

func load(t *testing.T, dir string) *ir.View {
	t.Helper()
	view, err := icfgtest.LoadDir(filepath.Join("..", "testfixtures", dir))
	if err != nil {
		t.Fatalf("LoadDir(%s): %v", dir, err)
	}
	return view
}

func TestFunctionByName(t *testing.T) {
	view := load(t, "recursive")

	fn, ok := view.FunctionByName("main")
	if !ok {
		t.Fatalf("expected to find main")
	}
	if fn.Name() != "main" {
		t.Fatalf("got %s", fn.Name())
	}

	if _, ok := view.FunctionByName("doesNotExist"); ok {
		t.Fatalf("expected doesNotExist to be missing")
	}
}

func TestFunctionsExpandsAllEntryPoints(t *testing.T) {
	view := load(t, "recursive")

	fns, missing := view.Functions([]string{ir.AllEntryPoints})
	if len(missing) != 0 {
		t.Fatalf("unexpected missing: %v", missing)
	}
	if len(fns) != len(view.AllDefinedFunctions()) {
		t.Fatalf("expected AllEntryPoints to expand to every defined function")
	}

	_, missing = view.Functions([]string{"main", "doesNotExist"})
	if len(missing) != 1 || missing[0] != "doesNotExist" {
		t.Fatalf("expected exactly one missing name, got %v", missing)
	}
}

func TestIsDeclarationAndInstructions(t *testing.T) {
	view := load(t, "recursive")

	fn, ok := view.FunctionByName("f1")
	if !ok {
		t.Fatalf("expected to find f1")
	}
	if view.IsDeclaration(fn) {
		t.Fatalf("f1 has a body, should not be a declaration")
	}
	if len(view.Instructions(fn)) == 0 {
		t.Fatalf("expected f1 to have instructions")
	}

	if !view.IsDeclaration(nil) {
		t.Fatalf("nil must be treated as a declaration")
	}
}

func TestZeroIsStableAndNeverAliasesRealValues(t *testing.T) {
	view := load(t, "recursive")

	if !ir.IsZero(view.Zero()) {
		t.Fatalf("View.Zero() must report IsZero")
	}
	if view.Zero() != ir.Zero {
		t.Fatalf("View.Zero() must return the shared sentinel")
	}

	fn, _ := view.FunctionByName("f1")
	for _, instr := range view.Instructions(fn) {
		for _, op := range view.Operands(instr) {
			if ir.IsZero(op) {
				t.Fatalf("a real operand must never be the Zero Value")
			}
		}
	}
}
