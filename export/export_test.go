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

package export_test

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/icfgo/icfgo/callresolver"
	"github.com/icfgo/icfgo/export"
	"github.com/icfgo/icfgo/icfgbuilder"
	"github.com/icfgo/icfgo/internal/icfgtest"
	"github.com/icfgo/icfgo/typehierarchy"
)

func TestDOTEmitsOneNodePerFunctionAndOneEdgePerCallSite(t *testing.T) {
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
	g, _, err := b.Build(view, th)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var buf bytes.Buffer
	if err := export.DOT(&buf, g); err != nil {
		t.Fatalf("DOT: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "digraph icfg {\n") || !strings.HasSuffix(out, "}\n") {
		t.Fatalf("expected a well-formed digraph wrapper, got:\n%s", out)
	}

	main, _ := view.FunctionByName("main")
	f1, _ := view.FunctionByName("f1")
	if !strings.Contains(out, main.String()) || !strings.Contains(out, f1.String()) {
		t.Fatalf("expected node labels for both main and f1")
	}
	if strings.Count(out, " -> ") == 0 {
		t.Fatalf("expected at least one edge in the rendered graph")
	}
}

func TestJSONRoundTripsEdgesUnderTheGivenID(t *testing.T) {
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
	g, _, err := b.Build(view, th)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	raw, err := export.JSON("recursive", g)
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var decoded map[string]map[string][]string
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	edges, ok := decoded["recursive"]
	if !ok {
		t.Fatalf("expected top-level key %q", "recursive")
	}

	main, _ := view.FunctionByName("main")
	f1, _ := view.FunctionByName("f1")
	gFn, _ := view.FunctionByName("g")

	callees, ok := edges[main.String()]
	if !ok {
		t.Fatalf("expected an entry for main")
	}
	if len(callees) != 2 {
		t.Fatalf("expected main to have exactly 2 recorded call edges (f1, g), got %v", callees)
	}
	if callees[0] != f1.String() || callees[1] != gFn.String() {
		t.Fatalf("expected main's callees in call order [f1, g], got %v", callees)
	}
}
