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

package graphutil_test

import (
	"path/filepath"
	"testing"

	"github.com/icfgo/icfgo/callresolver"
	"github.com/icfgo/icfgo/icfgbuilder"
	"github.com/icfgo/icfgo/internal/graphutil"
	"github.com/icfgo/icfgo/internal/icfgtest"
	"github.com/icfgo/icfgo/typehierarchy"
)

func TestFindAllElementaryCycles(t *testing.T) {
	view, err := icfgtest.LoadDir(filepath.Join("testdata", "trivial"))
	if err != nil {
		t.Fatalf("failed to load test program: %v", err)
	}
	th := typehierarchy.NewHierarchy(view.Program())

	builder := icfgbuilder.NewBuilder(icfgbuilder.Config{
		EntryPoints: []string{"main"},
		Resolver:    callresolver.NewNoResolve(view),
	})
	cg, warnings, err := builder.Build(view, th)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	if graphutil.Acyclic(cg) {
		t.Fatalf("expected the f1/f2/f3/f4/f5 and g/g1/g2/g3 mutual recursion to be cyclic")
	}

	cycles := graphutil.Cycles(cg)
	if len(cycles) != 5 {
		t.Fatalf("expected 5 elementary cycles (3 in the f-group, 2 in the g-group), found %d: %v", len(cycles), cycles)
	}
}
