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

// Package loader builds an *ir.View from a set of Go package patterns,
// the way cmd/icfgo does for a real analysis run. internal/icfgtest
// covers the same ground for package tests; this package exists
// separately so test-only helpers never end up linked into the binary.
package loader

import (
	"fmt"
	"go/token"

	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"

	"github.com/icfgo/icfgo/ir"
)

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedImports |
	packages.NeedDeps |
	packages.NeedTypes |
	packages.NeedSyntax |
	packages.NeedTypesInfo |
	packages.NeedModule

// Load type-checks and builds SSA for the packages matched by patterns
// (as accepted by golang.org/x/tools/go/packages.Load), and returns an
// *ir.View over the built program.
func Load(patterns ...string) (*ir.View, error) {
	cfg := &packages.Config{
		Mode: loadMode,
		Fset: token.NewFileSet(),
	}
	initial, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}
	if len(initial) == 0 {
		return nil, fmt.Errorf("no packages matched %v", patterns)
	}
	if packages.PrintErrors(initial) > 0 {
		return nil, fmt.Errorf("type errors in %v", patterns)
	}

	prog, ssaPkgs := ssautil.AllPackages(initial, ssa.SanityCheckFunctions)
	for i, p := range ssaPkgs {
		if p == nil {
			return nil, fmt.Errorf("cannot build SSA for %s", initial[i])
		}
	}
	prog.Build()

	return ir.NewView(prog), nil
}
