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

// Package icfgtest is a test-only helper for loading a small Go program
// from source text into an *ir.View, so package tests can exercise real
// go/ssa instructions instead of hand-built fixtures. It is imported only
// from _test.go files.
package icfgtest

import (
	"fmt"
	"go/token"
	"os"
	"path/filepath"

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

// LoadDir type-checks and builds SSA for the Go program rooted at dir
// (a directory inside this module holding a main package, typically one
// of the testfixtures directories), and returns an *ir.View over the
// built program.
func LoadDir(dir string) (*ir.View, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("icfgtest: %w", err)
	}
	cfg := &packages.Config{
		Mode: loadMode,
		Dir:  abs,
		Fset: token.NewFileSet(),
		Env:  append(os.Environ(), "GOFLAGS=-mod=mod"),
	}
	initial, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, fmt.Errorf("icfgtest: loading %s: %w", abs, err)
	}
	if len(initial) == 0 {
		return nil, fmt.Errorf("icfgtest: no packages found in %s", abs)
	}
	if packages.PrintErrors(initial) > 0 {
		return nil, fmt.Errorf("icfgtest: type errors in %s", abs)
	}

	prog, ssaPkgs := ssautil.AllPackages(initial, ssa.SanityCheckFunctions)
	for i, p := range ssaPkgs {
		if p == nil {
			return nil, fmt.Errorf("icfgtest: cannot build SSA for %s", initial[i])
		}
	}
	prog.Build()

	return ir.NewView(prog), nil
}
