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

// Package globalctor synthesizes the entry sequence used when an ICFG
// build includes globals: every package's init function, in a stable
// order, followed by the user's own entry points, followed by whatever
// this program registers as a shutdown hook.
//
// Go has no literal global-constructor list the way a linker-level ctor
// array does, so there is no single synthetic function to add as one
// graph vertex; instead Synthesize returns the ordered functions the
// builder should seed its worklist with directly. For reachability
// purposes this is equivalent to a ctor that calls each of them in turn.
package globalctor

import (
	"sort"
	"strings"

	"github.com/icfgo/icfgo/ir"
	"github.com/icfgo/icfgo/icfgerrors"
)

// DefaultRegistrarSuffix is the default CleanupRegistrar pattern: any
// called function whose name contains this substring is treated as a
// shutdown-hook registration point, and its function-valued arguments are
// collected as destructors.
const DefaultRegistrarSuffix = "AtExit"

// Plan is the synthesized global-ctor/dtor sequence for one workspace.
type Plan struct {
	// InitOrder lists every package's init function, in a stable,
	// deterministic tie-break order (by package path).
	InitOrder []ir.Function

	// EntryOrder lists the user's own entry points, in declaration order
	// (the order they were requested in).
	EntryOrder []ir.Function

	// Destructors lists functions registered as shutdown hooks, in
	// registration order. A destructor runner invokes them in reverse.
	Destructors []ir.Function
}

// Seed returns the functions the builder should push onto its worklist,
// in the order InitOrder, then EntryOrder, then Destructors. The builder's
// worklist is a LIFO stack, so the walk pops them in reverse: the last
// destructor is visited first and the first package init last.
func (p Plan) Seed() []ir.Function {
	seed := make([]ir.Function, 0, len(p.InitOrder)+len(p.EntryOrder)+len(p.Destructors))
	seed = append(seed, p.InitOrder...)
	seed = append(seed, p.EntryOrder...)
	seed = append(seed, p.Destructors...)
	return seed
}

// RunOrder returns the Destructors in the order they actually run: reverse
// of registration order.
func (p Plan) RunOrder() []ir.Function {
	out := make([]ir.Function, len(p.Destructors))
	copy(out, p.Destructors)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Synthesize builds a Plan for one loaded workspace. Passing more than one
// view is a ConfigurationError: global-ctor synthesis is only meaningful
// against exactly one independently-loaded program.
func Synthesize(views []*ir.View, entryPoints []ir.Function, registrarSuffix string) (Plan, error) {
	if len(views) != 1 {
		return Plan{}, &icfgerrors.ConfigurationError{
			Reason: "IncludeGlobals requires exactly one loaded workspace",
		}
	}
	view := views[0]
	if registrarSuffix == "" {
		registrarSuffix = DefaultRegistrarSuffix
	}

	return Plan{
		InitOrder:   packageInits(view),
		EntryOrder:  entryPoints,
		Destructors: registeredDestructors(view, registrarSuffix),
	}, nil
}

func packageInits(view *ir.View) []ir.Function {
	prog := view.Program()
	var inits []ir.Function
	for _, pkg := range prog.AllPackages() {
		if fn := pkg.Func("init"); fn != nil {
			inits = append(inits, fn)
		}
	}
	sort.Slice(inits, func(i, j int) bool {
		return inits[i].Pkg.Pkg.Path() < inits[j].Pkg.Pkg.Path()
	})
	return inits
}

// registeredDestructors scans every call site in the program for calls to
// a function whose name contains registrarSuffix, and collects every
// function-valued argument of such a call, in the order the calls are
// encountered while walking functions (sorted by package and function
// name for determinism) and arguments within a call (left to right).
func registeredDestructors(view *ir.View, registrarSuffix string) []ir.Function {
	var out []ir.Function
	for _, fn := range view.AllDefinedFunctions() {
		for _, instr := range view.Instructions(fn) {
			cs, ok := view.AbstractCallSite(instr)
			if !ok {
				continue
			}
			callee := cs.StaticCallee()
			if callee == nil || !strings.Contains(callee.Name(), registrarSuffix) {
				continue
			}
			for _, arg := range cs.Args() {
				if target := ir.AsFunction(view.StripPointerCasts(arg)); target != nil {
					out = append(out, target)
				}
			}
		}
	}
	return out
}
