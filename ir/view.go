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

// Package ir is a read-only view over a loaded SSA program. It does not
// build, load, or mutate anything: it classifies and iterates a
// *ssa.Program that some host (typically a test helper) has already built.
package ir

import (
	"sort"

	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

// Function, Instruction, Value and BasicBlock are the concrete LLIR this
// module operates over. They are direct aliases onto go/ssa's own types;
// the View adds classification and ordering, not a parallel representation.
type (
	Function    = *ssa.Function
	Instruction = ssa.Instruction
	Value       = ssa.Value
	BasicBlock  = *ssa.BasicBlock
)

// AllEntryPoints is the sentinel entry-point name meaning "every defined,
// named function in the program", matching the loader convention that no
// explicit entry points means "analyze everything reachable".
const AllEntryPoints = "__ALL__"

// View wraps a *ssa.Program with the operations the ICFG builder, the call
// resolvers and the flow-function library need, and nothing else.
type View struct {
	prog  *ssa.Program
	byName map[string]Function
}

// NewView builds a View over an already-constructed program. prog must have
// had Build() called on it; NewView does not build it.
func NewView(prog *ssa.Program) *View {
	return &View{prog: prog}
}

// Program returns the underlying *ssa.Program, for callers (such as
// pointsto.AndersenOracle) that need to drive x/tools/go analyses directly.
func (v *View) Program() *ssa.Program {
	return v.prog
}

// Zero returns the well-known IFDS tautological fact. It is a package-level
// immutable sentinel: every call returns the same value, it is never
// synthesized per-call, and it never aliases a value that actually occurs in
// the analyzed program.
func (v *View) Zero() Value {
	return Zero
}

func (v *View) index() map[string]Function {
	if v.byName != nil {
		return v.byName
	}
	m := make(map[string]Function)
	for fn := range ssautil.AllFunctions(v.prog) {
		if fn.Pkg != nil && fn.Name() != "" {
			m[fn.RelString(fn.Pkg.Pkg)] = fn
		}
	}
	v.byName = m
	return m
}

// AllDefinedFunctions returns every defined, named function in the program,
// sorted by package-qualified name.
func (v *View) AllDefinedFunctions() []Function {
	var out []Function
	for fn := range ssautil.AllFunctions(v.prog) {
		if fn.Pkg != nil && fn.Name() != "" {
			out = append(out, fn)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}

// FunctionByName resolves a qualified function name (package-relative, as
// produced by Function.RelString) to its defined ssa.Function.
func (v *View) FunctionByName(name string) (Function, bool) {
	fn, ok := v.index()[name]
	return fn, ok
}

// Functions resolves a list of entry-point names, expanding AllEntryPoints
// to every defined, named function. It returns the resolved functions in
// request order (AllEntryPoints is expanded in AllDefinedFunctions order)
// together with any names that did not resolve, so the caller can turn those
// into MissingEntryPoint warnings without this package knowing about the
// error taxonomy.
func (v *View) Functions(names []string) (fns []Function, missing []string) {
	for _, name := range names {
		if name == AllEntryPoints {
			fns = append(fns, v.AllDefinedFunctions()...)
			continue
		}
		if fn, ok := v.FunctionByName(name); ok {
			fns = append(fns, fn)
		} else {
			missing = append(missing, name)
		}
	}
	return fns, missing
}

// IsDeclaration reports whether f has no body in this program: an external
// function, a pure interface method, or an intrinsic. Such functions produce
// no instructions to walk.
func (v *View) IsDeclaration(f Function) bool {
	return f == nil || f.Blocks == nil
}

// Instructions returns every instruction of f in program order: block order
// follows f.Blocks, and within a block, instruction order follows the
// block's own Instrs slice. Declarations yield nil.
func (v *View) Instructions(f Function) []Instruction {
	if v.IsDeclaration(f) {
		return nil
	}
	var out []Instruction
	for _, b := range f.Blocks {
		out = append(out, b.Instrs...)
	}
	return out
}

// Operands returns the non-nil operand values of i, in the order go/ssa
// itself enumerates them.
func (v *View) Operands(i Instruction) []Value {
	var slots []*Value
	slots = i.Operands(slots)
	out := make([]Value, 0, len(slots))
	for _, s := range slots {
		if s != nil && *s != nil {
			out = append(out, *s)
		}
	}
	return out
}
