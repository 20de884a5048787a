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
	"go/types"

	"golang.org/x/tools/go/ssa"

	"github.com/icfgo/icfgo/ir"
	"github.com/icfgo/icfgo/typehierarchy"
)

// DTA ("declared type analysis") is RTA with its instantiated-type set
// seeded once, up front, from every static boxing site in the whole
// program, rather than grown incrementally as the walk discovers them.
// Because the set never changes after construction, DTA reaches its
// fixed point in the ICFG builder's first pass.
type DTA struct {
	view         *ir.View
	th           *typehierarchy.Hierarchy
	instantiated map[types.Type]bool
}

// NewDTA scans every defined function once, up front, for boxing and
// allocation sites.
func NewDTA(view *ir.View, th *typehierarchy.Hierarchy) *DTA {
	d := &DTA{view: view, th: th, instantiated: map[types.Type]bool{}}
	for _, fn := range view.AllDefinedFunctions() {
		for _, instr := range view.Instructions(fn) {
			switch x := instr.(type) {
			case *ssa.MakeInterface:
				d.instantiated[x.X.Type()] = true
			case *ssa.Alloc:
				if p, ok := x.Type().(*types.Pointer); ok {
					d.instantiated[p.Elem()] = true
				}
			}
		}
	}
	return d
}

func (r *DTA) ResolveDirect(cs ir.CallSite) []ir.Function { return resolveDirect(r.view, cs) }

func (r *DTA) ResolveVirtual(cs ir.CallSite) []ir.Function {
	iface := receiverInterface(cs)
	if iface == nil {
		return nil
	}
	var out []ir.Function
	for _, fn := range r.th.Implementations(iface, cs.MethodName()) {
		if r.instantiated[receiverElemType(fn)] {
			out = append(out, fn)
		}
	}
	return out
}

func (r *DTA) ResolveFunctionPointer(ir.CallSite) []ir.Function { return nil }
func (r *DTA) PreCall(ir.CallSite)                                     {}
func (r *DTA) PostCall(ir.CallSite)                                    {}
func (r *DTA) OtherInst(ir.Instruction)                                {}
func (r *DTA) HandlePossibleTargets(ir.CallSite, []ir.Function)        {}
