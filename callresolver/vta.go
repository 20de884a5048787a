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
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ssa"

	"github.com/icfgo/icfgo/icfgerrors"
	"github.com/icfgo/icfgo/ir"
	"github.com/icfgo/icfgo/typehierarchy"
)

// VTA ("variable type analysis") refines RTA by tracking, per interface
// type, which concrete types actually flow into a value of that interface
// type along direct copies (*ssa.Phi merges, *ssa.Store/load pairs),
// instead of treating every instantiated type as a candidate for every
// interface. This is deliberately coarse — a single forward sweep over
// the program in definition order, not a fixed-point alias analysis — so
// it can miss types that only reach a use through a back-edge in a loop;
// it never queries the full points-to analysis the way OTF does.
type VTA struct {
	view    *ir.View
	th      *typehierarchy.Hierarchy
	byIface map[*types.Interface]map[types.Type]bool
	sound   *soundnessChecker
}

// NewVTA builds the coarse type-flow approximation once, up front.
func NewVTA(view *ir.View, th *typehierarchy.Hierarchy) *VTA {
	v := &VTA{view: view, th: th, byIface: map[*types.Interface]map[types.Type]bool{}}
	v.build()
	return v
}

// NewSoundVTA builds a VTA resolver that additionally cross-checks every
// virtual call's candidate set against golang.org/x/tools/go/callgraph/vta's
// whole-program call graph (seeded from cha.CallGraph, the reference
// implementation's own convention), recording a ResolutionWarning on
// disagreement.
func NewSoundVTA(view *ir.View, th *typehierarchy.Hierarchy) *VTA {
	v := NewVTA(view, th)
	v.sound = newVTASoundnessChecker(view.Program())
	return v
}

func (v *VTA) build() {
	reach := map[ssa.Value][]types.Type{}
	seen := map[ssa.Value]map[types.Type]bool{}
	add := func(val ssa.Value, t types.Type) {
		if seen[val] == nil {
			seen[val] = map[types.Type]bool{}
		}
		if !seen[val][t] {
			seen[val][t] = true
			reach[val] = append(reach[val], t)
		}
	}

	for _, fn := range v.view.AllDefinedFunctions() {
		for _, instr := range v.view.Instructions(fn) {
			switch x := instr.(type) {
			case *ssa.MakeInterface:
				add(x, x.X.Type())
			case *ssa.Phi:
				for _, e := range x.Edges {
					for _, t := range reach[e] {
						add(x, t)
					}
				}
			case *ssa.Store:
				for _, t := range reach[x.Val] {
					add(x.Addr, t)
				}
			case *ssa.UnOp:
				if x.Op == token.MUL {
					for _, t := range reach[x.X] {
						add(x, t)
					}
				}
			}
		}
	}

	for val, ts := range reach {
		iface, ok := val.Type().Underlying().(*types.Interface)
		if !ok {
			continue
		}
		if v.byIface[iface] == nil {
			v.byIface[iface] = map[types.Type]bool{}
		}
		for _, t := range ts {
			v.byIface[iface][t] = true
		}
	}
}

func (v *VTA) ResolveDirect(cs ir.CallSite) []ir.Function { return resolveDirect(v.view, cs) }

func (v *VTA) ResolveVirtual(cs ir.CallSite) []ir.Function {
	iface := receiverInterface(cs)
	if iface == nil {
		return nil
	}
	all := v.th.Implementations(iface, cs.MethodName())
	reach := v.byIface[iface]
	if reach == nil {
		// No tracked type-flow for this interface: fall back to the
		// full CHA-level candidate set rather than silently resolving
		// to nothing.
		if v.sound != nil {
			v.sound.check(cs, all)
		}
		return all
	}
	var out []ir.Function
	for _, fn := range all {
		if reach[receiverElemType(fn)] {
			out = append(out, fn)
		}
	}
	if v.sound != nil {
		v.sound.check(cs, out)
	}
	return out
}

func (v *VTA) ResolveFunctionPointer(ir.CallSite) []ir.Function { return nil }
func (v *VTA) PreCall(ir.CallSite)                              {}
func (v *VTA) PostCall(ir.CallSite)                             {}
func (v *VTA) OtherInst(ir.Instruction)                         {}
func (v *VTA) HandlePossibleTargets(ir.CallSite, []ir.Function) {}

// SoundnessWarnings returns every disagreement observed between this
// resolver's candidate sets and golang.org/x/tools/go/callgraph/vta's
// whole-program call graph, or nil if this resolver was built with NewVTA
// rather than NewSoundVTA.
func (v *VTA) SoundnessWarnings() []icfgerrors.ResolutionWarning {
	if v.sound == nil {
		return nil
	}
	return v.sound.Warnings()
}
