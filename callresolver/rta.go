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

	"github.com/icfgo/icfgo/icfgerrors"
	"github.com/icfgo/icfgo/ir"
	"github.com/icfgo/icfgo/typehierarchy"
)

// RTA narrows CHA's candidate set to the types observed instantiated
// (boxed into an interface, or allocated) during the walk so far: rapid
// type analysis' defining restriction. The instantiated set only grows, so
// a target present on one visit stays present on every later one.
type RTA struct {
	view         *ir.View
	th           *typehierarchy.Hierarchy
	instantiated map[types.Type]bool
	sound        *soundnessChecker
}

// NewRTA returns an RTA resolver with an empty instantiated-type set; the
// builder grows it as OtherInst observes allocation and boxing sites.
func NewRTA(view *ir.View, th *typehierarchy.Hierarchy) *RTA {
	return &RTA{view: view, th: th, instantiated: map[types.Type]bool{}}
}

// NewSoundRTA builds an RTA resolver that additionally cross-checks every
// virtual call's candidate set against golang.org/x/tools/go/callgraph/rta's
// whole-program call graph, recording a ResolutionWarning on disagreement.
func NewSoundRTA(view *ir.View, th *typehierarchy.Hierarchy) *RTA {
	r := NewRTA(view, th)
	r.sound = newRTASoundnessChecker(view.Program())
	return r
}

func (r *RTA) ResolveDirect(cs ir.CallSite) []ir.Function { return resolveDirect(r.view, cs) }

func (r *RTA) ResolveVirtual(cs ir.CallSite) []ir.Function {
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
	if r.sound != nil {
		r.sound.check(cs, out)
	}
	return out
}

// SoundnessWarnings returns every disagreement observed between this
// resolver's candidate sets and golang.org/x/tools/go/callgraph/rta's
// whole-program call graph, or nil if this resolver was built with NewRTA
// rather than NewSoundRTA.
func (r *RTA) SoundnessWarnings() []icfgerrors.ResolutionWarning {
	if r.sound == nil {
		return nil
	}
	return r.sound.Warnings()
}

func (r *RTA) ResolveFunctionPointer(ir.CallSite) []ir.Function { return nil }
func (r *RTA) PreCall(ir.CallSite)                              {}
func (r *RTA) PostCall(ir.CallSite)                             {}

// OtherInst watches for boxing and allocation sites to grow the
// instantiated-type set: *ssa.MakeInterface records the boxed concrete
// type, *ssa.Alloc records the allocated cell's element type.
func (r *RTA) OtherInst(i ir.Instruction) {
	switch x := i.(type) {
	case *ssa.MakeInterface:
		r.instantiated[x.X.Type()] = true
	case *ssa.Alloc:
		if p, ok := x.Type().(*types.Pointer); ok {
			r.instantiated[p.Elem()] = true
		}
	}
}

func (r *RTA) HandlePossibleTargets(ir.CallSite, []ir.Function) {}
