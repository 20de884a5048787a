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
	"github.com/icfgo/icfgo/icfgerrors"
	"github.com/icfgo/icfgo/ir"
	"github.com/icfgo/icfgo/typehierarchy"
)

// CHA resolves a virtual call to every live implementation of the invoked
// interface method, ignoring points-to information entirely: class
// hierarchy analysis's defining over-approximation.
type CHA struct {
	view  *ir.View
	th    *typehierarchy.Hierarchy
	sound *soundnessChecker
}

// NewCHA builds a CHA resolver over an already-computed type hierarchy.
func NewCHA(view *ir.View, th *typehierarchy.Hierarchy) *CHA {
	return &CHA{view: view, th: th}
}

// NewSoundCHA builds a CHA resolver that additionally cross-checks every
// virtual call's candidate set against golang.org/x/tools/go/callgraph/cha's
// whole-program call graph, recording a ResolutionWarning on disagreement.
func NewSoundCHA(view *ir.View, th *typehierarchy.Hierarchy) *CHA {
	c := NewCHA(view, th)
	c.sound = newCHASoundnessChecker(view.Program())
	return c
}

func (r *CHA) ResolveDirect(cs ir.CallSite) []ir.Function { return resolveDirect(r.view, cs) }

func (r *CHA) ResolveVirtual(cs ir.CallSite) []ir.Function {
	iface := receiverInterface(cs)
	if iface == nil {
		return nil
	}
	out := r.th.Implementations(iface, cs.MethodName())
	if r.sound != nil {
		r.sound.check(cs, out)
	}
	return out
}

// SoundnessWarnings returns every disagreement observed between this
// resolver's candidate sets and golang.org/x/tools/go/callgraph/cha's
// whole-program call graph, or nil if this resolver was built with NewCHA
// rather than NewSoundCHA.
func (r *CHA) SoundnessWarnings() []icfgerrors.ResolutionWarning {
	if r.sound == nil {
		return nil
	}
	return r.sound.Warnings()
}

func (r *CHA) ResolveFunctionPointer(ir.CallSite) []ir.Function { return nil }
func (r *CHA) PreCall(ir.CallSite)                              {}
func (r *CHA) PostCall(ir.CallSite)                             {}
func (r *CHA) OtherInst(ir.Instruction)                         {}
func (r *CHA) HandlePossibleTargets(ir.CallSite, []ir.Function) {}
