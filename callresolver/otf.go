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
	"github.com/icfgo/icfgo/pointsto"
	"github.com/icfgo/icfgo/typehierarchy"
)

// OTF ("on-the-fly") consults a points-to oracle for both virtual and
// function-pointer call sites, and feeds every argument and receiver value
// of a resolved call site back into that oracle via HandlePossibleTargets.
// A later visit to the same site can then see a wider points-to set than
// an earlier one, which is exactly the feedback loop that forces the ICFG
// builder's outer loop to iterate to a fixed point.
type OTF struct {
	view   *ir.View
	th     *typehierarchy.Hierarchy
	oracle *pointsto.AndersenOracle
}

// NewOTF builds an OTF resolver around an already-constructed points-to
// oracle. The oracle is owned by the builder for the duration of
// construction; OTF calls PointsTo, Update and Solve on it.
func NewOTF(view *ir.View, th *typehierarchy.Hierarchy, oracle *pointsto.AndersenOracle) *OTF {
	return &OTF{view: view, th: th, oracle: oracle}
}

func (r *OTF) ResolveDirect(cs ir.CallSite) []ir.Function { return resolveDirect(r.view, cs) }

func (r *OTF) ResolveVirtual(cs ir.CallSite) []ir.Function {
	recv, ok := cs.Receiver()
	if !ok {
		return nil
	}
	iface := receiverInterface(cs)
	if iface == nil {
		return nil
	}
	candidates := r.th.Implementations(iface, cs.MethodName())
	if len(candidates) == 0 {
		return nil
	}

	wanted := map[ir.Function]bool{}
	for _, obj := range r.oracle.PointsTo(recv) {
		t := concreteTypeOfObject(obj)
		if t == nil {
			continue
		}
		for _, fn := range candidates {
			if receiverElemType(fn) == t {
				wanted[fn] = true
			}
		}
	}
	var out []ir.Function
	for _, fn := range candidates {
		if wanted[fn] {
			out = append(out, fn)
		}
	}
	return out
}

func (r *OTF) ResolveFunctionPointer(cs ir.CallSite) []ir.Function {
	fv := cs.FuncValue()
	if fv == nil {
		return nil
	}
	var out []ir.Function
	seen := map[ir.Function]bool{}
	for _, obj := range r.oracle.PointsTo(fv) {
		fn := ir.AsFunction(obj.Value())
		if fn != nil && !seen[fn] {
			seen[fn] = true
			out = append(out, fn)
		}
	}
	return out
}

func (r *OTF) PreCall(ir.CallSite)     {}
func (r *OTF) PostCall(ir.CallSite)    {}
func (r *OTF) OtherInst(ir.Instruction) {}

// HandlePossibleTargets widens the oracle's query set with every argument
// and, for invoke-mode sites, the receiver, then re-solves so a later
// revisit of this or any other site can see the effect.
func (r *OTF) HandlePossibleTargets(cs ir.CallSite, _ []ir.Function) {
	for _, arg := range cs.Args() {
		r.oracle.Update(arg)
	}
	if recv, ok := cs.Receiver(); ok {
		r.oracle.Update(recv)
	}
	if fv := cs.FuncValue(); fv != nil {
		r.oracle.Update(fv)
	}
	_ = r.oracle.Solve()
}

// concreteTypeOfObject recovers the concrete type an abstract points-to
// object represents, when it is an interface-boxing site.
func concreteTypeOfObject(obj pointsto.Object) types.Type {
	v := obj.Value()
	if v == nil {
		return nil
	}
	if mi, ok := v.(*ssa.MakeInterface); ok {
		return mi.X.Type()
	}
	return v.Type()
}
