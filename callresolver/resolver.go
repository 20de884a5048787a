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

// Package callresolver supplies the pluggable call-resolution strategies
// the ICFG builder consults for every call site: NoResolve, CHA, RTA, DTA,
// VTA and OTF. Every variant shares the Resolver interface and differs
// only in how it answers ResolveVirtual and ResolveFunctionPointer.
package callresolver

import (
	"go/types"

	"github.com/icfgo/icfgo/ir"
)

// Resolver is the strategy object the ICFG builder drives to fixed point.
// The lifecycle hooks (PreCall, PostCall, OtherInst, HandlePossibleTargets)
// let a variant update internal state — an instantiated-type set, a
// points-to oracle — as the builder walks the program.
type Resolver interface {
	// ResolveDirect returns targets derivable without pointer or type
	// reasoning: a statically-known callee, or one recovered by stripping
	// pointer casts down to a named, defined function.
	ResolveDirect(cs ir.CallSite) []ir.Function

	// ResolveVirtual returns targets for an interface-method dispatch
	// site.
	ResolveVirtual(cs ir.CallSite) []ir.Function

	// ResolveFunctionPointer returns targets for a non-virtual indirect
	// call (a call through a function-valued variable, closure or
	// field).
	ResolveFunctionPointer(cs ir.CallSite) []ir.Function

	PreCall(cs ir.CallSite)
	PostCall(cs ir.CallSite)
	OtherInst(i ir.Instruction)

	// HandlePossibleTargets is called with the targets about to be added
	// for cs, after they have been resolved. OTF uses it to feed
	// arguments and the receiver back into its points-to oracle.
	HandlePossibleTargets(cs ir.CallSite, targets []ir.Function)
}

// resolveDirect is the shared implementation of ResolveDirect: every
// variant answers it identically, per spec §4.2 steps 2-3.
func resolveDirect(view *ir.View, cs ir.CallSite) []ir.Function {
	if callee := cs.StaticCallee(); callee != nil {
		return []ir.Function{callee}
	}
	if cs.IsInvoke() {
		return nil
	}
	stripped := view.StripPointerCasts(cs.FuncValue())
	if fn := ir.AsFunction(stripped); fn != nil {
		return []ir.Function{fn}
	}
	return nil
}

// receiverElemType strips the pointer off a method's receiver type, so it
// can be compared against the unwrapped concrete types the resolvers track.
func receiverElemType(fn ir.Function) types.Type {
	if fn == nil || fn.Signature == nil {
		return nil
	}
	recv := fn.Signature.Recv()
	if recv == nil {
		return nil
	}
	t := recv.Type()
	if p, ok := t.(*types.Pointer); ok {
		return p.Elem()
	}
	return t
}

// receiverInterface returns the static interface type of an invoke-mode
// call site's receiver, or nil.
func receiverInterface(cs ir.CallSite) *types.Interface {
	recv, ok := cs.Receiver()
	if !ok || recv == nil || recv.Type() == nil {
		return nil
	}
	iface, _ := recv.Type().Underlying().(*types.Interface)
	return iface
}
