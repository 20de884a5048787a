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

package ir

import "golang.org/x/tools/go/ssa"

// CallSite is a Call/Go/Defer instruction plus the containing function, with
// the accessors the resolvers and flow functions need: the ordered actual
// arguments and, when known statically, the callee.
type CallSite struct {
	Instr ssa.CallInstruction
	Func  Function // the function containing Instr
}

// AbstractCallSite wraps i as a CallSite if it is one of Call, Go or Defer.
func (v *View) AbstractCallSite(i Instruction) (CallSite, bool) {
	ci, ok := i.(ssa.CallInstruction)
	if !ok {
		return CallSite{}, false
	}
	return CallSite{Instr: ci, Func: i.Parent()}, true
}

// Common returns the shared ssa.CallCommon of the wrapped instruction.
func (cs CallSite) Common() *ssa.CallCommon {
	return cs.Instr.Common()
}

// Args returns the ordered actual arguments of the call.
func (cs CallSite) Args() []Value {
	return cs.Common().Args
}

// StaticCallee returns the statically-known callee, or nil for an indirect
// or invoke-mode call.
func (cs CallSite) StaticCallee() Function {
	return cs.Common().StaticCallee()
}

// IsInvoke reports whether this is an interface-method ("invoke" mode) call
// site: virtual dispatch through the receiver's itable.
func (cs CallSite) IsInvoke() bool {
	return cs.Common().IsInvoke()
}

// Receiver returns the receiver value of an invoke-mode call site.
func (cs CallSite) Receiver() (Value, bool) {
	if !cs.IsInvoke() {
		return nil, false
	}
	return cs.Common().Value, true
}

// MethodName returns the invoked method's name for an invoke-mode call
// site.
func (cs CallSite) MethodName() string {
	if !cs.IsInvoke() {
		return ""
	}
	return cs.Common().Method.Name()
}

// FuncValue returns the callee operand of an indirect (non-invoke,
// non-static) call site: the function value being called through.
func (cs CallSite) FuncValue() Value {
	return cs.Common().Value
}

// IsIndirect reports whether this call site has neither a statically-known
// callee nor invoke-mode dispatch: a call through a function-valued
// variable, closure or field.
func (cs CallSite) IsIndirect() bool {
	return !cs.IsInvoke() && cs.StaticCallee() == nil
}

func (cs CallSite) String() string {
	return cs.Instr.String()
}

// StripPointerCasts follows *ssa.ChangeType, *ssa.Convert, *ssa.ChangeInterface
// and *ssa.MakeInterface chains back to the underlying value, mirroring
// LLVM's stripPointerCasts() as used by the original resolver to see through
// bitcasts before checking whether a call's function operand is a known
// *ssa.Function.
func (v *View) StripPointerCasts(val Value) Value {
	for {
		switch x := val.(type) {
		case *ssa.ChangeType:
			val = x.X
		case *ssa.Convert:
			val = x.X
		case *ssa.ChangeInterface:
			val = x.X
		case *ssa.MakeInterface:
			val = x.X
		default:
			return val
		}
	}
}
