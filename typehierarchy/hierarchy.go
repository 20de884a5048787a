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

// Package typehierarchy computes, once per program, the interface
// implementation relation that backs virtual-call resolution: which
// concrete types implement which interfaces, and at which method-set slot.
package typehierarchy

import (
	"go/types"

	"golang.org/x/tools/go/ssa"

	"github.com/icfgo/icfgo/ir"
)

type implKey struct {
	iface  *types.Interface
	method string
}

// Hierarchy is a read-only, precomputed view of a program's interface
// implementation relation. Build it once per *ssa.Program and reuse it
// across an ICFG build; it never changes during that build.
type Hierarchy struct {
	implsByIfaceMethod map[implKey][]ir.Function
	ifaceSubtypes      map[*types.Interface][]types.Type
	concreteHasVTable  map[types.Type]bool
	ifaceHasVTable     map[*types.Interface]bool
}

// NewHierarchy walks every interface type and every runtime type in prog
// once, recording which runtime types implement which interfaces and which
// of their methods satisfy which interface method.
func NewHierarchy(prog *ssa.Program) *Hierarchy {
	h := &Hierarchy{
		implsByIfaceMethod: map[implKey][]ir.Function{},
		ifaceSubtypes:      map[*types.Interface][]types.Type{},
		concreteHasVTable:  map[types.Type]bool{},
		ifaceHasVTable:     map[*types.Interface]bool{},
	}
	h.build(prog)
	return h
}

func (h *Hierarchy) build(prog *ssa.Program) {
	ifaces := declaredInterfaces(prog)
	if errObj := types.Universe.Lookup("error"); errObj != nil {
		if iface, ok := errObj.Type().Underlying().(*types.Interface); ok {
			ifaces = append(ifaces, iface)
		}
	}

	seenSubtype := map[*types.Interface]map[types.Type]bool{}
	seenImpl := map[implKey]map[ir.Function]bool{}

	for _, iface := range ifaces {
		for _, rt := range prog.RuntimeTypes() {
			if !types.Implements(rt, iface) && !types.Implements(types.NewPointer(rt), iface) {
				continue
			}
			set := prog.MethodSets.MethodSet(rt)
			for i := 0; i < set.Len(); i++ {
				sel := set.At(i)
				fn := prog.MethodValue(sel)
				if p, ok := rt.(*types.Pointer); ok && fn != nil && fn.Synthetic != "" {
					// (*T).M for a value-receiver method T.M is a synthesized
					// wrapper; record the declared T.M instead.
					if m, ok := sel.Obj().(*types.Func); ok {
						if recv := m.Type().(*types.Signature).Recv(); recv != nil && types.Identical(recv.Type(), p.Elem()) {
							fn = prog.FuncValue(m)
						}
					}
				}
				if fn == nil || !ifaceDeclaresMethod(iface, fn.Name()) {
					continue
				}
				h.ifaceHasVTable[iface] = true
				h.concreteHasVTable[rt] = true

				if seenSubtype[iface] == nil {
					seenSubtype[iface] = map[types.Type]bool{}
				}
				if !seenSubtype[iface][rt] {
					seenSubtype[iface][rt] = true
					h.ifaceSubtypes[iface] = append(h.ifaceSubtypes[iface], rt)
				}

				key := implKey{iface: iface, method: fn.Name()}
				if seenImpl[key] == nil {
					seenImpl[key] = map[ir.Function]bool{}
				}
				if !seenImpl[key][fn] {
					seenImpl[key][fn] = true
					h.implsByIfaceMethod[key] = append(h.implsByIfaceMethod[key], fn)
				}
			}
		}
	}
}

func declaredInterfaces(prog *ssa.Program) []*types.Interface {
	var ifaces []*types.Interface
	for _, pkg := range prog.AllPackages() {
		for _, mem := range pkg.Members {
			t, ok := mem.(*ssa.Type)
			if !ok {
				continue
			}
			if iface, ok := t.Type().Underlying().(*types.Interface); ok {
				ifaces = append(ifaces, iface)
			}
		}
	}
	return ifaces
}

func ifaceDeclaresMethod(iface *types.Interface, name string) bool {
	for i := 0; i < iface.NumMethods(); i++ {
		if iface.Method(i).Name() == name {
			return true
		}
	}
	return false
}

// HasVTable reports whether t participates in virtual dispatch: for a
// concrete type, whether some interface in the program is implemented by
// it; for an interface type, whether some runtime type implements it.
func (h *Hierarchy) HasVTable(t types.Type) bool {
	if t == nil {
		return false
	}
	if iface, ok := t.Underlying().(*types.Interface); ok {
		return h.ifaceHasVTable[iface]
	}
	return h.concreteHasVTable[t]
}

// VTableSlot returns the index of the invoked method within the receiver
// interface's method set, or -1 if cs is not an invoke-mode call.
func (h *Hierarchy) VTableSlot(cs ir.CallSite) int {
	if !cs.IsInvoke() {
		return -1
	}
	recv, ok := cs.Receiver()
	if !ok || recv == nil {
		return -1
	}
	iface, ok := recv.Type().Underlying().(*types.Interface)
	if !ok {
		return -1
	}
	name := cs.MethodName()
	for i := 0; i < iface.NumMethods(); i++ {
		if iface.Method(i).Name() == name {
			return i
		}
	}
	return -1
}

// Implementations returns every defined function implementing methodName
// for iface, in discovery order.
func (h *Hierarchy) Implementations(iface *types.Interface, methodName string) []ir.Function {
	impls := h.implsByIfaceMethod[implKey{iface: iface, method: methodName}]
	out := make([]ir.Function, len(impls))
	copy(out, impls)
	return out
}

// Subtypes returns every runtime type implementing t, when t is (or has
// underlying) an interface type. For a concrete type it returns nil.
func (h *Hierarchy) Subtypes(t types.Type) []types.Type {
	if t == nil {
		return nil
	}
	iface, ok := t.Underlying().(*types.Interface)
	if !ok {
		return nil
	}
	subs := h.ifaceSubtypes[iface]
	out := make([]types.Type, len(subs))
	copy(out, subs)
	return out
}

// IsVirtualCall implements spec's virtual-call predicate exactly: receiver
// operand present, receiver type known, type has a vtable, slot >= 0.
func (h *Hierarchy) IsVirtualCall(cs ir.CallSite) bool {
	recv, ok := cs.Receiver()
	if !ok || recv == nil || recv.Type() == nil {
		return false
	}
	if !h.HasVTable(recv.Type()) {
		return false
	}
	return h.VTableSlot(cs) >= 0
}
