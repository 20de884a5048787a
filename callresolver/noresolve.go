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

import "github.com/icfgo/icfgo/ir"

// NoResolve never attempts type or points-to reasoning: indirect call
// sites of every kind terminate with zero targets.
type NoResolve struct {
	view *ir.View
}

// NewNoResolve returns a Resolver that only ever resolves direct calls.
func NewNoResolve(view *ir.View) *NoResolve {
	return &NoResolve{view: view}
}

func (r *NoResolve) ResolveDirect(cs ir.CallSite) []ir.Function { return resolveDirect(r.view, cs) }
func (r *NoResolve) ResolveVirtual(ir.CallSite) []ir.Function   { return nil }
func (r *NoResolve) ResolveFunctionPointer(ir.CallSite) []ir.Function { return nil }
func (r *NoResolve) PreCall(ir.CallSite)                                    {}
func (r *NoResolve) PostCall(ir.CallSite)                                   {}
func (r *NoResolve) OtherInst(ir.Instruction)                               {}
func (r *NoResolve) HandlePossibleTargets(ir.CallSite, []ir.Function)       {}
