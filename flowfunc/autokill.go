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

package flowfunc

import (
	"go/token"

	"golang.org/x/tools/go/ssa"

	"github.com/icfgo/icfgo/ir"
)

// autoKillTemporaries decorates another flow function: after the inner
// function produces its target set, every operand of the decorated
// instruction that is itself a load result is removed, since a
// temporary consumed once by this instruction should not keep
// propagating.
type autoKillTemporaries struct {
	view  *ir.View
	instr ir.Instruction
	inner FlowFunction
}

// AutoKillTemporaries wraps inner so that load-result temporaries
// consumed by instr are killed from every output set inner produces.
func AutoKillTemporaries(view *ir.View, instr ir.Instruction, inner FlowFunction) FlowFunction {
	return &autoKillTemporaries{view: view, instr: instr, inner: inner}
}

func (a *autoKillTemporaries) Compute(d Fact) FactSet {
	out := a.inner.Compute(d)
	for _, op := range a.view.Operands(a.instr) {
		if ld, ok := op.(*ssa.UnOp); ok && ld.Op == token.MUL {
			delete(out, ld)
		}
	}
	return out
}
