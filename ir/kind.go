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

import (
	"go/token"

	"golang.org/x/tools/go/ssa"
)

// Kind is the coarse instruction classification the ICFG builder and the
// flow-function library dispatch on.
type Kind int

const (
	KindOther Kind = iota
	KindCall
	KindLoad
	KindStore
	KindReturn
	KindAlloca
)

func (k Kind) String() string {
	switch k {
	case KindCall:
		return "call"
	case KindLoad:
		return "load"
	case KindStore:
		return "store"
	case KindReturn:
		return "return"
	case KindAlloca:
		return "alloca"
	default:
		return "other"
	}
}

// Classify maps an instruction onto the LLIR instruction kinds spec.md
// names. A *ssa.UnOp dereference (token.MUL) is a Load; everything else is
// KindOther except the cases below.
func (v *View) Classify(i Instruction) Kind {
	switch instr := i.(type) {
	case ssa.CallInstruction:
		return KindCall
	case *ssa.UnOp:
		if instr.Op == token.MUL {
			return KindLoad
		}
	case *ssa.Store:
		return KindStore
	case *ssa.Return:
		return KindReturn
	case *ssa.Alloc:
		return KindAlloca
	}
	return KindOther
}
