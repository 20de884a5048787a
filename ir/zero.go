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
	"go/types"

	"golang.org/x/tools/go/ssa"
)

// Zero is the IFDS tautological fact: the distinguished dataflow fact that
// holds at every program point regardless of what the analysis tracks. It
// satisfies ssa.Value so it can flow through the same Fact/FactSet plumbing
// as real program values, but it never aliases anything an analyzed program
// actually produces.
var Zero Value = zeroValue{}

// IsZero reports whether v is the distinguished Zero Value.
func IsZero(v Value) bool {
	_, ok := v.(zeroValue)
	return ok
}

type zeroValue struct{}

func (zeroValue) String() string               { return "<zero>" }
func (zeroValue) Name() string                 { return "<zero>" }
func (zeroValue) Type() types.Type             { return zeroType{} }
func (zeroValue) Parent() *ssa.Function        { return nil }
func (zeroValue) Referrers() *[]ssa.Instruction { return nil }
func (zeroValue) Pos() token.Pos               { return token.NoPos }

// zeroType is a standalone types.Type so zeroValue satisfies ssa.Value
// without borrowing the type of any real program value.
type zeroType struct{}

func (zeroType) Underlying() types.Type { return zeroType{} }
func (zeroType) String() string         { return "<zero-type>" }
