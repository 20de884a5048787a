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

package ir_test

import (
	"testing"

	"github.com/icfgo/icfgo/ir"
)

func TestClassify(t *testing.T) {
	view := load(t, "indirect")
	fn, ok := view.FunctionByName("apply")
	if !ok {
		t.Fatalf("expected to find apply")
	}

	var sawCall bool
	for _, instr := range view.Instructions(fn) {
		if view.Classify(instr) == ir.KindCall {
			sawCall = true
		}
	}
	if !sawCall {
		t.Fatalf("apply calls f, expected at least one KindCall instruction")
	}
}
