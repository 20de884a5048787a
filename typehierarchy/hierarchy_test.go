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

package typehierarchy_test

import (
	"go/types"
	"path/filepath"
	"testing"

	"github.com/icfgo/icfgo/internal/icfgtest"
	"github.com/icfgo/icfgo/typehierarchy"
)

func TestImplementationsAndVirtualCallRecognition(t *testing.T) {
	view, err := icfgtest.LoadDir(filepath.Join("..", "testfixtures", "virtual"))
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	th := typehierarchy.NewHierarchy(view.Program())

	announce, ok := view.FunctionByName("announce")
	if !ok {
		t.Fatalf("expected to find announce")
	}

	var found bool
	for _, instr := range view.Instructions(announce) {
		cs, ok := view.AbstractCallSite(instr)
		if !ok || !cs.IsInvoke() {
			continue
		}
		found = true
		if !th.IsVirtualCall(cs) {
			t.Fatalf("Speak() dispatch through the Animal receiver must be recognized as virtual")
		}

		recv, ok := cs.Receiver()
		if !ok {
			t.Fatalf("expected an invoke-mode receiver")
		}
		iface, ok := recv.Type().Underlying().(*types.Interface)
		if !ok {
			t.Fatalf("expected the receiver's static type to be an interface")
		}
		impls := th.Implementations(iface, cs.MethodName())
		if len(impls) != 2 {
			t.Fatalf("expected Dog.Speak and Cat.Speak as implementations, got %d", len(impls))
		}
	}
	if !found {
		t.Fatalf("expected announce to contain an invoke-mode call site")
	}
}
