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

package pointsto_test

import (
	"path/filepath"
	"testing"

	"github.com/icfgo/icfgo/internal/icfgtest"
	"github.com/icfgo/icfgo/ir"
	"github.com/icfgo/icfgo/pointsto"
)

func TestNewAndersenOracleSeedsFromInstructionOperands(t *testing.T) {
	view, err := icfgtest.LoadDir(filepath.Join("..", "testfixtures", "indirect"))
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	oracle, err := pointsto.NewAndersenOracle(view, nil)
	if err != nil {
		t.Fatalf("NewAndersenOracle: %v", err)
	}

	add, ok := view.FunctionByName("add")
	if !ok {
		t.Fatalf("expected to find add")
	}
	if got := oracle.PointsTo(add); got == nil {
		t.Fatalf("expected add to already be a registered query, since it appears as an instruction operand in main")
	}
}

func TestUpdateWidensTheQuerySetForSubsequentSolve(t *testing.T) {
	view, err := icfgtest.LoadDir(filepath.Join("..", "testfixtures", "indirect"))
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	oracle, err := pointsto.NewAndersenOracle(view, func(ir.Function) bool { return false })
	if err != nil {
		t.Fatalf("NewAndersenOracle: %v", err)
	}

	add, ok := view.FunctionByName("add")
	if !ok {
		t.Fatalf("expected to find add")
	}
	if got := oracle.PointsTo(add); got != nil {
		t.Fatalf("expected add to be unseeded before Update, got %v", got)
	}

	oracle.Update(add)
	if err := oracle.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if got := oracle.PointsTo(add); got == nil {
		t.Fatalf("expected add to be a registered query once Update has widened the set and Solve has re-run")
	}
}

func TestNoOracleAlwaysReturnsNil(t *testing.T) {
	view, err := icfgtest.LoadDir(filepath.Join("..", "testfixtures", "indirect"))
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	add, _ := view.FunctionByName("add")
	if got := pointsto.NoOracle.PointsTo(add); got != nil {
		t.Fatalf("expected NoOracle to never return points-to information, got %v", got)
	}
}
