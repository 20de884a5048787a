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

// Package flowfunc is the reusable library of dataflow-fact transformers
// every edge of the exploded supergraph is built from: AutoKillTemporaries,
// MapFactsAlongsideCallSite, MapFactsToCallee, MapFactsToCaller,
// PropagateLoad, PropagateStore and StrongUpdateStore.
package flowfunc

import "github.com/icfgo/icfgo/ir"

// Fact is the dataflow fact domain every flow function here operates
// over. Every consumer in this program instantiates the library at
// ir.Value, so the types are monomorphic rather than generic over an
// arbitrary comparable — a generic would buy nothing with exactly one
// instantiation site.
type Fact = ir.Value

// FactSet is the successor-fact set one flow-function application
// produces for one input fact.
type FactSet map[Fact]struct{}

func empty() FactSet { return FactSet{} }

func singleton(f Fact) FactSet { return FactSet{f: struct{}{}} }

func pair(a, b Fact) FactSet { return FactSet{a: struct{}{}, b: struct{}{}} }

// Add inserts f into s and returns s.
func (s FactSet) Add(f Fact) FactSet {
	s[f] = struct{}{}
	return s
}

// Has reports whether f is present in s.
func (s FactSet) Has(f Fact) bool {
	_, ok := s[f]
	return ok
}

// Slice returns s's members in no particular order.
func (s FactSet) Slice() []Fact {
	out := make([]Fact, 0, len(s))
	for f := range s {
		out = append(out, f)
	}
	return out
}

// FlowFunction is the pure transformer D -> set<D> describing how one
// input fact produces successor facts at one edge of the exploded
// super-graph.
type FlowFunction interface {
	Compute(d Fact) FactSet
}

// VarargsMarker returns the SSA value standing in for "everywhere the
// original's __va_list_tag alloca would have appeared": the trailing
// slice-typed *ssa.Parameter go/ssa synthesizes for a variadic function's
// `...T` formal. It returns false when fn is not variadic, mirroring the
// "emit nothing for varargs" resolution of the missing-alloca case rather
// than ever returning an uninitialized value.
func VarargsMarker(fn ir.Function) (Fact, bool) {
	if fn == nil || fn.Signature == nil || !fn.Signature.Variadic() || len(fn.Params) == 0 {
		return nil, false
	}
	return fn.Params[len(fn.Params)-1], true
}
