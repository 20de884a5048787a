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

// Package pointsto provides the points-to oracle the OTF call resolver
// consults: a thin abstraction over golang.org/x/tools/go/pointer so the
// resolver never has to know whether it is running with real Andersen-style
// points-to information or none at all.
package pointsto

import (
	"golang.org/x/tools/go/pointer"

	"github.com/icfgo/icfgo/ir"
)

// Object is an abstract memory object a pointer may point to: an
// allocation site, a global, or a constant, identified the way
// golang.org/x/tools/go/pointer identifies labels.
type Object struct {
	label *pointer.Label
}

func (o Object) String() string {
	if o.label == nil {
		return "<nil>"
	}
	return o.label.String()
}

// Value returns the ssa.Value backing this object's allocation site, if it
// has one (globals and some synthetic objects do not).
func (o Object) Value() ir.Value {
	if o.label == nil {
		return nil
	}
	if v, ok := o.label.Value().(ir.Value); ok {
		return v
	}
	return nil
}

// Oracle answers points-to queries for values the resolver encounters
// during ICFG construction.
type Oracle interface {
	// PointsTo returns the objects v may point to, or nil if v is not a
	// pointer-like value or the oracle has no information about it.
	PointsTo(v ir.Value) []Object
}

// NoOracle is an Oracle with no points-to information: it always returns
// nil. The NoResolve, CHA, RTA, DTA and VTA resolvers hold no Oracle at all.
var NoOracle Oracle = noOracle{}

type noOracle struct{}

func (noOracle) PointsTo(ir.Value) []Object { return nil }
