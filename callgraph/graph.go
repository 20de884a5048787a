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

// Package callgraph is the call graph the ICFG builder constructs: a
// directed multigraph whose vertices are functions and whose edges are
// keyed by call-site identity, so a single call site fanning out to several
// targets (an indirect or virtual call) produces several parallel edges
// rather than collapsing into one.
package callgraph

import "github.com/icfgo/icfgo/ir"

// EdgeKind records how the target of an edge was determined, so later
// queries (IsIndirectCall, IsVirtualCall) don't need to re-derive it.
type EdgeKind int

const (
	Direct EdgeKind = iota
	Indirect
	Virtual
)

func (k EdgeKind) String() string {
	switch k {
	case Indirect:
		return "indirect"
	case Virtual:
		return "virtual"
	default:
		return "direct"
	}
}

// Edge is one (caller, callee, call site) triple. Graph never merges two
// edges that differ in any of the three fields.
type Edge struct {
	Caller ir.Function
	Callee ir.Function
	Site   ir.Instruction
	Kind   EdgeKind
}

type vertex struct {
	fn  ir.Function
	out []Edge
	in  []Edge
}

// Graph is the call graph under (and after) construction. The zero value is
// not usable; use New.
type Graph struct {
	vertices map[ir.Function]*vertex
	order    []ir.Function // insertion order, for deterministic iteration
	edgeSeen map[edgeKey]bool
}

type edgeKey struct {
	caller, callee ir.Function
	site           ir.Instruction
}

// New returns an empty call graph.
func New() *Graph {
	return &Graph{
		vertices: map[ir.Function]*vertex{},
		edgeSeen: map[edgeKey]bool{},
	}
}

// AddVertex ensures fn has a vertex in the graph, even if it has (so far) no
// edges. Idempotent.
func (g *Graph) AddVertex(fn ir.Function) {
	if fn == nil {
		return
	}
	if _, ok := g.vertices[fn]; ok {
		return
	}
	g.vertices[fn] = &vertex{fn: fn}
	g.order = append(g.order, fn)
}

// AddEdge records a (caller, callee, site) edge, adding vertices for caller
// and callee if needed. It returns false if this exact triple was already
// present (parallel edges are allowed; exact duplicates are not).
func (g *Graph) AddEdge(caller, callee ir.Function, site ir.Instruction, kind EdgeKind) bool {
	key := edgeKey{caller: caller, callee: callee, site: site}
	if g.edgeSeen[key] {
		return false
	}
	g.edgeSeen[key] = true

	g.AddVertex(caller)
	g.AddVertex(callee)
	e := Edge{Caller: caller, Callee: callee, Site: site, Kind: kind}
	g.vertices[caller].out = append(g.vertices[caller].out, e)
	g.vertices[callee].in = append(g.vertices[callee].in, e)
	return true
}

// HasVertex reports whether fn has been added to the graph.
func (g *Graph) HasVertex(fn ir.Function) bool {
	_, ok := g.vertices[fn]
	return ok
}

// AllFunctions returns every function with a vertex in the graph, in the
// order it was first added.
func (g *Graph) AllFunctions() []ir.Function {
	out := make([]ir.Function, len(g.order))
	copy(out, g.order)
	return out
}

// OutEdges returns every outgoing edge of fn, in insertion order.
func (g *Graph) OutEdges(fn ir.Function) []Edge {
	v, ok := g.vertices[fn]
	if !ok {
		return nil
	}
	out := make([]Edge, len(v.out))
	copy(out, v.out)
	return out
}

// InEdges returns every incoming edge of fn, in insertion order.
func (g *Graph) InEdges(fn ir.Function) []Edge {
	v, ok := g.vertices[fn]
	if !ok {
		return nil
	}
	out := make([]Edge, len(v.in))
	copy(out, v.in)
	return out
}

// CalleesOf returns the distinct functions fn calls, in first-seen order.
func (g *Graph) CalleesOf(fn ir.Function) []ir.Function {
	var out []ir.Function
	seen := map[ir.Function]bool{}
	for _, e := range g.OutEdges(fn) {
		if !seen[e.Callee] {
			seen[e.Callee] = true
			out = append(out, e.Callee)
		}
	}
	return out
}

// CallersOf returns the distinct functions that call fn, in first-seen order.
func (g *Graph) CallersOf(fn ir.Function) []ir.Function {
	var out []ir.Function
	seen := map[ir.Function]bool{}
	for _, e := range g.InEdges(fn) {
		if !seen[e.Caller] {
			seen[e.Caller] = true
			out = append(out, e.Caller)
		}
	}
	return out
}

// CallsFromWithin returns every call instruction in fn, found by direct
// iteration of its body. Like ReturnSitesOf, this is a structural property
// of the underlying IR, not the graph: a call site that reached the
// builder's fixed point with zero resolved targets (a ResolutionWarning,
// not a dropped site) still appears here, which CallsFromWithin cannot
// guarantee if it instead walked Graph's recorded edges.
func CallsFromWithin(view *ir.View, fn ir.Function) []ir.Instruction {
	var out []ir.Instruction
	for _, instr := range view.Instructions(fn) {
		if _, ok := view.AbstractCallSite(instr); ok {
			out = append(out, instr)
		}
	}
	return out
}

// ReturnSitesOf returns the instruction(s) control returns to after site
// completes: the instruction immediately following site in its basic
// block. This is a structural property of the underlying IR, not the
// graph, so it is available even for call sites with no recorded edges.
func ReturnSitesOf(site ir.Instruction) []ir.Instruction {
	block := site.Block()
	if block == nil {
		return nil
	}
	for i, instr := range block.Instrs {
		if instr == site {
			if i+1 < len(block.Instrs) {
				return []ir.Instruction{block.Instrs[i+1]}
			}
			return nil
		}
	}
	return nil
}

// IsIndirectCall reports whether site has at least one recorded edge
// resolved as an indirect (function-pointer) call.
func (g *Graph) IsIndirectCall(site ir.Instruction) bool {
	return g.siteHasKind(site, Indirect)
}

// IsVirtualCall reports whether site has at least one recorded edge
// resolved via virtual (interface-method) dispatch.
func (g *Graph) IsVirtualCall(site ir.Instruction) bool {
	return g.siteHasKind(site, Virtual)
}

func (g *Graph) siteHasKind(site ir.Instruction, kind EdgeKind) bool {
	for _, v := range g.vertices {
		for _, e := range v.out {
			if e.Site == site && e.Kind == kind {
				return true
			}
		}
	}
	return false
}
