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

// Package graphutil adapts a callgraph.Graph to the graph.Iterator and
// Gonum graph.Graph interfaces so the cycle-detection and topological
// layering algorithms in this package (and gonum/graph/topo, from the
// export package) can operate on it without re-implementing traversal.
package graphutil

import (
	"sort"

	"gonum.org/v1/gonum/graph"

	"github.com/icfgo/icfgo/callgraph"
	"github.com/icfgo/icfgo/ir"
)

// CGraph is a snapshot adjacency view of a callgraph.Graph, with each
// function assigned a stable int64 id (its position in AllFunctions order).
type CGraph struct {
	order int

	// Graph is the call graph the CGraph was constructed from.
	Graph *callgraph.Graph

	// IDMap maps from node IDs to CNodes.
	IDMap map[int64]CNode

	// FuncID maps from a function back to its node ID.
	FuncID map[ir.Function]int64

	// Keys are all the node IDs, sorted.
	Keys []int64

	// Edges is an adjacency matrix: Edges[x][y] means there is a directed
	// edge between IDMap[x] and IDMap[y].
	Edges map[int64]map[int64]bool
}

// NewCallgraphIterator returns a CGraph view of cg, with node ids assigned
// by cg.AllFunctions() order.
func NewCallgraphIterator(cg *callgraph.Graph) CGraph {
	fns := cg.AllFunctions()
	n := len(fns)
	idmap := make(map[int64]CNode, n)
	funcID := make(map[ir.Function]int64, n)
	edges := make(map[int64]map[int64]bool, n)
	keys := make([]int64, n)

	for i, fn := range fns {
		id := int64(i)
		keys[i] = id
		funcID[fn] = id
		idmap[id] = CNode{Func: fn, id: id}
	}
	for i, fn := range fns {
		id := int64(i)
		edges[id] = map[int64]bool{}
		for _, e := range cg.OutEdges(fn) {
			if calleeID, ok := funcID[e.Callee]; ok {
				edges[id][calleeID] = true
			}
		}
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	return CGraph{
		order:  n,
		Graph:  cg,
		IDMap:  idmap,
		FuncID: funcID,
		Keys:   keys,
		Edges:  edges,
	}
}

// Subgraph returns the CGraph restricted to the nodes in include; only
// edges with both endpoints in include are kept. The node ids, Graph and
// IDMap stay consistent with original so ids remain comparable across
// subgraphs.
func Subgraph(original CGraph, include []int64) CGraph {
	idmap := make(map[int64]CNode, len(include))
	edges := make(map[int64]map[int64]bool, len(include))
	keys := make([]int64, len(include))

	for j, i := range include {
		keys[j] = i
		idmap[i] = original.IDMap[i]
	}

	for _, i := range include {
		edges[i] = map[int64]bool{}
		for e := range original.Edges[i] {
			if _, ok := idmap[e]; ok {
				edges[i][e] = true
			}
		}
	}

	return CGraph{
		order:  original.Order(),
		Graph:  original.Graph,
		IDMap:  idmap,
		FuncID: original.FuncID,
		Keys:   keys,
		Edges:  edges,
	}
}

// Order implements graph.Iterator.
func (c CGraph) Order() int {
	return c.order
}

// Visit implements graph.Iterator.
func (c CGraph) Visit(v int, do func(w int, c int64) (skip bool)) (aborted bool) {
	if _, ok := c.IDMap[int64(v)]; !ok {
		return false
	}
	for w := range c.Edges[int64(v)] {
		if do(int(w), 1) {
			return true
		}
	}
	return false
}

// Node implements gonum's graph.Graph.
func (c CGraph) Node(v int64) graph.Node {
	return c.IDMap[v]
}

// Nodes implements gonum's graph.Graph.
func (c CGraph) Nodes() graph.Nodes {
	keys := make([]int64, len(c.IDMap))
	i := 0
	for k := range c.IDMap {
		keys[i] = k
		i++
	}
	return &NodeSet{nodes: c.IDMap, ids: keys, cur: -1}
}

// From implements gonum's graph.Graph.
func (c CGraph) From(id int64) graph.Nodes {
	var keys []int64
	for out := range c.Edges[id] {
		keys = append(keys, out)
	}
	return &NodeSet{nodes: c.IDMap, ids: keys, cur: -1}
}

// To implements gonum's graph.Directed.
func (c CGraph) To(id int64) graph.Nodes {
	var keys []int64
	for from, outs := range c.Edges {
		if outs[id] {
			keys = append(keys, from)
		}
	}
	return &NodeSet{nodes: c.IDMap, ids: keys, cur: -1}
}

// HasEdgeBetween implements gonum's graph.Graph.
func (c CGraph) HasEdgeBetween(xid, yid int64) bool {
	return c.Edges[xid][yid] || c.Edges[yid][xid]
}

// HasEdgeFromTo implements gonum's graph.Directed, so CGraph can be
// handed directly to gonum/graph/topo.Sort for deterministic vertex
// numbering on export.
func (c CGraph) HasEdgeFromTo(uid, vid int64) bool {
	return c.Edges[uid][vid]
}

// Edge implements gonum's graph.Graph.
func (c CGraph) Edge(uid, vid int64) graph.Edge {
	if c.Edges[uid][vid] {
		return CEdge{from: c.IDMap[uid], to: c.IDMap[vid]}
	}
	return nil
}

// CNode is a function with its assigned node ID, implementing graph.Node.
type CNode struct {
	Func ir.Function
	id   int64
}

// ID returns the node's id.
func (n CNode) ID() int64 {
	return n.id
}

func (n CNode) String() string {
	if n.Func == nil {
		return ""
	}
	return n.Func.String()
}

// NodeSet implements graph.Nodes, an iterator over a set of nodes.
type NodeSet struct {
	nodes map[int64]CNode
	ids   []int64
	cur   int
}

// Next moves to the next node, returning false once exhausted.
func (ns *NodeSet) Next() bool {
	if ns.cur < len(ns.ids)-1 {
		ns.cur++
		return true
	}
	return false
}

// Len returns the number of remaining nodes.
func (ns *NodeSet) Len() int {
	return len(ns.ids) - ns.cur - 1
}

// Reset rewinds the iterator.
func (ns *NodeSet) Reset() {
	ns.cur = -1
}

// Node returns the current node.
func (ns *NodeSet) Node() graph.Node {
	return ns.nodes[ns.ids[ns.cur]]
}

// CEdge implements graph.Edge.
type CEdge struct {
	from CNode
	to   CNode
}

// From returns the edge's origin.
func (e CEdge) From() graph.Node { return e.from }

// To returns the edge's destination.
func (e CEdge) To() graph.Node { return e.to }

// ReversedEdge returns the edge with endpoints swapped.
func (e CEdge) ReversedEdge() graph.Edge { return CEdge{from: e.to, to: e.from} }
