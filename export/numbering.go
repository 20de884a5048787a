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

// Package export renders a built callgraph.Graph as DOT or as the
// configured JSON wire shape.
package export

import (
	"gonum.org/v1/gonum/graph/topo"

	"github.com/icfgo/icfgo/callgraph"
	"github.com/icfgo/icfgo/internal/graphutil"
	"github.com/icfgo/icfgo/ir"
)

// vertexNumbering assigns every vertex a stable, deterministic small
// integer, used as the DOT node id. It tries a topological layering
// first so callers sort roughly before callees; call graphs are
// routinely cyclic (recursion, mutual recursion), in which case
// topo.Sort reports Unorderable and numbering falls back to the graph's
// own deterministic insertion order instead.
func vertexNumbering(g *callgraph.Graph) map[ir.Function]int {
	cg := graphutil.NewCallgraphIterator(g)
	ids := map[ir.Function]int{}

	if order, err := topo.SortStabilized(cg, nil); err == nil {
		for i, n := range order {
			if cn, ok := n.(graphutil.CNode); ok {
				ids[cn.Func] = i
			}
		}
		return ids
	}

	for i, fn := range g.AllFunctions() {
		ids[fn] = i
	}
	return ids
}
