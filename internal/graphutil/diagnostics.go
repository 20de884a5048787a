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

package graphutil

import "github.com/icfgo/icfgo/callgraph"

// Cycles returns every elementary cycle of cg, as a sequence of node ids in
// cg's NewCallgraphIterator numbering. It exists to support property tests
// that expect recursive call structure to produce real cycles.
func Cycles(cg *callgraph.Graph) [][]int64 {
	return FindAllElementaryCycles(NewCallgraphIterator(cg))
}

// Acyclic reports whether cg has no elementary cycles.
func Acyclic(cg *callgraph.Graph) bool {
	return len(Cycles(cg)) == 0
}
