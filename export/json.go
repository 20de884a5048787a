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

package export

import (
	"encoding/json"

	"github.com/icfgo/icfgo/callgraph"
)

// JSON renders g as an object keyed by id, whose value maps each caller
// function's name to the array of its callee function names — one entry
// per edge, so a call site that fans out to several targets (or a
// target called more than once) produces repeated names rather than a
// deduplicated set.
func JSON(id string, g *callgraph.Graph) ([]byte, error) {
	edges := map[string][]string{}
	for _, fn := range g.AllFunctions() {
		callerName := fn.String()
		if _, ok := edges[callerName]; !ok {
			edges[callerName] = nil
		}
		for _, e := range g.OutEdges(fn) {
			edges[callerName] = append(edges[callerName], e.Callee.String())
		}
	}
	return json.Marshal(map[string]map[string][]string{id: edges})
}
