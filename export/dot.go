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
	"fmt"
	"io"
	"strings"

	"github.com/icfgo/icfgo/callgraph"
)

// DOT writes g as a Graphviz digraph: one node per vertex labeled with
// the function's escaped name, one directed edge per graph edge labeled
// with a stable string rendering of its call-site instruction.
func DOT(w io.Writer, g *callgraph.Graph) error {
	ids := vertexNumbering(g)

	if _, err := fmt.Fprintln(w, "digraph icfg {"); err != nil {
		return err
	}
	for _, fn := range g.AllFunctions() {
		if _, err := fmt.Fprintf(w, "\tn%d [label=%s];\n", ids[fn], quote(fn.String())); err != nil {
			return err
		}
	}
	for _, fn := range g.AllFunctions() {
		for _, e := range g.OutEdges(fn) {
			if _, err := fmt.Fprintf(w, "\tn%d -> n%d [label=%s];\n", ids[e.Caller], ids[e.Callee], quote(e.Site.String())); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

// quote renders s as a DOT/Graphviz double-quoted string literal.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString("\\n")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
