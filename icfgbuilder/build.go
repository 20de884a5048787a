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

package icfgbuilder

import (
	"github.com/icfgo/icfgo/callgraph"
	"github.com/icfgo/icfgo/globalctor"
	"github.com/icfgo/icfgo/icfgerrors"
	"github.com/icfgo/icfgo/ir"
	"github.com/icfgo/icfgo/typehierarchy"
)

// Builder drives one Config's resolver to fixed point over one View.
type Builder struct {
	cfg Config
}

// NewBuilder returns a Builder for cfg. Build validates cfg on first use;
// NewBuilder itself never fails.
func NewBuilder(cfg Config) *Builder {
	return &Builder{cfg: cfg}
}

// Build runs the two-phase fixed-point algorithm: Phase 1 walks every
// function reachable from the seed set, recording direct edges and
// recording every indirect or invoke-mode call site it finds without
// resolving it. Phase 2 revisits the recorded indirect sites, asking the
// resolver for virtual or function-pointer targets, and requeues any
// newly discovered callee. The two phases alternate until neither adds
// anything.
func (b *Builder) Build(view *ir.View, th *typehierarchy.Hierarchy) (*callgraph.Graph, []icfgerrors.ResolutionWarning, error) {
	if err := b.validate(); err != nil {
		return nil, nil, err
	}

	seed, missing, err := b.seedFunctions(view)
	if err != nil {
		return nil, nil, err
	}
	for _, name := range missing {
		b.cfg.logger().Warnf("%s", (&icfgerrors.MissingEntryPoint{Name: name}).Error())
	}

	g := callgraph.New()
	visited := map[ir.Function]bool{}
	indirectSites := map[ir.Instruction]int{}
	worklist := append([]ir.Function{}, seed...)
	for _, fn := range seed {
		g.AddVertex(fn)
	}

	for {
		changed := b.phase1(view, g, visited, indirectSites, &worklist)
		if b.phase2(view, th, g, indirectSites, &worklist) {
			changed = true
		}
		if !changed {
			break
		}
	}

	var warnings []icfgerrors.ResolutionWarning
	for site, n := range indirectSites {
		if n == 0 {
			warnings = append(warnings, icfgerrors.ResolutionWarning{
				Site:   site.String(),
				Reason: "indirect call site resolved to zero targets at fixed point",
			})
			b.cfg.logger().Warnf("%s", warnings[len(warnings)-1].String())
		}
	}
	if sr, ok := b.cfg.Resolver.(soundnessReporter); ok {
		for _, w := range sr.SoundnessWarnings() {
			warnings = append(warnings, w)
			b.cfg.logger().Warnf("%s", w.String())
		}
	}
	return g, warnings, nil
}

// soundnessReporter is implemented by the Sound-mode CHA/RTA/VTA
// resolvers (see callresolver.NewSoundCHA and its siblings); Build
// type-asserts for it rather than widening the Resolver interface, since
// NoResolve, DTA and OTF have nothing to report here.
type soundnessReporter interface {
	SoundnessWarnings() []icfgerrors.ResolutionWarning
}

func (b *Builder) validate() error {
	if b.cfg.Resolver == nil {
		return &icfgerrors.ConfigurationError{Reason: "resolver is required"}
	}
	switch b.cfg.Soundness {
	case Unsound, Soundy, Sound:
	default:
		return &icfgerrors.ConfigurationError{Reason: "unrecognized soundness tag"}
	}
	if b.cfg.IncludeGlobals && len(b.cfg.ExtraWorkspaces) > 0 {
		return &icfgerrors.ConfigurationError{
			Reason: "IncludeGlobals requires exactly one loaded workspace",
		}
	}
	return nil
}

func (b *Builder) seedFunctions(view *ir.View) ([]ir.Function, []string, error) {
	entryFns, missing := view.Functions(b.cfg.EntryPoints)
	if !b.cfg.IncludeGlobals {
		return entryFns, missing, nil
	}
	plan, err := globalctor.Synthesize([]*ir.View{view}, entryFns, b.cfg.RegistrarSuffix)
	if err != nil {
		return nil, missing, err
	}
	return plan.Seed(), missing, nil
}

// phase1 pops functions from worklist (as a LIFO stack) until empty,
// walking each one's instructions exactly once: direct and resolvable
// pointer-cast-wrapped calls get edges immediately, indirect and
// invoke-mode sites are recorded in indirectSites for Phase 2, and every
// non-call instruction is handed to the resolver's OtherInst hook.
func (b *Builder) phase1(view *ir.View, g *callgraph.Graph, visited map[ir.Function]bool, indirectSites map[ir.Instruction]int, worklist *[]ir.Function) bool {
	changed := false
	for len(*worklist) > 0 {
		n := len(*worklist) - 1
		fn := (*worklist)[n]
		*worklist = (*worklist)[:n]

		if fn == nil || visited[fn] || view.IsDeclaration(fn) {
			continue
		}
		visited[fn] = true
		g.AddVertex(fn)

		for _, instr := range view.Instructions(fn) {
			cs, ok := view.AbstractCallSite(instr)
			if !ok {
				b.cfg.Resolver.OtherInst(instr)
				continue
			}
			b.cfg.Resolver.PreCall(cs)

			if targets := b.cfg.Resolver.ResolveDirect(cs); targets != nil {
				b.cfg.Resolver.HandlePossibleTargets(cs, targets)
				for _, t := range targets {
					if t == nil {
						continue
					}
					g.AddVertex(t)
					if g.AddEdge(fn, t, instr, callgraph.Direct) {
						changed = true
					}
					*worklist = append(*worklist, t)
				}
			} else if _, seen := indirectSites[instr]; !seen {
				indirectSites[instr] = 0
				changed = true
			}

			b.cfg.Resolver.PostCall(cs)
		}
	}
	return changed
}

// phase2 re-resolves every recorded indirect call site. A site whose
// resolved target count grew since last time contributes its new targets
// as edges, requeues the new callees, and marks the pass as not yet at
// fixed point.
func (b *Builder) phase2(view *ir.View, th *typehierarchy.Hierarchy, g *callgraph.Graph, indirectSites map[ir.Instruction]int, worklist *[]ir.Function) bool {
	changed := false
	for site, n := range indirectSites {
		cs, ok := view.AbstractCallSite(site)
		if !ok {
			icfgerrors.Panic("indirect site is not a call instruction")
		}

		virtual := th.IsVirtualCall(cs)
		var targets []ir.Function
		if virtual {
			targets = b.cfg.Resolver.ResolveVirtual(cs)
		} else {
			targets = b.cfg.Resolver.ResolveFunctionPointer(cs)
		}
		if len(targets) <= n {
			continue
		}
		indirectSites[site] = len(targets)
		changed = true

		caller := site.Parent()
		if caller == nil || !g.HasVertex(caller) {
			icfgerrors.Panic("indirect call site's containing function is not in the vertex index")
		}

		existing := map[ir.Function]bool{}
		for _, e := range g.OutEdges(caller) {
			if e.Site == site {
				existing[e.Callee] = true
			}
		}
		var delta []ir.Function
		for _, t := range targets {
			if t != nil && !existing[t] {
				delta = append(delta, t)
			}
		}
		if len(delta) == 0 {
			continue
		}
		b.cfg.Resolver.HandlePossibleTargets(cs, delta)
		kind := callgraph.Indirect
		if virtual {
			kind = callgraph.Virtual
		}
		for _, t := range delta {
			g.AddVertex(t)
			g.AddEdge(caller, t, site, kind)
			*worklist = append(*worklist, t)
		}
	}
	return changed
}
