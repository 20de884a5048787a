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

// Package icfgbuilder is the fixed-point driver that grows a function
// worklist, walks each function, asks a callresolver.Resolver about
// indirect calls, and records edges into a callgraph.Graph.
package icfgbuilder

import (
	"github.com/icfgo/icfgo/callresolver"
	"github.com/icfgo/icfgo/ir"
)

// Soundness is a hint forwarded to the resolver; the builder itself never
// branches on it. config.NewResolver uses Sound to decide whether to
// construct a CHA/RTA/VTA resolver that cross-checks its own candidate
// sets against a golang.org/x/tools/go/callgraph reference graph (see
// callresolver.NewSoundCHA/NewSoundRTA/NewSoundVTA).
type Soundness int

const (
	Unsound Soundness = iota
	Soundy
	Sound
)

func (s Soundness) String() string {
	switch s {
	case Soundy:
		return "soundy"
	case Sound:
		return "sound"
	default:
		return "unsound"
	}
}

// Logger is the minimal interface the builder needs to report
// MissingEntryPoint and ResolutionWarning diagnostics. icfgolog.Group
// satisfies it.
type Logger interface {
	Warnf(format string, v ...any)
}

type noopLogger struct{}

func (noopLogger) Warnf(string, ...any) {}

// Config configures one Build call.
type Config struct {
	// EntryPoints is the list of entry-point function names, or a list
	// containing ir.AllEntryPoints to mean "every defined, named
	// function".
	EntryPoints []string

	// Resolver is the call-resolution strategy. Required.
	Resolver callresolver.Resolver

	// Soundness changes no resolution behavior in the builder itself.
	// Build does propagate any SoundnessWarnings a Resolver chooses to
	// expose (see config.NewResolver) into its returned warning slice,
	// alongside the zero-target ResolutionWarnings it collects on its
	// own.
	Soundness Soundness

	// IncludeGlobals, when true, seeds the worklist with every package
	// init function and the program's registered shutdown hooks, ahead
	// of and behind the requested entry points, per globalctor.
	IncludeGlobals bool

	// ExtraWorkspaces must be empty unless IncludeGlobals is false:
	// global-ctor synthesis is only defined for exactly one loaded
	// workspace (the view passed to Build). A non-empty value here with
	// IncludeGlobals set is a ConfigurationError.
	ExtraWorkspaces []*ir.View

	// RegistrarSuffix overrides globalctor.DefaultRegistrarSuffix.
	RegistrarSuffix string

	// Logger receives MissingEntryPoint and ResolutionWarning messages.
	// Defaults to a no-op logger.
	Logger Logger
}

func (c Config) logger() Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return noopLogger{}
}
