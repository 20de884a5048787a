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

// Package config loads the YAML file describing one ICFG build: which
// resolver strategy to run, how sound it should be, which entry points
// to seed, and whether to fold in global ctor/dtor synthesis.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/icfgo/icfgo/icfgerrors"
	"github.com/icfgo/icfgo/icfgolog"
)

// ResolverName names one of the callresolver package's strategies.
type ResolverName string

const (
	NoResolve ResolverName = "no-resolve"
	CHA       ResolverName = "cha"
	RTA       ResolverName = "rta"
	DTA       ResolverName = "dta"
	VTA       ResolverName = "vta"
	OTF       ResolverName = "otf"
)

func (r ResolverName) valid() bool {
	switch r {
	case NoResolve, CHA, RTA, DTA, VTA, OTF:
		return true
	default:
		return false
	}
}

// SoundnessName names one of icfgbuilder's Soundness tags.
type SoundnessName string

const (
	Unsound SoundnessName = "unsound"
	Soundy  SoundnessName = "soundy"
	Sound   SoundnessName = "sound"
)

func (s SoundnessName) valid() bool {
	switch s {
	case Unsound, Soundy, Sound, "":
		return true
	default:
		return false
	}
}

// Config is the on-disk shape of an ICFG build request. Unlike the
// teacher's own config loader, which calls os.Exit on a bad file, Load
// always returns a *icfgerrors.ConfigurationError instead: this package
// has no CLI of its own to exit from.
type Config struct {
	// Resolver selects the call-resolution strategy.
	Resolver ResolverName `yaml:"resolver"`

	// Soundness is forwarded to the resolver cross-check in Sound mode.
	// Defaults to "unsound" when empty.
	Soundness SoundnessName `yaml:"soundness"`

	// EntryPoints lists entry-point function names, or ["__ALL__"] to
	// mean every defined, named function.
	EntryPoints []string `yaml:"entry-points"`

	// IncludeGlobals folds package init functions and registered
	// shutdown hooks into the seed set.
	IncludeGlobals bool `yaml:"include-globals"`

	// RegistrarSuffix overrides globalctor.DefaultRegistrarSuffix.
	RegistrarSuffix string `yaml:"registrar-suffix"`

	// LogLevel is one of icfgolog's Level values; 0 defaults to Info.
	LogLevel int `yaml:"log-level"`

	sourceFile string
}

// Load reads and validates a YAML config file at filename.
func Load(filename string) (*Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, &icfgerrors.ConfigurationError{Reason: fmt.Sprintf("reading %s: %v", filename, err)}
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, &icfgerrors.ConfigurationError{Reason: fmt.Sprintf("parsing %s: %v", filename, err)}
	}
	cfg.sourceFile = filename

	if cfg.LogLevel == 0 {
		cfg.LogLevel = int(icfgolog.InfoLevel)
	}
	if cfg.Soundness == "" {
		cfg.Soundness = Unsound
	}

	if !cfg.Resolver.valid() {
		return nil, &icfgerrors.ConfigurationError{
			Reason: fmt.Sprintf("unrecognized resolver %q in %s", cfg.Resolver, filename),
		}
	}
	if !cfg.Soundness.valid() {
		return nil, &icfgerrors.ConfigurationError{
			Reason: fmt.Sprintf("unrecognized soundness %q in %s", cfg.Soundness, filename),
		}
	}
	if len(cfg.EntryPoints) == 0 {
		return nil, &icfgerrors.ConfigurationError{
			Reason: fmt.Sprintf("%s declares no entry-points", filename),
		}
	}
	return cfg, nil
}

// SourceFile returns the path Load read cfg from.
func (c *Config) SourceFile() string {
	return c.sourceFile
}
