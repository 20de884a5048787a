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

// Command icfgo builds an interprocedural control-flow graph for a Go
// program and prints it as DOT or JSON. It is a thin, non-production
// harness over this module's packages, not a supported CLI surface.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/icfgo/icfgo/config"
	"github.com/icfgo/icfgo/export"
	"github.com/icfgo/icfgo/icfgbuilder"
	"github.com/icfgo/icfgo/icfgolog"
	"github.com/icfgo/icfgo/internal/formatutil"
	"github.com/icfgo/icfgo/internal/loader"
	"github.com/icfgo/icfgo/typehierarchy"
)

var (
	configFile = flag.String("config", "", "path to the icfgo YAML config file")
	jsonOut    = flag.Bool("json", false, "emit JSON instead of DOT")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, formatutil.Red(err.Error()))
		os.Exit(1)
	}
}

func run() error {
	if *configFile == "" || len(flag.Args()) == 0 {
		return fmt.Errorf("usage: icfgo -config FILE package...")
	}
	cfg, err := config.Load(*configFile)
	if err != nil {
		return err
	}

	log := icfgolog.New(icfgolog.Level(cfg.LogLevel))
	log.Infof("loading %v", flag.Args())
	view, err := loader.Load(flag.Args()...)
	if err != nil {
		return err
	}

	th := typehierarchy.NewHierarchy(view.Program())
	resolver, err := cfg.NewResolver(view, th)
	if err != nil {
		return err
	}

	builder := icfgbuilder.NewBuilder(icfgbuilder.Config{
		EntryPoints:     cfg.EntryPoints,
		Resolver:        resolver,
		Soundness:       cfg.BuilderSoundness(),
		IncludeGlobals:  cfg.IncludeGlobals,
		RegistrarSuffix: cfg.RegistrarSuffix,
		Logger:          log,
	})

	graph, warnings, err := builder.Build(view, th)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		log.Warnf("%s", w.String())
	}
	log.Infof("%d functions, %d warnings", len(graph.AllFunctions()), len(warnings))

	if *jsonOut {
		out, err := export.JSON(*configFile, graph)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(append(out, '\n'))
		return err
	}
	return export.DOT(os.Stdout, graph)
}
