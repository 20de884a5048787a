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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/icfgo/icfgo/config"
	"github.com/icfgo/icfgo/icfgbuilder"
	"github.com/icfgo/icfgo/internal/icfgtest"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "icfgo.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadDefaultsSoundnessAndLogLevel(t *testing.T) {
	path := writeConfig(t, "resolver: cha\nentry-points: [main]\n")
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Soundness != config.Unsound {
		t.Fatalf("expected soundness to default to unsound, got %q", cfg.Soundness)
	}
	if cfg.BuilderSoundness() != icfgbuilder.Unsound {
		t.Fatalf("expected BuilderSoundness to map the default onto icfgbuilder.Unsound")
	}
	if cfg.SourceFile() != path {
		t.Fatalf("expected SourceFile to report %s, got %s", path, cfg.SourceFile())
	}
}

func TestLoadRejectsUnrecognizedResolver(t *testing.T) {
	path := writeConfig(t, "resolver: made-up\nentry-points: [main]\n")
	if _, err := config.Load(path); err == nil {
		t.Fatalf("expected a ConfigurationError for an unrecognized resolver")
	}
}

func TestLoadRejectsNoEntryPoints(t *testing.T) {
	path := writeConfig(t, "resolver: cha\n")
	if _, err := config.Load(path); err == nil {
		t.Fatalf("expected a ConfigurationError when entry-points is empty")
	}
}

func TestLoadRejectsUnrecognizedSoundness(t *testing.T) {
	path := writeConfig(t, "resolver: cha\nsoundness: extra-sound\nentry-points: [main]\n")
	if _, err := config.Load(path); err == nil {
		t.Fatalf("expected a ConfigurationError for an unrecognized soundness tag")
	}
}

func TestLoadFailsOnMissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml")); err == nil {
		t.Fatalf("expected a ConfigurationError for a missing file")
	}
}

func TestNewResolverInstantiatesEveryResolverName(t *testing.T) {
	view, err := icfgtest.LoadDir(filepath.Join("..", "testfixtures", "recursive"))
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	for _, name := range []config.ResolverName{config.NoResolve, config.CHA, config.RTA, config.DTA, config.VTA, config.OTF} {
		cfg := &config.Config{Resolver: name}
		r, err := cfg.NewResolver(view, nil)
		if err != nil {
			t.Fatalf("NewResolver(%s): %v", name, err)
		}
		if r == nil {
			t.Fatalf("NewResolver(%s) returned a nil Resolver", name)
		}
	}
}

func TestNewResolverRejectsUnrecognizedName(t *testing.T) {
	view, err := icfgtest.LoadDir(filepath.Join("..", "testfixtures", "recursive"))
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	cfg := &config.Config{Resolver: config.ResolverName("bogus")}
	if _, err := cfg.NewResolver(view, nil); err == nil {
		t.Fatalf("expected a ConfigurationError for an unrecognized resolver name")
	}
}
