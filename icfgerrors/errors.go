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

// Package icfgerrors is the error taxonomy shared by the config loader and
// the ICFG builder: ConfigurationError and MissingEntryPoint are ordinary
// errors a caller can inspect and recover from; ResolutionWarning is a
// non-fatal diagnostic returned alongside a built graph, never as an
// error; InternalInvariantViolation is fatal and is always raised as a
// panic, never returned.
package icfgerrors

import "fmt"

// ConfigurationError means the requested analysis cannot be run at all: an
// invalid resolver or soundness tag, IncludeGlobals against more than one
// loaded program, or similar. No graph is built.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// MissingEntryPoint means a named entry point resolved to no definition.
// It is logged as a warning and the named entry point is skipped; it does
// not abort the build.
type MissingEntryPoint struct {
	Name string
}

func (e *MissingEntryPoint) Error() string {
	return fmt.Sprintf("entry point %q not found", e.Name)
}

// ResolutionWarning means an indirect call site reached the builder's
// fixed point with zero resolved targets, or, for a Sound-mode resolver,
// that its candidate set for a site disagrees with the reference call
// graph. It is never returned as an error; it is collected into the
// []ResolutionWarning slice Build returns alongside a graph that is
// otherwise complete.
type ResolutionWarning struct {
	Site   string
	Reason string
}

func (w ResolutionWarning) String() string {
	return fmt.Sprintf("%s: %s", w.Site, w.Reason)
}

// InternalInvariantViolation means one of the builder's own preconditions
// was broken — e.g. a call site's containing function is missing from the
// vertex index during Phase 2. This can only mean the algorithm itself is
// broken, so it is fatal: Panic always panics with it, continuing would
// silently corrupt the graph under construction.
type InternalInvariantViolation struct {
	Reason string
}

func (e *InternalInvariantViolation) Error() string {
	return fmt.Sprintf("internal invariant violation: %s", e.Reason)
}

// Panic raises an InternalInvariantViolation carrying reason.
func Panic(reason string) {
	panic(&InternalInvariantViolation{Reason: reason})
}
