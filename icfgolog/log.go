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

// Package icfgolog is the leveled logger every other package logs
// through. It is kept separate from config so config can accept a
// *Group at construction time without an import cycle.
package icfgolog

import (
	"io"
	"log"
)

// Level is a logging verbosity threshold.
type Level int

const (
	ErrLevel Level = iota + 1
	WarnLevel
	InfoLevel
	DebugLevel
	TraceLevel
)

// Group is a set of leveled loggers sharing one verbosity threshold.
// icfgbuilder.Logger is satisfied by *Group's Warnf method.
type Group struct {
	level Level
	trace *log.Logger
	debug *log.Logger
	info  *log.Logger
	warn  *log.Logger
	err   *log.Logger
}

// New returns a Group writing to log.Default()'s output, with log.Default()'s
// flags and one prefix per level, at the given level.
func New(level Level) *Group {
	out, flags := log.Default().Writer(), log.Default().Flags()
	return &Group{
		level: level,
		trace: log.New(out, "[TRACE] ", flags),
		debug: log.New(out, "[DEBUG] ", flags),
		info:  log.New(out, "[INFO] ", flags),
		warn:  log.New(out, "[WARN] ", flags),
		err:   log.New(out, "[ERROR] ", flags),
	}
}

// SetOutput redirects every level's logger to w.
func (g *Group) SetOutput(w io.Writer) {
	g.trace.SetOutput(w)
	g.debug.SetOutput(w)
	g.info.SetOutput(w)
	g.warn.SetOutput(w)
	g.err.SetOutput(w)
}

func (g *Group) Tracef(format string, v ...any) {
	if g.level >= TraceLevel {
		g.trace.Printf(format, v...)
	}
}

func (g *Group) Debugf(format string, v ...any) {
	if g.level >= DebugLevel {
		g.debug.Printf(format, v...)
	}
}

func (g *Group) Infof(format string, v ...any) {
	if g.level >= InfoLevel {
		g.info.Printf(format, v...)
	}
}

func (g *Group) Warnf(format string, v ...any) {
	if g.level >= WarnLevel {
		g.warn.Printf(format, v...)
	}
}

func (g *Group) Errorf(format string, v ...any) {
	if g.level >= ErrLevel {
		g.err.Printf(format, v...)
	}
}
