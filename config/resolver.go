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

package config

import (
	"fmt"

	"github.com/icfgo/icfgo/callresolver"
	"github.com/icfgo/icfgo/icfgbuilder"
	"github.com/icfgo/icfgo/icfgerrors"
	"github.com/icfgo/icfgo/ir"
	"github.com/icfgo/icfgo/pointsto"
	"github.com/icfgo/icfgo/typehierarchy"
)

// BuilderSoundness maps cfg's on-disk soundness tag onto icfgbuilder's
// enum.
func (c *Config) BuilderSoundness() icfgbuilder.Soundness {
	switch c.Soundness {
	case Sound:
		return icfgbuilder.Sound
	case Soundy:
		return icfgbuilder.Soundy
	default:
		return icfgbuilder.Unsound
	}
}

// NewResolver instantiates the callresolver.Resolver cfg names, wiring it
// to view and th (and, for OTF, a freshly constructed points-to oracle).
func (c *Config) NewResolver(view *ir.View, th *typehierarchy.Hierarchy) (callresolver.Resolver, error) {
	switch c.Resolver {
	case NoResolve:
		return callresolver.NewNoResolve(view), nil
	case CHA:
		if c.Soundness == Sound {
			return callresolver.NewSoundCHA(view, th), nil
		}
		return callresolver.NewCHA(view, th), nil
	case RTA:
		if c.Soundness == Sound {
			return callresolver.NewSoundRTA(view, th), nil
		}
		return callresolver.NewRTA(view, th), nil
	case DTA:
		return callresolver.NewDTA(view, th), nil
	case VTA:
		if c.Soundness == Sound {
			return callresolver.NewSoundVTA(view, th), nil
		}
		return callresolver.NewVTA(view, th), nil
	case OTF:
		oracle, err := pointsto.NewAndersenOracle(view, nil)
		if err != nil {
			return nil, &icfgerrors.ConfigurationError{Reason: fmt.Sprintf("building points-to oracle: %v", err)}
		}
		return callresolver.NewOTF(view, th, oracle), nil
	default:
		return nil, &icfgerrors.ConfigurationError{Reason: fmt.Sprintf("unrecognized resolver %q", c.Resolver)}
	}
}
