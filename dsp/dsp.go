// This file is part of Sprocket.
//
// Sprocket is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Sprocket is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Sprocket.  If not, see <https://www.gnu.org/licenses/>.

package dsp

import (
	"fmt"
	"plugin"
	"strings"

	"github.com/sprocketfe/sprocket/curated"
	"github.com/sprocketfe/sprocket/environment"
	"github.com/sprocketfe/sprocket/logger"
)

// APIVersion is the version of the plugin interface.
const APIVersion = 1

// The symbol looked up in plugin shared objects.
const Symbol = "SprocketDSP"

// Sentinal errors.
const (
	LoadError       = "dsp: %v"
	VersionMismatch = "dsp: plugin API mismatch (sprocket: %d, plugin: %d)"
)

const builtinPrefix = "builtin:"

// Info is passed to the plugin's Init function.
type Info struct {
	InputRate  float64
	OutputRate float64
}

// Output is the result of processing. If Samples is nil the input samples
// should be used unchanged. If ShouldResample is false the samples are sent
// to the audio backend without resampling.
type Output struct {
	Samples        []float32
	Frames         int
	ShouldResample bool
}

// Processor is the interface to an initialised plugin. Samples are
// interleaved stereo.
type Processor interface {
	Process(samples []float32, frames int) Output
	Close()
}

// Eventer is implemented by processors that need to do work once per frame.
type Eventer interface {
	Events()
}

// Configurer is implemented by processors that react to the configure
// hotkey.
type Configurer interface {
	Config()
}

// Plugin describes a plugin.
type Plugin struct {
	Ident      string
	APIVersion int
	Init       func(info Info) (Processor, error)
}

// Instance is a loaded and initialised plugin.
type Instance struct {
	ident string
	proc  Processor
}

// Load the plugin at path and initialise it. Paths beginning with
// "builtin:" name one of the builtin plugins.
func Load(env *environment.Environment, path string, info Info) (*Instance, error) {
	var p *Plugin

	if name, ok := strings.CutPrefix(path, builtinPrefix); ok {
		b, ok := builtins[name]
		if !ok {
			return nil, curated.Errorf(LoadError, fmt.Sprintf("unknown builtin plugin (%s)", name))
		}
		p = b()
	} else {
		var err error
		p, err = open(path)
		if err != nil {
			return nil, err
		}
	}

	if p.APIVersion != APIVersion {
		return nil, curated.Errorf(VersionMismatch, APIVersion, p.APIVersion)
	}

	ident := p.Ident
	if ident == "" {
		ident = "Unknown"
	}
	logger.Logf(env, "dsp", "Loaded DSP plugin: \"%s\"", ident)

	if p.Init == nil {
		return nil, curated.Errorf(LoadError, "plugin has no Init function")
	}

	proc, err := p.Init(info)
	if err != nil {
		return nil, curated.Errorf(LoadError, err)
	}
	if proc == nil {
		return nil, curated.Errorf(LoadError, "failed to init DSP plugin")
	}

	return &Instance{
		ident: ident,
		proc:  proc,
	}, nil
}

func open(path string) (*Plugin, error) {
	so, err := plugin.Open(path)
	if err != nil {
		return nil, curated.Errorf(LoadError, err)
	}

	sym, err := so.Lookup(Symbol)
	if err != nil {
		return nil, curated.Errorf(LoadError, err)
	}

	switch s := sym.(type) {
	case *Plugin:
		return s, nil
	case func() *Plugin:
		if p := s(); p != nil {
			return p, nil
		}
		return nil, curated.Errorf(LoadError, "plugin init returned nothing")
	}

	return nil, curated.Errorf(LoadError, fmt.Sprintf("symbol %s has the wrong type (%T)", Symbol, sym))
}

// Ident returns the identifier of the plugin.
func (inst *Instance) Ident() string {
	return inst.ident
}

// Process implements the Processor interface.
func (inst *Instance) Process(samples []float32, frames int) Output {
	return inst.proc.Process(samples, frames)
}

// Events should be called once per frame.
func (inst *Instance) Events() {
	if e, ok := inst.proc.(Eventer); ok {
		e.Events()
	}
}

// CanConfig returns true if the plugin responds to Config().
func (inst *Instance) CanConfig() bool {
	_, ok := inst.proc.(Configurer)
	return ok
}

// Config forwards the configure hotkey to the plugin.
func (inst *Instance) Config() {
	if c, ok := inst.proc.(Configurer); ok {
		c.Config()
	}
}

// Close implements the Processor interface.
func (inst *Instance) Close() {
	inst.proc.Close()
}
