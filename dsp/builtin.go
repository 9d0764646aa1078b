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
	"sort"
)

var builtins = map[string]func() *Plugin{
	"volume": func() *Plugin {
		return &Plugin{
			Ident:      "Volume",
			APIVersion: APIVersion,
			Init: func(_ Info) (Processor, error) {
				return &volume{gain: 1.0, target: 1.0}, nil
			},
		}
	},
	"mono": func() *Plugin {
		return &Plugin{
			Ident:      "Mono",
			APIVersion: APIVersion,
			Init: func(_ Info) (Processor, error) {
				return &mono{}, nil
			},
		}
	},
}

// Builtins returns the names of the builtin plugins, sorted alphabetically.
func Builtins() []string {
	n := make([]string, 0, len(builtins))
	for k := range builtins {
		n = append(n, builtinPrefix+k)
	}
	sort.Strings(n)
	return n
}

// volume steps through a list of gain levels each time Config() is called.
// the change in gain is spread over several frames by Events().
type volume struct {
	gain   float32
	target float32
	level  int
	out    []float32
}

var volumeLevels = []float32{1.0, 0.5, 0.25}

// the maximum change in gain per frame
const volumeRamp = 0.05

func (v *volume) Process(samples []float32, frames int) Output {
	v.out = v.out[:0]
	for _, s := range samples[:frames*2] {
		v.out = append(v.out, s*v.gain)
	}
	return Output{Samples: v.out, Frames: frames, ShouldResample: true}
}

func (v *volume) Events() {
	switch {
	case v.gain < v.target:
		v.gain = min(v.gain+volumeRamp, v.target)
	case v.gain > v.target:
		v.gain = max(v.gain-volumeRamp, v.target)
	}
}

func (v *volume) Config() {
	v.level = (v.level + 1) % len(volumeLevels)
	v.target = volumeLevels[v.level]
}

func (v *volume) Close() {
}

// mono mixes left and right channels.
type mono struct {
	out []float32
}

func (m *mono) Process(samples []float32, frames int) Output {
	m.out = m.out[:0]
	for i := 0; i < frames*2; i += 2 {
		s := (samples[i] + samples[i+1]) / 2
		m.out = append(m.out, s, s)
	}
	return Output{Samples: m.out, Frames: frames, ShouldResample: true}
}

func (m *mono) Close() {
}

// Register adds a builtin plugin. Programs that embed the frontend can use
// this to provide processing without building a plugin shared object.
func Register(name string, f func() *Plugin) {
	builtins[name] = f
}
