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

// Package tone is an engine that produces a sine wave. It has no media and
// is the default engine when none is specified on the command line.
//
// The pitch is changed in semitone steps with the UP and DOWN buttons. The A
// button stores the current pitch in save memory and the B button recalls
// it. START toggles the tone on and off.
//
// Audio is delivered through the batch sink, once per frame.
package tone

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/sprocketfe/sprocket/curated"
	"github.com/sprocketfe/sprocket/engine"
)

const (
	sampleRate = 32000.0
	fps        = 60.0

	// pitch is measured in semitones relative to A4
	minPitch = -24
	maxPitch = 24

	amplitude = 8192

	stateSize      = 24
	saveMemorySize = 4
)

type state struct {
	phase     float64
	frame     uint64
	pitch     int8
	silent    bool
	prevInput engine.Input

	// samples per frame is not a whole number. the remainder is carried
	// from frame to frame, measured in 1/fps of a sample
	remainder int
}

// Tone implements the engine.Engine interface.
type Tone struct {
	sinks engine.Sinks
	input engine.Input
	state state
	sram  []byte
	buf   []int16
}

// NewTone is the preferred method of initialisation for the Tone type.
func NewTone() *Tone {
	return &Tone{
		sram: make([]byte, saveMemorySize),
		buf:  make([]int16, 0, int(math.Ceil(sampleRate/fps))*2),
	}
}

func (tn *Tone) String() string {
	return "tone"
}

// ID implements the engine.Engine interface.
func (tn *Tone) ID() string {
	return "tone"
}

// Timing implements the engine.Engine interface.
func (tn *Tone) Timing() engine.Timing {
	return engine.Timing{FPS: fps, SampleRate: sampleRate}
}

// Frequency returns the current frequency of the tone in Hz.
func (tn *Tone) Frequency() float64 {
	return 440.0 * math.Pow(2, float64(tn.state.pitch)/12)
}

// Reset implements the engine.Engine interface.
func (tn *Tone) Reset() {
	tn.state = state{}
}

// SetSinks implements the engine.Engine interface.
func (tn *Tone) SetSinks(sinks engine.Sinks) {
	tn.sinks = sinks
}

// SetInput implements the engine.InputReceiver interface.
func (tn *Tone) SetInput(in engine.Input) {
	tn.input = in
}

// SaveMemory implements the engine.Engine interface.
func (tn *Tone) SaveMemory() []byte {
	return tn.sram
}

// Run implements the engine.Engine interface.
func (tn *Tone) Run() error {
	edge := tn.input &^ tn.state.prevInput
	tn.state.prevInput = tn.input

	if edge.Pressed(engine.ButtonUp) && tn.state.pitch < maxPitch {
		tn.state.pitch++
	}
	if edge.Pressed(engine.ButtonDown) && tn.state.pitch > minPitch {
		tn.state.pitch--
	}
	if edge.Pressed(engine.ButtonA) {
		binary.LittleEndian.PutUint16(tn.sram, uint16(tn.state.pitch))
		binary.LittleEndian.PutUint16(tn.sram[2:], binary.LittleEndian.Uint16(tn.sram[2:])+1)
	}
	if edge.Pressed(engine.ButtonB) {
		tn.state.pitch = int8(binary.LittleEndian.Uint16(tn.sram))
	}
	if edge.Pressed(engine.ButtonStart) {
		tn.state.silent = !tn.state.silent
	}

	step := 2 * math.Pi * tn.Frequency() / sampleRate

	tn.state.remainder += int(sampleRate)
	n := tn.state.remainder / int(fps)
	tn.state.remainder %= int(fps)

	tn.buf = tn.buf[:0]
	for range n {
		var v int16
		if !tn.state.silent {
			v = int16(amplitude * math.Sin(tn.state.phase))
		}
		tn.buf = append(tn.buf, v, v)
		tn.state.phase = math.Mod(tn.state.phase+step, 2*math.Pi)
	}

	switch {
	case tn.sinks.Batch != nil:
		for d := tn.buf; len(d) > 0; {
			n := tn.sinks.Batch(d)
			if n <= 0 {
				break
			}
			d = d[n*2:]
		}
	case tn.sinks.Sample != nil:
		for i := 0; i < len(tn.buf); i += 2 {
			tn.sinks.Sample(tn.buf[i], tn.buf[i+1])
		}
	}

	tn.state.frame++

	return nil
}

// SerializeSize implements the engine.Engine interface.
func (tn *Tone) SerializeSize() int {
	return stateSize
}

// Serialize implements the engine.Engine interface.
func (tn *Tone) Serialize(data []byte) error {
	if len(data) < stateSize {
		return curated.Errorf(engine.SerializeError, fmt.Sprintf("buffer too small (%d bytes)", len(data)))
	}
	binary.LittleEndian.PutUint64(data[0:], math.Float64bits(tn.state.phase))
	binary.LittleEndian.PutUint64(data[8:], tn.state.frame)
	data[16] = byte(tn.state.pitch)
	data[17] = 0
	if tn.state.silent {
		data[17] = 1
	}
	binary.LittleEndian.PutUint16(data[18:], uint16(tn.state.prevInput))
	binary.LittleEndian.PutUint16(data[20:], uint16(tn.state.remainder))
	clear(data[22:stateSize])
	return nil
}

// Unserialize implements the engine.Engine interface.
func (tn *Tone) Unserialize(data []byte) error {
	if len(data) < stateSize {
		return curated.Errorf(engine.SerializeError, fmt.Sprintf("buffer too small (%d bytes)", len(data)))
	}
	tn.state.phase = math.Float64frombits(binary.LittleEndian.Uint64(data[0:]))
	tn.state.frame = binary.LittleEndian.Uint64(data[8:])
	tn.state.pitch = int8(data[16])
	tn.state.silent = data[17] != 0
	tn.state.prevInput = engine.Input(binary.LittleEndian.Uint16(data[18:]))
	tn.state.remainder = int(binary.LittleEndian.Uint16(data[20:]))
	return nil
}

// Frame returns the number of frames the engine has run since the last
// reset.
func (tn *Tone) Frame() uint64 {
	return tn.state.frame
}

// Pitch returns the current pitch in semitones relative to A4.
func (tn *Tone) Pitch() int {
	return int(tn.state.pitch)
}
