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

package media

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/sprocketfe/sprocket/curated"
	"github.com/sprocketfe/sprocket/engine"
)

// DefaultFPS is the frame rate of the media engine unless specified
// otherwise.
const DefaultFPS = 60.0

const (
	maxVolume = 16
	maxPan    = 8

	// the size of the serialized state in bytes
	stateSize = 32

	// the size of save memory in bytes
	saveMemorySize = 16
)

// the serializable state of the media engine.
type state struct {
	cursor    uint64  // frame index into the pcm data
	accum     float64 // fractional number of frames not yet produced
	frame     uint64
	volume    uint8
	pan       int8
	playing   bool
	prevInput engine.Input
}

// Media implements the engine.Engine interface.
type Media struct {
	name string
	id   string
	fps  float64
	pcm  pcm

	sinks       engine.Sinks
	input       engine.Input
	nonblocking bool

	state state
	sram  []byte

	// frame buffer used for the batch sink
	batch []int16
}

// Load creates a new media engine from the file at path.
func Load(path string, fps float64) (*Media, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, curated.Errorf(DecodeError, filepath.Base(path), err)
	}

	p, err := decode(path, data)
	if err != nil {
		return nil, curated.Errorf(DecodeError, filepath.Base(path), err)
	}

	m := newMedia(filepath.Base(path), p, fps)
	m.id = fmt.Sprintf("media:%x", sha1.Sum(data))

	return m, nil
}

// NewFromPCM creates a new media engine from interleaved stereo data.
func NewFromPCM(name string, data []int16, sampleRate float64, fps float64) *Media {
	m := newMedia(name, pcm{data: data, sampleRate: sampleRate}, fps)

	b := make([]byte, len(data)*2)
	for i, v := range data {
		binary.LittleEndian.PutUint16(b[i*2:], uint16(v))
	}
	m.id = fmt.Sprintf("media:%x", sha1.Sum(b))

	return m
}

func newMedia(name string, p pcm, fps float64) *Media {
	if fps <= 0 {
		fps = DefaultFPS
	}
	m := &Media{
		name: name,
		fps:  fps,
		pcm:  p,
		sram: make([]byte, saveMemorySize),
	}
	m.Reset()
	return m
}

func (m *Media) String() string {
	return m.name
}

// ID implements the engine.Engine interface.
func (m *Media) ID() string {
	return m.id
}

// Timing implements the engine.Engine interface.
func (m *Media) Timing() engine.Timing {
	return engine.Timing{
		FPS:        m.fps,
		SampleRate: m.pcm.sampleRate,
	}
}

// Reset implements the engine.Engine interface. Save memory is not
// affected.
func (m *Media) Reset() {
	m.state = state{
		volume:  maxVolume,
		playing: true,
	}
}

// SetSinks implements the engine.Engine interface.
func (m *Media) SetSinks(sinks engine.Sinks) {
	m.sinks = sinks
}

// SetInput implements the engine.InputReceiver interface.
func (m *Media) SetInput(in engine.Input) {
	m.input = in
}

// SetNonblocking implements the engine.Decoupler interface.
func (m *Media) SetNonblocking(nonblocking bool) {
	m.nonblocking = nonblocking
}

// SaveMemory implements the engine.Engine interface.
func (m *Media) SaveMemory() []byte {
	return m.sram
}

// Bookmark returns the frame stored in save memory and the number of times
// the bookmark has been set.
func (m *Media) Bookmark() (uint64, uint64) {
	return binary.LittleEndian.Uint64(m.sram), binary.LittleEndian.Uint64(m.sram[8:])
}

// Cursor returns the current playback position, measured in frames of the
// source data.
func (m *Media) Cursor() uint64 {
	return m.state.cursor
}

// Run implements the engine.Engine interface.
func (m *Media) Run() error {
	m.handleInput()

	m.state.accum += m.pcm.sampleRate / m.fps
	n := int(m.state.accum)
	m.state.accum -= float64(n)

	frames := uint64(len(m.pcm.data) / 2)

	lgain, rgain := m.gain()

	m.batch = m.batch[:0]
	for range n {
		var l, r int16
		if m.state.playing && frames > 0 {
			if m.state.cursor >= frames {
				m.state.cursor = 0
			}
			l = int16(float64(m.pcm.data[m.state.cursor*2]) * lgain)
			r = int16(float64(m.pcm.data[m.state.cursor*2+1]) * rgain)
			m.state.cursor++
		}

		if m.sinks.Sample != nil {
			m.sinks.Sample(l, r)
		} else {
			m.batch = append(m.batch, l, r)
		}
	}

	if m.sinks.Sample == nil && m.sinks.Batch != nil {
		for d := m.batch; len(d) > 0; {
			c := m.sinks.Batch(d)
			if c <= 0 {
				break
			}
			d = d[c*2:]
		}
	}

	m.state.frame++

	return nil
}

func (m *Media) gain() (float64, float64) {
	v := float64(m.state.volume) / maxVolume
	l := float64(maxPan-max(m.state.pan, 0)) / maxPan
	r := float64(maxPan+min(m.state.pan, 0)) / maxPan
	return v * l, v * r
}

// input is acted upon on the leading edge of a button press.
func (m *Media) handleInput() {
	edge := m.input &^ m.state.prevInput
	m.state.prevInput = m.input

	if edge.Pressed(engine.ButtonUp) && m.state.volume < maxVolume {
		m.state.volume++
	}
	if edge.Pressed(engine.ButtonDown) && m.state.volume > 0 {
		m.state.volume--
	}
	if edge.Pressed(engine.ButtonLeft) && m.state.pan > -maxPan {
		m.state.pan--
	}
	if edge.Pressed(engine.ButtonRight) && m.state.pan < maxPan {
		m.state.pan++
	}
	if edge.Pressed(engine.ButtonA) {
		_, count := m.Bookmark()
		binary.LittleEndian.PutUint64(m.sram, m.state.cursor)
		binary.LittleEndian.PutUint64(m.sram[8:], count+1)
	}
	if edge.Pressed(engine.ButtonB) {
		m.state.cursor, _ = m.Bookmark()
	}
	if edge.Pressed(engine.ButtonStart) {
		m.state.playing = !m.state.playing
	}
	if edge.Pressed(engine.ButtonSelect) {
		m.state.cursor = 0
	}
}

// SerializeSize implements the engine.Engine interface.
func (m *Media) SerializeSize() int {
	return stateSize
}

// Serialize implements the engine.Engine interface.
func (m *Media) Serialize(data []byte) error {
	if len(data) < stateSize {
		return curated.Errorf(engine.SerializeError, fmt.Sprintf("buffer too small (%d bytes)", len(data)))
	}

	binary.LittleEndian.PutUint64(data[0:], m.state.cursor)
	binary.LittleEndian.PutUint64(data[8:], math.Float64bits(m.state.accum))
	binary.LittleEndian.PutUint64(data[16:], m.state.frame)
	data[24] = m.state.volume
	data[25] = byte(m.state.pan)
	data[26] = 0
	if m.state.playing {
		data[26] = 1
	}
	binary.LittleEndian.PutUint16(data[27:], uint16(m.state.prevInput))
	clear(data[29:stateSize])

	return nil
}

// Unserialize implements the engine.Engine interface.
func (m *Media) Unserialize(data []byte) error {
	if len(data) < stateSize {
		return curated.Errorf(engine.SerializeError, fmt.Sprintf("buffer too small (%d bytes)", len(data)))
	}

	m.state.cursor = binary.LittleEndian.Uint64(data[0:])
	m.state.accum = math.Float64frombits(binary.LittleEndian.Uint64(data[8:]))
	m.state.frame = binary.LittleEndian.Uint64(data[16:])
	m.state.volume = data[24]
	m.state.pan = int8(data[25])
	m.state.playing = data[26] != 0
	m.state.prevInput = engine.Input(binary.LittleEndian.Uint16(data[27:]))

	return nil
}
