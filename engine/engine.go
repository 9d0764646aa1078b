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

package engine

// SerializeError is returned by Serialize() and Unserialize() implementations.
const SerializeError = "engine: serialize: %v"

// Timing describes the native frame rate and audio sample rate of the engine.
type Timing struct {
	FPS        float64
	SampleRate float64
}

// SampleFunc is called by the engine for every stereo pair it produces.
type SampleFunc func(left, right int16)

// BatchFunc is called by the engine with interleaved stereo samples. It
// returns the number of frames consumed.
type BatchFunc func(data []int16) int

// Sinks are the audio destinations for an engine. An engine will use one or
// the other, depending on how it produces sound.
type Sinks struct {
	Sample SampleFunc
	Batch  BatchFunc
}

// Engine is the interface to an emulation engine.
type Engine interface {
	// a short string identifying the engine and the media it is running.
	// used as the key for save states and save memory
	ID() string

	Timing() Timing

	// SerializeSize is the size of the buffer required by Serialize().
	SerializeSize() int
	Serialize(data []byte) error
	Unserialize(data []byte) error

	// Run the engine for a single frame.
	Run() error

	// SetSinks installs the audio destination for subsequent calls to Run().
	SetSinks(Sinks)

	// SaveMemory returns the non-volatile memory of the engine. The returned
	// slice is the live memory and not a copy.
	SaveMemory() []byte

	Reset()
}

// InputReceiver is implemented by engines that accept user input.
type InputReceiver interface {
	SetInput(Input)
}

// Decoupler is implemented by engines that can decouple their presentation
// from the readiness of the audio backend.
type Decoupler interface {
	SetNonblocking(bool)
}
