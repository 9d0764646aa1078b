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

// Package nullaudio implements the audio.Backend interface. Audio data is
// discarded. The backend reports a buffer that is always half full so that
// rate control can be enabled without changing the resampling ratio.
package nullaudio

import (
	"math"
	"sync/atomic"

	"github.com/sprocketfe/sprocket/audio"
)

// the capacity reported when the config does not specify a latency
const defaultCapacity = 8192

// Audio discards all audio data.
type Audio struct {
	capacity int
	float    bool

	// accessed by Written() which may be called from another goroutine
	written atomic.Uint64
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio(cfg audio.BackendConfig) (*Audio, error) {
	aud := &Audio{
		capacity: defaultCapacity,
		float:    cfg.Float,
	}
	if cfg.Latency > 0 && cfg.OutputRate > 0 {
		aud.capacity = max(int(math.Round(cfg.Latency.Seconds()*cfg.OutputRate))*8, 8)
	}
	return aud, nil
}

// Write implements the audio.Backend interface.
func (aud *Audio) Write(p []byte) (int, error) {
	aud.written.Add(uint64(len(p)))
	return len(p), nil
}

// SetNonblocking implements the audio.Backend interface.
func (aud *Audio) SetNonblocking(_ bool) {
}

// SupportsFloat implements the audio.Backend interface.
func (aud *Audio) SupportsFloat() bool {
	return aud.float
}

// Start implements the audio.Backend interface.
func (aud *Audio) Start() error {
	return nil
}

// Stop implements the audio.Backend interface.
func (aud *Audio) Stop() error {
	return nil
}

// Close implements the audio.Backend interface.
func (aud *Audio) Close() error {
	return nil
}

// BufferCapacity implements the audio.BufferReporter interface.
func (aud *Audio) BufferCapacity() int {
	return aud.capacity
}

// WriteAvail implements the audio.BufferReporter interface.
func (aud *Audio) WriteAvail() int {
	return aud.capacity / 2
}

// Written returns the number of bytes written to the backend.
func (aud *Audio) Written() uint64 {
	return aud.written.Load()
}
