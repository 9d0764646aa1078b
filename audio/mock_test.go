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

package audio_test

import (
	"errors"

	"github.com/sprocketfe/sprocket/test"
)

// backend implements the audio.Backend and audio.BufferReporter interfaces.
type backend struct {
	test.PCMWriter

	float       bool
	nonblocking bool

	capacity int
	avail    int

	fail     bool
	startErr error
	started  int
	stopped  int
	closed   bool
}

func (b *backend) Write(p []byte) (int, error) {
	if b.fail {
		return 0, errors.New("device lost")
	}
	return b.PCMWriter.Write(p)
}

func (b *backend) SetNonblocking(nonblocking bool) {
	b.nonblocking = nonblocking
}

func (b *backend) SupportsFloat() bool {
	return b.float
}

func (b *backend) Start() error {
	b.started++
	return b.startErr
}

func (b *backend) Stop() error {
	b.stopped++
	return nil
}

func (b *backend) Close() error {
	b.closed = true
	return nil
}

func (b *backend) BufferCapacity() int {
	return b.capacity
}

func (b *backend) WriteAvail() int {
	return b.avail
}

// plainBackend does not implement audio.BufferReporter.
type plainBackend struct {
	test.PCMWriter
}

func (b *plainBackend) SetNonblocking(_ bool) {}
func (b *plainBackend) SupportsFloat() bool   { return false }
func (b *plainBackend) Start() error          { return nil }
func (b *plainBackend) Stop() error           { return nil }
func (b *plainBackend) Close() error          { return nil }

// ratedBackend opens the device at a rate of its own choosing.
type ratedBackend struct {
	plainBackend
	rate float64
}

func (b *ratedBackend) OutputRate() float64 {
	return b.rate
}

// passthrough implements the audio.Resampler interface. it records the
// ratio of every call.
type passthrough struct {
	ratios []float64
}

func (r *passthrough) Resample(dst []float32, src []float32, ratio float64) ([]float32, error) {
	r.ratios = append(r.ratios, ratio)
	return append(dst, src...), nil
}

var errTest = errors.New("test error")
