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

// Package otoaudio implements the audio.Backend interface using the oto
// library. The oto player pulls data from a queue that is filled by the
// Write() function.
package otoaudio

import (
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/sprocketfe/sprocket/audio"
	"github.com/sprocketfe/sprocket/curated"
)

// the size of the player's own buffer. the queue sits in front of this
// buffer and is sized according to the requested latency
const playerBuffer = 20 * time.Millisecond

// queue is an io.Reader implementation that forwards written audio data to
// the oto player.
type queue struct {
	crit sync.Mutex
	cond *sync.Cond
	data []byte

	// the number of bytes to align reads to. this is the size of one stereo
	// frame
	align int
}

func (q *queue) Read(buf []byte) (int, error) {
	q.crit.Lock()
	defer q.crit.Unlock()

	n := min(len(q.data), len(buf))
	n -= n % q.align
	copy(buf, q.data[:n])
	q.data = q.data[n:]
	q.cond.Broadcast()

	// fill the remainder with silence on underrun. returning zero bytes
	// causes the player to stall
	clear(buf[n:])

	return len(buf), nil
}

// Audio outputs sound using oto.
type Audio struct {
	ctx    *oto.Context
	player *oto.Player
	q      *queue

	nonblocking bool
	capacity    int
	rate        float64
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio(cfg audio.BackendConfig) (*Audio, error) {
	opts := &oto.NewContextOptions{
		SampleRate:   int(cfg.OutputRate),
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   playerBuffer,
	}

	ctx, ready, err := oto.NewContext(opts)
	if err != nil {
		return nil, curated.Errorf(audio.BackendError, err)
	}
	<-ready

	aud := &Audio{
		ctx:  ctx,
		q:    &queue{align: 8},
		rate: float64(opts.SampleRate),
	}
	aud.q.cond = sync.NewCond(&aud.q.crit)

	frames := int(math.Round(cfg.Latency.Seconds() * aud.rate))
	aud.capacity = max(frames, 256) * aud.q.align

	aud.player = ctx.NewPlayer(aud.q)
	aud.player.Play()

	return aud, nil
}

// Write implements the audio.Backend interface.
func (aud *Audio) Write(p []byte) (int, error) {
	aud.q.crit.Lock()
	defer aud.q.crit.Unlock()

	if aud.nonblocking {
		n := min(len(p), aud.capacity-len(aud.q.data))
		n = max(n, 0) &^ 7
		aud.q.data = append(aud.q.data, p[:n]...)
		return n, nil
	}

	for len(aud.q.data) > 0 && aud.capacity-len(aud.q.data) < len(p) {
		aud.q.cond.Wait()
	}
	aud.q.data = append(aud.q.data, p...)

	return len(p), nil
}

// SetNonblocking implements the audio.Backend interface.
func (aud *Audio) SetNonblocking(nonblocking bool) {
	aud.q.crit.Lock()
	defer aud.q.crit.Unlock()
	aud.nonblocking = nonblocking
}

// SupportsFloat implements the audio.Backend interface. The oto context is
// always opened in float32 mode.
func (aud *Audio) SupportsFloat() bool {
	return true
}

// Start implements the audio.Backend interface.
func (aud *Audio) Start() error {
	aud.player.Play()
	return nil
}

// Stop implements the audio.Backend interface.
func (aud *Audio) Stop() error {
	aud.player.Pause()
	return nil
}

// Close implements the audio.Backend interface.
func (aud *Audio) Close() error {
	aud.player.Pause()
	if err := aud.player.Close(); err != nil {
		return curated.Errorf(audio.BackendError, err)
	}
	return nil
}

// BufferCapacity implements the audio.BufferReporter interface.
func (aud *Audio) BufferCapacity() int {
	return aud.capacity
}

// WriteAvail implements the audio.BufferReporter interface.
func (aud *Audio) WriteAvail() int {
	aud.q.crit.Lock()
	defer aud.q.crit.Unlock()
	return max(0, aud.capacity-len(aud.q.data))
}

// OutputRate implements the audio.RateReporter interface.
func (aud *Audio) OutputRate() float64 {
	return aud.rate
}
