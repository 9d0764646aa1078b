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

// Package sdlaudio implements the audio.Backend interface using the SDL audio
// queue.
package sdlaudio

import (
	"math"
	"time"

	"github.com/sprocketfe/sprocket/audio"
	"github.com/sprocketfe/sprocket/curated"

	"github.com/veandco/go-sdl2/sdl"
)

// the length of the SDL device buffer in frames. the queue sits in front of
// this buffer and is sized according to the requested latency
const deviceSamples = 512

// the time to wait between checks of the queue size when writing in blocking
// mode
const blockingPoll = time.Millisecond

// Audio outputs sound using SDL.
type Audio struct {
	id   sdl.AudioDeviceID
	spec sdl.AudioSpec

	float       bool
	nonblocking bool

	// maximum number of bytes allowed in the SDL queue
	capacity int
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio(cfg audio.BackendConfig) (*Audio, error) {
	if err := sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
		return nil, curated.Errorf(audio.BackendError, err)
	}

	aud := &Audio{}

	spec := &sdl.AudioSpec{
		Freq:     int32(cfg.OutputRate),
		Format:   sdl.AUDIO_S16LSB,
		Channels: 2,
		Samples:  deviceSamples,
	}
	if cfg.Float {
		spec.Format = sdl.AUDIO_F32LSB
	}

	var err error
	aud.id, err = sdl.OpenAudioDevice(cfg.Device, false, spec, &aud.spec, sdl.AUDIO_ALLOW_FREQUENCY_CHANGE)
	if err != nil {
		sdl.QuitSubSystem(sdl.INIT_AUDIO)
		return nil, curated.Errorf(audio.BackendError, err)
	}

	aud.float = aud.spec.Format == sdl.AUDIO_F32LSB

	bytesPerFrame := 4
	if aud.float {
		bytesPerFrame = 8
	}
	frames := int(math.Round(cfg.Latency.Seconds() * float64(aud.spec.Freq)))
	aud.capacity = max(frames, int(aud.spec.Samples)) * bytesPerFrame

	sdl.PauseAudioDevice(aud.id, false)

	return aud, nil
}

// Write implements the audio.Backend interface.
func (aud *Audio) Write(p []byte) (int, error) {
	if aud.nonblocking {
		n := min(len(p), aud.WriteAvail())
		n &^= 7
		if n == 0 {
			return 0, nil
		}
		if err := sdl.QueueAudio(aud.id, p[:n]); err != nil {
			return 0, curated.Errorf(audio.BackendError, err)
		}
		return n, nil
	}

	// wait for the device to drain enough of the queue. data larger than the
	// queue capacity is queued once the queue is empty
	for aud.WriteAvail() < min(len(p), aud.capacity) {
		time.Sleep(blockingPoll)
	}

	if err := sdl.QueueAudio(aud.id, p); err != nil {
		return 0, curated.Errorf(audio.BackendError, err)
	}
	return len(p), nil
}

// SetNonblocking implements the audio.Backend interface.
func (aud *Audio) SetNonblocking(nonblocking bool) {
	aud.nonblocking = nonblocking
}

// SupportsFloat implements the audio.Backend interface.
func (aud *Audio) SupportsFloat() bool {
	return aud.float
}

// Start implements the audio.Backend interface.
func (aud *Audio) Start() error {
	sdl.PauseAudioDevice(aud.id, false)
	return nil
}

// Stop implements the audio.Backend interface.
func (aud *Audio) Stop() error {
	sdl.PauseAudioDevice(aud.id, true)
	return nil
}

// Close implements the audio.Backend interface.
func (aud *Audio) Close() error {
	sdl.ClearQueuedAudio(aud.id)
	sdl.CloseAudioDevice(aud.id)
	sdl.QuitSubSystem(sdl.INIT_AUDIO)
	return nil
}

// BufferCapacity implements the audio.BufferReporter interface.
func (aud *Audio) BufferCapacity() int {
	return aud.capacity
}

// WriteAvail implements the audio.BufferReporter interface.
func (aud *Audio) WriteAvail() int {
	return max(0, aud.capacity-int(sdl.GetQueuedAudioSize(aud.id)))
}

// OutputRate implements the audio.RateReporter interface. SDL may open the
// device at a different frequency to the one requested.
func (aud *Audio) OutputRate() float64 {
	return float64(aud.spec.Freq)
}
