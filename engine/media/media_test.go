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

package media_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/sprocketfe/sprocket/curated"
	"github.com/sprocketfe/sprocket/engine"
	"github.com/sprocketfe/sprocket/engine/media"
	"github.com/sprocketfe/sprocket/test"
)

// ramp returns stereo data where the left channel counts up from zero and
// the right channel counts down.
func ramp(frames int) []int16 {
	d := make([]int16, frames*2)
	for i := range frames {
		d[i*2] = int16(i)
		d[i*2+1] = int16(-i)
	}
	return d
}

type collector struct {
	samples []int16
}

func (c *collector) sample(l, r int16) {
	c.samples = append(c.samples, l, r)
}

func (c *collector) batch(d []int16) int {
	c.samples = append(c.samples, d...)
	return len(d) / 2
}

func TestRun(t *testing.T) {
	// 600Hz at 60fps is exactly 10 frames of audio per engine frame
	m := media.NewFromPCM("ramp", ramp(1000), 600, 60)
	test.DemandImplements[engine.Engine](t, m)

	c := &collector{}
	m.SetSinks(engine.Sinks{Sample: c.sample})

	test.ExpectSuccess(t, m.Run())
	test.ExpectEquality(t, len(c.samples), 20)
	test.ExpectEquality(t, c.samples[18], int16(9))
	test.ExpectEquality(t, c.samples[19], int16(-9))
	test.ExpectEquality(t, m.Cursor(), uint64(10))
}

func TestFractionalFrames(t *testing.T) {
	// 120Hz at 80fps is one and a half frames of audio per engine frame.
	// over three frames there should be exactly four
	m := media.NewFromPCM("ramp", ramp(1000), 120, 80)

	c := &collector{}
	m.SetSinks(engine.Sinks{Batch: c.batch})
	for range 3 {
		test.ExpectSuccess(t, m.Run())
	}
	test.ExpectEquality(t, len(c.samples), 8)
}

func TestSerialize(t *testing.T) {
	m := media.NewFromPCM("ramp", ramp(1000), 600, 60)
	c := &collector{}
	m.SetSinks(engine.Sinks{Sample: c.sample})

	state := make([]byte, m.SerializeSize())
	test.ExpectSuccess(t, m.Run())
	test.ExpectSuccess(t, m.Serialize(state))

	test.ExpectSuccess(t, m.Run())
	first := append([]int16{}, c.samples[20:]...)

	// rolling back and running again produces the same audio
	test.ExpectSuccess(t, m.Unserialize(state))
	test.ExpectSuccess(t, m.Run())
	second := c.samples[40:]

	test.DemandEquality(t, len(second), len(first))
	for i := range first {
		test.ExpectEquality(t, second[i], first[i])
	}

	// buffer too small
	err := m.Serialize(make([]byte, 4))
	test.ExpectSuccess(t, curated.Is(err, engine.SerializeError))
}

func TestInput(t *testing.T) {
	m := media.NewFromPCM("ramp", ramp(1000), 600, 60)
	c := &collector{}
	m.SetSinks(engine.Sinks{Sample: c.sample})

	// run a frame and set the bookmark
	test.ExpectSuccess(t, m.Run())
	m.SetInput(engine.ButtonA)
	test.ExpectSuccess(t, m.Run())
	bookmark, count := m.Bookmark()
	test.ExpectEquality(t, bookmark, uint64(10))
	test.ExpectEquality(t, count, uint64(1))

	// holding the button does not set the bookmark again
	test.ExpectSuccess(t, m.Run())
	_, count = m.Bookmark()
	test.ExpectEquality(t, count, uint64(1))

	// jump back to the bookmark
	m.SetInput(engine.ButtonB)
	test.ExpectSuccess(t, m.Run())
	test.ExpectEquality(t, m.Cursor(), uint64(20))

	// pausing playback produces silence but the same number of samples
	m.SetInput(engine.ButtonStart)
	c.samples = c.samples[:0]
	test.ExpectSuccess(t, m.Run())
	test.ExpectEquality(t, len(c.samples), 20)
	for _, s := range c.samples {
		test.ExpectEquality(t, s, int16(0))
	}
}

func TestSaveMemory(t *testing.T) {
	m := media.NewFromPCM("ramp", ramp(1000), 600, 60)
	m.SetSinks(engine.Sinks{Sample: func(_, _ int16) {}})

	m.SetInput(engine.ButtonA)
	test.ExpectSuccess(t, m.Run())

	// reset does not affect save memory
	m.Reset()
	_, count := m.Bookmark()
	test.ExpectEquality(t, count, uint64(1))

	// save memory is live
	clear(m.SaveMemory())
	_, count = m.Bookmark()
	test.ExpectEquality(t, count, uint64(0))
}

func TestLoadWAV(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "test.wav")
	f, err := os.Create(fn)
	test.DemandSuccess(t, err)

	enc := wav.NewEncoder(f, 600, 16, 2, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: 600},
		SourceBitDepth: 16,
	}
	for _, v := range ramp(100) {
		buf.Data = append(buf.Data, int(v))
	}
	test.DemandSuccess(t, enc.Write(buf))
	test.DemandSuccess(t, enc.Close())
	test.DemandSuccess(t, f.Close())

	m, err := media.Load(fn, 60)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, m.Timing().SampleRate, 600.0)
	test.ExpectEquality(t, m.String(), "test.wav")

	c := &collector{}
	m.SetSinks(engine.Sinks{Sample: c.sample})
	test.ExpectSuccess(t, m.Run())
	test.DemandEquality(t, len(c.samples), 20)
	test.ExpectEquality(t, c.samples[2], int16(1))
	test.ExpectEquality(t, c.samples[3], int16(-1))
}

func TestLoadUnsupported(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "test.xyz")
	test.DemandSuccess(t, os.WriteFile(fn, []byte{0}, 0o600))

	_, err := media.Load(fn, 60)
	test.ExpectSuccess(t, curated.Is(err, media.DecodeError))
}
