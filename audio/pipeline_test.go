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
	"testing"

	"github.com/sprocketfe/sprocket/audio"
	"github.com/sprocketfe/sprocket/dsp"
	"github.com/sprocketfe/sprocket/environment"
	"github.com/sprocketfe/sprocket/test"
)

func newTestPipeline(b audio.Backend, rs audio.Resampler, cfg audio.Config) *audio.Pipeline {
	env := environment.NewEnvironment(environment.MainSession, nil)
	if cfg.InputRate == 0 {
		cfg.InputRate = 48000
	}
	if cfg.OutputRate == 0 {
		cfg.OutputRate = 48000
	}
	return audio.NewPipeline(env, b, rs, cfg)
}

func TestChunking(t *testing.T) {
	b := &backend{}
	p := newTestPipeline(b, &passthrough{}, audio.Config{Sync: true, BlockChunk: 16, NonblockChunk: 64})
	test.DemandSuccess(t, p.Active())
	test.ExpectEquality(t, p.ChunkSize(), 16)
	test.ExpectEquality(t, p.Format(), audio.FormatInt16)

	for i := range 7 {
		p.Sample(int16(i), int16(-i))
	}
	test.ExpectEquality(t, b.Writes(), 0)
	test.ExpectEquality(t, p.Pending(), 14)

	// eighth pair fills the chunk
	p.Sample(7, -7)
	test.ExpectEquality(t, b.Writes(), 1)
	test.ExpectEquality(t, p.Pending(), 0)

	s := b.Int16()
	test.DemandEquality(t, len(s), 16)
	for i := range 8 {
		test.ExpectEquality(t, s[i*2], int16(i))
		test.ExpectEquality(t, s[i*2+1], int16(-i))
	}
	test.ExpectEquality(t, p.Accounting().Frames, uint64(8))
}

func TestNonblocking(t *testing.T) {
	b := &backend{}
	p := newTestPipeline(b, &passthrough{}, audio.Config{Sync: true, BlockChunk: 16, NonblockChunk: 64})

	p.SetNonblocking(true)
	test.ExpectSuccess(t, b.nonblocking)
	test.ExpectEquality(t, p.ChunkSize(), 64)

	p.SetNonblocking(false)
	test.ExpectFailure(t, b.nonblocking)
	test.ExpectEquality(t, p.ChunkSize(), 16)

	// without sync the backend is always nonblocking
	b = &backend{}
	p = newTestPipeline(b, &passthrough{}, audio.Config{Sync: false, BlockChunk: 16, NonblockChunk: 64})
	test.ExpectSuccess(t, b.nonblocking)
	test.ExpectEquality(t, p.ChunkSize(), 64)
	p.SetNonblocking(false)
	test.ExpectSuccess(t, b.nonblocking)
	test.ExpectEquality(t, p.ChunkSize(), 64)
}

func TestSampleBatch(t *testing.T) {
	b := &backend{}
	p := newTestPipeline(b, &passthrough{}, audio.Config{Sync: true, BlockChunk: 16, NonblockChunk: 64})

	// batches are capped at half the nonblocking chunk size
	n := p.SampleBatch(make([]int16, 200))
	test.ExpectEquality(t, n, 32)
	test.ExpectEquality(t, b.Len(), 64*2)

	n = p.SampleBatch(make([]int16, 10))
	test.ExpectEquality(t, n, 5)
	test.ExpectEquality(t, b.Writes(), 2)

	n = p.SampleBatch(nil)
	test.ExpectEquality(t, n, 0)
	test.ExpectEquality(t, b.Writes(), 2)
}

func TestSplice(t *testing.T) {
	b := &backend{}
	p := newTestPipeline(b, &passthrough{}, audio.Config{Sync: true, BlockChunk: 16, NonblockChunk: 64})

	// five of the eight pairs in the chunk
	for i := range 5 {
		p.Sample(int16(i+1), int16(-(i + 1)))
	}
	test.ExpectEquality(t, b.Writes(), 0)

	p.BeginReverse()
	test.ExpectEquality(t, p.Pending(), 0)

	rb := p.RewindBuffer().Contents()
	test.DemandEquality(t, len(rb), 10)
	for i := range 5 {
		test.ExpectEquality(t, rb[i*2], int16(5-i))
		test.ExpectEquality(t, rb[i*2+1], int16(-(5 - i)))
	}

	// the five pairs are flushed exactly once
	p.FlushReverse()
	test.ExpectEquality(t, b.Writes(), 1)
	s := b.Int16()
	test.DemandEquality(t, len(s), 10)
	for i := range 10 {
		test.ExpectEquality(t, s[i], rb[i])
	}

	p.FlushReverse()
	test.ExpectEquality(t, b.Writes(), 1)
	test.ExpectEquality(t, p.RewindBuffer().Len(), 0)
}

func TestReverseSinks(t *testing.T) {
	b := &backend{}
	p := newTestPipeline(b, &passthrough{}, audio.Config{Sync: true, BlockChunk: 16, NonblockChunk: 64})

	p.Sample(1, -1)
	p.BeginReverse()

	sinks := p.Sinks(true)
	sinks.Sample(2, -2)
	sinks.Sample(3, -3)
	test.ExpectEquality(t, sinks.Batch([]int16{4, -4, 5, -5}), 2)

	// nothing written to the backend while reversing
	test.ExpectEquality(t, b.Writes(), 0)

	p.FlushReverse()
	s := b.Int16()
	test.DemandEquality(t, len(s), 10)
	for i := range 5 {
		test.ExpectEquality(t, s[i*2], int16(5-i))
		test.ExpectEquality(t, s[i*2+1], int16(-(5 - i)))
	}

	// forward sinks go through the chunker
	sinks = p.Sinks(false)
	sinks.Sample(1, 1)
	test.ExpectEquality(t, p.Pending(), 2)
}

func TestMute(t *testing.T) {
	unmuted := &backend{}
	pu := newTestPipeline(unmuted, &passthrough{}, audio.Config{Sync: true, BlockChunk: 16})

	muted := &backend{}
	pm := newTestPipeline(muted, &passthrough{}, audio.Config{Sync: true, BlockChunk: 16})
	pm.SetMute(true)
	test.ExpectSuccess(t, pm.Muted())

	for i := range 100 {
		pu.Sample(int16(i), int16(i))
		pm.Sample(int16(i), int16(i))
	}

	test.ExpectEquality(t, pm.Accounting(), pu.Accounting())
	test.ExpectEquality(t, muted.Len(), unmuted.Len())
	for _, s := range muted.Int16() {
		test.ExpectEquality(t, s, int16(0))
	}
}

func TestFloatFormat(t *testing.T) {
	b := &backend{float: true}
	p := newTestPipeline(b, &passthrough{}, audio.Config{Sync: true, BlockChunk: 2})
	test.ExpectEquality(t, p.Format(), audio.FormatFloat32)

	p.Sample(0x4000, -0x8000)
	s := b.Float32()
	test.DemandEquality(t, len(s), 2)
	test.ExpectEquality(t, s[0], float32(0.5))
	test.ExpectEquality(t, s[1], float32(-1.0))
}

func TestBackendFailure(t *testing.T) {
	b := &backend{fail: true}
	p := newTestPipeline(b, &passthrough{}, audio.Config{Sync: true, BlockChunk: 2})

	p.Sample(1, 1)
	test.ExpectFailure(t, p.Active())

	// no more writes are attempted
	b.fail = false
	p.Sample(1, 1)
	test.ExpectEquality(t, b.Writes(), 0)
	test.ExpectFailure(t, p.Flush([]int16{1, 1}))
}

func TestInactive(t *testing.T) {
	p := newTestPipeline(nil, &passthrough{}, audio.Config{Sync: true, BlockChunk: 2})
	test.ExpectFailure(t, p.Active())

	// samples are accepted but go nowhere
	p.Sample(1, 1)
	p.SetNonblocking(true)
	p.SetPaused(true)
	p.SetPaused(false)
	test.ExpectSuccess(t, p.Close())
}

func TestPause(t *testing.T) {
	b := &backend{}
	p := newTestPipeline(b, &passthrough{}, audio.Config{Sync: true, BlockChunk: 2})

	p.SetPaused(true)
	test.ExpectEquality(t, b.stopped, 1)
	test.ExpectSuccess(t, p.Flush([]int16{1, 1}))
	test.ExpectEquality(t, b.Writes(), 0)

	p.SetPaused(false)
	test.ExpectEquality(t, b.started, 1)
	test.ExpectSuccess(t, p.Active())

	// failure to restart the backend disables audio
	p.SetPaused(true)
	b.startErr = errTest
	p.SetPaused(false)
	test.ExpectFailure(t, p.Active())
}

func TestSlowMotion(t *testing.T) {
	rs := &passthrough{}
	p := newTestPipeline(&backend{}, rs, audio.Config{
		InputRate:       32000,
		OutputRate:      48000,
		Sync:            true,
		BlockChunk:      2,
		SlowMotionRatio: 3.0,
	})

	p.Sample(1, 1)
	p.SetSlowMotion(true)
	p.Sample(1, 1)
	p.SetSlowMotion(false)
	p.Sample(1, 1)

	test.DemandEquality(t, len(rs.ratios), 3)
	test.ExpectEquality(t, rs.ratios[0], 1.5)
	test.ExpectEquality(t, rs.ratios[1], 4.5)
	test.ExpectEquality(t, rs.ratios[2], 1.5)
}

func TestRateControl(t *testing.T) {
	rs := &passthrough{}
	b := &backend{capacity: 1000, avail: 1000}
	p := newTestPipeline(b, rs, audio.Config{
		InputRate:        32000,
		OutputRate:       48000,
		Sync:             true,
		BlockChunk:       2,
		RateControl:      true,
		RateControlDelta: 0.005,
	})
	test.ExpectSuccess(t, p.RateController().Enabled())

	p.Sample(1, 1)
	b.avail = 0
	p.Sample(1, 1)

	test.DemandEquality(t, len(rs.ratios), 2)
	test.ExpectApproximate(t, rs.ratios[0], 1.5*1.005, 1e-12)
	test.ExpectApproximate(t, rs.ratios[1], 1.5*0.995, 1e-12)

	// backend without buffer reporting cannot support rate control
	p = newTestPipeline(&plainBackend{}, rs, audio.Config{Sync: true, RateControl: true})
	test.ExpectFailure(t, p.RateController().Enabled())
}

func TestBackendOutputRate(t *testing.T) {
	p := newTestPipeline(&plainBackend{}, &passthrough{}, audio.Config{InputRate: 32000, OutputRate: 48000})
	test.ExpectEquality(t, p.OutputRate(), 48000.0)

	// the rate reported by the backend replaces the requested rate
	p = newTestPipeline(&ratedBackend{rate: 44100}, &passthrough{}, audio.Config{InputRate: 32000, OutputRate: 48000})
	test.ExpectEquality(t, p.OutputRate(), 44100.0)
	test.ExpectEquality(t, p.RateController().Original(), 44100/32000.0)
}

func TestStepInputRate(t *testing.T) {
	p := newTestPipeline(&backend{}, &passthrough{}, audio.Config{InputRate: 32000, OutputRate: 48000, Sync: true})
	test.ExpectEquality(t, p.StepInputRate(0.25), 32000.25)
	test.ExpectEquality(t, p.InputRate(), 32000.25)
	test.ExpectEquality(t, p.RateController().Original(), 48000/32000.25)
}

func TestDSP(t *testing.T) {
	dsp.Register("test-noresample", func() *dsp.Plugin {
		return &dsp.Plugin{
			Ident:      "No Resample",
			APIVersion: dsp.APIVersion,
			Init: func(_ dsp.Info) (dsp.Processor, error) {
				return &noResample{}, nil
			},
		}
	})

	env := environment.NewEnvironment(environment.MainSession, nil)
	inst, err := dsp.Load(env, "builtin:test-noresample", dsp.Info{})
	test.DemandSuccess(t, err)

	rs := &passthrough{}
	b := &backend{}
	p := newTestPipeline(b, rs, audio.Config{Sync: true, BlockChunk: 2})
	p.SetDSP(inst)

	p.Sample(0x1000, 0x1000)
	test.ExpectEquality(t, len(rs.ratios), 0)

	// output of the processor is the input with left and right swapped
	p.Sample(1, 2)
	s := b.Int16()
	test.DemandEquality(t, len(s), 4)
	test.ExpectEquality(t, s[2], int16(2))
	test.ExpectEquality(t, s[3], int16(1))

	test.ExpectSuccess(t, p.Close())
	test.ExpectSuccess(t, b.closed)
}

type noResample struct {
	out []float32
}

func (n *noResample) Process(samples []float32, frames int) dsp.Output {
	n.out = n.out[:0]
	for i := 0; i < frames*2; i += 2 {
		n.out = append(n.out, samples[i+1], samples[i])
	}
	return dsp.Output{Samples: n.out, Frames: frames, ShouldResample: false}
}

func (n *noResample) Close() {}
