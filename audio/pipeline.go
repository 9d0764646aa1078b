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

package audio

import (
	"io"
	"math"

	"github.com/sprocketfe/sprocket/dsp"
	"github.com/sprocketfe/sprocket/engine"
	"github.com/sprocketfe/sprocket/environment"
	"github.com/sprocketfe/sprocket/logger"
)

// Default chunk sizes. Chunk sizes are measured in samples, not stereo
// pairs.
const (
	DefaultBlockChunk    = 64
	DefaultNonblockChunk = 2048
)

// MaxRatio is the largest resampling ratio the output buffers are sized
// for. Larger ratios work but will cause buffers to be reallocated.
const MaxRatio = 16

// Resampler converts interleaved stereo samples at a caller supplied ratio.
// The resampled data is appended to dst.
type Resampler interface {
	Resample(dst []float32, src []float32, ratio float64) ([]float32, error)
}

// Config for a new Pipeline.
type Config struct {
	InputRate  float64
	OutputRate float64

	// if sync is false the backend is always nonblocking
	Sync bool

	RateControl      bool
	RateControlDelta float64

	SlowMotionRatio float64

	BlockChunk    int
	NonblockChunk int

	// the largest number of samples the engine will produce in a single
	// frame. used to size the rewind buffer
	FrameSamples int

	Mute bool
}

// Accounting records the amount of audio passed to the backend.
type Accounting struct {
	// number of stereo frames sent to the backend, including silent frames
	// sent while muted
	Frames uint64

	// number of calls to the backend's Write() function
	Writes uint64

	// number of bytes not consumed by short writes
	Dropped uint64
}

// Pipeline is the audio delivery pipeline for a playback session.
type Pipeline struct {
	env *environment.Environment

	backend   Backend
	reporter  BufferReporter
	resampler Resampler
	dsp       *dsp.Instance

	cfg    Config
	format Format
	rate   *RateController

	active      bool
	paused      bool
	mute        bool
	slowMotion  bool
	nonblocking bool

	// the current chunk size. one of the two chunk sizes in the Config
	chunkSize int

	// accumulated samples waiting to be flushed
	data    []int16
	dataPtr int

	rewind *RewindBuffer

	// working buffers, reused for every flush
	conv   []float32
	out    []float32
	outS16 []int16
	bytes  []byte

	// pre-allocated silence, used when muted
	zero []byte

	acct Accounting
}

// NewPipeline is the preferred method of initialisation for the Pipeline
// type. If backend or resampler is nil the pipeline is created but is
// inactive. An inactive pipeline accepts samples but never writes them
// anywhere.
func NewPipeline(env *environment.Environment, backend Backend, resampler Resampler, cfg Config) *Pipeline {
	if cfg.BlockChunk <= 0 {
		cfg.BlockChunk = DefaultBlockChunk
	}
	if cfg.NonblockChunk <= 0 {
		cfg.NonblockChunk = DefaultNonblockChunk
	}
	if cfg.SlowMotionRatio < 1.0 {
		cfg.SlowMotionRatio = 1.0
	}

	// chunks are made up of stereo pairs
	cfg.BlockChunk &^= 1
	cfg.NonblockChunk &^= 1
	cfg.BlockChunk = max(cfg.BlockChunk, 2)
	cfg.NonblockChunk = max(cfg.NonblockChunk, 2)

	p := &Pipeline{
		env:       env,
		backend:   backend,
		resampler: resampler,
		cfg:       cfg,
		active:    backend != nil && resampler != nil,
		mute:      cfg.Mute,
		chunkSize: cfg.BlockChunk,
	}

	maxChunk := max(cfg.BlockChunk, cfg.NonblockChunk)

	// the accumulation buffer can over-run the chunk size by one pair
	p.data = make([]int16, maxChunk+2)

	// the rewind buffer must be able to hold a full chunk that was not
	// flushed at the start of a rewind episode plus a frame's worth of
	// reversed audio
	p.rewind = NewRewindBuffer(max(cfg.NonblockChunk*2, maxChunk+2+cfg.FrameSamples))

	// the worst case size for a single flush is the size of the rewind
	// buffer
	maxIn := p.rewind.Cap()
	maxOut := int(math.Ceil(float64(maxIn) * MaxRatio * cfg.SlowMotionRatio))
	p.conv = make([]float32, 0, maxIn)
	p.out = make([]float32, 0, maxOut)

	if backend != nil && cfg.InputRate > 0 {
		if r, ok := backend.(RateReporter); ok && r.OutputRate() > 0 {
			p.cfg.OutputRate = r.OutputRate()
		}
	}

	if p.cfg.InputRate <= 0 || p.cfg.OutputRate <= 0 {
		p.active = false
		p.cfg.InputRate = max(p.cfg.InputRate, 1)
		p.cfg.OutputRate = max(p.cfg.OutputRate, 1)
	}

	p.rate = NewRateController(p.cfg.InputRate, p.cfg.OutputRate, cfg.RateControlDelta)

	if backend != nil {
		if backend.SupportsFloat() {
			p.format = FormatFloat32
		}

		if cfg.RateControl {
			if r, ok := backend.(BufferReporter); ok && r.BufferCapacity() > 0 {
				p.reporter = r
				p.rate.Enable(r.BufferCapacity())
			} else {
				logger.Log(env, "audio", "Audio rate control was desired, but driver does not support needed features.")
			}
		}

		if !cfg.Sync {
			backend.SetNonblocking(true)
			p.chunkSize = cfg.NonblockChunk
		}
	}

	p.bytes = make([]byte, 0, maxOut*p.format.BytesPerSample())
	p.outS16 = make([]int16, 0, maxOut)
	p.zero = make([]byte, maxOut*p.format.BytesPerSample())

	return p
}

// Active returns false if audio has been disabled for the session.
func (p *Pipeline) Active() bool {
	return p.active
}

// Format returns the sample format used by the backend.
func (p *Pipeline) Format() Format {
	return p.format
}

// ChunkSize returns the current chunk size in samples.
func (p *Pipeline) ChunkSize() int {
	return p.chunkSize
}

// OutputRate returns the rate of the audio sent to the backend. This is the
// rate reported by the backend if it differs from the requested rate.
func (p *Pipeline) OutputRate() float64 {
	return p.cfg.OutputRate
}

// Accounting returns the current accounting values.
func (p *Pipeline) Accounting() Accounting {
	return p.acct
}

// RateController returns the rate controller used by the pipeline.
func (p *Pipeline) RateController() *RateController {
	return p.rate
}

// InputRate returns the current input rate.
func (p *Pipeline) InputRate() float64 {
	return p.cfg.InputRate
}

// StepInputRate changes the input rate by step Hz. The resampling ratio is
// recalculated and the new input rate is returned.
func (p *Pipeline) StepInputRate(step float64) float64 {
	if p.cfg.InputRate+step > 0 {
		p.cfg.InputRate += step
	}
	p.rate.SetRates(p.cfg.InputRate, p.cfg.OutputRate)
	return p.cfg.InputRate
}

// SetDSP sets the signal processor. A nil value removes the processor.
func (p *Pipeline) SetDSP(inst *dsp.Instance) {
	p.dsp = inst
}

// DSP returns the current signal processor. May be nil.
func (p *Pipeline) DSP() *dsp.Instance {
	return p.dsp
}

// SetMute sets the mute state of the pipeline. Samples continue to be sent
// to the backend but are silent.
func (p *Pipeline) SetMute(mute bool) {
	p.mute = mute
}

// Muted returns the mute state.
func (p *Pipeline) Muted() bool {
	return p.mute
}

// SetSlowMotion sets the slow motion state. While in slow motion the
// resampling ratio is multiplied by the slow motion ratio.
func (p *Pipeline) SetSlowMotion(slow bool) {
	p.slowMotion = slow
}

// SetNonblocking is called when fast forward mode changes. In nonblocking
// mode a larger chunk size is used.
func (p *Pipeline) SetNonblocking(nonblocking bool) {
	p.nonblocking = nonblocking
	if !p.active {
		return
	}

	p.backend.SetNonblocking(nonblocking || !p.cfg.Sync)
	if nonblocking || !p.cfg.Sync {
		p.chunkSize = p.cfg.NonblockChunk
	} else {
		p.chunkSize = p.cfg.BlockChunk
	}
}

// Nonblocking returns the fast forward state of the pipeline.
func (p *Pipeline) Nonblocking() bool {
	return p.nonblocking
}

// SetPaused stops or restarts the backend. While paused, calls to Flush()
// succeed without writing anything.
func (p *Pipeline) SetPaused(paused bool) {
	if p.paused == paused {
		return
	}
	p.paused = paused

	if p.backend == nil {
		return
	}

	if paused {
		if err := p.backend.Stop(); err != nil {
			logger.Log(p.env, "audio", err)
		}
		return
	}

	if err := p.backend.Start(); err != nil {
		logger.Log(p.env, "audio", "Failed to resume audio driver. Will continue without audio.")
		p.active = false
	}
}

// Paused returns the pause state.
func (p *Pipeline) Paused() bool {
	return p.paused
}

// Sinks returns the engine sinks for the requested direction.
func (p *Pipeline) Sinks(reverse bool) engine.Sinks {
	if reverse {
		return engine.Sinks{
			Sample: p.ReverseSample,
			Batch:  p.ReverseSampleBatch,
		}
	}
	return engine.Sinks{
		Sample: p.Sample,
		Batch:  p.SampleBatch,
	}
}

// Sample adds a stereo pair to the chunk and flushes the chunk when it is
// full.
func (p *Pipeline) Sample(left int16, right int16) {
	p.data[p.dataPtr] = left
	p.data[p.dataPtr+1] = right
	p.dataPtr += 2

	if p.dataPtr < p.chunkSize {
		return
	}

	p.active = p.Flush(p.data[:p.dataPtr]) && p.active
	p.dataPtr = 0
}

// SampleBatch flushes interleaved stereo data directly to the backend. At
// most half the nonblocking chunk size is consumed in one call. The number
// of frames consumed is returned.
func (p *Pipeline) SampleBatch(data []int16) int {
	frames := min(len(data)/2, p.cfg.NonblockChunk/2)
	if frames == 0 {
		return 0
	}
	p.active = p.Flush(data[:frames*2]) && p.active
	return frames
}

// Pending returns the number of samples waiting in the current chunk.
func (p *Pipeline) Pending() int {
	return p.dataPtr
}

// Flush sends interleaved stereo data through the pipeline to the backend.
// Returns false if the backend has failed or if the pipeline is inactive.
// While paused the data is discarded and Flush() returns true.
func (p *Pipeline) Flush(data []int16) bool {
	if p.paused {
		return true
	}
	if !p.active {
		return false
	}

	p.conv = Int16ToFloat(p.conv[:0], data)
	samples := p.conv
	frames := len(data) / 2

	resample := true
	if p.dsp != nil {
		out := p.dsp.Process(samples, frames)
		if out.Samples != nil {
			samples = out.Samples[:out.Frames*2]
		}
		resample = out.ShouldResample
	}

	if resample {
		if p.reporter != nil {
			p.rate.Adjust(p.reporter.WriteAvail())
		}

		ratio := p.rate.Ratio()
		if p.slowMotion {
			ratio *= p.cfg.SlowMotionRatio
		}

		var err error
		p.out, err = p.resampler.Resample(p.out[:0], samples, ratio)
		if err != nil {
			logger.Logf(p.env, "audio", "Resampler failed: %v. Will continue without sound.", err)
			return false
		}
		samples = p.out
	}

	// silence of the same length as the data that would have been written
	var buf []byte
	if p.mute {
		n := len(samples) * p.format.BytesPerSample()
		if n > len(p.zero) {
			p.zero = make([]byte, n)
		}
		buf = p.zero[:n]
	} else if p.format == FormatFloat32 {
		p.bytes = appendFloat32(p.bytes[:0], samples)
		buf = p.bytes
	} else {
		p.outS16 = FloatToInt16(p.outS16[:0], samples)
		p.bytes = appendInt16(p.bytes[:0], p.outS16)
		buf = p.bytes
	}

	p.acct.Frames += uint64(len(samples) / 2)
	p.acct.Writes++

	n, err := p.backend.Write(buf)
	if err != nil {
		logger.Log(p.env, "audio", "Audio backend failed to write. Will continue without sound.")
		logger.Log(p.env, "audio", err)
		return false
	}
	if n < len(buf) {
		p.acct.Dropped += uint64(len(buf) - n)
	}

	return true
}

// BeginReverse is called when a rewind episode begins or continues. Samples
// waiting in the current chunk are moved to the rewind buffer.
func (p *Pipeline) BeginReverse() {
	p.rewind.Reset()
	p.rewind.Splice(p.data[:p.dataPtr])
	p.dataPtr = 0
}

// ReverseSample is the sample sink used while rewinding.
func (p *Pipeline) ReverseSample(left int16, right int16) {
	p.rewind.Push(left, right)
}

// ReverseSampleBatch is the batch sink used while rewinding.
func (p *Pipeline) ReverseSampleBatch(data []int16) int {
	p.rewind.Splice(data)
	return len(data) / 2
}

// FlushReverse sends the contents of the rewind buffer to the backend and
// empties the buffer.
func (p *Pipeline) FlushReverse() {
	if p.rewind.Len() > 0 {
		p.active = p.Flush(p.rewind.Contents()) && p.active
	}
	p.rewind.Reset()
}

// RewindBuffer returns the rewind buffer used by the pipeline.
func (p *Pipeline) RewindBuffer() *RewindBuffer {
	return p.rewind
}

// Close the pipeline and the backend, resampler and signal processor.
func (p *Pipeline) Close() error {
	if p.dsp != nil {
		p.dsp.Close()
		p.dsp = nil
	}
	if c, ok := p.resampler.(io.Closer); ok {
		if err := c.Close(); err != nil {
			logger.Log(p.env, "audio", err)
		}
	}
	p.active = false
	if p.backend != nil {
		return p.backend.Close()
	}
	return nil
}
