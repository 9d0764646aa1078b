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

package resampler

import (
	"math"

	"github.com/dh1tw/gosamplerate"
	"github.com/sprocketfe/sprocket/curated"
)

// SincQuality selects the libsamplerate converter.
type SincQuality int

// List of valid SincQuality values.
const (
	SincBest   = SincQuality(gosamplerate.SRC_SINC_BEST_QUALITY)
	SincMedium = SincQuality(gosamplerate.SRC_SINC_MEDIUM_QUALITY)
	SincFast   = SincQuality(gosamplerate.SRC_SINC_FASTEST)
)

// SincError is the pattern of errors returned by libsamplerate.
const SincError = "resampler: sinc: %v"

// length in samples of the converter's input and output buffers
const sincBufferLen = 8192

// Sinc is a band limited resampler using libsamplerate. The converter is
// created on the first call to Resample() and keeps its filter state between
// calls, so that consecutive chunks are treated as one stream. Close() must
// be called to release the converter.
type Sinc struct {
	quality SincQuality
	src     gosamplerate.Src
	open    bool
}

// NewSinc is the preferred method of initialisation for the Sinc type.
func NewSinc(quality SincQuality) *Sinc {
	return &Sinc{quality: quality}
}

// Resample implements the audio.Resampler interface.
func (s *Sinc) Resample(dst []float32, src []float32, ratio float64) ([]float32, error) {
	if ratio <= 0 {
		return dst, curated.Errorf(InvalidRatio, ratio)
	}

	src = src[:len(src)&^1]
	if len(src) == 0 {
		return dst, nil
	}

	if !s.open {
		var err error
		s.src, err = gosamplerate.New(int(s.quality), 2, sincBufferLen)
		if err != nil {
			return dst, curated.Errorf(SincError, err)
		}
		s.open = true
	}

	// input that would produce more output than the output buffer can hold
	// is not consumed by the converter. the input is fed in pieces small
	// enough for the output to always fit
	piece := (sincBufferLen / (int(math.Ceil(ratio)) + 1)) &^ 1
	if piece < 2 {
		return dst, curated.Errorf(InvalidRatio, ratio)
	}

	for len(src) > 0 {
		n := min(piece, len(src))
		out, err := s.src.Process(src[:n], ratio, false)
		if err != nil {
			return dst, curated.Errorf(SincError, err)
		}
		dst = append(dst, out...)
		src = src[n:]
	}

	return dst, nil
}

// Close releases the converter. Implements the io.Closer interface.
func (s *Sinc) Close() error {
	if !s.open {
		return nil
	}
	s.open = false
	if err := gosamplerate.Delete(s.src); err != nil {
		return curated.Errorf(SincError, err)
	}
	return nil
}
