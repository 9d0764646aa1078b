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
	"github.com/sprocketfe/sprocket/curated"
)

// Cubic is a Catmull-Rom interpolating resampler for interleaved stereo
// data. Input frames are carried between calls so that there are no
// discontinuities at chunk boundaries. This means that output lags input by
// two frames.
type Cubic struct {
	// carried frames followed by the most recent input
	buf []float32

	// read position in frames relative to the start of buf. always at least
	// one so that there is a frame before the current position
	pos float64
}

// NewCubic is the preferred method of initialisation for the Cubic type.
func NewCubic() *Cubic {
	return &Cubic{}
}

// Resample implements the audio.Resampler interface.
func (c *Cubic) Resample(dst []float32, src []float32, ratio float64) ([]float32, error) {
	if ratio <= 0 {
		return dst, curated.Errorf(InvalidRatio, ratio)
	}

	src = src[:len(src)&^1]
	if len(src) == 0 {
		return dst, nil
	}

	// nothing is carried so a ratio of one can be copied directly
	if ratio == 1.0 && len(c.buf) == 0 {
		return append(dst, src...), nil
	}

	if len(c.buf) == 0 {
		// first frame is duplicated to act as the frame before the start
		c.buf = append(c.buf, src[0], src[1])
		c.pos = 1
	}
	c.buf = append(c.buf, src...)

	frames := len(c.buf) / 2
	step := 1.0 / ratio

	for {
		i := int(c.pos)
		if i+2 >= frames {
			break
		}

		t := float32(c.pos - float64(i))
		for ch := range 2 {
			dst = append(dst, catmullRom(
				c.buf[(i-1)*2+ch],
				c.buf[i*2+ch],
				c.buf[(i+1)*2+ch],
				c.buf[(i+2)*2+ch],
				t))
		}

		c.pos += step
	}

	// drop frames no longer needed
	if drop := int(c.pos) - 1; drop > 0 {
		n := copy(c.buf, c.buf[drop*2:])
		c.buf = c.buf[:n]
		c.pos -= float64(drop)
	}

	return dst, nil
}

// Reset discards carried frames.
func (c *Cubic) Reset() {
	c.buf = c.buf[:0]
	c.pos = 0
}

func catmullRom(y0, y1, y2, y3, t float32) float32 {
	a := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	b := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	c := -0.5*y0 + 0.5*y2
	return ((a*t+b)*t+c)*t + y1
}
