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

package resampler_test

import (
	"io"
	"math"
	"testing"

	"github.com/sprocketfe/sprocket/audio"
	"github.com/sprocketfe/sprocket/curated"
	"github.com/sprocketfe/sprocket/resampler"
	"github.com/sprocketfe/sprocket/test"
)

func TestNames(t *testing.T) {
	n := resampler.Names()
	test.DemandEquality(t, len(n), 4)
	test.ExpectEquality(t, n[0], "cubic")
	test.ExpectEquality(t, n[1], "sinc")

	for _, name := range n {
		r, err := resampler.New(name)
		test.ExpectSuccess(t, err)
		test.ExpectInequality(t, r, nil)
	}

	_, err := resampler.New("nearest")
	test.ExpectSuccess(t, curated.Is(err, resampler.UnknownResampler))
}

func TestCubicUnity(t *testing.T) {
	c := resampler.NewCubic()

	src := []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3}
	out, err := c.Resample(nil, src, 1.0)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(out), len(src))
	for i := range src {
		test.ExpectEquality(t, out[i], src[i])
	}
}

func TestCubicUpsample(t *testing.T) {
	c := resampler.NewCubic()

	src := make([]float32, 200)
	for i := range src {
		src[i] = 0.25
	}

	out, err := c.Resample(nil, src, 2.0)
	test.DemandSuccess(t, err)

	// two frames are held back for interpolation
	test.ExpectEquality(t, len(out), 2*2*(100-2))

	// constant input produces constant output
	for _, s := range out {
		test.ExpectApproximate(t, s, 0.25, 0.0001)
	}

	// the held back frames are used by the next call
	out, err = c.Resample(out[:0], src, 2.0)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(out), 2*2*100)
}

func TestCubicInvalidRatio(t *testing.T) {
	c := resampler.NewCubic()
	_, err := c.Resample(nil, []float32{0, 0}, 0)
	test.ExpectSuccess(t, curated.Is(err, resampler.InvalidRatio))

	s := resampler.NewSinc(resampler.SincFast)
	_, err = s.Resample(nil, []float32{0, 0}, -1)
	test.ExpectSuccess(t, curated.Is(err, resampler.InvalidRatio))
}

// a stereo sine wave of the given number of frames
func sine(frames int) []float32 {
	d := make([]float32, frames*2)
	for i := range frames {
		v := float32(0.5 * math.Sin(float64(i)*2*math.Pi/50))
		d[i*2] = v
		d[i*2+1] = -v
	}
	return d
}

func TestChunkedResampling(t *testing.T) {
	src := sine(1000)

	for _, name := range resampler.Names() {
		whole, err := resampler.New(name)
		test.DemandSuccess(t, err, name)
		split, err := resampler.New(name)
		test.DemandSuccess(t, err, name)

		a, err := whole.Resample(nil, src, 2.0)
		test.DemandSuccess(t, err, name)

		// the same stream delivered in uneven chunks
		var b []float32
		rest := src
		for _, n := range []int{64, 2, 500, 434, 1000} {
			b, err = split.Resample(b, rest[:n], 2.0)
			test.DemandSuccess(t, err, name)
			rest = rest[n:]
		}
		test.DemandEquality(t, len(rest), 0)

		test.ExpectInequality(t, len(a), 0, name)
		test.ExpectEquality(t, len(b)%2, 0, name)

		// the samples are values either side of zero so the difference is
		// compared directly
		for i := range min(len(a), len(b)) {
			if !test.ExpectSuccess(t, math.Abs(float64(b[i]-a[i])) < 0.0001, name, i) {
				break
			}
		}

		for _, r := range []audio.Resampler{whole, split} {
			if c, ok := r.(io.Closer); ok {
				test.ExpectSuccess(t, c.Close(), name)
			}
		}
	}
}
