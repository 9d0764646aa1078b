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
	"sort"

	"github.com/sprocketfe/sprocket/audio"
	"github.com/sprocketfe/sprocket/curated"
)

// Sentinal errors.
const (
	UnknownResampler = "resampler: unknown resampler (%s)"
	InvalidRatio     = "resampler: invalid ratio (%f)"
)

var resamplers = map[string]func() audio.Resampler{
	"sinc":      func() audio.Resampler { return NewSinc(SincMedium) },
	"sinc-best": func() audio.Resampler { return NewSinc(SincBest) },
	"sinc-fast": func() audio.Resampler { return NewSinc(SincFast) },
	"cubic":     func() audio.Resampler { return NewCubic() },
}

// New returns the named resampler.
func New(name string) (audio.Resampler, error) {
	if f, ok := resamplers[name]; ok {
		return f(), nil
	}
	return nil, curated.Errorf(UnknownResampler, name)
}

// Names returns the sorted list of resampler names.
func Names() []string {
	n := make([]string, 0, len(resamplers))
	for k := range resamplers {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}
