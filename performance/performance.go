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

package performance

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// sentinal error returned by the runner when the duration has elapsed.
var timedOut = errors.New("performance timed out")

// Iterator is implemented by the playback session.
type Iterator interface {
	// Iterate runs a single iteration of the session. Returns false if the
	// session should end
	Iterate() (bool, error)

	// the number of frames that have been run by the session
	Frames() uint64
}

// Check the performance of the session by running it for the specified
// duration, after a two second leadtime.
//
// The session will run for the specified duration and will create a cpu,
// memory profile, a trace (or a combination of those) as defined by the
// Profile argument. The expected frame rate is used to calculate the
// accuracy of the measured frame rate.
func Check(output io.Writer, profile Profile, it Iterator, expected float64, duration string) error {
	// parse supplied duration
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	var startFrame uint64

	runner := func() error {
		// force a two second leadtime to allow framerate to settle down
		leadtime := time.Now().Add(2 * time.Second)
		measuring := false

		var end time.Time

		for {
			ok, err := it.Iterate()
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}

			now := time.Now()
			if !measuring {
				if now.After(leadtime) {
					measuring = true
					startFrame = it.Frames()
					end = now.Add(dur)
				}
			} else if now.After(end) {
				return timedOut
			}
		}
	}

	// launch runner directly or through the profiler, depending on supplied
	// arguments
	err = RunProfiler(profile, "performance", runner)
	if err != nil && !errors.Is(err, timedOut) {
		return fmt.Errorf("performance: %w", err)
	}

	// calculate performance
	numFrames := it.Frames() - startFrame
	fps, accuracy := CalcFPS(expected, numFrames, dur.Seconds())
	output.Write([]byte(fmt.Sprintf("%.2f fps (%d frames in %.2f seconds) %.1f%%\n", fps, numFrames, dur.Seconds(), accuracy)))

	return nil
}
