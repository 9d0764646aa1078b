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

// Package limiter provides a rough and ready way of limiting events to a fixed
// rate.
//
// A new FpsLimiter can be created with:
//
//	lim := limiter.NewFPSLimiter(60)
//
// Operations can then be stalled with the Wait() function. For example:
//
//	for {
//		lim.Wait()
//		runFrame()
//	}
//
// The playback session uses the limiter when nothing else is pacing the
// frames, which is the case when audio is disabled.
package limiter

import (
	"time"
)

// if the limiter falls behind by more than this number of frames the
// deadline is reset rather than trying to catch up
const maxLag = 4

// FpsLimiter will trigger every frames per second.
type FpsLimiter struct {
	framesPerSecond float64
	secondsPerFrame time.Duration

	// the time at which the next call to Wait() will return
	deadline time.Time
}

// NewFPSLimiter is the preferred method of initialisation for FpsLimiter type.
func NewFPSLimiter(framesPerSecond float64) *FpsLimiter {
	lim := &FpsLimiter{}
	lim.SetLimit(framesPerSecond)
	lim.Reset()
	return lim
}

// SetLimit changes the limit at which the FpsLimiter waits. A limit of zero
// or less means that Wait() never waits.
func (lim *FpsLimiter) SetLimit(framesPerSecond float64) {
	lim.framesPerSecond = framesPerSecond
	if framesPerSecond <= 0 {
		lim.secondsPerFrame = 0
		return
	}
	lim.secondsPerFrame = time.Duration(float64(time.Second) / framesPerSecond)
}

// Limit returns the current limit.
func (lim *FpsLimiter) Limit() float64 {
	return lim.framesPerSecond
}

// Reset the deadline. Should be called after a period in which Wait() has
// not been called, for example after a pause.
func (lim *FpsLimiter) Reset() {
	lim.deadline = time.Now().Add(lim.secondsPerFrame)
}

// Wait will block until trigger.
func (lim *FpsLimiter) Wait() {
	if lim.secondsPerFrame == 0 {
		return
	}

	now := time.Now()
	if d := lim.deadline.Sub(now); d > 0 {
		time.Sleep(d)
	} else if -d > lim.secondsPerFrame*maxLag {
		lim.deadline = now
	}

	lim.deadline = lim.deadline.Add(lim.secondsPerFrame)
}

// HasWaited will return true if time has already elapsed and false it it is
// still yet to happen.
func (lim *FpsLimiter) HasWaited() bool {
	return !time.Now().Before(lim.deadline)
}
