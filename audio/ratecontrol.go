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
	"math"
)

// MaxTimingSkew is the maximum difference between the engine's frame rate
// and the display's refresh rate for the input rate to be adjusted.
const MaxTimingSkew = 0.05

// InputRate returns the rate at which the engine's samples should be
// consumed so that audio is paced by the display rather than by the engine's
// native frame rate.
//
// If the frame rate and refresh rate differ by more than MaxTimingSkew the
// sample rate is returned unchanged and the adjusted flag is false.
func InputRate(sampleRate float64, fps float64, refresh float64) (rate float64, adjusted bool) {
	if fps <= 0 || refresh <= 0 {
		return sampleRate, false
	}
	if math.Abs(1.0-fps/refresh) > MaxTimingSkew {
		return sampleRate, false
	}
	return sampleRate * (refresh / fps), true
}

// RateController adjusts the resampling ratio according to how full the
// backend's buffer is. When the buffer is less than half full the ratio is
// increased so that more samples are produced. When the buffer is more than
// half full the ratio is decreased.
type RateController struct {
	original float64
	current  float64
	delta    float64

	// capacity of the backend buffer in bytes. zero if rate control is not
	// enabled
	capacity int
}

// NewRateController is the preferred method of initialisation for the
// RateController type. Rate control is disabled until Enable() is called.
func NewRateController(inputRate float64, outputRate float64, delta float64) *RateController {
	rc := &RateController{
		delta: delta,
	}
	rc.SetRates(inputRate, outputRate)
	return rc
}

// SetRates changes the input and output rates. The current ratio is reset to
// the new original ratio.
func (rc *RateController) SetRates(inputRate float64, outputRate float64) {
	rc.original = outputRate / inputRate
	rc.current = rc.original
}

// Enable rate control. The capacity is the size of the backend's buffer in
// bytes. A capacity of zero or less disables rate control.
func (rc *RateController) Enable(capacity int) {
	rc.capacity = max(capacity, 0)
	if rc.capacity == 0 {
		rc.current = rc.original
	}
}

// Enabled returns true if rate control has been enabled.
func (rc *RateController) Enabled() bool {
	return rc.capacity > 0
}

// Adjust the ratio according to the number of bytes available for writing
// in the backend buffer. The new ratio is returned. The ratio is not
// changed if rate control is not enabled.
func (rc *RateController) Adjust(writeAvail int) float64 {
	if rc.capacity == 0 {
		return rc.current
	}

	half := float64(rc.capacity) / 2
	direction := (float64(writeAvail) - half) / half
	rc.current = rc.original * (1.0 + rc.delta*direction)

	return rc.current
}

// Ratio returns the current ratio.
func (rc *RateController) Ratio() float64 {
	return rc.current
}

// Original returns the ratio of the output rate to the input rate.
func (rc *RateController) Original() float64 {
	return rc.original
}
