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

package recorder

// Sentinal errors.
const (
	RecordingError = "recording: %v"
	PlaybackError  = "playback: %v"
)

// Log is the interface shared by the Recorder and Playback types.
type Log interface {
	// FrameStart must be called at the start of every frame, before any
	// call to StepBackward()
	FrameStart()

	// StepBackward moves the log back by one frame. It should be called when
	// the engine has been rolled back to the state of a previous frame.
	StepBackward()

	// Frame returns the current frame number of the log
	Frame() int
}

// cursor is the frame position shared by recordings and playbacks.
//
// When the engine is rolled back, the first frame of a rewind episode is a
// replay of the previous frame so the cursor steps back by one. On
// subsequent frames of the episode, the frame that has just been replayed has
// moved the cursor forward again, so the cursor steps back by two.
type cursor struct {
	frame       int
	didRewind   bool
	firstRewind bool
}

func (c *cursor) FrameStart() {
	c.firstRewind = !c.didRewind
	c.didRewind = false
}

func (c *cursor) StepBackward() {
	step := 2
	if c.firstRewind {
		step = 1
	}
	c.frame = max(c.frame-step, 0)
	c.didRewind = true
}

func (c *cursor) Frame() int {
	return c.frame
}
