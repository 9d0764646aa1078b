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

import (
	"fmt"
	"os"

	"github.com/sprocketfe/sprocket/curated"
	"github.com/sprocketfe/sprocket/engine"
)

// Playback is used to reperform the user input recorded in a previously
// recorded file.
type Playback struct {
	cursor

	transcript string
	hdr        header
	frames     []engine.Input
}

func (plb *Playback) String() string {
	if len(plb.frames) == 0 {
		return "0/0"
	}
	return fmt.Sprintf("%d/%d (%.1f%%)", plb.frame, len(plb.frames), 100*(float64(plb.frame)/float64(len(plb.frames))))
}

// NewPlayback is the preferred method of initialisation for the Playback
// type.
func NewPlayback(transcript string) (*Playback, error) {
	plb := &Playback{
		transcript: transcript,
	}

	tf, err := os.Open(transcript)
	if err != nil {
		return nil, curated.Errorf(PlaybackError, err)
	}
	defer tf.Close()

	plb.hdr, plb.frames, err = readRecording(tf)
	if err != nil {
		return nil, err
	}

	return plb, nil
}

// AttachToEngine checks that the recording was made with the engine and then
// restores the start state of the recording.
func (plb *Playback) AttachToEngine(eng engine.Engine) error {
	if eng.ID() != plb.hdr.engineID {
		return curated.Errorf(PlaybackError, fmt.Sprintf("recording was made with %s. trying to playback with %s", plb.hdr.engineID, eng.ID()))
	}
	if eng.SerializeSize() != len(plb.hdr.state) {
		return curated.Errorf(PlaybackError, "start state is the wrong size")
	}
	if err := eng.Unserialize(plb.hdr.state); err != nil {
		return curated.Errorf(PlaybackError, err)
	}
	plb.frame = 0
	return nil
}

// GetInput returns the input for the current frame and advances to the next
// frame. Returns false if the playback has ended.
func (plb *Playback) GetInput() (engine.Input, bool) {
	if plb.EndFrame() {
		return 0, false
	}
	in := plb.frames[plb.frame]
	plb.frame++
	return in, true
}

// EndFrame returns true if the playback has gone past the last recorded
// frame.
func (plb *Playback) EndFrame() bool {
	return plb.frame >= len(plb.frames)
}

// Len returns the number of frames in the playback.
func (plb *Playback) Len() int {
	return len(plb.frames)
}
