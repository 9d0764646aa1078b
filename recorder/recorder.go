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
	"os"

	"github.com/sprocketfe/sprocket/curated"
	"github.com/sprocketfe/sprocket/engine"
)

// Recorder records per-frame input. The recording is written to disk when
// End() is called.
type Recorder struct {
	cursor

	filename string
	hdr      header
	frames   []engine.Input
}

// NewRecorder is the preferred method of initialisation for the Recorder
// type. The current state of the engine is used as the start state of the
// recording.
func NewRecorder(filename string, eng engine.Engine) (*Recorder, error) {
	rec := &Recorder{
		filename: filename,
		hdr: header{
			engineID: eng.ID(),
			state:    make([]byte, eng.SerializeSize()),
		},
	}

	if err := eng.Serialize(rec.hdr.state); err != nil {
		return nil, curated.Errorf(RecordingError, err)
	}

	// check that we can create the file before recording starts
	f, err := os.Create(filename)
	if err != nil {
		return nil, curated.Errorf(RecordingError, err)
	}
	if err := f.Close(); err != nil {
		return nil, curated.Errorf(RecordingError, err)
	}

	return rec, nil
}

// Filename returns the name of the recording file.
func (rec *Recorder) Filename() string {
	return rec.filename
}

// Record the input for the current frame and advance to the next frame. Any
// frames after the current frame, left over from before a rewind, are
// discarded.
func (rec *Recorder) Record(input engine.Input) {
	rec.frames = append(rec.frames[:rec.frame], input)
	rec.frame++
}

// Len returns the number of frames in the recording.
func (rec *Recorder) Len() int {
	return rec.frame
}

// End the recording and write it to disk.
func (rec *Recorder) End() (rerr error) {
	f, err := os.Create(rec.filename)
	if err != nil {
		return curated.Errorf(RecordingError, err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf(RecordingError, err)
		}
	}()

	return writeRecording(f, rec.hdr, rec.frames[:rec.frame])
}
