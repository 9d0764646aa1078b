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

package recorder_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sprocketfe/sprocket/curated"
	"github.com/sprocketfe/sprocket/engine"
	"github.com/sprocketfe/sprocket/engine/tone"
	"github.com/sprocketfe/sprocket/recorder"
	"github.com/sprocketfe/sprocket/test"
)

func TestRecordAndPlayback(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "movie")

	eng := tone.NewTone()
	eng.SetInput(engine.ButtonUp)
	test.DemandSuccess(t, eng.Run())
	test.ExpectEquality(t, eng.Pitch(), 1)

	rec, err := recorder.NewRecorder(fn, eng)
	test.DemandSuccess(t, err)

	inputs := []engine.Input{0, engine.ButtonUp, 0, engine.ButtonUp, engine.ButtonA}
	for _, in := range inputs {
		rec.FrameStart()
		rec.Record(in)
		eng.SetInput(in)
		test.DemandSuccess(t, eng.Run())
	}
	test.ExpectEquality(t, rec.Len(), 5)
	test.ExpectEquality(t, eng.Pitch(), 3)
	test.DemandSuccess(t, rec.End())

	plb, err := recorder.NewPlayback(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, plb.Len(), 5)

	// playback restores the start state of the recording
	eng = tone.NewTone()
	test.DemandSuccess(t, plb.AttachToEngine(eng))
	test.ExpectEquality(t, eng.Pitch(), 1)

	for i := range inputs {
		plb.FrameStart()
		in, ok := plb.GetInput()
		test.DemandSuccess(t, ok)
		test.ExpectEquality(t, in, inputs[i])
		eng.SetInput(in)
		test.DemandSuccess(t, eng.Run())
	}
	test.ExpectEquality(t, eng.Pitch(), 3)

	_, ok := plb.GetInput()
	test.ExpectFailure(t, ok)
	test.ExpectSuccess(t, plb.EndFrame())
}

func TestStepBackward(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "movie")

	rec, err := recorder.NewRecorder(fn, tone.NewTone())
	test.DemandSuccess(t, err)

	for i := range 10 {
		rec.FrameStart()
		rec.Record(engine.Input(i))
	}
	test.ExpectEquality(t, rec.Frame(), 10)

	// the first frame of a rewind steps back by one frame
	rec.FrameStart()
	rec.StepBackward()
	test.ExpectEquality(t, rec.Frame(), 9)
	rec.Record(100)

	// consecutive rewind frames step back by two frames
	rec.FrameStart()
	rec.StepBackward()
	test.ExpectEquality(t, rec.Frame(), 8)
	rec.Record(101)

	// rewind ends
	rec.FrameStart()
	rec.Record(102)
	test.ExpectEquality(t, rec.Frame(), 10)

	// and starts again
	rec.FrameStart()
	rec.StepBackward()
	test.ExpectEquality(t, rec.Frame(), 9)

	// the cursor never goes below zero
	for range 20 {
		rec.FrameStart()
		rec.StepBackward()
	}
	test.ExpectEquality(t, rec.Frame(), 0)
}

func TestPlaybackErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := recorder.NewPlayback(filepath.Join(dir, "missing"))
	test.ExpectSuccess(t, curated.Is(err, recorder.PlaybackError))

	bad := filepath.Join(dir, "bad")
	test.DemandSuccess(t, os.WriteFile(bad, []byte("not a recording\n"), 0o600))
	_, err = recorder.NewPlayback(bad)
	test.ExpectFailure(t, err)

	seq := filepath.Join(dir, "sequence")
	test.DemandSuccess(t, os.WriteFile(seq, []byte("sprocket input recording\ntone\nAAAA\n0, 0001\n2, 0000\n"), 0o600))
	_, err = recorder.NewPlayback(seq)
	test.ExpectFailure(t, err)

	// recording made with a different engine
	fn := filepath.Join(dir, "movie")
	rec, err := recorder.NewRecorder(fn, tone.NewTone())
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, rec.End())

	plb, err := recorder.NewPlayback(fn)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, plb.EndFrame())

	wrong := &otherEngine{Tone: tone.NewTone()}
	test.ExpectFailure(t, plb.AttachToEngine(wrong))
}

type otherEngine struct {
	*tone.Tone
}

func (o *otherEngine) ID() string {
	return "other"
}
