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

package playmode_test

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sprocketfe/sprocket/audio"
	"github.com/sprocketfe/sprocket/database"
	"github.com/sprocketfe/sprocket/digest"
	"github.com/sprocketfe/sprocket/dsp"
	"github.com/sprocketfe/sprocket/engine"
	"github.com/sprocketfe/sprocket/engine/tone"
	"github.com/sprocketfe/sprocket/environment"
	"github.com/sprocketfe/sprocket/notifications"
	"github.com/sprocketfe/sprocket/playmode"
	"github.com/sprocketfe/sprocket/prefs"
	"github.com/sprocketfe/sprocket/test"
	"github.com/sprocketfe/sprocket/userinput"
)

// backend collects everything written to it.
type backend struct {
	test.PCMWriter
	nonblocking bool
	started     int
	stopped     int
	closed      bool
}

func (b *backend) SetNonblocking(nonblocking bool) {
	b.nonblocking = nonblocking
}

func (b *backend) SupportsFloat() bool {
	return false
}

func (b *backend) Start() error {
	b.started++
	return nil
}

func (b *backend) Stop() error {
	b.stopped++
	return nil
}

func (b *backend) Close() error {
	b.closed = true
	return nil
}

// script is an input source that returns one state per poll. polls after
// the end of the script return an empty state.
type script struct {
	states []userinput.State
	poll   int
}

func (s *script) Poll() (userinput.State, error) {
	if s.poll >= len(s.states) {
		return userinput.State{}, nil
	}
	st := s.states[s.poll]
	s.poll++
	return st, nil
}

// add n copies of the state to the script.
func (s *script) add(st userinput.State, n int) {
	for range n {
		s.states = append(s.states, st)
	}
}

func hotkeys(h ...userinput.Hotkey) userinput.State {
	var st userinput.State
	for _, k := range h {
		st.Set(k, true)
	}
	return st
}

func buttons(in engine.Input) userinput.State {
	return userinput.State{Input: in}
}

func writePrefs(t *testing.T, values ...string) string {
	t.Helper()
	pth := filepath.Join(t.TempDir(), "preferences")
	s := strings.Builder{}
	s.WriteString(prefs.WarningBoilerPlate)
	s.WriteString("\n")
	for _, v := range values {
		s.WriteString(v)
		s.WriteString("\n")
	}
	test.DemandSuccess(t, os.WriteFile(pth, []byte(s.String()), 0o600))
	return pth
}

// standard preferences for session tests. the rewind buffer is large enough
// for 100 tone states
var sessionPrefs = []string{
	"audio.resampler :: cubic",
	"rewind.enable :: true",
	"rewind.buffersize :: 2400",
	"rewind.granularity :: 1",
}

type fixture struct {
	sess    *playmode.Session
	tone    *tone.Tone
	backend *backend
	input   *script
}

func newFixture(t *testing.T, cfg playmode.Config) *fixture {
	t.Helper()

	f := &fixture{
		tone:    tone.NewTone(),
		backend: &backend{},
		input:   &script{},
	}

	if cfg.PrefsFile == "" {
		cfg.PrefsFile = writePrefs(t, sessionPrefs...)
	}
	cfg.Engine = f.tone
	cfg.Input = f.input
	if cfg.Backend == nil {
		cfg.Backend = f.backend
	}

	var err error
	f.sess, err = playmode.NewSession(cfg)
	test.DemandSuccess(t, err)

	return f
}

// iterate the session once for every state in the script.
func (f *fixture) run(t *testing.T) {
	t.Helper()
	for f.input.poll < len(f.input.states) {
		ok, err := f.sess.Iterate()
		test.DemandSuccess(t, err)
		test.DemandSuccess(t, ok)
	}
}

func startDatabase(t *testing.T) *database.Session {
	t.Helper()
	db, err := database.StartSession(filepath.Join(t.TempDir(), database.DefaultDatabaseFile))
	test.DemandSuccess(t, err)
	t.Cleanup(func() { db.EndSession() })
	return db
}

func TestFastForward(t *testing.T) {
	var ff playmode.FastForward

	test.ExpectFailure(t, ff.Update(false, false))
	test.ExpectFailure(t, ff.Desynced())

	// toggle is latched on the press and not on the release
	test.ExpectSuccess(t, ff.Update(true, false))
	test.ExpectSuccess(t, ff.Desynced())
	test.ExpectFailure(t, ff.Update(true, false))
	test.ExpectFailure(t, ff.Update(false, false))
	test.ExpectSuccess(t, ff.Desynced())

	test.ExpectSuccess(t, ff.Update(true, false))
	test.ExpectFailure(t, ff.Desynced())
	test.ExpectFailure(t, ff.Update(false, false))
	test.ExpectFailure(t, ff.Desynced())

	// hold on its own
	test.ExpectSuccess(t, ff.Update(false, true))
	test.ExpectSuccess(t, ff.Desynced())
	test.ExpectFailure(t, ff.Update(false, true))
	test.ExpectSuccess(t, ff.Update(false, false))
	test.ExpectFailure(t, ff.Desynced())
}

func TestFastForwardToggleDuringHold(t *testing.T) {
	var ff playmode.FastForward

	// press, release, press of the toggle while hold is held throughout
	test.ExpectSuccess(t, ff.Update(false, true))
	for i, toggle := range []bool{true, false, true} {
		test.ExpectFailure(t, ff.Update(toggle, true), i)
		test.ExpectSuccess(t, ff.Desynced(), i)
	}

	// two flips of the latch leave it unset. releasing hold reverts to it
	test.ExpectSuccess(t, ff.Update(false, false))
	test.ExpectFailure(t, ff.Desynced())

	// a single flip during hold leaves the latch set
	test.ExpectSuccess(t, ff.Update(false, true))
	test.ExpectFailure(t, ff.Update(true, true))
	test.ExpectSuccess(t, ff.Desynced())
	test.ExpectFailure(t, ff.Update(false, false))
	test.ExpectSuccess(t, ff.Desynced())

	// hold with the latch set changes nothing
	test.ExpectFailure(t, ff.Update(false, true))
	test.ExpectSuccess(t, ff.Desynced())
	test.ExpectFailure(t, ff.Update(false, false))
	test.ExpectSuccess(t, ff.Desynced())
}

// unserializable is an engine that cannot save its state.
type unserializable struct {
	*tone.Tone
}

func (unserializable) Serialize(_ []byte) error {
	return errors.New("cannot serialize")
}

func TestRewindWithUnserializableEngine(t *testing.T) {
	tn := tone.NewTone()
	input := &script{}
	input.add(userinput.State{}, 3)
	input.add(hotkeys(userinput.Rewind), 2)

	sess, err := playmode.NewSession(playmode.Config{
		Engine:    unserializable{tn},
		Input:     input,
		Backend:   &backend{},
		PrefsFile: writePrefs(t, sessionPrefs...),
	})
	test.DemandSuccess(t, err)
	defer sess.End()

	test.ExpectFailure(t, sess.Rewind().Enabled())

	// frames continue to run forwards
	for range 5 {
		ok, err := sess.Iterate()
		test.DemandSuccess(t, err)
		test.DemandSuccess(t, ok)
	}
	test.ExpectFailure(t, sess.Rewind().Reversed())
	test.ExpectEquality(t, tn.Frame(), uint64(5))
}

// ratedBackend opens the device at a rate of its own choosing.
type ratedBackend struct {
	backend
	rate float64
}

func (b *ratedBackend) OutputRate() float64 {
	return b.rate
}

// passProcessor leaves the samples unchanged.
type passProcessor struct{}

func (passProcessor) Process(samples []float32, frames int) dsp.Output {
	return dsp.Output{Samples: samples, Frames: frames, ShouldResample: true}
}

func (passProcessor) Close() {}

func TestDSPOutputRate(t *testing.T) {
	var info dsp.Info
	dsp.Register("test-rate", func() *dsp.Plugin {
		return &dsp.Plugin{
			Ident:      "test rate",
			APIVersion: dsp.APIVersion,
			Init: func(i dsp.Info) (dsp.Processor, error) {
				info = i
				return passProcessor{}, nil
			},
		}
	})

	p := append([]string{"audio.outrate :: 48000", "audio.dsp :: builtin:test-rate"}, sessionPrefs...)
	f := newFixture(t, playmode.Config{
		PrefsFile: writePrefs(t, p...),
		Backend:   &ratedBackend{rate: 44100},
	})
	defer f.sess.End()

	test.DemandSuccess(t, f.sess.Pipeline().DSP() != nil)
	test.ExpectEquality(t, info.OutputRate, 44100.0)
	test.ExpectEquality(t, info.InputRate, f.sess.Pipeline().InputRate())
}

func TestRewindControlDisabled(t *testing.T) {
	env := environment.NewEnvironment(environment.MainSession, notifications.NewQueue())
	tn := tone.NewTone()
	pipeline := audio.NewPipeline(env, nil, nil, audio.Config{})

	rc := playmode.NewRewindControl(env, tn, pipeline, nil, 1)
	test.ExpectFailure(t, rc.Enabled())
	test.ExpectEquality(t, rc.Timeline() == nil, true)

	for range 3 {
		rc.Check(false, false, false)
		test.DemandSuccess(t, tn.Run())
	}
	rc.Check(true, false, false)
	test.ExpectFailure(t, rc.Reversed())
	test.ExpectEquality(t, tn.Frame(), uint64(3))
}

func TestRewind(t *testing.T) {
	f := newFixture(t, playmode.Config{})
	defer f.sess.End()

	test.DemandSuccess(t, f.sess.Rewind().Enabled())

	f.input.add(userinput.State{}, 4)
	f.input.add(buttons(engine.ButtonA), 1)
	f.input.add(userinput.State{}, 5)
	f.run(t)

	// the first frame is never pushed to the timeline
	test.ExpectEquality(t, f.tone.Frame(), uint64(10))
	test.ExpectEquality(t, f.sess.Rewind().Timeline().Len(), 9)
	test.ExpectEquality(t, binary.LittleEndian.Uint16(f.tone.SaveMemory()[2:]), uint16(1))

	// the first rewind frame replays the most recent frame
	f.input.add(hotkeys(userinput.Rewind), 1)
	f.run(t)
	test.ExpectEquality(t, f.tone.Frame(), uint64(10))
	test.ExpectEquality(t, f.sess.Rewind().Timeline().Len(), 8)
	test.ExpectSuccess(t, f.sess.Rewind().Reversed())
	test.ExpectEquality(t, f.sess.Notice(), notifications.NotifyRewinding)

	f.input.add(hotkeys(userinput.Rewind), 1)
	f.run(t)
	test.ExpectEquality(t, f.tone.Frame(), uint64(9))
	test.ExpectEquality(t, f.sess.Rewind().Timeline().Len(), 7)

	// releasing rewind resumes forward play from the rewound state
	f.input.add(userinput.State{}, 1)
	f.run(t)
	test.ExpectFailure(t, f.sess.Rewind().Reversed())
	test.ExpectEquality(t, f.tone.Frame(), uint64(10))
	test.ExpectEquality(t, f.sess.Rewind().Timeline().Len(), 8)

	// rewind past the frame in which save memory was written
	f.input.add(hotkeys(userinput.Rewind), 8)
	f.run(t)
	test.ExpectEquality(t, f.tone.Frame(), uint64(2))
	test.ExpectEquality(t, f.sess.Rewind().Timeline().Len(), 0)
	test.ExpectEquality(t, binary.LittleEndian.Uint16(f.tone.SaveMemory()[2:]), uint16(1))

	// nothing left to rewind. the frame runs forward
	f.input.add(hotkeys(userinput.Rewind), 1)
	f.run(t)
	test.ExpectFailure(t, f.sess.Rewind().Reversed())
	test.ExpectEquality(t, f.sess.Notice(), notifications.NotifyRewindEnd)
	test.ExpectEquality(t, f.tone.Frame(), uint64(3))

	// reversed audio reached the backend
	test.ExpectInequality(t, f.backend.Len(), 0)
}

func TestRewindGranularity(t *testing.T) {
	pth := writePrefs(t,
		"audio.resampler :: cubic",
		"rewind.enable :: true",
		"rewind.buffersize :: 2400",
		"rewind.granularity :: 3",
	)
	f := newFixture(t, playmode.Config{PrefsFile: pth})
	defer f.sess.End()

	f.input.add(userinput.State{}, 10)
	f.run(t)
	test.ExpectEquality(t, f.sess.Rewind().Timeline().Len(), 3)
}

func TestPause(t *testing.T) {
	f := newFixture(t, playmode.Config{})
	defer f.sess.End()

	f.input.add(userinput.State{}, 2)
	f.input.add(hotkeys(userinput.Pause), 1)
	f.input.add(userinput.State{}, 3)
	f.run(t)

	test.ExpectSuccess(t, f.sess.Paused())
	test.ExpectEquality(t, f.tone.Frame(), uint64(2))
	test.ExpectEquality(t, f.sess.Notice(), notifications.NotifyPaused)
	test.ExpectEquality(t, f.backend.stopped, 1)

	// frame advance runs exactly one frame
	f.input.add(hotkeys(userinput.FrameAdvance), 3)
	f.run(t)
	test.ExpectSuccess(t, f.sess.Paused())
	test.ExpectEquality(t, f.tone.Frame(), uint64(3))

	f.input.add(hotkeys(userinput.Pause), 1)
	f.input.add(userinput.State{}, 1)
	f.run(t)
	test.ExpectFailure(t, f.sess.Paused())
	test.ExpectEquality(t, f.backend.started, 1)
	test.ExpectEquality(t, f.tone.Frame(), uint64(5))

	// frame advance while running pauses the session
	f.input.add(hotkeys(userinput.FrameAdvance), 1)
	f.run(t)
	test.ExpectSuccess(t, f.sess.Paused())
}

func TestFastForwardSession(t *testing.T) {
	f := newFixture(t, playmode.Config{})
	defer f.sess.End()

	f.input.add(hotkeys(userinput.FastForwardToggle), 1)
	f.run(t)
	test.ExpectSuccess(t, f.sess.FastForwarding())
	test.ExpectSuccess(t, f.backend.nonblocking)
	test.ExpectEquality(t, f.sess.Pipeline().ChunkSize(), audio.DefaultNonblockChunk)

	f.input.add(userinput.State{}, 1)
	f.input.add(hotkeys(userinput.FastForwardToggle), 1)
	f.run(t)
	test.ExpectFailure(t, f.sess.FastForwarding())
	test.ExpectFailure(t, f.backend.nonblocking)
	test.ExpectEquality(t, f.sess.Pipeline().ChunkSize(), audio.DefaultBlockChunk)

	f.input.add(hotkeys(userinput.FastForwardHold), 2)
	f.run(t)
	test.ExpectSuccess(t, f.sess.FastForwarding())

	f.input.add(userinput.State{}, 1)
	f.run(t)
	test.ExpectFailure(t, f.sess.FastForwarding())
}

func TestMuteAndInputRate(t *testing.T) {
	f := newFixture(t, playmode.Config{})
	defer f.sess.End()

	f.input.add(hotkeys(userinput.Mute), 1)
	f.run(t)
	test.ExpectSuccess(t, f.sess.Pipeline().Muted())
	test.ExpectEquality(t, f.sess.Notice(), notifications.NotifyMuted)

	f.input.add(userinput.State{}, 1)
	f.input.add(hotkeys(userinput.Mute), 1)
	f.run(t)
	test.ExpectFailure(t, f.sess.Pipeline().Muted())

	rate := f.sess.Pipeline().InputRate()
	f.input.add(hotkeys(userinput.RatePlus), 2)
	f.run(t)
	test.ExpectApproximate(t, f.sess.Pipeline().InputRate(), rate+0.5, 0.0001)
	test.ExpectEquality(t, f.sess.Notice(),
		notifications.Notice(fmt.Sprintf(string(notifications.NotifyInputRate), rate+0.5)))

	f.input.add(hotkeys(userinput.RateMinus), 1)
	f.run(t)
	test.ExpectApproximate(t, f.sess.Pipeline().InputRate(), rate+0.25, 0.0001)
}

func TestReset(t *testing.T) {
	f := newFixture(t, playmode.Config{})
	defer f.sess.End()

	f.input.add(userinput.State{}, 2)
	f.input.add(buttons(engine.ButtonUp), 1)
	f.input.add(userinput.State{}, 2)
	f.run(t)
	test.ExpectEquality(t, f.tone.Pitch(), 1)
	test.ExpectEquality(t, f.tone.Frame(), uint64(5))

	f.input.add(hotkeys(userinput.Reset), 1)
	f.run(t)
	test.ExpectEquality(t, f.tone.Pitch(), 0)
	test.ExpectEquality(t, f.tone.Frame(), uint64(1))
	test.ExpectEquality(t, f.sess.Rewind().Timeline().Len(), 0)
	test.ExpectEquality(t, f.sess.Notice(), notifications.NotifyReset)
}

func TestSaveStates(t *testing.T) {
	db := startDatabase(t)
	f := newFixture(t, playmode.Config{Database: db})
	defer f.sess.End()

	f.input.add(userinput.State{}, 1)
	f.input.add(buttons(engine.ButtonUp), 1)
	f.input.add(hotkeys(userinput.SaveState), 1)
	f.run(t)
	test.ExpectEquality(t, f.tone.Pitch(), 1)
	test.ExpectEquality(t, f.sess.Notice(), notifications.Notice("Saved state to slot #0."))

	f.input.add(buttons(engine.ButtonUp), 1)
	f.input.add(userinput.State{}, 1)
	f.run(t)
	test.ExpectEquality(t, f.tone.Pitch(), 2)

	f.input.add(hotkeys(userinput.LoadState), 1)
	f.run(t)
	test.ExpectEquality(t, f.tone.Pitch(), 1)
	test.ExpectEquality(t, f.sess.Notice(), notifications.Notice("Loaded state from slot #0."))

	// loading a state clears the rewind timeline. the loaded state is the
	// only state that can be rewound to
	test.ExpectEquality(t, f.sess.Rewind().Timeline().Len(), 1)

	f.input.add(hotkeys(userinput.SlotPlus), 1)
	f.run(t)
	test.ExpectEquality(t, f.sess.Slot(), 1)
	test.ExpectEquality(t, f.sess.Notice(), notifications.Notice("Save state/movie slot: 1"))

	f.input.add(hotkeys(userinput.LoadState), 1)
	f.run(t)
	test.ExpectEquality(t, f.sess.Notice(), notifications.Notice("Failed to load state from slot #1."))

	f.input.add(hotkeys(userinput.SlotMinus), 1)
	f.input.add(userinput.State{}, 1)
	f.input.add(hotkeys(userinput.SlotMinus), 1)
	f.run(t)
	test.ExpectEquality(t, f.sess.Slot(), 0)
}

func TestSaveStateWithoutDatabase(t *testing.T) {
	f := newFixture(t, playmode.Config{})
	defer f.sess.End()

	f.input.add(hotkeys(userinput.SaveState), 1)
	f.run(t)
	test.ExpectEquality(t, f.sess.Notice(), notifications.Notice("Failed to save state to slot #0."))
}

func TestSaveMemory(t *testing.T) {
	db := startDatabase(t)
	pth := writePrefs(t, append(sessionPrefs, "playmode.saveslots.auto :: true")...)

	f := newFixture(t, playmode.Config{Database: db, PrefsFile: pth})
	f.input.add(buttons(engine.ButtonUp), 1)
	f.input.add(buttons(engine.ButtonA), 1)
	f.input.add(userinput.State{}, 1)
	f.run(t)
	test.DemandSuccess(t, f.sess.End())

	mem, err := db.LoadMemory(context.Background(), "tone")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, binary.LittleEndian.Uint16(mem[2:]), uint16(1))

	// a new session picks up the save memory and the auto save state
	g := newFixture(t, playmode.Config{Database: db, PrefsFile: pth})
	defer g.sess.End()
	test.ExpectEquality(t, binary.LittleEndian.Uint16(g.tone.SaveMemory()[2:]), uint16(1))
	test.ExpectEquality(t, g.tone.Pitch(), 1)
	test.ExpectEquality(t, g.tone.Frame(), uint64(3))

	g.input.add(userinput.State{}, 1)
	g.run(t)
	test.ExpectEquality(t, g.sess.Notice(), notifications.NotifyAutoLoaded)
}

func TestRecordAndPlayback(t *testing.T) {
	movie := filepath.Join(t.TempDir(), "movie")

	f := newFixture(t, playmode.Config{Record: movie})
	f.input.add(userinput.State{}, 1)
	f.input.add(buttons(engine.ButtonUp), 1)
	f.input.add(userinput.State{}, 1)
	f.input.add(buttons(engine.ButtonUp), 1)
	f.run(t)
	test.ExpectEquality(t, f.tone.Pitch(), 2)

	// states cannot be loaded while recording
	f.input.add(hotkeys(userinput.LoadState), 1)
	f.run(t)
	test.ExpectEquality(t, f.sess.Notice(), notifications.NotifyLoadWhileRecord)
	test.DemandSuccess(t, f.sess.End())

	g := newFixture(t, playmode.Config{Playback: movie})
	defer g.sess.End()
	g.input.add(userinput.State{}, 5)
	g.run(t)
	test.ExpectEquality(t, g.tone.Pitch(), 2)
	test.ExpectEquality(t, g.tone.Frame(), uint64(5))

	g.input.add(userinput.State{}, 1)
	g.run(t)
	test.ExpectEquality(t, g.sess.Notice(), notifications.NotifyPlaybackEnded)
}

func TestPlaybackDigest(t *testing.T) {
	movie := filepath.Join(t.TempDir(), "movie")

	recDigest, err := digest.NewAudio(audio.BackendConfig{})
	test.DemandSuccess(t, err)
	f := newFixture(t, playmode.Config{Record: movie, Backend: recDigest})
	for range 5 {
		f.input.add(buttons(engine.ButtonUp), 2)
		f.input.add(userinput.State{}, 3)
	}
	f.run(t)
	test.DemandSuccess(t, f.sess.End())

	plbDigest, err := digest.NewAudio(audio.BackendConfig{})
	test.DemandSuccess(t, err)
	g := newFixture(t, playmode.Config{Playback: movie, Backend: plbDigest})
	defer g.sess.End()
	g.input.add(userinput.State{}, 25)
	g.run(t)

	test.ExpectInequality(t, recDigest.Written(), uint64(0))
	test.ExpectEquality(t, plbDigest.Written(), recDigest.Written())
	test.ExpectEquality(t, plbDigest.Hash(), recDigest.Hash())
}

func TestRecordAndPlaybackTogether(t *testing.T) {
	_, err := playmode.NewSession(playmode.Config{
		Engine:    tone.NewTone(),
		PrefsFile: writePrefs(t),
		Record:    "a",
		Playback:  "b",
	})
	test.ExpectFailure(t, err)
}

func TestQuit(t *testing.T) {
	f := newFixture(t, playmode.Config{})
	f.input.add(userinput.State{}, 1)
	f.run(t)

	f.input.add(hotkeys(userinput.Quit), 1)
	ok, err := f.sess.Iterate()
	test.ExpectSuccess(t, err)
	test.ExpectFailure(t, ok)

	test.ExpectSuccess(t, f.sess.End())
	test.ExpectSuccess(t, f.backend.closed)
}

func TestNoticeOutput(t *testing.T) {
	w := &test.CompareWriter{}
	f := newFixture(t, playmode.Config{NoticeOutput: w})
	defer f.sess.End()

	f.input.add(hotkeys(userinput.Reset), 3)
	f.run(t)
	test.ExpectSuccess(t, w.Compare("Reset.\n"))
}
