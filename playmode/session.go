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

package playmode

import (
	"context"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/sprocketfe/sprocket/assert"
	"github.com/sprocketfe/sprocket/audio"
	"github.com/sprocketfe/sprocket/audio/drivers"
	"github.com/sprocketfe/sprocket/autosave"
	"github.com/sprocketfe/sprocket/curated"
	"github.com/sprocketfe/sprocket/database"
	"github.com/sprocketfe/sprocket/dsp"
	"github.com/sprocketfe/sprocket/engine"
	"github.com/sprocketfe/sprocket/environment"
	"github.com/sprocketfe/sprocket/logger"
	"github.com/sprocketfe/sprocket/notifications"
	"github.com/sprocketfe/sprocket/performance/limiter"
	"github.com/sprocketfe/sprocket/recorder"
	"github.com/sprocketfe/sprocket/resampler"
	"github.com/sprocketfe/sprocket/rewind"
	"github.com/sprocketfe/sprocket/userinput"
)

// SessionError is the sentinal error for all errors returned by the
// playmode package.
const SessionError = "playmode: %v"

// how long to sleep for while paused
const pausedSleep = 10 * time.Millisecond

// Config for a new Session.
type Config struct {
	Engine engine.Engine

	// input devices. may be nil
	Input userinput.Source

	// the preferences file
	PrefsFile string

	// save states and save memory are stored in the database. may be nil
	Database *database.Session

	// filename of an input recording to make or to playback. at most one of
	// these should be set
	Record   string
	Playback string

	// used instead of the driver named in the audio preferences
	Backend audio.Backend

	// notices are written to the output as they appear. may be nil
	NoticeOutput io.Writer
}

// Session is a playback session.
type Session struct {
	env   *environment.Environment
	queue *notifications.Queue

	prefs       *Preferences
	audioPrefs  *audio.Preferences
	rewindPrefs *rewind.Preferences

	eng   engine.Engine
	input userinput.Source

	tracker userinput.Tracker

	pipeline *audio.Pipeline
	rewind   *RewindControl
	ff       FastForward

	db       *database.Session
	autosave *autosave.Autosave

	// the lock shared with the autosave worker
	lock sync.Locker

	recorder *recorder.Recorder
	playback *recorder.Playback

	// paces the session when nothing else is
	lim *limiter.FpsLimiter

	goroutine assert.SingleGoroutine

	// save state slot
	slot int

	// buffer for save states
	state []byte

	paused     bool
	slowMotion bool

	frames uint64
	start  time.Time

	notice       notifications.Notice
	noticeOutput io.Writer
}

// NewSession is the preferred method of initialisation for the Session
// type.
func NewSession(cfg Config) (*Session, error) {
	if cfg.Engine == nil {
		return nil, curated.Errorf(SessionError, "no engine")
	}
	if cfg.Record != "" && cfg.Playback != "" {
		return nil, curated.Errorf(SessionError, "cannot record and playback at the same time")
	}

	s := &Session{
		queue:        notifications.NewQueue(),
		eng:          cfg.Engine,
		input:        cfg.Input,
		db:           cfg.Database,
		lock:         nopLocker{},
		state:        make([]byte, cfg.Engine.SerializeSize()),
		noticeOutput: cfg.NoticeOutput,
	}
	s.env = environment.NewEnvironment(environment.MainSession, s.queue)

	if s.input == nil {
		s.input = userinput.Sources{}
	}

	var err error

	s.prefs, err = NewPreferences(cfg.PrefsFile)
	if err != nil {
		return nil, curated.Errorf(SessionError, err)
	}
	s.audioPrefs, err = audio.NewPreferences(cfg.PrefsFile)
	if err != nil {
		return nil, curated.Errorf(SessionError, err)
	}
	s.rewindPrefs, err = rewind.NewPreferences(cfg.PrefsFile)
	if err != nil {
		return nil, curated.Errorf(SessionError, err)
	}

	s.initAudio(cfg.Backend)
	s.initRewind()

	timing := s.eng.Timing()
	s.lim = limiter.NewFPSLimiter(timing.FPS)

	if s.db != nil {
		s.loadMemory()

		interval := time.Duration(s.prefs.AutosaveInterval.Get().(int)) * time.Second
		s.autosave = autosave.NewAutosave(s.env, s.db, s.eng, interval)
		s.autosave.Start()
		s.lock = s.autosave
		s.rewind.SetLock(s.autosave)

		if s.prefs.AutoSlot.Get().(bool) && cfg.Playback == "" {
			s.loadAutoState()
		}
	}

	if cfg.Record != "" {
		s.recorder, err = recorder.NewRecorder(cfg.Record, s.eng)
		if err != nil {
			s.End()
			return nil, curated.Errorf(SessionError, err)
		}
		s.rewind.SetLog(s.recorder)
		s.env.Notify(notifications.Notice(fmt.Sprintf(string(notifications.NotifyRecording), cfg.Record)))
		logger.Logf(s.env, "playmode", "recording input to %s", cfg.Record)
	}

	if cfg.Playback != "" {
		s.playback, err = recorder.NewPlayback(cfg.Playback)
		if err == nil {
			err = s.playback.AttachToEngine(s.eng)
		}
		if err != nil {
			s.End()
			return nil, curated.Errorf(SessionError, err)
		}
		s.rewind.SetLog(s.playback)
		s.env.Notifications.Notify(notifications.Message{
			Notice:   notifications.NotifyPlaybackStarted,
			Priority: 2,
			Duration: notifications.DefaultDuration,
		})
		logger.Logf(s.env, "playmode", "playing back input from %s", cfg.Playback)
	}

	s.eng.SetSinks(s.pipeline.Sinks(false))
	s.start = time.Now()

	return s, nil
}

// initAudio creates the audio pipeline. failure to create any part of the
// pipeline is not fatal. the session will continue without audio.
func (s *Session) initAudio(backend audio.Backend) {
	timing := s.eng.Timing()

	inputRate, adjusted := audio.InputRate(timing.SampleRate, timing.FPS, s.prefs.RefreshRate.Get().(float64))
	if adjusted {
		logger.Logf(s.env, "audio", "adjusted input rate to %.2f Hz", inputRate)
	}

	if backend == nil {
		driver := s.audioPrefs.Driver.String()
		if driver != "" && driver != "none" {
			var err error
			backend, err = drivers.Create(driver, s.audioPrefs.BackendConfig())
			if err != nil {
				logger.Log(s.env, "audio", err)
				logger.Log(s.env, "audio", "Failed to initialize audio driver. Will continue without audio.")
				backend = nil
			}
		}
	}

	var rs audio.Resampler
	if backend != nil {
		var err error
		rs, err = resampler.New(s.audioPrefs.Resampler.String())
		if err != nil {
			logger.Log(s.env, "audio", err)
			logger.Log(s.env, "audio", "Failed to initialize resampler. Will continue without audio.")
			rs = nil
		}
	}

	// the largest number of samples the engine produces in a frame
	frameSamples := 2
	if timing.FPS > 0 {
		frameSamples = int(math.Ceil(timing.SampleRate/timing.FPS)) * 2
	}

	cfg := s.audioPrefs.Config(inputRate, s.prefs.SlowMotionRatio.Get().(float64), frameSamples)

	// a nil backend must be passed to the pipeline as a nil interface
	if backend == nil || rs == nil {
		if backend != nil {
			_ = backend.Close()
		}
		s.pipeline = audio.NewPipeline(s.env, nil, nil, cfg)
	} else {
		s.pipeline = audio.NewPipeline(s.env, backend, rs, cfg)
	}

	if pth := s.audioPrefs.DSP.String(); pth != "" {
		// the backend may have opened the device at a different rate to the
		// one requested
		inst, err := dsp.Load(s.env, pth, dsp.Info{
			InputRate:  inputRate,
			OutputRate: s.pipeline.OutputRate(),
		})
		if err != nil {
			logger.Log(s.env, "dsp", err)
		} else {
			s.pipeline.SetDSP(inst)
		}
	}
}

// initRewind creates the rewind control. if the timeline cannot be created
// then rewinding is disabled for the session.
func (s *Session) initRewind() {
	var tl *rewind.Timeline

	if s.rewindPrefs.Enabled.Get().(bool) {
		// an engine that cannot be serialised cannot be rewound
		if err := s.eng.Serialize(s.state); err != nil {
			logger.Log(s.env, "rewind", err)
			logger.Log(s.env, "rewind", "Failed to perform initial serialization. Rewinding will be disabled.")
			s.rewind = NewRewindControl(s.env, s.eng, s.pipeline, nil, 1)
			return
		}

		var err error
		tl, err = rewind.NewTimeline(s.rewindPrefs.BufferSize.Get().(int), s.eng.SerializeSize())
		if err != nil {
			logger.Log(s.env, "rewind", err)
			logger.Log(s.env, "rewind", "Failed to initialize rewind buffer. Rewinding will be disabled.")
			tl = nil
		} else {
			logger.Logf(s.env, "rewind", "timeline: %s", tl)
		}
	}

	s.rewind = NewRewindControl(s.env, s.eng, s.pipeline, tl, s.rewindPrefs.Granularity.Get().(int))
}

// movieLog returns the active input log. returns nil if there is no active
// recording or playback.
func (s *Session) movieLog() recorder.Log {
	if s.recorder != nil {
		return s.recorder
	}
	if s.playback != nil {
		return s.playback
	}
	return nil
}

// Iterate runs a single iteration of the session. Returns false if the
// session should end.
func (s *Session) Iterate() (bool, error) {
	s.goroutine.Check("playmode")

	st, err := s.input.Poll()
	if err != nil {
		return false, curated.Errorf(SessionError, err)
	}
	s.tracker.Update(st)

	if d := s.pipeline.DSP(); d != nil {
		d.Events()
	}

	if s.tracker.Held(userinput.Quit) {
		return false, nil
	}

	if !s.stateChecks() {
		time.Sleep(pausedSleep)
		return true, nil
	}

	if err := s.runFrame(); err != nil {
		return false, err
	}

	return true, nil
}

func (s *Session) runFrame() error {
	in := s.tracker.State().Input
	if s.playback != nil {
		if pin, ok := s.playback.GetInput(); ok {
			in = pin
		}
	}
	if s.recorder != nil {
		s.recorder.Record(in)
	}
	if r, ok := s.eng.(engine.InputReceiver); ok {
		r.SetInput(in)
	}

	s.lock.Lock()
	err := s.eng.Run()
	s.lock.Unlock()
	if err != nil {
		return curated.Errorf(SessionError, err)
	}

	// from the point of view of the input log, this is the start of the next
	// frame
	if log := s.movieLog(); log != nil {
		log.FrameStart()
	}

	s.frames++
	s.updateNotice()

	// frames are paced by the audio backend unless audio is not available
	if !s.pipeline.Active() && !s.ff.Desynced() && !s.paused {
		s.lim.Wait()
	}

	return nil
}

// updateNotice pulls the notice for the current frame from the queue.
func (s *Session) updateNotice() {
	n, _ := s.queue.Pull()
	if n == s.notice {
		return
	}
	s.notice = n
	if n != "" && s.noticeOutput != nil {
		s.noticeOutput.Write([]byte(fmt.Sprintf("%s\n", n)))
	}
}

// Run the session until the quit hotkey is pressed or the context is
// cancelled.
func (s *Session) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		ok, err := s.Iterate()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

// End the session. The auto save state is saved, the input recording is
// written to disk, save memory is persisted and the audio pipeline is
// closed. The first error encountered is returned but every step is
// attempted.
func (s *Session) End() error {
	var rerr error
	keep := func(err error) {
		if err != nil && rerr == nil {
			rerr = curated.Errorf(SessionError, err)
		}
	}

	if s.db != nil && s.prefs.AutoSlot.Get().(bool) && s.playback == nil {
		keep(s.saveAutoState())
	}

	if s.recorder != nil {
		keep(s.recorder.End())
		s.recorder = nil
	}

	if s.autosave != nil {
		keep(s.autosave.Stop())
		s.autosave = nil
		s.lock = nopLocker{}
		s.rewind.SetLock(nil)
	}

	if s.pipeline != nil {
		keep(s.pipeline.Close())
	}

	if s.frames > 0 {
		dur := time.Since(s.start).Seconds()
		if dur > 0 {
			logger.Logf(s.env, "playmode", "%d frames in %.2f seconds (%.2f fps)", s.frames, dur, float64(s.frames)/dur)
		}
	}

	return rerr
}

// Environment returns the environment of the session.
func (s *Session) Environment() *environment.Environment {
	return s.env
}

// Pipeline returns the audio pipeline.
func (s *Session) Pipeline() *audio.Pipeline {
	return s.pipeline
}

// Rewind returns the rewind control.
func (s *Session) Rewind() *RewindControl {
	return s.rewind
}

// Notice returns the notice shown for the most recent frame.
func (s *Session) Notice() notifications.Notice {
	return s.notice
}

// Frames returns the number of frames run by the session.
func (s *Session) Frames() uint64 {
	return s.frames
}

// Paused returns true if the session is paused.
func (s *Session) Paused() bool {
	return s.paused
}

// Slot returns the current save state slot.
func (s *Session) Slot() int {
	return s.slot
}

// FastForwarding returns true if the session is fast forwarding.
func (s *Session) FastForwarding() bool {
	return s.ff.Desynced()
}

// Preferences returns the preferences for the session.
func (s *Session) Preferences() (*Preferences, *audio.Preferences, *rewind.Preferences) {
	return s.prefs, s.audioPrefs, s.rewindPrefs
}

// Structure returns the parts of the session that are useful for
// visualising the session. The large buffers used by the session are not
// included.
func (s *Session) Structure() []any {
	return []any{s.prefs, s.audioPrefs, s.rewindPrefs, &s.ff, &s.tracker}
}
