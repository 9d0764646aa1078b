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
	"fmt"

	"github.com/sprocketfe/sprocket/engine"
	"github.com/sprocketfe/sprocket/logger"
	"github.com/sprocketfe/sprocket/notifications"
	"github.com/sprocketfe/sprocket/userinput"
)

// stateChecks acts upon the hotkeys. returns false if the engine should not
// be run this iteration.
func (s *Session) stateChecks() bool {
	s.checkMute()
	s.checkPause()
	oneshot := s.checkOneshot()

	if s.paused && !oneshot {
		return false
	}

	s.checkFastForward()
	s.checkStateSlots()
	s.checkSaveStates()
	s.checkRewind()
	s.checkSlowMotion()
	s.checkMovie()
	s.checkDSPConfig()
	s.checkReset()

	// input rate cannot be changed when a signal processor is being used
	if s.pipeline.DSP() == nil {
		s.checkInputRate()
	}

	return true
}

func (s *Session) checkMute() {
	if !s.pipeline.Active() {
		return
	}

	if s.tracker.Pressed(userinput.Mute) {
		mute := !s.pipeline.Muted()
		s.pipeline.SetMute(mute)

		n := notifications.NotifyUnmuted
		if mute {
			n = notifications.NotifyMuted
		}
		s.env.Notify(n)
		logger.Log(s.env, "playmode", n)
	}
}

func (s *Session) checkPause() {
	// frame advance puts the session into the paused state
	pressed := s.tracker.Pressed(userinput.Pause)
	if !s.paused && s.tracker.Pressed(userinput.FrameAdvance) {
		pressed = true
	}

	if !pressed {
		return
	}

	s.paused = !s.paused
	s.pipeline.SetPaused(s.paused)

	if s.paused {
		logger.Log(s.env, "playmode", "Paused.")
		s.env.Notify(notifications.NotifyPaused)
		s.updateNotice()
	} else {
		logger.Log(s.env, "playmode", "Unpaused.")
		s.lim.Reset()
	}
}

// checkOneshot returns true if a single frame should be run while paused.
// the rewind hotkey works like a frame advance in reverse while paused.
func (s *Session) checkOneshot() bool {
	return s.tracker.Pressed(userinput.FrameAdvance) || s.tracker.Pressed(userinput.Rewind)
}

func (s *Session) checkFastForward() {
	if s.ff.Update(s.tracker.Held(userinput.FastForwardToggle), s.tracker.Held(userinput.FastForwardHold)) {
		s.setFastForward(s.ff.Desynced())
	}
}

func (s *Session) setFastForward(desynced bool) {
	s.pipeline.SetNonblocking(desynced)
	if d, ok := s.eng.(engine.Decoupler); ok {
		d.SetNonblocking(desynced)
	}
	if desynced {
		logger.Log(s.env, "playmode", "fast forward")
	} else {
		logger.Log(s.env, "playmode", "normal speed")
	}
}

func (s *Session) checkStateSlots() {
	changed := false

	if s.tracker.Pressed(userinput.SlotPlus) {
		s.slot++
		changed = true
	} else if s.tracker.Pressed(userinput.SlotMinus) && s.slot > 0 {
		s.slot--
		changed = true
	}

	if changed {
		n := notifications.Notice(fmt.Sprintf(string(notifications.NotifyStateSlot), s.slot))
		s.env.Notify(n)
		logger.Log(s.env, "playmode", n)
	}
}

func (s *Session) checkSaveStates() {
	if s.tracker.Pressed(userinput.SaveState) {
		s.saveState()
	}

	// load is ignored if save is being held
	if !s.tracker.Held(userinput.SaveState) && s.tracker.Pressed(userinput.LoadState) {
		s.loadState()
	}
}

func (s *Session) checkRewind() {
	s.rewind.Check(s.tracker.Held(userinput.Rewind), s.paused, s.movieLog() != nil)
}

func (s *Session) checkSlowMotion() {
	slow := s.tracker.Held(userinput.SlowMotion)
	if slow != s.slowMotion {
		s.slowMotion = slow
		s.pipeline.SetSlowMotion(slow)

		fps := s.eng.Timing().FPS
		if slow {
			fps /= s.prefs.SlowMotionRatio.Get().(float64)
		}
		s.lim.SetLimit(fps)
	}

	if slow {
		n := notifications.NotifySlowMotion
		if s.rewind.Reversed() {
			n = notifications.NotifySlowMotionRewind
		}
		s.env.Notifications.Notify(notifications.Message{
			Notice:   n,
			Priority: 0,
			Duration: 30,
		})
	}
}

// checkMovie ends the playback once every recorded frame has been played.
func (s *Session) checkMovie() {
	if s.playback == nil || !s.playback.EndFrame() {
		return
	}

	s.env.Notify(notifications.NotifyPlaybackEnded)
	logger.Log(s.env, "playmode", notifications.NotifyPlaybackEnded)

	s.playback = nil
	s.rewind.SetLog(nil)
}

func (s *Session) checkDSPConfig() {
	if !s.tracker.Pressed(userinput.DSPConfig) {
		return
	}
	if d := s.pipeline.DSP(); d != nil && d.CanConfig() {
		d.Config()
	}
}

func (s *Session) checkReset() {
	if !s.tracker.Pressed(userinput.Reset) {
		return
	}

	s.lock.Lock()
	s.eng.Reset()
	s.lock.Unlock()

	s.rewind.Reset()

	s.env.Notifications.Notify(notifications.Message{
		Notice:   notifications.NotifyReset,
		Priority: 1,
		Duration: 120,
	})
	logger.Log(s.env, "playmode", notifications.NotifyReset)
}

// checkInputRate changes the input rate for as long as the hotkey is held.
func (s *Session) checkInputRate() {
	step := s.audioPrefs.RateStep.Get().(float64)

	switch {
	case s.tracker.Held(userinput.RatePlus):
	case s.tracker.Held(userinput.RateMinus):
		step = -step
	default:
		return
	}

	rate := s.pipeline.StepInputRate(step)

	n := notifications.Notice(fmt.Sprintf(string(notifications.NotifyInputRate), rate))
	s.env.Notifications.Notify(notifications.Message{
		Notice:   n,
		Priority: 0,
		Duration: 1,
	})
	logger.Log(s.env, "playmode", n)
}
