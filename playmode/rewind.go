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
	"sync"

	"github.com/sprocketfe/sprocket/audio"
	"github.com/sprocketfe/sprocket/engine"
	"github.com/sprocketfe/sprocket/environment"
	"github.com/sprocketfe/sprocket/logger"
	"github.com/sprocketfe/sprocket/notifications"
	"github.com/sprocketfe/sprocket/recorder"
	"github.com/sprocketfe/sprocket/rewind"
)

// priority and duration of rewind notices
const (
	rewindPriority = 0
	rewindDuration = 30
)

// RewindControl decides, once per frame, whether the frame is run forwards
// or backwards.
type RewindControl struct {
	env      *environment.Environment
	eng      engine.Engine
	pipeline *audio.Pipeline

	// timeline is nil if rewinding is disabled
	timeline    *rewind.Timeline
	granularity int
	counter     int

	// the engine's save memory is protected by this lock while a state is
	// being restored
	lock sync.Locker

	// notified when a state has been restored. may be nil
	log recorder.Log

	// buffer for serialising the engine state before it is pushed
	state []byte

	// copy of save memory made before a state is restored
	backup []byte

	// the very first call to Check() does nothing
	bootstrapped bool

	// the current frame is being run in reverse
	reverse bool
}

type nopLocker struct{}

func (nopLocker) Lock()   {}
func (nopLocker) Unlock() {}

// NewRewindControl is the preferred method of initialisation for the
// RewindControl type. The timeline can be nil, in which case rewinding is
// disabled.
func NewRewindControl(env *environment.Environment, eng engine.Engine, pipeline *audio.Pipeline, timeline *rewind.Timeline, granularity int) *RewindControl {
	rc := &RewindControl{
		env:         env,
		eng:         eng,
		pipeline:    pipeline,
		timeline:    timeline,
		granularity: max(granularity, 1),
		lock:        nopLocker{},
	}
	if timeline != nil {
		rc.state = make([]byte, timeline.BlobSize())
	}
	return rc
}

// SetLock sets the lock that protects the engine's save memory.
func (rc *RewindControl) SetLock(lock sync.Locker) {
	if lock == nil {
		lock = nopLocker{}
	}
	rc.lock = lock
}

// SetLog sets the input log that will be stepped backwards when a state is
// restored. A nil value removes the log.
func (rc *RewindControl) SetLog(log recorder.Log) {
	rc.log = log
}

// SetGranularity changes how often states are pushed to the timeline.
func (rc *RewindControl) SetGranularity(granularity int) {
	rc.granularity = max(granularity, 1)
	rc.counter = 0
}

// Enabled returns true if rewinding is possible.
func (rc *RewindControl) Enabled() bool {
	return rc.timeline != nil
}

// Timeline returns the timeline. Returns nil if rewinding is disabled.
func (rc *RewindControl) Timeline() *rewind.Timeline {
	return rc.timeline
}

// Reversed returns true if the current frame is being run in reverse.
func (rc *RewindControl) Reversed() bool {
	return rc.reverse
}

// Reset forgets all states in the timeline. Should be called whenever the
// engine state changes for a reason other than running a frame.
func (rc *RewindControl) Reset() {
	if rc.timeline != nil {
		rc.timeline.Reset()
	}
	rc.counter = 0
}

// Check should be called once per frame before the engine is run. The held
// argument is the state of the rewind input. The paused argument is used to
// decide how long the rewinding notice is shown for. If movie is true a
// recording or playback is active and every frame is pushed to the timeline
// regardless of the granularity.
func (rc *RewindControl) Check(held bool, paused bool, movie bool) {
	// audio from a reversed frame is sent to the backend before anything
	// else happens
	if rc.reverse {
		rc.pipeline.FlushReverse()
	}
	rc.reverse = false

	// no push or pop on the very first frame
	if !rc.bootstrapped {
		rc.bootstrapped = true
		return
	}

	if rc.timeline == nil {
		return
	}

	if held {
		state, err := rc.timeline.Pop()
		if err == nil {
			rc.reverse = true
			rc.pipeline.BeginReverse()

			duration := rewindDuration
			if paused {
				duration = 1
			}
			rc.env.Notifications.Notify(notifications.Message{
				Notice:   notifications.NotifyRewinding,
				Priority: rewindPriority,
				Duration: duration,
			})

			rc.restore(state)

			if rc.log != nil {
				rc.log.StepBackward()
			}
		} else {
			rc.env.Notifications.Notify(notifications.Message{
				Notice:   notifications.NotifyRewindEnd,
				Priority: rewindPriority,
				Duration: rewindDuration,
			})
		}
	} else {
		rc.counter = (rc.counter + 1) % rc.granularity
		if rc.counter == 0 || movie {
			if err := rc.eng.Serialize(rc.state); err != nil {
				logger.Log(rc.env, "rewind", err)
			} else {
				rc.timeline.Push(rc.state)
			}
		}
	}

	rc.eng.SetSinks(rc.pipeline.Sinks(rc.reverse))
}

// restore the engine state without changing the engine's save memory.
func (rc *RewindControl) restore(state []byte) {
	rc.lock.Lock()
	defer rc.lock.Unlock()

	mem := rc.eng.SaveMemory()
	rc.backup = append(rc.backup[:0], mem...)

	if err := rc.eng.Unserialize(state); err != nil {
		logger.Log(rc.env, "rewind", err)
	}

	copy(rc.eng.SaveMemory(), rc.backup)
}
