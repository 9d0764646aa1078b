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

	"github.com/sprocketfe/sprocket/curated"
	"github.com/sprocketfe/sprocket/database"
	"github.com/sprocketfe/sprocket/logger"
	"github.com/sprocketfe/sprocket/notifications"
)

// priority of save state notices
const statePriority = 2

func (s *Session) notifyState(notice notifications.Notice) {
	n := notifications.Notice(fmt.Sprintf(string(notice), s.slot))
	s.env.Notifications.Notify(notifications.Message{
		Notice:   n,
		Priority: statePriority,
		Duration: notifications.DefaultDuration,
	})
	logger.Log(s.env, "playmode", n)
}

func (s *Session) saveState() {
	if s.db == nil {
		logger.Log(s.env, "playmode", "no database for save states")
		s.notifyState(notifications.NotifySaveFailed)
		return
	}

	if err := s.eng.Serialize(s.state); err != nil {
		logger.Log(s.env, "playmode", err)
		s.notifyState(notifications.NotifySaveFailed)
		return
	}

	err := s.db.SaveState(context.Background(), s.eng.ID(), database.SlotName(s.slot), s.state)
	if err != nil {
		logger.Log(s.env, "playmode", err)
		s.notifyState(notifications.NotifySaveFailed)
		return
	}

	s.notifyState(notifications.NotifySaveState)
}

func (s *Session) loadState() {
	if s.recorder != nil {
		s.env.Notify(notifications.NotifyLoadWhileRecord)
		return
	}

	if s.db == nil {
		logger.Log(s.env, "playmode", "no database for save states")
		s.notifyState(notifications.NotifyLoadFailed)
		return
	}

	data, err := s.db.LoadState(context.Background(), s.eng.ID(), database.SlotName(s.slot))
	if err == nil {
		err = s.unserialize(data)
	}
	if err != nil {
		logger.Log(s.env, "playmode", err)
		s.notifyState(notifications.NotifyLoadFailed)
		return
	}

	s.notifyState(notifications.NotifyLoadState)
}

// unserialize the engine state and reset the rewind timeline.
func (s *Session) unserialize(data []byte) error {
	if len(data) != s.eng.SerializeSize() {
		return curated.Errorf("state is %d bytes. expected %d bytes", len(data), s.eng.SerializeSize())
	}

	s.lock.Lock()
	err := s.eng.Unserialize(data)
	s.lock.Unlock()
	if err != nil {
		return err
	}

	s.rewind.Reset()
	return nil
}

func (s *Session) saveAutoState() error {
	if err := s.eng.Serialize(s.state); err != nil {
		return err
	}
	return s.db.SaveState(context.Background(), s.eng.ID(), database.AutoSlot, s.state)
}

func (s *Session) loadAutoState() {
	data, err := s.db.LoadState(context.Background(), s.eng.ID(), database.AutoSlot)
	if err != nil {
		if !curated.Is(err, database.NoSuchState) {
			logger.Log(s.env, "playmode", err)
		}
		return
	}

	if err := s.unserialize(data); err != nil {
		logger.Log(s.env, "playmode", err)
		return
	}

	s.env.Notify(notifications.NotifyAutoLoaded)
	logger.Log(s.env, "playmode", notifications.NotifyAutoLoaded)
}

// loadMemory copies the save memory from the database into the engine.
func (s *Session) loadMemory() {
	data, err := s.db.LoadMemory(context.Background(), s.eng.ID())
	if err != nil {
		if !curated.Is(err, database.NoSaveMemory) {
			logger.Log(s.env, "playmode", err)
		}
		return
	}

	mem := s.eng.SaveMemory()
	if len(data) != len(mem) {
		logger.Logf(s.env, "playmode", "save memory is %d bytes. expected %d bytes", len(data), len(mem))
	}
	copy(mem, data)
}
