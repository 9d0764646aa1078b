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

package environment

import (
	"github.com/sprocketfe/sprocket/notifications"
)

// Label is used to name the environment.
type Label string

// MainSession is the label of the environment used for the main playback
// session.
const MainSession = Label("")

// Environment is used to provide context for a playback session. It is
// passed to every component created for the session.
type Environment struct {
	Label Label

	// notices for the user are sent through this interface
	Notifications notifications.Notify

	// suppress logging for environments other than the main session. the
	// main session always allows logging
	Quiet bool
}

// NewEnvironment is the preferred method of initialisation for the
// Environment type. The notify argument can be nil in which case notices
// are discarded.
func NewEnvironment(label Label, notify notifications.Notify) *Environment {
	if notify == nil {
		notify = discard{}
	}
	return &Environment{
		Label:         label,
		Notifications: notify,
	}
}

// IsMainSession returns true if the environment is for the main playback
// session.
func (env *Environment) IsMainSession() bool {
	return env.Label == MainSession
}

// AllowLogging implements the logger.Permission interface.
func (env *Environment) AllowLogging() bool {
	return env.IsMainSession() || !env.Quiet
}

// Notify is a convenience function that sends a notice with the default
// priority and duration.
func (env *Environment) Notify(notice notifications.Notice) {
	env.Notifications.Notify(notifications.Message{
		Notice:   notice,
		Priority: notifications.DefaultPriority,
		Duration: notifications.DefaultDuration,
	})
}

type discard struct{}

func (discard) Notify(_ notifications.Message) {}
