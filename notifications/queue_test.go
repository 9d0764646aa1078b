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

package notifications_test

import (
	"testing"

	"github.com/sprocketfe/sprocket/notifications"
	"github.com/sprocketfe/sprocket/test"
)

func TestDuration(t *testing.T) {
	q := notifications.NewQueue()

	_, ok := q.Pull()
	test.ExpectFailure(t, ok)

	q.Push(notifications.Message{Notice: notifications.NotifyRewinding, Priority: 0, Duration: 2})
	n, ok := q.Pull()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, n, notifications.NotifyRewinding)
	n, ok = q.Pull()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, n, notifications.NotifyRewinding)

	// duration expired
	_, ok = q.Pull()
	test.ExpectFailure(t, ok)
}

func TestPriority(t *testing.T) {
	q := notifications.NewQueue()

	q.Push(notifications.Message{Notice: notifications.NotifyMuted, Priority: 1, Duration: 10})
	q.Push(notifications.Message{Notice: notifications.NotifyRewinding, Priority: 0, Duration: 10})

	// the higher priority message is shown
	n, _ := q.Pull()
	test.ExpectEquality(t, n, notifications.NotifyMuted)

	// a message of equal priority replaces the current message
	q.Push(notifications.Message{Notice: notifications.NotifyReset, Priority: 1, Duration: 1})
	n, _ = q.Pull()
	test.ExpectEquality(t, n, notifications.NotifyReset)
	n, _ = q.Pull()
	test.ExpectEquality(t, n, notifications.NotifyMuted)
	test.ExpectEquality(t, q.Len(), 2)
}

func TestNotify(t *testing.T) {
	q := notifications.NewQueue()

	q.Push(notifications.Message{Notice: notifications.NotifyMuted, Priority: 2, Duration: 10})
	q.Notify(notifications.Message{Notice: notifications.NotifyRewindEnd, Priority: 0, Duration: 30})

	// notify clears the queue
	test.ExpectEquality(t, q.Len(), 1)
	n, _ := q.Pull()
	test.ExpectEquality(t, n, notifications.NotifyRewindEnd)

	// zero duration messages are ignored
	q.Clear()
	q.Push(notifications.Message{Notice: notifications.NotifyReset, Priority: 1, Duration: 0})
	test.ExpectEquality(t, q.Len(), 0)
}
