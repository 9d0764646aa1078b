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

package notifications

import (
	"slices"
	"sync"
)

// Queue is a message queue of notices. The notice with the highest priority
// is shown until its duration expires. Queue implements the Notify
// interface.
type Queue struct {
	crit     sync.Mutex
	messages []Message
}

// NewQueue is the preferred method of initialisation for the Queue type.
func NewQueue() *Queue {
	return &Queue{
		messages: make([]Message, 0, 8),
	}
}

// Notify implements the Notify interface. The queue is cleared before the
// message is pushed.
func (q *Queue) Notify(msg Message) {
	q.crit.Lock()
	defer q.crit.Unlock()
	q.messages = q.messages[:0]
	q.push(msg)
}

// Push adds a message to the queue without clearing it. A new message takes
// precedence over existing messages of the same priority.
func (q *Queue) Push(msg Message) {
	q.crit.Lock()
	defer q.crit.Unlock()
	q.push(msg)
}

func (q *Queue) push(msg Message) {
	if msg.Duration <= 0 {
		return
	}
	idx := slices.IndexFunc(q.messages, func(m Message) bool {
		return m.Priority <= msg.Priority
	})
	if idx == -1 {
		q.messages = append(q.messages, msg)
		return
	}
	q.messages = slices.Insert(q.messages, idx, msg)
}

// Clear removes all messages from the queue.
func (q *Queue) Clear() {
	q.crit.Lock()
	defer q.crit.Unlock()
	q.messages = q.messages[:0]
}

// Pull should be called once per frame. It returns the notice that should be
// shown for the frame and reduces its remaining duration by one frame.
// Returns false if there is nothing to show.
func (q *Queue) Pull() (Notice, bool) {
	q.crit.Lock()
	defer q.crit.Unlock()

	if len(q.messages) == 0 {
		return "", false
	}

	m := &q.messages[0]
	n := m.Notice
	m.Duration--
	if m.Duration <= 0 {
		q.messages = q.messages[1:]
	}

	return n, true
}

// Len returns the number of messages in the queue.
func (q *Queue) Len() int {
	q.crit.Lock()
	defer q.crit.Unlock()
	return len(q.messages)
}
