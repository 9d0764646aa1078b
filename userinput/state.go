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

package userinput

import (
	"strings"

	"github.com/sprocketfe/sprocket/engine"
)

// State is the result of polling an input device.
type State struct {
	Input   engine.Input
	hotkeys [NumHotkeys]bool
}

func (s State) String() string {
	var h []string
	for i, held := range s.hotkeys {
		if held {
			h = append(h, Hotkey(i).String())
		}
	}
	if len(h) == 0 {
		return s.Input.String()
	}
	return s.Input.String() + " " + strings.Join(h, "+")
}

// Set the held state of a hotkey.
func (s *State) Set(h Hotkey, held bool) {
	s.hotkeys[h] = held
}

// Held returns true if the hotkey is held.
func (s State) Held(h Hotkey) bool {
	return s.hotkeys[h]
}

// Merge returns a State in which anything held in either State is held.
func (s State) Merge(o State) State {
	s.Input |= o.Input
	for i := range s.hotkeys {
		s.hotkeys[i] = s.hotkeys[i] || o.hotkeys[i]
	}
	return s
}

// Source is implemented by anything that can be polled for input.
type Source interface {
	// Poll is called once per frame
	Poll() (State, error)
}

// Sources is a list of Source instances that is itself a Source. The result
// of a poll is the merged state of every source.
type Sources []Source

// Poll implements the Source interface.
func (srcs Sources) Poll() (State, error) {
	var s State
	for _, src := range srcs {
		p, err := src.Poll()
		if err != nil {
			return s, err
		}
		s = s.Merge(p)
	}
	return s, nil
}

// Tracker keeps the current and previous State so that the edges of
// hotkey presses can be detected.
type Tracker struct {
	prev State
	curr State
}

// Update the tracker with the most recent poll.
func (t *Tracker) Update(s State) {
	t.prev = t.curr
	t.curr = s
}

// State returns the most recent State.
func (t *Tracker) State() State {
	return t.curr
}

// Held returns true if the hotkey is currently held.
func (t *Tracker) Held(h Hotkey) bool {
	return t.curr.hotkeys[h]
}

// Pressed returns true if the hotkey has been pressed since the previous
// update.
func (t *Tracker) Pressed(h Hotkey) bool {
	return t.curr.hotkeys[h] && !t.prev.hotkeys[h]
}

// Changed returns true if the hotkey has been pressed or released since the
// previous update.
func (t *Tracker) Changed(h Hotkey) bool {
	return t.curr.hotkeys[h] != t.prev.hotkeys[h]
}
