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
	"fmt"
	"sort"
	"strings"

	"github.com/sprocketfe/sprocket/engine"
)

// EventKeyboard is a key press or release from a keyboard device. The key
// name is the upper case character for printable keys and a descriptive name
// for anything else (Up, Down, Left, Right, Space, Enter, Tab, Backspace,
// Escape).
type EventKeyboard struct {
	Key  string
	Down bool
}

type binding struct {
	button engine.Input
	hotkey Hotkey

	// binding is for a hotkey rather than an engine button
	isHotkey bool
}

// Keyboard translates keyboard events into a State.
type Keyboard struct {
	bindings map[string]binding
	held     map[string]bool
}

// NewKeyboard is the preferred method of initialisation for the Keyboard
// type. The default bindings are used.
func NewKeyboard() *Keyboard {
	kb := &Keyboard{
		bindings: make(map[string]binding),
		held:     make(map[string]bool),
	}

	// engine
	kb.bindButton("Up", engine.ButtonUp)
	kb.bindButton("Down", engine.ButtonDown)
	kb.bindButton("Left", engine.ButtonLeft)
	kb.bindButton("Right", engine.ButtonRight)
	kb.bindButton("Z", engine.ButtonA)
	kb.bindButton("X", engine.ButtonB)
	kb.bindButton("Enter", engine.ButtonStart)
	kb.bindButton("Tab", engine.ButtonSelect)

	// session
	kb.bindHotkey("R", Rewind)
	kb.bindHotkey("Space", FastForwardToggle)
	kb.bindHotkey("L", FastForwardHold)
	kb.bindHotkey("E", SlowMotion)
	kb.bindHotkey("M", Mute)
	kb.bindHotkey("P", Pause)
	kb.bindHotkey("K", FrameAdvance)
	kb.bindHotkey("S", SaveState)
	kb.bindHotkey("D", LoadState)
	kb.bindHotkey("]", SlotPlus)
	kb.bindHotkey("[", SlotMinus)
	kb.bindHotkey("=", RatePlus)
	kb.bindHotkey("-", RateMinus)
	kb.bindHotkey("H", Reset)
	kb.bindHotkey("C", DSPConfig)
	kb.bindHotkey("Q", Quit)
	kb.bindHotkey("Escape", Quit)

	return kb
}

func (kb *Keyboard) bindButton(key string, button engine.Input) {
	kb.bindings[key] = binding{button: button}
}

func (kb *Keyboard) bindHotkey(key string, hotkey Hotkey) {
	kb.bindings[key] = binding{hotkey: hotkey, isHotkey: true}
}

// Bind a key to a button or hotkey. The name is either an engine button name
// or a hotkey name.
func (kb *Keyboard) Bind(key string, name string) error {
	if b, err := engine.ParseButton(name); err == nil {
		kb.bindButton(key, b)
		return nil
	}
	h, err := ParseHotkey(name)
	if err != nil {
		return err
	}
	kb.bindHotkey(key, h)
	return nil
}

// HandleEvent updates the keyboard with the event. Returns false if the key
// is not bound to anything.
func (kb *Keyboard) HandleEvent(ev EventKeyboard) bool {
	if _, ok := kb.bindings[ev.Key]; !ok {
		return false
	}
	if ev.Down {
		kb.held[ev.Key] = true
	} else {
		delete(kb.held, ev.Key)
	}
	return true
}

// State returns the State for the keys currently held.
func (kb *Keyboard) State() State {
	var s State
	for k := range kb.held {
		b := kb.bindings[k]
		if b.isHotkey {
			s.hotkeys[b.hotkey] = true
		} else {
			s.Input |= b.button
		}
	}
	return s
}

// Help returns a description of the bindings, one per line.
func (kb *Keyboard) Help() string {
	keys := make([]string, 0, len(kb.bindings))
	for k := range kb.bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	for _, k := range keys {
		b := kb.bindings[k]
		if b.isHotkey {
			s.WriteString(fmt.Sprintf("%-10s %s\n", k, b.hotkey))
		} else {
			s.WriteString(fmt.Sprintf("%-10s %s\n", k, b.button))
		}
	}
	return s.String()
}
