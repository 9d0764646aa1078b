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

package userinput_test

import (
	"testing"

	"github.com/sprocketfe/sprocket/engine"
	"github.com/sprocketfe/sprocket/test"
	"github.com/sprocketfe/sprocket/userinput"
)

func TestParseHotkey(t *testing.T) {
	h, err := userinput.ParseHotkey("rewind")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, h, userinput.Rewind)

	h, err = userinput.ParseHotkey("slot+")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, h, userinput.SlotPlus)

	_, err = userinput.ParseHotkey("turbo")
	test.ExpectFailure(t, err)

	for i := userinput.Hotkey(0); i < userinput.NumHotkeys; i++ {
		h, err := userinput.ParseHotkey(i.String())
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, h, i)
	}
}

func TestTracker(t *testing.T) {
	var trk userinput.Tracker
	var s userinput.State

	s.Set(userinput.Rewind, true)
	trk.Update(s)
	test.ExpectSuccess(t, trk.Held(userinput.Rewind))
	test.ExpectSuccess(t, trk.Pressed(userinput.Rewind))
	test.ExpectSuccess(t, trk.Changed(userinput.Rewind))

	// still held but not a new press
	trk.Update(s)
	test.ExpectSuccess(t, trk.Held(userinput.Rewind))
	test.ExpectFailure(t, trk.Pressed(userinput.Rewind))
	test.ExpectFailure(t, trk.Changed(userinput.Rewind))

	s.Set(userinput.Rewind, false)
	trk.Update(s)
	test.ExpectFailure(t, trk.Held(userinput.Rewind))
	test.ExpectFailure(t, trk.Pressed(userinput.Rewind))
	test.ExpectSuccess(t, trk.Changed(userinput.Rewind))
}

type fixed userinput.State

func (f fixed) Poll() (userinput.State, error) {
	return userinput.State(f), nil
}

func TestSources(t *testing.T) {
	var a, b userinput.State
	a.Input = engine.ButtonA
	a.Set(userinput.Mute, true)
	b.Input = engine.ButtonB
	b.Set(userinput.Pause, true)

	srcs := userinput.Sources{fixed(a), fixed(b)}
	s, err := srcs.Poll()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s.Input, engine.ButtonA|engine.ButtonB)
	test.ExpectSuccess(t, s.Held(userinput.Mute))
	test.ExpectSuccess(t, s.Held(userinput.Pause))
	test.ExpectFailure(t, s.Held(userinput.Rewind))
	test.ExpectEquality(t, s.String(), "A+B MUTE+PAUSE")
}

func TestKeyboard(t *testing.T) {
	kb := userinput.NewKeyboard()

	test.ExpectSuccess(t, kb.HandleEvent(userinput.EventKeyboard{Key: "Up", Down: true}))
	test.ExpectSuccess(t, kb.HandleEvent(userinput.EventKeyboard{Key: "R", Down: true}))
	test.ExpectFailure(t, kb.HandleEvent(userinput.EventKeyboard{Key: "#", Down: true}))

	s := kb.State()
	test.ExpectEquality(t, s.Input, engine.ButtonUp)
	test.ExpectSuccess(t, s.Held(userinput.Rewind))

	kb.HandleEvent(userinput.EventKeyboard{Key: "R", Down: false})
	s = kb.State()
	test.ExpectFailure(t, s.Held(userinput.Rewind))

	// rebinding
	test.ExpectSuccess(t, kb.Bind("#", "fastforward"))
	test.ExpectSuccess(t, kb.Bind("R", "select"))
	test.ExpectFailure(t, kb.Bind("!", "turbo"))

	kb.HandleEvent(userinput.EventKeyboard{Key: "#", Down: true})
	kb.HandleEvent(userinput.EventKeyboard{Key: "R", Down: true})
	s = kb.State()
	test.ExpectEquality(t, s.Input, engine.ButtonUp|engine.ButtonSelect)
	test.ExpectSuccess(t, s.Held(userinput.FastForwardToggle))
	test.ExpectFailure(t, s.Held(userinput.Rewind))
}
