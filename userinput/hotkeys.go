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

	"github.com/sprocketfe/sprocket/curated"
)

// Hotkey is a control for the playback session rather than for the engine.
type Hotkey int

// List of valid Hotkey values.
const (
	Rewind Hotkey = iota
	FastForwardToggle
	FastForwardHold
	SlowMotion
	Mute
	Pause
	FrameAdvance
	SaveState
	LoadState
	SlotPlus
	SlotMinus
	RatePlus
	RateMinus
	Reset
	DSPConfig
	Quit
	NumHotkeys
)

var hotkeyNames = [NumHotkeys]string{
	"REWIND",
	"FASTFORWARD",
	"FASTFORWARD_HOLD",
	"SLOWMOTION",
	"MUTE",
	"PAUSE",
	"FRAMEADVANCE",
	"SAVESTATE",
	"LOADSTATE",
	"SLOT+",
	"SLOT-",
	"RATE+",
	"RATE-",
	"RESET",
	"DSPCONFIG",
	"QUIT",
}

func (h Hotkey) String() string {
	if h < 0 || h >= NumHotkeys {
		return "unknown hotkey"
	}
	return hotkeyNames[h]
}

// UnknownHotkey is returned by ParseHotkey() if the name is not recognised.
const UnknownHotkey = "userinput: unknown hotkey (%s)"

// ParseHotkey returns the Hotkey with the name. The name is not case
// sensitive.
func ParseHotkey(name string) (Hotkey, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for i, n := range hotkeyNames {
		if n == name {
			return Hotkey(i), nil
		}
	}
	return 0, curated.Errorf(UnknownHotkey, name)
}
