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

package terminal

import (
	"strings"
)

// list of ASCII codes for non-alphanumeric characters
const (
	keyTab       = 9
	keyLF        = 10
	keyCR        = 13
	keyEsc       = 27
	keySpace     = 32
	keyBackspace = 127

	// CSI is the control sequence introducer. the first byte after ESC in
	// cursor key sequences
	keyCSI = '['
)

// cursor keys follow the CSI
const (
	cursorUp    = 'A'
	cursorDown  = 'B'
	cursorRight = 'C'
	cursorLeft  = 'D'
)

// Decode the bytes read from the terminal into key names suitable for the
// userinput.Keyboard type. Unrecognised sequences are ignored.
func Decode(b []byte) []string {
	keys := make([]string, 0, len(b))

	for i := 0; i < len(b); i++ {
		switch b[i] {
		case keyEsc:
			if i+2 < len(b) && b[i+1] == keyCSI {
				switch b[i+2] {
				case cursorUp:
					keys = append(keys, "Up")
				case cursorDown:
					keys = append(keys, "Down")
				case cursorRight:
					keys = append(keys, "Right")
				case cursorLeft:
					keys = append(keys, "Left")
				}
				i += 2
				continue
			}
			keys = append(keys, "Escape")
		case keyTab:
			keys = append(keys, "Tab")
		case keyLF, keyCR:
			keys = append(keys, "Enter")
		case keySpace:
			keys = append(keys, "Space")
		case keyBackspace:
			keys = append(keys, "Backspace")
		default:
			if b[i] > keySpace && b[i] < keyBackspace {
				keys = append(keys, strings.ToUpper(string(b[i])))
			}
		}
	}

	return keys
}
