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

package engine

import (
	"fmt"
	"strings"
)

// Input is the state of the engine's input device for a single frame. Each
// bit represents a button.
type Input uint16

// List of valid buttons.
const (
	ButtonUp Input = 1 << iota
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonA
	ButtonB
	ButtonStart
	ButtonSelect
)

var buttonNames = []struct {
	button Input
	name   string
}{
	{ButtonUp, "UP"},
	{ButtonDown, "DOWN"},
	{ButtonLeft, "LEFT"},
	{ButtonRight, "RIGHT"},
	{ButtonA, "A"},
	{ButtonB, "B"},
	{ButtonStart, "START"},
	{ButtonSelect, "SELECT"},
}

// ParseButton returns the button with the specified name. Names are case
// insensitive.
func ParseButton(name string) (Input, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for _, b := range buttonNames {
		if b.name == name {
			return b.button, nil
		}
	}
	return 0, fmt.Errorf("engine: unknown button (%s)", name)
}

// Pressed returns true if the button is pressed.
func (in Input) Pressed(button Input) bool {
	return in&button == button
}

func (in Input) String() string {
	s := make([]string, 0, len(buttonNames))
	for _, b := range buttonNames {
		if in.Pressed(b.button) {
			s = append(s, b.name)
		}
	}
	if len(s) == 0 {
		return "-"
	}
	return strings.Join(s, "+")
}
