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

// FastForward resolves the fast forward toggle and hold inputs into a single
// state. When fast forwarding the session is desynced from the audio
// backend.
//
// The toggle input flips a latch on the rising edge of the input. The hold
// input forces the desynced state for as long as it is held, whatever the
// latch. When the hold input is released the state reverts to the latch.
type FastForward struct {
	latch    bool
	desynced bool

	prevToggle bool
}

// Update with the current state of the toggle and hold inputs. Returns true
// if the desynced state has changed.
func (ff *FastForward) Update(toggle bool, hold bool) bool {
	prev := ff.desynced

	if toggle && !ff.prevToggle {
		ff.latch = !ff.latch
	}
	ff.prevToggle = toggle

	ff.desynced = hold || ff.latch

	return prev != ff.desynced
}

// Desynced returns true if the session is fast forwarding.
func (ff *FastForward) Desynced() bool {
	return ff.desynced
}
