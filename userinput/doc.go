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

// Package userinput handles input from real hardware that the user is using
// to control the engine and the playback session.
//
// It can be thought of as a translation layer between the input device and
// the playback loop. Input is polled once per frame. The result of a poll is
// a State value, which contains the engine input (the buttons) and the
// hotkeys (rewind, fast forward, etc.) that are currently held.
//
// Hotkeys are acted upon either while they are held or on the rising edge of
// the press. The Tracker type keeps the previous state so that edges can be
// detected.
package userinput
