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

// Package macro implements a simple scripting language for driving a
// playback session. A macro is a userinput.Source and is polled once per
// frame like any other input device.
//
// The first line of a macro file must be "sprocketmacro" and the second line
// is a version string (currently ignored). The remaining lines are
// instructions, one per line:
//
//	-- comment
//	DO n [name]       start of a loop that runs n times. the optional name
//	                  can be used to reference the loop counter
//	LOOP              end of the innermost loop
//	WAIT [n]          wait for n frames. defaults to 60
//	PRESS name        press and release a button or hotkey
//	HOLD name         hold a button or hotkey until RELEASE
//	RELEASE name      release a held button or hotkey
//	LOG args...       write a message to the log. arguments that begin
//	                  with % are loop counter names
//	QUIT              end the playback session
//
// Button names are the engine button names (UP, START, etc.) and hotkey names
// are as defined in the userinput package (REWIND, FASTFORWARD, etc.).
//
// A PRESS instruction holds the input for two frames before releasing it and
// moving on to the next instruction. This ensures that the input has the
// chance to take effect in the engine and that hotkeys see a distinct press
// and release.
package macro
