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

// Package recorder records and plays back per-frame user input. A recording
// starts from a serialised engine state that is stored in the recording file.
// Playing back a recording restores that state before the first frame so the
// engine follows exactly the same path.
//
// Both the Recorder and Playback types implement the Log interface. The
// rewind system calls StepBackward() when it rolls the engine back by a
// frame so that the recording stays aligned with the engine.
package recorder
