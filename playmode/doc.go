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

// Package playmode is the playback session. The Session type owns the
// engine, the audio pipeline, the rewind timeline and the input sources for
// the duration of a session.
//
// Every iteration of the session polls input, acts upon hotkeys and then
// runs the engine for a single frame. The order in which hotkeys are checked
// is significant. Mute, pause and frame advance are checked first. If the
// session is paused (and frame advance has not been pressed) the iteration
// ends there. The remaining checks are fast forward, state slots, save
// states, rewind, slow motion, movie playback, DSP configuration, reset and
// finally the input rate.
//
// Rewinding is handled by the RewindControl type. It is called once per
// frame, before the engine runs, and decides whether the frame will be run
// forwards or backwards. A backwards frame is a frame that has been restored
// from the timeline. The audio produced by that frame is collected by the
// audio pipeline's rewind buffer and played in reverse.
package playmode
