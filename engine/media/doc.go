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

// Package media is an engine that plays an audio file. It is the simplest
// possible engine with audio output, serializable state and save memory and
// is useful for demonstrating and testing the frontend.
//
// Supported file types are WAV, MP3 and Ogg Vorbis.
//
// The playback position, volume and pan are part of the serialized state.
// Rewinding the engine therefore plays the file backwards. The save memory
// holds a bookmark and a counter of how many times the bookmark has been
// set.
//
// Buttons:
//
//	UP/DOWN     volume
//	LEFT/RIGHT  pan
//	A           set bookmark
//	B           jump to bookmark
//	START       play/pause
//	SELECT      jump to start
package media
