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

// Package engine defines the boundary between the frontend and an emulation
// engine. The frontend steps the engine one frame at a time with Run() and
// collects the audio produced during the frame through the Sinks installed
// with SetSinks().
//
// Sinks can be replaced between frames. The rewind control loop uses this to
// redirect audio to the reverse sink for the duration of a rewound frame.
//
// Engine state can be serialized and unserialized at any frame boundary. All
// serialized states for an engine instance are the same size, as reported by
// SerializeSize().
package engine
