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

// Package rewind keeps a history of serialised engine states. States are
// pushed every frame (or every few frames, depending on the granularity
// preference) and popped, most recent first, while the rewind input is held.
//
// The history is a circular array of fixed size slots. When the array is
// full the oldest state is forgotten. The size of a slot is the size of a
// serialised state, which is fixed for the duration of a session. The number
// of slots is decided by the buffer size preference.
package rewind
