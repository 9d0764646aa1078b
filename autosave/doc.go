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

// Package autosave periodically writes the save memory of an engine to
// persistent storage.
//
// The worker runs in its own goroutine. The engine must not change its save
// memory while the worker is copying it, so the worker and the playback loop
// share a lock. The playback loop holds the lock while the engine is running
// a frame and while a rewound state is being restored.
package autosave
