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

// Package audio implements the audio delivery pipeline. Samples produced by
// the engine are accumulated by the Pipeline into chunks. Each chunk is
// passed through an optional signal processor (see the dsp package),
// resampled to the output rate of the audio backend and written to the
// backend.
//
// The resampling ratio is adjusted on every flush by the RateController,
// which uses the backend's buffer occupancy to keep the backend's queue
// about half full. This keeps latency low without the backend running dry.
//
// The Pipeline also manages a RewindBuffer. When a rewind episode begins the
// partially filled chunk is spliced into the buffer so that no audio is lost
// or duplicated across the change of direction. While rewinding, the
// engine's audio is sent to the reverse sink which fills the buffer
// backwards. The contents of the buffer are flushed at the start of the next
// frame.
//
// Backends are created through a Registry of named Creator functions. See
// the drivers package for the list of available backends.
package audio
