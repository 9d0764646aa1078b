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

// Package prefs facilitates the storage of preferential values in the
// Sprocket system. It is a key/value store with typed values and optional
// hooks that are called when a value changes.
//
// A Disk instance collects values from one or more packages and persists
// them to a single file:
//
//	dsk, err := prefs.NewDisk(pth)
//	err = dsk.Add("audio.sync", &p.Sync)
//	err = dsk.Load(true)
//
// Values set from the command line with PushCommandLineStack() override the
// values in the file for the next call to Load().
package prefs
