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

// Package paths contains functions to prepare paths to Sprocket resources.
//
// The ResourcePath() function returns the path of a resource in the
// configuration directory, creating the directory if required. For
// development builds the configuration directory is ".sprocket" in the
// current working directory. For release builds (built with the "release"
// tag) the directory is "sprocket" in the user's configuration directory.
package paths
