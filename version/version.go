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

// Package version reports the version of the program. The version number is
// set at link time:
//
//	go build -ldflags "-X github.com/sprocketfe/sprocket/version.number=v0.1.0"
//
// Builds without a version number are "unreleased" if they were made from a
// version controlled checkout and "local" otherwise.
package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is the name of the program.
const ApplicationName = "Sprocket"

// set with -ldflags
var number string

var revision string
var version string

// Version returns the version string, the revision string and whether the
// build is a release build.
func Version() (string, string, bool) {
	return version, revision, number != "" && version == number
}

func init() {
	vcs, rev, modified := readBuildInfo()

	switch {
	case rev == "":
		revision = "no revision information"
	case modified:
		revision = fmt.Sprintf("%s+dirty", rev)
	default:
		revision = rev
	}

	switch {
	case number != "":
		version = number
	case vcs:
		version = "unreleased"
	default:
		version = "local"
	}
}

func readBuildInfo() (vcs bool, rev string, modified bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs":
			vcs = true
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	return
}
