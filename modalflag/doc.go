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

// Package modalflag wraps the flag package from the standard library and
// adds program modes. Each mode has its own set of flags.
//
// Arguments are given with NewArgs() and then parsed one layer at a time
// with Parse(). Sub-modes are added to a layer with AddSubModes(), the first
// of which is the default. After a successful Parse() the selected mode is
// returned by Mode():
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "DRIVERS", "VERSION")
//
//	p, err := md.Parse()
//	switch p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		log := md.AddBool("log", false, "echo log to stdout")
//		...
//	}
//
// Calling NewMode() starts a new layer. The flags of the new layer are
// parsed from the arguments left over by the previous layer. Sub-mode names
// are case insensitive and always reported in upper case. Path() returns
// every mode selected so far, separated by a forward slash.
package modalflag
