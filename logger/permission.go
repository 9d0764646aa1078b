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

package logger

// Permission is implemented by anything that makes log requests. New entries
// are only added to the log if AllowLogging() returns true.
type Permission interface {
	AllowLogging() bool
}

type fixed bool

func (p fixed) AllowLogging() bool {
	return bool(p)
}

// Allow and Deny are permissions that are always and never granted. Allow is
// a good default for log entries that should always be made.
var (
	Allow Permission = fixed(true)
	Deny  Permission = fixed(false)
)
