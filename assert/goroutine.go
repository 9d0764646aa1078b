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

package assert

import (
	"bytes"
	"runtime"
	"strconv"
)

// GetGoRoutineID returns an identify for a goroutine. it returns a result that
// is (a) different between goroutines and (b) consistent for a given
// goroutine. It is undoubtedly useful for but it should only ever be used for
// debugging or testing purposes.
func GetGoRoutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// SingleGoroutine checks that it is always called from the same goroutine.
// The zero value is ready to use.
type SingleGoroutine struct {
	id uint64
}

// Check panics if the calling goroutine is not the goroutine that first
// called Check(). Does nothing unless the assertions build tag is present.
func (s *SingleGoroutine) Check(context string) {
	if !Enabled {
		return
	}
	id := GetGoRoutineID()
	if s.id == 0 {
		s.id = id
		return
	}
	if s.id != id {
		panic("assert: " + context + ": called from goroutine " + strconv.FormatUint(id, 10) +
			" but expected goroutine " + strconv.FormatUint(s.id, 10))
	}
}
