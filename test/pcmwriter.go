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

package test

import (
	"encoding/binary"
	"math"
)

// PCMWriter is an implementation of the io.Writer interface that collects
// little-endian audio data. It is useful for checking what an audio backend
// has been given.
type PCMWriter struct {
	buffer []byte
	writes int
}

func (pw *PCMWriter) Write(p []byte) (n int, err error) {
	pw.buffer = append(pw.buffer, p...)
	pw.writes++
	return len(p), nil
}

// Clear empties the buffer and resets the write count.
func (pw *PCMWriter) Clear() {
	pw.buffer = pw.buffer[:0]
	pw.writes = 0
}

// Len returns the number of bytes written.
func (pw *PCMWriter) Len() int {
	return len(pw.buffer)
}

// Writes returns the number of calls to Write().
func (pw *PCMWriter) Writes() int {
	return pw.writes
}

// Int16 interprets the buffer as 16 bit signed samples.
func (pw *PCMWriter) Int16() []int16 {
	s := make([]int16, len(pw.buffer)/2)
	for i := range s {
		s[i] = int16(binary.LittleEndian.Uint16(pw.buffer[i*2:]))
	}
	return s
}

// Float32 interprets the buffer as 32 bit float samples.
func (pw *PCMWriter) Float32() []float32 {
	s := make([]float32, len(pw.buffer)/4)
	for i := range s {
		s[i] = math.Float32frombits(binary.LittleEndian.Uint32(pw.buffer[i*4:]))
	}
	return s
}
