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

package audio

// RewindBuffer is a stack of stereo samples. Samples are pushed by
// decrementing the cursor, so reading the buffer from the cursor to the end
// produces the samples in the reverse order to which they were pushed.
//
// Pairs are pushed right channel first so that the channels of each pair are
// not swapped when read back.
type RewindBuffer struct {
	data   []int16
	cursor int
}

// NewRewindBuffer is the preferred method of initialisation for the
// RewindBuffer type. The capacity is measured in samples, not pairs.
func NewRewindBuffer(capacity int) *RewindBuffer {
	// capacity must be an even number
	capacity &^= 1
	return &RewindBuffer{
		data:   make([]int16, capacity),
		cursor: capacity,
	}
}

// Reset the buffer so that it is empty.
func (rb *RewindBuffer) Reset() {
	rb.cursor = len(rb.data)
}

// Push a stereo pair onto the stack. Pushing more samples than the buffer
// can hold is a sizing error and will panic.
func (rb *RewindBuffer) Push(left int16, right int16) {
	if rb.cursor < 2 {
		panic("audio: rewind buffer overflow")
	}
	rb.cursor--
	rb.data[rb.cursor] = right
	rb.cursor--
	rb.data[rb.cursor] = left
}

// Splice pushes every pair in the interleaved data.
func (rb *RewindBuffer) Splice(data []int16) {
	for i := 0; i+1 < len(data); i += 2 {
		rb.Push(data[i], data[i+1])
	}
}

// Contents returns the samples in the buffer. The returned slice is not a
// copy.
func (rb *RewindBuffer) Contents() []int16 {
	return rb.data[rb.cursor:]
}

// Len returns the number of samples in the buffer.
func (rb *RewindBuffer) Len() int {
	return len(rb.data) - rb.cursor
}

// Cap returns the capacity of the buffer in samples.
func (rb *RewindBuffer) Cap() int {
	return len(rb.data)
}
