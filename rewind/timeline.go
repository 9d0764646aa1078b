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

package rewind

import (
	"fmt"

	"github.com/sprocketfe/sprocket/curated"
)

// Sentinal errors.
const (
	EmptyTimeline  = "rewind: timeline is empty"
	BufferTooSmall = "rewind: buffer of %d bytes is too small for a state of %d bytes"
)

// Timeline is the history of serialised states.
type Timeline struct {
	blobSize int

	// all slots are allocated in a single block of memory
	data  []byte
	slots [][]byte

	// start is the index of the oldest state. count is the number of states
	// in the timeline
	start int
	count int
}

// NewTimeline is the preferred method of initialisation for the Timeline
// type. The capacity is measured in bytes. The number of slots in the
// timeline is the capacity divided by the blob size.
func NewTimeline(capacity int, blobSize int) (*Timeline, error) {
	if blobSize <= 0 {
		return nil, curated.Errorf("rewind: state size must be positive (%d)", blobSize)
	}

	n := capacity / blobSize
	if n < 1 {
		return nil, curated.Errorf(BufferTooSmall, capacity, blobSize)
	}

	tl := &Timeline{
		blobSize: blobSize,
		data:     make([]byte, n*blobSize),
		slots:    make([][]byte, n),
	}
	for i := range tl.slots {
		tl.slots[i] = tl.data[i*blobSize : (i+1)*blobSize : (i+1)*blobSize]
	}

	return tl, nil
}

func (tl *Timeline) String() string {
	return fmt.Sprintf("%d/%d states of %d bytes", tl.count, len(tl.slots), tl.blobSize)
}

// Push a copy of the serialised state into the timeline. If the timeline is
// full the oldest state is forgotten.
//
// The length of the state must be the blob size given to NewTimeline().
// Anything else is a programming error and will cause a panic.
func (tl *Timeline) Push(state []byte) {
	if len(state) != tl.blobSize {
		panic(fmt.Sprintf("rewind: pushed state is %d bytes. expected %d bytes", len(state), tl.blobSize))
	}

	e := tl.start + tl.count
	if e >= len(tl.slots) {
		e -= len(tl.slots)
	}
	copy(tl.slots[e], state)

	if tl.count == len(tl.slots) {
		// push start index along
		tl.start++
		if tl.start >= len(tl.slots) {
			tl.start = 0
		}
	} else {
		tl.count++
	}
}

// Pop removes the most recently pushed state and returns it. The returned
// slice is only valid until the next call to Push(). Returns the
// EmptyTimeline error if there are no states to pop.
func (tl *Timeline) Pop() ([]byte, error) {
	if tl.count == 0 {
		return nil, curated.Errorf(EmptyTimeline)
	}

	tl.count--
	e := tl.start + tl.count
	if e >= len(tl.slots) {
		e -= len(tl.slots)
	}

	return tl.slots[e], nil
}

// Reset removes all states from the timeline.
func (tl *Timeline) Reset() {
	tl.start = 0
	tl.count = 0
}

// Len returns the number of states in the timeline.
func (tl *Timeline) Len() int {
	return tl.count
}

// Cap returns the maximum number of states in the timeline.
func (tl *Timeline) Cap() int {
	return len(tl.slots)
}

// BlobSize returns the size of each state in bytes.
func (tl *Timeline) BlobSize() int {
	return tl.blobSize
}
