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

import (
	"sort"
	"sync"
	"time"

	"github.com/sprocketfe/sprocket/curated"
)

// Sentinal errors.
const (
	BackendError   = "audio backend: %v"
	UnknownBackend = "audio backend: unknown driver (%s)"
)

// Backend is the interface to an audio output device.
type Backend interface {
	// Write audio data in the format requested by SupportsFloat(). The
	// number of bytes consumed is returned. A short write is not an error.
	Write(p []byte) (int, error)

	// SetNonblocking changes whether Write() waits for space in the backend.
	SetNonblocking(nonblocking bool)

	// SupportsFloat returns true if the backend wants float32 samples.
	// Otherwise the backend wants 16 bit signed samples.
	SupportsFloat() bool

	// Start and Stop playback. Used to pause and resume the backend.
	Start() error
	Stop() error

	Close() error
}

// BufferReporter is implemented by backends that can report the state of
// their internal buffer. Both values are in bytes. Rate control is only
// possible for backends that implement this interface.
type BufferReporter interface {
	BufferCapacity() int
	WriteAvail() int
}

// RateReporter is implemented by backends that may open the device at a
// different rate to the one requested.
type RateReporter interface {
	OutputRate() float64
}

// BackendConfig is passed to a Creator function.
type BackendConfig struct {
	// the requested output rate in Hz
	OutputRate float64

	// the desired latency of the backend
	Latency time.Duration

	// backend specific device name. backends can interpret this as they
	// want. for example, the wav backend uses it as the filename
	Device string

	// request float32 samples if the backend supports them
	Float bool
}

// Creator is a function that creates a Backend.
type Creator func(cfg BackendConfig) (Backend, error)

// Registry is a list of named Creator functions.
type Registry struct {
	crit     sync.Mutex
	creators map[string]Creator
}

// NewRegistry is the preferred method of initialisation for the Registry
// type.
func NewRegistry() *Registry {
	return &Registry{
		creators: make(map[string]Creator),
	}
}

// Register a Creator function with a name. An existing entry with the same
// name is replaced.
func (r *Registry) Register(name string, create Creator) {
	r.crit.Lock()
	defer r.crit.Unlock()
	r.creators[name] = create
}

// Lookup returns the Creator for the named backend.
func (r *Registry) Lookup(name string) (Creator, error) {
	r.crit.Lock()
	defer r.crit.Unlock()
	if c, ok := r.creators[name]; ok {
		return c, nil
	}
	return nil, curated.Errorf(UnknownBackend, name)
}

// Names returns the sorted list of registered backends.
func (r *Registry) Names() []string {
	r.crit.Lock()
	defer r.crit.Unlock()
	n := make([]string, 0, len(r.creators))
	for k := range r.creators {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}
