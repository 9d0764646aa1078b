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

package autosave

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/sprocketfe/sprocket/environment"
	"github.com/sprocketfe/sprocket/logger"
)

// Store is the persistent storage for save memory.
type Store interface {
	SaveMemory(ctx context.Context, engineID string, data []byte) error
}

// Memory is implemented by the engine.
type Memory interface {
	ID() string
	SaveMemory() []byte
}

// Autosave writes save memory to the Store when it has changed. Autosave
// implements the sync.Locker interface.
type Autosave struct {
	env   *environment.Environment
	store Store
	mem   Memory

	interval time.Duration

	// crit protects the engine's save memory
	crit sync.Mutex

	// copy of the save memory as it was last written. only accessed by the
	// goroutine running the worker (or by Stop() once the worker has ended)
	last []byte

	// copy of save memory taken under the lock
	snapshot []byte

	quit chan bool
	wg   sync.WaitGroup
}

// NewAutosave is the preferred method of initialisation for the Autosave
// type. The current contents of the save memory are considered to be
// already saved.
func NewAutosave(env *environment.Environment, store Store, mem Memory, interval time.Duration) *Autosave {
	as := &Autosave{
		env:      env,
		store:    store,
		mem:      mem,
		interval: interval,
		quit:     make(chan bool),
	}
	as.last = bytes.Clone(mem.SaveMemory())
	return as
}

// Lock implements the sync.Locker interface.
func (as *Autosave) Lock() {
	as.crit.Lock()
}

// Unlock implements the sync.Locker interface.
func (as *Autosave) Unlock() {
	as.crit.Unlock()
}

// Start the worker. Does nothing if the interval is zero or less.
func (as *Autosave) Start() {
	if as.interval <= 0 {
		return
	}

	as.wg.Add(1)
	go func() {
		defer as.wg.Done()

		tck := time.NewTicker(as.interval)
		defer tck.Stop()

		for {
			select {
			case <-as.quit:
				return
			case <-tck.C:
				if _, err := as.save(); err != nil {
					logger.Log(as.env, "autosave", err)
				}
			}
		}
	}()
}

// save copies the save memory under the lock and writes it to the store if
// it has changed since the last save. returns true if a write was made.
func (as *Autosave) save() (bool, error) {
	as.crit.Lock()
	as.snapshot = append(as.snapshot[:0], as.mem.SaveMemory()...)
	as.crit.Unlock()

	if bytes.Equal(as.snapshot, as.last) {
		return false, nil
	}

	if err := as.store.SaveMemory(context.Background(), as.mem.ID(), as.snapshot); err != nil {
		return false, err
	}
	as.last = append(as.last[:0], as.snapshot...)

	logger.Logf(as.env, "autosave", "saved %d bytes of save memory", len(as.last))

	return true, nil
}

// Stop the worker and write the save memory one last time.
func (as *Autosave) Stop() error {
	close(as.quit)
	as.wg.Wait()
	_, err := as.save()
	return err
}
