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

// Package terminal is a userinput.Source that reads key presses from a posix
// terminal. The terminal is put into cbreak mode for the duration of the
// session.
//
// Terminals do not report key releases. A key is considered held until no
// press or auto-repeat has been seen for HoldTimeout. The initial auto-repeat
// delay of most terminals is shorter than the default timeout.
package terminal

import (
	"os"
	"sync"
	"time"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"

	"github.com/sprocketfe/sprocket/curated"
	"github.com/sprocketfe/sprocket/userinput"
)

// TerminalError is the pattern of errors returned by the terminal.
const TerminalError = "terminal: %v"

// HoldTimeout is the default period after which a key is considered to be
// released.
const HoldTimeout = 550 * time.Millisecond

// poll timeout of the reading goroutine in milliseconds
const pollTimeout = 50

// Terminal implements the userinput.Source interface.
type Terminal struct {
	input *os.File

	canAttr    unix.Termios
	cbreakAttr unix.Termios

	kb          *userinput.Keyboard
	lastSeen    map[string]time.Time
	HoldTimeout time.Duration

	// keys read by the reading goroutine
	keys chan []byte

	// reading goroutine quits when done is closed
	done chan bool
	wg   sync.WaitGroup

	// error from reading goroutine
	err chan error

	// time source. replaced during testing
	now func() time.Time
}

// NewTerminal is the preferred method of initialisation for the Terminal
// type. The input file must be a terminal.
func NewTerminal(input *os.File, kb *userinput.Keyboard) (*Terminal, error) {
	if input == nil {
		return nil, curated.Errorf(TerminalError, "requires an input file")
	}

	trm := &Terminal{
		input:       input,
		kb:          kb,
		lastSeen:    make(map[string]time.Time),
		HoldTimeout: HoldTimeout,
		keys:        make(chan []byte, 64),
		done:        make(chan bool),
		err:         make(chan error, 1),
		now:         time.Now,
	}

	if err := termios.Tcgetattr(trm.input.Fd(), &trm.canAttr); err != nil {
		return nil, curated.Errorf(TerminalError, err)
	}

	// cbreak mode keeps output processing and signals intact
	trm.cbreakAttr = trm.canAttr
	termios.Cfmakecbreak(&trm.cbreakAttr)
	if err := termios.Tcsetattr(trm.input.Fd(), termios.TCSANOW, &trm.cbreakAttr); err != nil {
		return nil, curated.Errorf(TerminalError, err)
	}

	trm.wg.Add(1)
	go trm.read()

	return trm, nil
}

func (trm *Terminal) read() {
	defer trm.wg.Done()

	fd := int(trm.input.Fd())
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	buf := make([]byte, 32)

	for {
		select {
		case <-trm.done:
			return
		default:
		}

		n, err := unix.Poll(fds, pollTimeout)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			trm.err <- curated.Errorf(TerminalError, err)
			return
		}
		if n == 0 || fds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err = unix.Read(fd, buf)
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			trm.err <- curated.Errorf(TerminalError, err)
			return
		}

		b := make([]byte, n)
		copy(b, buf[:n])
		select {
		case trm.keys <- b:
		case <-trm.done:
			return
		}
	}
}

// Poll implements the userinput.Source interface.
func (trm *Terminal) Poll() (userinput.State, error) {
	select {
	case err := <-trm.err:
		return userinput.State{}, err
	default:
	}

	now := trm.now()

	done := false
	for !done {
		select {
		case b := <-trm.keys:
			for _, k := range Decode(b) {
				if trm.kb.HandleEvent(userinput.EventKeyboard{Key: k, Down: true}) {
					trm.lastSeen[k] = now
				}
			}
		default:
			done = true
		}
	}

	trm.expire(now)

	return trm.kb.State(), nil
}

// release keys that have not been seen for the hold timeout
func (trm *Terminal) expire(now time.Time) {
	for k, t := range trm.lastSeen {
		if now.Sub(t) >= trm.HoldTimeout {
			trm.kb.HandleEvent(userinput.EventKeyboard{Key: k, Down: false})
			delete(trm.lastSeen, k)
		}
	}
}

// Close stops reading from the terminal and restores canonical mode.
func (trm *Terminal) Close() error {
	close(trm.done)
	trm.wg.Wait()
	if err := termios.Tcsetattr(trm.input.Fd(), termios.TCSANOW, &trm.canAttr); err != nil {
		return curated.Errorf(TerminalError, err)
	}
	return nil
}
