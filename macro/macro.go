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

package macro

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sprocketfe/sprocket/engine"
	"github.com/sprocketfe/sprocket/environment"
	"github.com/sprocketfe/sprocket/logger"
	"github.com/sprocketfe/sprocket/userinput"
)

const (
	headerLineID = iota
	headerLineVersion
	headerNumLines
)

const headerID = "sprocketmacro"

// the number of frames a PRESS instruction holds its input for
const pressFrames = 2

// the default number of frames for the WAIT instruction
const defaultWait = 60

type loop struct {
	line int

	// loop counters count upwards because it is more natural when
	// referencing the counter value to think of the counter as counting
	// upwards
	count    int
	countEnd int

	// if loop counter has been named then we need to know it so that we can
	// update the entry in the variables table
	countName string
}

// Macro is a type that allows control of a playback session from a series
// of instructions. It implements the userinput.Source interface.
type Macro struct {
	env *environment.Environment

	filename     string
	instructions []string

	// the next instruction to execute
	ln int

	loops     []loop
	variables map[string]int

	// the state returned by Poll()
	state userinput.State

	// inputs to release once the current wait has completed
	pressed []string

	wait  int
	ended bool
}

// NewMacro is the preferred method of initialisation for the Macro type.
func NewMacro(env *environment.Environment, filename string) (*Macro, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("macro: %w", err)
	}
	defer f.Close()

	mcr, err := ReadMacro(env, f)
	if err != nil {
		return nil, fmt.Errorf("macro: %s: %w", filename, err)
	}
	mcr.filename = filename

	return mcr, nil
}

// ReadMacro creates a new Macro from the contents of the io.Reader.
func ReadMacro(env *environment.Environment, r io.Reader) (*Macro, error) {
	buffer, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	mcr := &Macro{
		env:       env,
		filename:  "macro",
		variables: make(map[string]int),
	}

	// convert contents to an array of lines
	mcr.instructions = strings.Split(string(buffer), "\n")
	if len(mcr.instructions) < headerNumLines {
		return nil, fmt.Errorf("not a macro file")
	}
	if strings.TrimSpace(mcr.instructions[headerLineID]) != headerID {
		return nil, fmt.Errorf("not a macro file")
	}

	// ignore version string for now

	// we no longer need the header
	mcr.instructions = mcr.instructions[headerNumLines:]

	return mcr, nil
}

func (mcr *Macro) String() string {
	return mcr.filename
}

// Ended returns true if the macro has no more instructions to execute.
func (mcr *Macro) Ended() bool {
	return mcr.ended
}

func (mcr *Macro) log(msg string) {
	logger.Logf(mcr.env, "macro", "%s: %d: %s", mcr.filename, mcr.ln+headerNumLines, msg)
}

// Poll implements the userinput.Source interface. Every call to Poll()
// represents one frame.
func (mcr *Macro) Poll() (userinput.State, error) {
	if mcr.wait > 0 {
		mcr.wait--
		return mcr.state, nil
	}

	for _, p := range mcr.pressed {
		mcr.set(p, false)
	}
	mcr.pressed = mcr.pressed[:0]

	for !mcr.ended && mcr.wait == 0 {
		if mcr.ln >= len(mcr.instructions) {
			mcr.ended = true
			break
		}
		if err := mcr.step(); err != nil {
			mcr.log(err.Error())
			mcr.ended = true
			mcr.state = userinput.State{}
		}
	}

	// the current frame counts towards the wait
	if mcr.wait > 0 {
		mcr.wait--
	}

	return mcr.state, nil
}

// set the held state of the named button or hotkey.
func (mcr *Macro) set(name string, held bool) error {
	if b, err := engine.ParseButton(name); err == nil {
		if held {
			mcr.state.Input |= b
		} else {
			mcr.state.Input &^= b
		}
		return nil
	}
	h, err := userinput.ParseHotkey(name)
	if err != nil {
		return fmt.Errorf("unrecognised input: %s", name)
	}
	mcr.state.Set(h, held)
	return nil
}

func (mcr *Macro) lookupVariable(n string) (int, bool, error) {
	if n[0] != '%' {
		return 0, false, nil
	}

	n = n[1:]
	v, ok := mcr.variables[n]
	if !ok {
		return 0, true, fmt.Errorf("cannot use variable '%s' because it does not exist", n)
	}
	return v, true, nil
}

// execute the instruction at the current line and advance.
func (mcr *Macro) step() error {
	ln := mcr.ln
	mcr.ln++

	toks := strings.Fields(mcr.instructions[ln])
	if len(toks) == 0 {
		return nil
	}

	switch toks[0] {
	default:
		return fmt.Errorf("unrecognised command: %s", toks[0])

	case "--":
		// ignore comment lines

	case "DO":
		tl := len(toks)
		switch tl {
		case 1:
			return fmt.Errorf("too few arguments for DO")
		case 2, 3:
			ct, err := strconv.Atoi(toks[1])
			if err != nil {
				return err
			}
			lp := loop{
				line:     ln,
				countEnd: ct,
			}
			if tl == 3 {
				lp.countName = toks[2]
				mcr.variables[lp.countName] = lp.count
			}
			mcr.loops = append(mcr.loops, lp)
		default:
			return fmt.Errorf("too many arguments for DO")
		}

	case "LOOP":
		if len(toks) > 1 {
			return fmt.Errorf("too many arguments for LOOP")
		}

		idx := len(mcr.loops) - 1
		if idx == -1 {
			return fmt.Errorf("LOOP without a DO")
		}

		lp := &mcr.loops[idx]
		lp.count++

		if lp.count < lp.countEnd {
			// loop is ongoing so return to the instruction after the DO
			mcr.ln = lp.line + 1

			if lp.countName != "" {
				mcr.variables[lp.countName] = lp.count
			}
		} else {
			// loop has ended. remove from loop stack and delete variable name
			delete(mcr.variables, lp.countName)
			mcr.loops = mcr.loops[:idx]
		}

	case "WAIT":
		w := defaultWait

		switch len(toks) {
		case 2:
			var err error
			w, err = strconv.Atoi(toks[1])
			if err != nil {
				return err
			}
			if w < 0 {
				return fmt.Errorf("negative value for WAIT")
			}
		case 1:
		default:
			return fmt.Errorf("too many arguments for WAIT")
		}
		mcr.wait = w

	case "PRESS":
		if len(toks) != 2 {
			return fmt.Errorf("PRESS requires one argument")
		}
		if err := mcr.set(toks[1], true); err != nil {
			return err
		}
		mcr.pressed = append(mcr.pressed, toks[1])
		mcr.wait = pressFrames

	case "HOLD":
		if len(toks) != 2 {
			return fmt.Errorf("HOLD requires one argument")
		}
		return mcr.set(toks[1], true)

	case "RELEASE":
		if len(toks) != 2 {
			return fmt.Errorf("RELEASE requires one argument")
		}
		return mcr.set(toks[1], false)

	case "LOG":
		var s strings.Builder
		for _, c := range toks[1:] {
			v, ok, err := mcr.lookupVariable(c)
			if err != nil {
				return err
			}
			if ok {
				s.WriteString(fmt.Sprintf("%d", v))
			} else {
				s.WriteString(c)
			}
			s.WriteRune(' ')
		}
		logger.Log(mcr.env, "macro", strings.TrimSpace(s.String()))

	case "QUIT":
		if len(toks) > 1 {
			return fmt.Errorf("too many arguments for QUIT")
		}
		mcr.state.Set(userinput.Quit, true)
		mcr.ended = true
	}

	return nil
}
