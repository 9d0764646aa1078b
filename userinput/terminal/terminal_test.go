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

package terminal_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sprocketfe/sprocket/curated"
	"github.com/sprocketfe/sprocket/test"
	"github.com/sprocketfe/sprocket/userinput"
	"github.com/sprocketfe/sprocket/userinput/terminal"
)

func TestDecode(t *testing.T) {
	keys := terminal.Decode([]byte("rZ \x1b[A\x1b[D\t\r"))
	test.ExpectEquality(t, len(keys), 7)
	expected := []string{"R", "Z", "Space", "Up", "Left", "Tab", "Enter"}
	for i := range expected {
		test.ExpectEquality(t, keys[i], expected[i])
	}

	// lone escape and unknown cursor sequence
	keys = terminal.Decode([]byte("\x1b"))
	test.ExpectEquality(t, len(keys), 1)
	test.ExpectEquality(t, keys[0], "Escape")

	keys = terminal.Decode([]byte("\x1b[Zq"))
	test.ExpectEquality(t, len(keys), 1)
	test.ExpectEquality(t, keys[0], "Q")

	// control characters are ignored
	keys = terminal.Decode([]byte{1, 2, 3})
	test.ExpectEquality(t, len(keys), 0)
}

func TestNotATerminal(t *testing.T) {
	kb := userinput.NewKeyboard()

	_, err := terminal.NewTerminal(nil, kb)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, terminal.TerminalError))

	// a regular file cannot be put into cbreak mode
	f, err := os.Create(filepath.Join(t.TempDir(), "input"))
	test.DemandSuccess(t, err)
	defer f.Close()

	trm, err := terminal.NewTerminal(f, kb)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, terminal.TerminalError))
	test.ExpectSuccess(t, trm == nil)
}
