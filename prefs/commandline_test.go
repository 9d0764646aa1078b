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

package prefs_test

import (
	"testing"

	"github.com/sprocketfe/sprocket/prefs"
	"github.com/sprocketfe/sprocket/test"
)

func TestCommandLineParsing(t *testing.T) {
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	// the unused entries of a group are returned sorted by key
	for _, c := range []struct {
		push     string
		expected string
	}{
		{"audio.sync::false", "audio.sync::false"},
		{"   audio.sync:: false ", "audio.sync::false"},
		{"rewind.enable::true; audio.sync::false", "audio.sync::false; rewind.enable::true"},
		{"rewind.enable", ""},
		{"rewind.enable;audio.mute::true", "audio.mute::true"},
		{"", ""},
	} {
		prefs.PushCommandLineStack(c.push)
		test.ExpectEquality(t, prefs.PopCommandLineStack(), c.expected, c.push)
	}
}

func TestCommandLineConsume(t *testing.T) {
	prefs.PushCommandLineStack("audio.sync::false; rewind.granularity")

	ok, _ := prefs.GetCommandLinePref("rewind.granularity")
	test.ExpectFailure(t, ok)

	ok, v := prefs.GetCommandLinePref("audio.sync")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, "false")

	// a value can only be consumed once
	ok, _ = prefs.GetCommandLinePref("audio.sync")
	test.ExpectFailure(t, ok)

	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
}

func TestCommandLineStack(t *testing.T) {
	prefs.PushCommandLineStack("audio.mute::true")
	prefs.PushCommandLineStack("audio.sync::false")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 2)

	// only the top of the stack is searched
	ok, _ := prefs.GetCommandLinePref("audio.mute")
	test.ExpectFailure(t, ok)

	test.ExpectEquality(t, prefs.PopCommandLineStack(), "audio.sync::false")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "audio.mute::true")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
}
