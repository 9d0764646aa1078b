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

package recorder

import (
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sprocketfe/sprocket/curated"
	"github.com/sprocketfe/sprocket/engine"
)

// recording file header format
// ----------------------------
//
// sprocket input recording
// <engine ID>
// <base64 encoded start state>
//
// followed by one line for every frame
//
// <frame>, <input>

const magicString = "sprocket input recording"

const (
	lineMagic int = iota
	lineEngineID
	lineState
	numHeaderLines
)

const (
	fieldFrame int = iota
	fieldInput
	numFields
)

const fieldSep = ", "

type header struct {
	engineID string
	state    []byte
}

func writeRecording(w io.Writer, hdr header, frames []engine.Input) error {
	lines := make([]string, numHeaderLines)
	lines[lineMagic] = magicString
	lines[lineEngineID] = hdr.engineID
	lines[lineState] = base64.StdEncoding.EncodeToString(hdr.state)

	b := strings.Builder{}
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")
	for i, in := range frames {
		b.WriteString(fmt.Sprintf("%d%s%04x\n", i, fieldSep, uint16(in)))
	}

	n, err := io.WriteString(w, b.String())
	if err != nil {
		return curated.Errorf(RecordingError, err)
	}
	if n != b.Len() {
		return curated.Errorf(RecordingError, "output truncated")
	}

	return nil
}

func readRecording(r io.Reader) (header, []engine.Input, error) {
	var hdr header

	buffer, err := io.ReadAll(r)
	if err != nil {
		return hdr, nil, curated.Errorf(PlaybackError, err)
	}

	// convert file contents to an array of lines
	lines := strings.Split(string(buffer), "\n")
	if len(lines) < numHeaderLines {
		return hdr, nil, curated.Errorf(PlaybackError, "not a recording file")
	}

	if lines[lineMagic] != magicString {
		return hdr, nil, curated.Errorf(PlaybackError, "not a recording file")
	}

	hdr.engineID = lines[lineEngineID]
	hdr.state, err = base64.StdEncoding.DecodeString(lines[lineState])
	if err != nil {
		return hdr, nil, curated.Errorf(PlaybackError, fmt.Sprintf("start state: %v", err))
	}

	frames := make([]engine.Input, 0, len(lines)-numHeaderLines)

	for i := numHeaderLines; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}

		toks := strings.Split(lines[i], fieldSep)
		if len(toks) != numFields {
			return hdr, nil, curated.Errorf(PlaybackError, fmt.Sprintf("expected %d fields at line %d", numFields, i+1))
		}

		fn, err := strconv.Atoi(toks[fieldFrame])
		if err != nil {
			return hdr, nil, curated.Errorf(PlaybackError, fmt.Sprintf("%v line %d", err, i+1))
		}
		if fn != len(frames) {
			return hdr, nil, curated.Errorf(PlaybackError, fmt.Sprintf("frame %d out of sequence at line %d", fn, i+1))
		}

		in, err := strconv.ParseUint(toks[fieldInput], 16, 16)
		if err != nil {
			return hdr, nil, curated.Errorf(PlaybackError, fmt.Sprintf("%v line %d", err, i+1))
		}

		frames = append(frames, engine.Input(in))
	}

	return hdr, frames, nil
}
