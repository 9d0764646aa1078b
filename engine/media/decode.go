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

package media

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
)

// DecodeError is returned when a media file cannot be decoded.
const DecodeError = "media: %s: %v"

// pcm is interleaved stereo data.
type pcm struct {
	data       []int16
	sampleRate float64
}

func decode(filename string, data []byte) (pcm, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		return decodeWAV(data)
	case ".mp3":
		return decodeMP3(data)
	case ".ogg":
		return decodeOgg(data)
	}
	return pcm{}, fmt.Errorf("unsupported file type (%s)", filepath.Ext(filename))
}

func decodeWAV(data []byte) (pcm, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if dec == nil || !dec.IsValidFile() {
		return pcm{}, fmt.Errorf("wav: not a valid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return pcm{}, fmt.Errorf("wav: %w", err)
	}

	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = int(dec.BitDepth)
	}

	conv := func(v int) int16 {
		switch {
		case depth == 8:
			// 8 bit wav data is unsigned
			return int16((v - 128) << 8)
		case depth > 16:
			return int16(v >> (depth - 16))
		}
		return int16(v)
	}

	chans := int(dec.NumChans)
	if chans == 0 {
		return pcm{}, fmt.Errorf("wav: no channels")
	}

	p := pcm{
		data:       make([]int16, 0, len(buf.Data)/chans*2),
		sampleRate: float64(dec.SampleRate),
	}
	for i := 0; i+chans <= len(buf.Data); i += chans {
		l := conv(buf.Data[i])
		r := l
		if chans > 1 {
			r = conv(buf.Data[i+1])
		}
		p.data = append(p.data, l, r)
	}

	return p, nil
}

func decodeMP3(data []byte) (pcm, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return pcm{}, fmt.Errorf("mp3: %w", err)
	}

	// the mp3 decoder always produces 16bit little-endian stereo
	raw, err := io.ReadAll(dec)
	if err != nil {
		return pcm{}, fmt.Errorf("mp3: %w", err)
	}

	p := pcm{
		data:       make([]int16, len(raw)/4*2),
		sampleRate: float64(dec.SampleRate()),
	}
	for i := range p.data {
		p.data[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
	}

	return p, nil
}

func decodeOgg(data []byte) (pcm, error) {
	samples, format, err := oggvorbis.ReadAll(bytes.NewReader(data))
	if err != nil {
		return pcm{}, fmt.Errorf("ogg: %w", err)
	}

	chans := format.Channels
	if chans == 0 {
		return pcm{}, fmt.Errorf("ogg: no channels")
	}

	conv := func(v float32) int16 {
		return int16(math.Max(-32768, math.Min(32767, float64(v)*32768)))
	}

	p := pcm{
		data:       make([]int16, 0, len(samples)/chans*2),
		sampleRate: float64(format.SampleRate),
	}
	for i := 0; i+chans <= len(samples); i += chans {
		l := conv(samples[i])
		r := l
		if chans > 1 {
			r = conv(samples[i+1])
		}
		p.data = append(p.data, l, r)
	}

	return p, nil
}
