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

// Package wavwriter implements the audio.Backend interface by writing audio
// data to disk as a WAV file. Note that audio data is buffered in memory in
// its entirity, and written to disk when the backend is closed. It is
// therefore probably only suitable for testing purposes.
package wavwriter

import (
	"encoding/binary"
	"os"

	"github.com/sprocketfe/sprocket/audio"
	"github.com/sprocketfe/sprocket/curated"
	"github.com/sprocketfe/sprocket/logger"
	"github.com/youpy/go-wav"
)

// DefaultFilename is used if the BackendConfig does not name a device.
const DefaultFilename = "sprocket.wav"

// WavWriter implements the audio.Backend interface.
type WavWriter struct {
	filename string
	rate     uint32
	buffer   []wav.Sample
	paused   bool
}

// New is the preferred method of initialisation for the WavWriter type. The
// device field of the BackendConfig is used as the filename.
func New(cfg audio.BackendConfig) (*WavWriter, error) {
	aw := &WavWriter{
		filename: cfg.Device,
		rate:     uint32(cfg.OutputRate),
		buffer:   make([]wav.Sample, 0),
	}
	if aw.filename == "" {
		aw.filename = DefaultFilename
	}
	if aw.rate == 0 {
		return nil, curated.Errorf("wavwriter: %v", "output rate must be positive")
	}
	return aw, nil
}

// Write implements the audio.Backend interface. Data is 16 bit stereo.
func (aw *WavWriter) Write(p []byte) (int, error) {
	n := len(p) &^ 3
	for i := 0; i < n; i += 4 {
		w := wav.Sample{}
		w.Values[0] = int(int16(binary.LittleEndian.Uint16(p[i:])))
		w.Values[1] = int(int16(binary.LittleEndian.Uint16(p[i+2:])))
		aw.buffer = append(aw.buffer, w)
	}
	return len(p), nil
}

// SetNonblocking implements the audio.Backend interface.
func (aw *WavWriter) SetNonblocking(_ bool) {
}

// SupportsFloat implements the audio.Backend interface.
func (aw *WavWriter) SupportsFloat() bool {
	return false
}

// Start implements the audio.Backend interface.
func (aw *WavWriter) Start() error {
	aw.paused = false
	return nil
}

// Stop implements the audio.Backend interface.
func (aw *WavWriter) Stop() error {
	aw.paused = true
	return nil
}

// Frames returns the number of stereo frames written so far.
func (aw *WavWriter) Frames() int {
	return len(aw.buffer)
}

// Close implements the audio.Backend interface. The WAV file is written.
func (aw *WavWriter) Close() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	enc := wav.NewWriter(f, uint32(len(aw.buffer)), 2, aw.rate, 16)
	if enc == nil {
		return curated.Errorf("wavwriter: %v", "bad parameters for wav encoding")
	}

	logger.Logf(logger.Allow, "wavwriter", "writing audio to %s", aw.filename)
	if err := enc.WriteSamples(aw.buffer); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	return nil
}
