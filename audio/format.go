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
	"encoding/binary"
	"math"
)

// Format is the sample format expected by the audio backend.
type Format int

// List of valid Format values.
const (
	FormatInt16 Format = iota
	FormatFloat32
)

func (f Format) String() string {
	switch f {
	case FormatInt16:
		return "int16"
	case FormatFloat32:
		return "float32"
	}
	return "unknown"
}

// BytesPerSample returns the size of a single sample.
func (f Format) BytesPerSample() int {
	if f == FormatFloat32 {
		return 4
	}
	return 2
}

// the scale between 16 bit samples and float samples. using a power of two
// means that converting to float and back is lossless.
const int16Scale = 0x8000

// Int16ToFloat converts 16 bit samples to float samples in the range -1.0 to
// 1.0. The converted samples are appended to dst.
func Int16ToFloat(dst []float32, src []int16) []float32 {
	for _, s := range src {
		dst = append(dst, float32(s)/int16Scale)
	}
	return dst
}

// FloatToInt16 converts float samples to 16 bit samples, clamping values
// outside of the range -1.0 to 1.0. The converted samples are appended to
// dst.
func FloatToInt16(dst []int16, src []float32) []int16 {
	for _, s := range src {
		v := math.Round(float64(s) * int16Scale)
		v = max(math.MinInt16, min(math.MaxInt16, v))
		dst = append(dst, int16(v))
	}
	return dst
}

// appendInt16 encodes samples as little-endian bytes.
func appendInt16(dst []byte, src []int16) []byte {
	for _, s := range src {
		dst = binary.LittleEndian.AppendUint16(dst, uint16(s))
	}
	return dst
}

// appendFloat32 encodes samples as little-endian bytes.
func appendFloat32(dst []byte, src []float32) []byte {
	for _, s := range src {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(s))
	}
	return dst
}
