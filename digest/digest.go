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

// Package digest creates SHA1 digests of audio output. The Audio type is an
// audio backend that hashes everything written to it, which is useful for
// checking that a session is deterministic. For example, that the playback
// of an input recording produces exactly the same audio as the recording
// session.
package digest

// Digest implementations compute a running digest of data.
type Digest interface {
	Hash() string
	ResetDigest()
}
