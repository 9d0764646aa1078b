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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface but store the pattern used to
// create them. This allows errors to be compared by pattern rather than by
// value, which is useful when the same error can be created with different
// values.
//
// Packages declare their error patterns as exported constants:
//
//	const BackendError = "audio backend: %v"
//
// and callers test for them with Is() and Has():
//
//	if curated.Has(err, audio.BackendError) {
//		...
//	}
//
// The Error() function normalises the message by removing adjacent duplicate
// parts, which happens frequently when errors are wrapped by packages that
// prefix messages with their own name.
package curated
