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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The ExpectEquality() and ExpectInequality() functions are the most commonly
// used. They use generics to check that the compared values are of the same
// type.
//
// ExpectSuccess() and ExpectFailure() test for success and failure in bool
// and error values. A nil value is considered a success.
//
// The Demand*() functions are the same as the corresponding Expect*()
// functions except that the test is stopped immediately if the test fails.
//
// CompareWriter and PCMWriter implement the io.Writer interface and are
// useful for capturing output from the packages under test.
package test
