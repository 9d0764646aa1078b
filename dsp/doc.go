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

// Package dsp loads signal processing plugins. A plugin transforms the audio
// produced by the engine before it is resampled and sent to the audio
// backend.
//
// Plugins are built with the plugin package of the Go standard library
// (go build -buildmode=plugin) and must export a symbol named SprocketDSP
// of type dsp.Plugin or func() *dsp.Plugin. The APIVersion field of the
// plugin must match the APIVersion constant of this package.
//
// A small number of builtin plugins are available without loading a shared
// object. They are specified with the "builtin:" prefix. For example:
//
//	builtin:volume
//	builtin:mono
package dsp
