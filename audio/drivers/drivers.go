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

// Package drivers is the list of audio backends available to Sprocket. The
// registry is created once, the first time it is requested.
package drivers

import (
	"sync"

	"github.com/sprocketfe/sprocket/audio"
	"github.com/sprocketfe/sprocket/audio/nullaudio"
	"github.com/sprocketfe/sprocket/audio/otoaudio"
	"github.com/sprocketfe/sprocket/audio/sdlaudio"
	"github.com/sprocketfe/sprocket/digest"
	"github.com/sprocketfe/sprocket/wavwriter"
)

var registry *audio.Registry
var once sync.Once

// Registry returns the registry of audio backends.
func Registry() *audio.Registry {
	once.Do(func() {
		registry = audio.NewRegistry()
		registry.Register("sdl", func(cfg audio.BackendConfig) (audio.Backend, error) {
			return sdlaudio.NewAudio(cfg)
		})
		registry.Register("oto", func(cfg audio.BackendConfig) (audio.Backend, error) {
			return otoaudio.NewAudio(cfg)
		})
		registry.Register("null", func(cfg audio.BackendConfig) (audio.Backend, error) {
			return nullaudio.NewAudio(cfg)
		})
		registry.Register("wav", func(cfg audio.BackendConfig) (audio.Backend, error) {
			return wavwriter.New(cfg)
		})
		registry.Register("digest", func(cfg audio.BackendConfig) (audio.Backend, error) {
			return digest.NewAudio(cfg)
		})
	})
	return registry
}

// Create the named backend.
func Create(name string, cfg audio.BackendConfig) (audio.Backend, error) {
	create, err := Registry().Lookup(name)
	if err != nil {
		return nil, err
	}
	return create(cfg)
}
