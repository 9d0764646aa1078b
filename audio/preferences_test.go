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

package audio_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/sprocketfe/sprocket/audio"
	"github.com/sprocketfe/sprocket/test"
)

func TestPreferences(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "preferences")

	p, err := audio.NewPreferences(pth)
	test.DemandSuccess(t, err)

	cfg := p.Config(32000, 3.0, 1068)
	test.ExpectEquality(t, cfg.OutputRate, 48000.0)
	test.ExpectEquality(t, cfg.BlockChunk, audio.DefaultBlockChunk)
	test.ExpectEquality(t, cfg.NonblockChunk, audio.DefaultNonblockChunk)
	test.ExpectSuccess(t, cfg.Sync)
	test.ExpectFailure(t, cfg.RateControl)
	test.ExpectEquality(t, cfg.FrameSamples, 1068)

	bcfg := p.BackendConfig()
	test.ExpectEquality(t, bcfg.Latency, 64*time.Millisecond)

	// invalid values are rejected
	test.ExpectFailure(t, p.BlockChunk.Set(3))
	test.ExpectFailure(t, p.RateControlDelta.Set(0.5))
	test.ExpectFailure(t, p.OutputRate.Set(0))
	test.ExpectEquality(t, p.BlockChunk.Get().(int), audio.DefaultBlockChunk)

	test.ExpectSuccess(t, p.Driver.Set("null"))
	test.ExpectSuccess(t, p.RateControl.Set(true))
	test.DemandSuccess(t, p.Save())

	q, err := audio.NewPreferences(pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, q.Driver.String(), "null")
	test.ExpectSuccess(t, q.RateControl.Get().(bool))

	q.SetDefaults()
	test.ExpectEquality(t, q.Driver.String(), "sdl")
}
