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
	"fmt"
	"time"

	"github.com/sprocketfe/sprocket/prefs"
)

// Preferences for the audio pipeline.
type Preferences struct {
	dsk *prefs.Disk

	// name of the backend driver and the device to open
	Driver prefs.String
	Device prefs.String

	// name of the resampler
	Resampler prefs.String

	// output rate in Hz and backend latency in milliseconds
	OutputRate prefs.Float
	Latency    prefs.Int

	// if sync is false the backend never blocks
	Sync prefs.Bool

	RateControl      prefs.Bool
	RateControlDelta prefs.Float

	// the change in input rate (Hz) for every frame the input rate hotkeys
	// are held
	RateStep prefs.Float

	// path to the DSP plugin. empty for no plugin
	DSP prefs.String

	Mute prefs.Bool

	// chunk sizes in samples
	BlockChunk    prefs.Int
	NonblockChunk prefs.Int
}

func (p *Preferences) String() string {
	return fmt.Sprintf("driver=%s resampler=%s outrate=%s latency=%sms sync=%s ratecontrol=%s",
		p.Driver.String(), p.Resampler.String(), p.OutputRate.String(), p.Latency.String(),
		p.Sync.String(), p.RateControl.String())
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. The pth argument is the prefs file.
func NewPreferences(pth string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	p.RateControlDelta.SetHookPre(func(v prefs.Value) error {
		if d := v.(float64); d < 0 || d > 0.1 {
			return fmt.Errorf("audio: rate control delta must be between 0.0 and 0.1")
		}
		return nil
	})

	chunk := func(v prefs.Value) error {
		if c := v.(int); c < 2 || c%2 != 0 {
			return fmt.Errorf("audio: chunk size must be a positive even number")
		}
		return nil
	}
	p.BlockChunk.SetHookPre(chunk)
	p.NonblockChunk.SetHookPre(chunk)

	p.OutputRate.SetHookPre(func(v prefs.Value) error {
		if v.(float64) <= 0 {
			return fmt.Errorf("audio: output rate must be positive")
		}
		return nil
	})

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("audio.driver", &p.Driver)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("audio.device", &p.Device)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("audio.resampler", &p.Resampler)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("audio.outrate", &p.OutputRate)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("audio.latency", &p.Latency)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("audio.sync", &p.Sync)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("audio.ratecontrol", &p.RateControl)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("audio.ratecontrol.delta", &p.RateControlDelta)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("audio.ratestep", &p.RateStep)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("audio.dsp", &p.DSP)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("audio.mute", &p.Mute)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("audio.blockchunk", &p.BlockChunk)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("audio.nonblockchunk", &p.NonblockChunk)
	if err != nil {
		return nil, err
	}

	if err := p.dsk.Load(true); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all audio settings to default values.
func (p *Preferences) SetDefaults() {
	p.Driver.Set("sdl")
	p.Device.Set("")
	p.Resampler.Set("sinc")
	p.OutputRate.Set(48000.0)
	p.Latency.Set(64)
	p.Sync.Set(true)
	p.RateControl.Set(false)
	p.RateControlDelta.Set(0.005)
	p.RateStep.Set(0.25)
	p.DSP.Set("")
	p.Mute.Set(false)
	p.BlockChunk.Set(DefaultBlockChunk)
	p.NonblockChunk.Set(DefaultNonblockChunk)
}

// Load audio preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current audio preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// BackendConfig returns the preferences as a BackendConfig.
func (p *Preferences) BackendConfig() BackendConfig {
	return BackendConfig{
		OutputRate: p.OutputRate.Get().(float64),
		Latency:    time.Duration(p.Latency.Get().(int)) * time.Millisecond,
		Device:     p.Device.String(),
		Float:      true,
	}
}

// Config returns the preferences as a pipeline Config. The input rate,
// slow motion ratio and frame size are supplied by the caller.
func (p *Preferences) Config(inputRate float64, slowMotionRatio float64, frameSamples int) Config {
	return Config{
		InputRate:        inputRate,
		OutputRate:       p.OutputRate.Get().(float64),
		Sync:             p.Sync.Get().(bool),
		RateControl:      p.RateControl.Get().(bool),
		RateControlDelta: p.RateControlDelta.Get().(float64),
		SlowMotionRatio:  slowMotionRatio,
		BlockChunk:       p.BlockChunk.Get().(int),
		NonblockChunk:    p.NonblockChunk.Get().(int),
		FrameSamples:     frameSamples,
		Mute:             p.Mute.Get().(bool),
	}
}
