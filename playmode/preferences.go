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

package playmode

import (
	"fmt"

	"github.com/sprocketfe/sprocket/prefs"
)

// Preferences for the playback session.
type Preferences struct {
	dsk *prefs.Disk

	// the amount by which audio is slowed down while the slow motion hotkey
	// is held
	SlowMotionRatio prefs.Float

	// how often the save memory is written to the database, in seconds. zero
	// disables the autosave worker but save memory is still written at the
	// end of the session
	AutosaveInterval prefs.Int

	// refresh rate of the display the session is being played on. used to
	// adjust the input rate of the audio so that the engine runs in sync
	// with the display
	RefreshRate prefs.Float

	// save the state to the auto slot at the end of the session and load it
	// at the start of the next session
	AutoSlot prefs.Bool
}

func (p *Preferences) String() string {
	return fmt.Sprintf("slowmotion=%s autosave=%ss refreshrate=%s autoslot=%s",
		p.SlowMotionRatio.String(), p.AutosaveInterval.String(),
		p.RefreshRate.String(), p.AutoSlot.String())
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. The pth argument is the prefs file.
func NewPreferences(pth string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	p.SlowMotionRatio.SetHookPre(func(v prefs.Value) error {
		if v.(float64) < 1.0 {
			return fmt.Errorf("playmode: slow motion ratio must be at least 1.0")
		}
		return nil
	})
	p.AutosaveInterval.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 0 {
			return fmt.Errorf("playmode: autosave interval cannot be negative")
		}
		return nil
	})
	p.RefreshRate.SetHookPre(func(v prefs.Value) error {
		if v.(float64) <= 0 {
			return fmt.Errorf("playmode: refresh rate must be positive")
		}
		return nil
	})

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("playmode.slowmotion.ratio", &p.SlowMotionRatio)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("playmode.autosave.interval", &p.AutosaveInterval)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("playmode.refreshrate", &p.RefreshRate)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("playmode.saveslots.auto", &p.AutoSlot)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load(true)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all playmode settings to default values.
func (p *Preferences) SetDefaults() {
	p.SlowMotionRatio.Set(3.0)
	p.AutosaveInterval.Set(0)
	p.RefreshRate.Set(59.95)
	p.AutoSlot.Set(false)
}

// Load playmode preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current playmode preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
