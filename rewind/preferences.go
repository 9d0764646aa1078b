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

package rewind

import (
	"fmt"

	"github.com/sprocketfe/sprocket/prefs"
)

// Preferences for the rewind system.
type Preferences struct {
	dsk *prefs.Disk

	Enabled prefs.Bool

	// the size of the timeline in bytes
	BufferSize prefs.Int

	// how often a state is pushed to the timeline, in frames. the higher the
	// number, the more laggy the rewind system will feel
	Granularity prefs.Int
}

func (p *Preferences) String() string {
	return fmt.Sprintf("enabled=%s buffersize=%s granularity=%s",
		p.Enabled.String(), p.BufferSize.String(), p.Granularity.String())
}

// default size of the timeline in bytes
const bufferSize = 20 << 20

const granularity = 1

// NewPreferences is the preferred method of initialisation for the
// Preferences type. The pth argument is the prefs file.
func NewPreferences(pth string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	p.BufferSize.SetHookPre(func(v prefs.Value) error {
		if v.(int) <= 0 {
			return fmt.Errorf("rewind: buffer size must be positive")
		}
		return nil
	})
	p.Granularity.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 1 {
			return fmt.Errorf("rewind: granularity must be at least one")
		}
		return nil
	})

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("rewind.enable", &p.Enabled)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("rewind.buffersize", &p.BufferSize)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("rewind.granularity", &p.Granularity)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load(true)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all rewind settings to default values.
func (p *Preferences) SetDefaults() {
	p.Enabled.Set(false)
	p.BufferSize.Set(bufferSize)
	p.Granularity.Set(granularity)
}

// Load rewind preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current rewind preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
