// This file is part of GopherMSX.
//
// GopherMSX is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherMSX is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherMSX.  If not, see <https://www.gnu.org/licenses/>.

package rewind

import (
	"github.com/jetsetilly/gophermsx/curated"
	"github.com/jetsetilly/gophermsx/paths"
	"github.com/jetsetilly/gophermsx/prefs"
)

// Preferences for the rewind system.
type Preferences struct {
	dsk *prefs.Disk

	// the maximum number of entries to store before the earliest entries are
	// forgotten
	MaxEntries prefs.Int

	// a snapshot is taken every Freq frames. the higher the number, the longer
	// it takes to reach frames that fall between snapshots
	Freq prefs.Int
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

const (
	defaultMaxEntries = 100
	defaultFreq       = 1
)

func newPreferences(r *Rewind, pth string) (*Preferences, error) {
	p := &Preferences{}

	p.MaxEntries.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 2 {
			return curated.Errorf(BadPreference, "max entries", v)
		}
		return nil
	})
	p.Freq.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 1 {
			return curated.Errorf(BadPreference, "frequency", v)
		}
		return nil
	})

	_ = p.MaxEntries.Set(defaultMaxEntries)
	_ = p.Freq.Set(defaultFreq)

	if pth == "" {
		var err error
		pth, err = paths.ResourcePath("", prefs.DefaultPrefsFile)
		if err != nil {
			return nil, err
		}
	}

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("rewind.maxEntries", &p.MaxEntries)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("rewind.snapshotFreq", &p.Freq)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load()
	if err != nil && !curated.Is(err, prefs.NoPrefsFile) {
		return nil, err
	}

	p.MaxEntries.SetHookPost(func(_ prefs.Value) error {
		r.allocate()
		return nil
	})

	return p, nil
}

// Load rewind preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save current rewind preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
