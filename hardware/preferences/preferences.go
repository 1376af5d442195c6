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

package preferences

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gophermsx/curated"
	"github.com/jetsetilly/gophermsx/paths"
	"github.com/jetsetilly/gophermsx/prefs"
)

// List of valid video standards.
const (
	NTSC = "NTSC"
	PAL  = "PAL"
)

// Preferences defines and collates all the preference values used by the
// hardware emulation.
type Preferences struct {
	dsk *prefs.Disk

	// initialise RAM to random values on power-on
	RandomState prefs.Bool

	// the video standard determines the number of lines per frame. one of
	// NTSC or PAL
	VideoStandard prefs.String

	// set a sync point at the end of every video line rather than rendering
	// lazily. useful for checking the rendering is the same both ways
	LineSync prefs.Bool

	// the sample rate of the audio output
	AudioFreq prefs.Int

	// number of samples in each buffer handed to the audio output
	AudioBufferLength prefs.Int
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the Preferences type.
func NewPreferences() (*Preferences, error) {
	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	return NewPreferencesFromFile(pth)
}

// NewPreferencesFromFile is the same as NewPreferences() but with a specific
// file path. Useful for testing.
func NewPreferencesFromFile(pth string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	p.VideoStandard.SetHookPre(func(v prefs.Value) error {
		switch strings.ToUpper(v.(string)) {
		case NTSC, PAL:
			return nil
		}
		return fmt.Errorf("preferences: unknown video standard (%v)", v)
	})

	p.AudioFreq.SetHookPre(func(v prefs.Value) error {
		if f := v.(int); f < 8000 || f > 192000 {
			return fmt.Errorf("preferences: audio frequency out of range (%d)", f)
		}
		return nil
	})

	p.AudioBufferLength.SetHookPre(func(v prefs.Value) error {
		if l := v.(int); l < 64 || l > 65536 {
			return fmt.Errorf("preferences: audio buffer length out of range (%d)", l)
		}
		return nil
	})

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("hardware.randstate", &p.RandomState)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("video.standard", &p.VideoStandard)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("video.linesync", &p.LineSync)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("audio.freq", &p.AudioFreq)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("audio.bufferlength", &p.AudioBufferLength)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load()
	if err != nil {
		// ignore missing prefs file errors
		if !curated.Is(err, prefs.NoPrefsFile) {
			return nil, err
		}
	}

	return p, nil
}

// SetDefaults reverts all hardware preferences to the default values.
func (p *Preferences) SetDefaults() {
	_ = p.RandomState.Set(false)
	_ = p.VideoStandard.Set(NTSC)
	_ = p.LineSync.Set(false)
	_ = p.AudioFreq.Set(44100)
	_ = p.AudioBufferLength.Set(1024)
}

// Load current hardware preference from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save current hardware preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// IsPAL returns true if the video standard is PAL.
func (p *Preferences) IsPAL() bool {
	return strings.ToUpper(p.VideoStandard.String()) == PAL
}
