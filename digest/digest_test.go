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

package digest_test

import (
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gophermsx/digest"
	"github.com/jetsetilly/gophermsx/environment"
	"github.com/jetsetilly/gophermsx/hardware"
	"github.com/jetsetilly/gophermsx/hardware/cpu"
	"github.com/jetsetilly/gophermsx/hardware/preferences"
	"github.com/jetsetilly/gophermsx/hardware/sound"
	"github.com/jetsetilly/gophermsx/hardware/video"
	"github.com/jetsetilly/gophermsx/test"
)

func newMachine(t *testing.T, lineSync bool) *hardware.Machine {
	t.Helper()

	p, err := preferences.NewPreferencesFromFile(filepath.Join(t.TempDir(), "prefs"))
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, p.LineSync.Set(lineSync))
	env, err := environment.NewEnvironment(environment.MainEmulation, p)
	test.DemandSuccess(t, err)
	env.Normalise()

	accesses := []cpu.Access{
		{Cycle: 0, Write: true, Address: hardware.VideoPorts, Data: 1},
		{Cycle: 1, Write: true, Address: hardware.VideoPorts + 1, Data: 0x40},
		{Cycle: 2, Write: true, Address: hardware.TonePorts, Data: 0x80},
		{Cycle: 3, Write: true, Address: hardware.TonePorts + 2, Data: 0x08},
		{Cycle: 4, Write: true, Address: hardware.TonePorts + 3, Data: 0x01},
	}
	for i := range uint64(200) {
		accesses = append(accesses, cpu.Access{
			Cycle:   100 + i*1013,
			Write:   true,
			Address: hardware.VRAMBase + uint16(i*7),
			Data:    uint8(i),
		})
	}

	l := hardware.DefaultLayout()
	l.Engine = cpu.NewScript(accesses)
	m, err := hardware.NewMachine(env, l)
	test.DemandSuccess(t, err)
	return m
}

func TestImplements(t *testing.T) {
	test.ExpectImplements[video.FrameTrigger](t, &digest.Video{})
	test.ExpectImplements[sound.AudioMixer](t, &digest.Audio{})
	test.ExpectImplements[digest.Digest](t, &digest.Video{})
	test.ExpectImplements[digest.Digest](t, &digest.Audio{})
}

func TestChaining(t *testing.T) {
	m := newMachine(t, false)
	v := digest.NewVideo(m.Video)
	a := digest.NewAudio(m.Mixer)

	zero := v.Hash()
	test.DemandSuccess(t, m.RunForFrameCount(1, nil))
	first := v.Hash()
	test.ExpectInequality(t, first, zero)
	test.DemandSuccess(t, m.RunForFrameCount(1, nil))
	test.ExpectInequality(t, v.Hash(), first)
	test.ExpectEquality(t, v.FrameNum(), 1)
	test.ExpectInequality(t, a.Samples(), 0)

	v.ResetDigest()
	test.ExpectEquality(t, v.Hash(), zero)
	a.ResetDigest()
	test.ExpectEquality(t, a.Samples(), 0)
}

// the output of the machine must not depend on whether video lines are
// rendered on demand or at the end of every line
func TestLineSync(t *testing.T) {
	lazy := newMachine(t, false)
	lazyVideo := digest.NewVideo(lazy.Video)
	lazyAudio := digest.NewAudio(lazy.Mixer)

	synced := newMachine(t, true)
	syncedVideo := digest.NewVideo(synced.Video)
	syncedAudio := digest.NewAudio(synced.Mixer)

	test.DemandSuccess(t, lazy.RunForFrameCount(5, nil))
	test.DemandSuccess(t, synced.RunForFrameCount(5, nil))

	test.ExpectEquality(t, lazyVideo.Hash(), syncedVideo.Hash())
	test.ExpectEquality(t, lazyAudio.Hash(), syncedAudio.Hash())
	test.ExpectEquality(t, lazyAudio.Samples(), syncedAudio.Samples())
}
