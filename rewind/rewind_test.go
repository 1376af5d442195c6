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

package rewind_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gophermsx/curated"
	"github.com/jetsetilly/gophermsx/environment"
	"github.com/jetsetilly/gophermsx/govern"
	"github.com/jetsetilly/gophermsx/hardware"
	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/cpu"
	"github.com/jetsetilly/gophermsx/hardware/preferences"
	"github.com/jetsetilly/gophermsx/hardware/video"
	"github.com/jetsetilly/gophermsx/rewind"
	"github.com/jetsetilly/gophermsx/test"
)

type frames struct {
	frames map[int][]uint8
}

func (f *frames) NewFrame(frame video.Frame) error {
	f.frames[frame.Number] = frame.Pixels
	return nil
}

func newMachine(t *testing.T) (*hardware.Machine, *rewind.Rewind, *frames) {
	t.Helper()

	p, err := preferences.NewPreferencesFromFile(filepath.Join(t.TempDir(), "prefs"))
	test.DemandSuccess(t, err)
	env, err := environment.NewEnvironment(environment.MainEmulation, p)
	test.DemandSuccess(t, err)
	env.Normalise()

	// display on and a different VRAM write in every frame
	frameCycles := uint64(video.NTSC.FrameTicks()) / (clocks.MainFreq / clocks.CPUFreq)
	accesses := []cpu.Access{
		{Cycle: 0, Write: true, Address: hardware.VideoPorts, Data: 1},
		{Cycle: 1, Write: true, Address: hardware.VideoPorts + 1, Data: 0x40},
	}
	for f := range uint64(20) {
		accesses = append(accesses, cpu.Access{
			Cycle:   f*frameCycles + 100,
			Write:   true,
			Address: hardware.VRAMBase + uint16(f),
			Data:    uint8(f*17 + 1),
		})
	}

	l := hardware.DefaultLayout()
	l.Engine = cpu.NewScript(accesses)
	m, err := hardware.NewMachine(env, l)
	test.DemandSuccess(t, err)

	r, err := rewind.NewRewind(m, filepath.Join(t.TempDir(), "rewind"))
	test.DemandSuccess(t, err)

	f := &frames{frames: make(map[int][]uint8)}
	m.Video.AddFrameTrigger(f)

	return m, r, f
}

func run(t *testing.T, m *hardware.Machine, r *rewind.Rewind, n int) {
	t.Helper()
	err := m.RunForFrameCount(n, func(_ int) (govern.State, error) {
		r.Check()
		return govern.Running, nil
	})
	test.DemandSuccess(t, err)
}

func TestEmpty(t *testing.T) {
	_, r, _ := newMachine(t)
	test.ExpectSuccess(t, curated.Is(r.GotoLast(), rewind.Empty))
	_, err := r.GotoFrame(0)
	test.ExpectSuccess(t, curated.Is(err, rewind.Empty))
}

func TestPreferences(t *testing.T) {
	_, r, _ := newMachine(t)
	test.ExpectFailure(t, r.Prefs.Freq.Set(0))
	test.ExpectFailure(t, r.Prefs.MaxEntries.Set(1))
	test.ExpectEquality(t, r.Prefs.Freq.Get().(int), 1)
}

func TestGotoFrame(t *testing.T) {
	m, r, f := newMachine(t)
	r.Reset()
	run(t, m, r, 10)

	fr := r.GetFrames()
	test.ExpectEquality(t, fr.Start, 0)
	test.ExpectEquality(t, fr.End, 10)
	test.ExpectEquality(t, fr.Current, 10)

	original := make(map[int][]uint8)
	for k, v := range f.frames {
		original[k] = v
	}

	fn, err := r.GotoFrame(4)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, fn, 4)
	test.ExpectEquality(t, m.Video.FrameNum(), 4)
	test.ExpectEquality(t, m.Scheduler.CurrentTime(), clocks.Zero.Add(video.NTSC.FrameTicks()*4))

	// rerunning from the rewound position produces the same frames
	run(t, m, r, 3)
	for n := 4; n < 7; n++ {
		test.ExpectSuccess(t, bytes.Equal(f.frames[n], original[n]), n)
	}

	// history after the rewound position has been replaced
	fr = r.GetFrames()
	test.ExpectEquality(t, fr.End, 7)

	tl, err := r.GetTimeline()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, tl.FrameNum[len(tl.FrameNum)-1], 7)
	test.ExpectEquality(t, len(tl.FrameNum), 7)

	// out of range requests are clamped
	fn, err = r.GotoFrame(100)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, fn, 7)
	fn, err = r.GotoFrame(-1)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, fn, 0)

	test.ExpectSuccess(t, r.GotoLast())
	test.ExpectEquality(t, m.Video.FrameNum(), 7)
}

func TestFrequency(t *testing.T) {
	m, r, f := newMachine(t)
	test.DemandSuccess(t, r.Prefs.Freq.Set(3))
	r.Reset()
	run(t, m, r, 9)
	original := f.frames[5]

	fn, err := r.GotoFrame(5)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, fn, 5)
	test.ExpectEquality(t, m.Video.FrameNum(), 5)

	run(t, m, r, 1)
	test.ExpectSuccess(t, bytes.Equal(f.frames[5], original))
}

func TestMaxEntries(t *testing.T) {
	m, r, _ := newMachine(t)
	r.Reset()
	run(t, m, r, 10)

	test.DemandSuccess(t, r.Prefs.MaxEntries.Set(5))
	fr := r.GetFrames()
	test.ExpectEquality(t, fr.Start, 6)
	test.ExpectEquality(t, fr.End, 10)

	run(t, m, r, 2)
	fr = r.GetFrames()
	test.ExpectEquality(t, fr.Start, 8)
	test.ExpectEquality(t, fr.End, 12)
}

func TestComparison(t *testing.T) {
	m, r, _ := newMachine(t)
	r.Reset()
	test.ExpectEquality(t, r.GetComparison().Frame, 0)
	run(t, m, r, 5)
	_, err := r.GotoFrame(3)
	test.ExpectSuccess(t, err)
	r.SetComparison()
	test.ExpectEquality(t, r.GetComparison().Frame, 3)
}

type samples struct {
	count int
}

func (s *samples) SetAudio(buffer []int16) error {
	s.count += len(buffer)
	return nil
}

func (s *samples) EndMixing() error {
	return nil
}

func TestAudioNotRepeated(t *testing.T) {
	m, r, _ := newMachine(t)
	test.DemandSuccess(t, r.Prefs.Freq.Set(4))
	aud := &samples{}
	m.Mixer.AddAudioMixer(aud)

	r.Reset()
	run(t, m, r, 10)
	heard := aud.count
	test.DemandSuccess(t, heard > 0)

	// frame 5 is reached by catching up from the snapshot at frame 4
	fn, err := r.GotoFrame(5)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, fn, 5)
	test.ExpectEquality(t, aud.count, heard)
	test.ExpectSuccess(t, !m.Mixer.Muted())

	// audio resumes from the rewound position. a buffer is longer than a
	// frame so run for more than one frame
	run(t, m, r, 3)
	test.ExpectSuccess(t, aud.count > heard)
}
