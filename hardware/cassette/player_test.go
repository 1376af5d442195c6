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

package cassette_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/gophermsx/curated"
	"github.com/jetsetilly/gophermsx/environment"
	"github.com/jetsetilly/gophermsx/hardware/cassette"
	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/memory/bus"
	"github.com/jetsetilly/gophermsx/hardware/preferences"
	"github.com/jetsetilly/gophermsx/hardware/scheduler"
	"github.com/jetsetilly/gophermsx/hardware/sound"
	"github.com/jetsetilly/gophermsx/test"
	"github.com/jetsetilly/gophermsx/wavwriter"
)

const tapeRate = 1000

func newEnv(t *testing.T) *environment.Environment {
	t.Helper()
	p, err := preferences.NewPreferencesFromFile(filepath.Join(t.TempDir(), "prefs"))
	test.DemandSuccess(t, err)
	env, err := environment.NewEnvironment(environment.MainEmulation, p)
	test.DemandSuccess(t, err)
	env.Normalise()
	return env
}

// writeWAV creates a 16 bit mono wav file of alternating blocks of ten high
// and ten low samples
func writeWAV(t *testing.T, length int) string {
	t.Helper()
	data := make([]int, length)
	for i := range data {
		if (i/10)%2 == 0 {
			data[i] = 16384
		} else {
			data[i] = -16384
		}
	}

	fn := filepath.Join(t.TempDir(), "tape.wav")
	f, err := os.Create(fn)
	test.DemandSuccess(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, tapeRate, 16, 1, 1)
	test.DemandSuccess(t, enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: tapeRate},
		Data:           data,
		SourceBitDepth: 16,
	}))
	test.DemandSuccess(t, enc.Close())
	return fn
}

func TestLoadTape(t *testing.T) {
	tp, err := cassette.LoadTape(writeWAV(t, 100))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tp.Name, "tape.wav")
	test.ExpectEquality(t, tp.SampleRate, uint64(tapeRate))
	test.DemandEquality(t, len(tp.Data), 100)
	test.ExpectApproximate(t, tp.Duration(), 0.1, 0.0001)
	test.ExpectApproximate(t, float64(tp.Data[0]), 1.0, 0.0001)
	test.ExpectApproximate(t, float64(tp.Data[10]), -1.0, 0.0001)
}

func TestBadTape(t *testing.T) {
	_, err := cassette.DecodeTape("tape.cas", bytes.NewReader(nil))
	test.ExpectSuccess(t, curated.Is(err, cassette.UnsupportedFormat))

	_, err = cassette.DecodeTape("tape.wav", bytes.NewReader([]byte("not a wav file")))
	test.ExpectSuccess(t, curated.Is(err, cassette.DecodeError))

	_, err = cassette.LoadTape(filepath.Join(t.TempDir(), "missing.wav"))
	test.ExpectFailure(t, err)
}

func newPlayer(t *testing.T, length int) (*scheduler.Scheduler, *cassette.Player) {
	t.Helper()
	env := newEnv(t)
	sched := scheduler.NewScheduler(env)
	pl := cassette.NewPlayer(env, sched, 0x00aa)
	tp, err := cassette.LoadTape(writeWAV(t, length))
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, pl.Insert(tp, clocks.Zero))
	return sched, pl
}

func TestImplements(t *testing.T) {
	_, pl := newPlayer(t, 10)
	test.ExpectImplements[bus.Device](t, pl)
	test.ExpectImplements[bus.Syncer](t, pl)
	test.ExpectImplements[scheduler.Schedulable](t, pl)
	test.ExpectImplements[sound.Source](t, pl)
}

func TestTapeInput(t *testing.T) {
	sched, pl := newPlayer(t, 100)
	tape := clocks.NewClock(tapeRate)

	// nothing is read while the motor is off
	v, err := pl.Read(0x00aa, tape.TimeOf(5))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0))
	test.ExpectEquality(t, pl.Position(), uint64(0))

	test.ExpectSuccess(t, sched.AdvanceTo(tape.TimeOf(5)))
	test.ExpectSuccess(t, pl.Write(0x00aa, cassette.RegMotor, tape.TimeOf(5)))
	tape.Reset(tape.TimeOf(5))

	v, err = pl.Read(0x00aa, tape.TimeOf(5))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(cassette.RegMotor|cassette.RegInput))
	test.ExpectEquality(t, pl.Position(), uint64(5))

	v, err = pl.Read(0x00aa, tape.TimeOf(15))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(cassette.RegMotor))
	test.ExpectEquality(t, pl.Position(), uint64(15))

	// reading the same time twice has no effect
	_, err = pl.Read(0x00aa, tape.TimeOf(15))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pl.Position(), uint64(15))
}

func TestMotor(t *testing.T) {
	sched, pl := newPlayer(t, 100)
	tape := clocks.NewClock(tapeRate)

	test.ExpectSuccess(t, pl.Write(0x00aa, cassette.RegMotor, clocks.Zero))
	test.ExpectSuccess(t, sched.AdvanceTo(tape.TimeOf(30)))
	test.ExpectSuccess(t, pl.Write(0x00aa, 0x00, tape.TimeOf(30)))
	test.ExpectEquality(t, pl.Position(), uint64(30))

	// the tape does not move while the motor is off
	test.ExpectSuccess(t, sched.AdvanceTo(tape.TimeOf(80)))
	test.ExpectSuccess(t, pl.SyncTo(tape.TimeOf(80)))
	test.ExpectEquality(t, pl.Position(), uint64(30))

	test.ExpectSuccess(t, pl.Write(0x00aa, cassette.RegMotor, tape.TimeOf(80)))
	test.ExpectSuccess(t, sched.AdvanceTo(tape.TimeOf(85)))
	test.ExpectSuccess(t, pl.SyncTo(tape.TimeOf(85)))
	test.ExpectEquality(t, pl.Position(), uint64(35))

	test.ExpectSuccess(t, pl.Rewind(tape.TimeOf(85)))
	test.ExpectEquality(t, pl.Position(), uint64(0))
	test.ExpectSuccess(t, pl.Motor())
}

func TestEndOfTape(t *testing.T) {
	sched, pl := newPlayer(t, 100)
	tape := clocks.NewClock(tapeRate)

	test.ExpectSuccess(t, pl.Write(0x00aa, cassette.RegMotor, clocks.Zero))
	test.ExpectSuccess(t, sched.AdvanceTo(tape.TimeOf(99)))
	test.ExpectSuccess(t, pl.Motor())

	test.ExpectSuccess(t, sched.AdvanceTo(tape.TimeOf(100)))
	test.ExpectEquality(t, pl.Mode(), cassette.Stop)
	test.ExpectEquality(t, pl.Position(), uint64(100))
	test.ExpectEquality(t, sched.Len(), 0)

	// the motor bit belongs to the emulated machine and is unchanged. the
	// tape does not roll in Stop mode
	test.ExpectSuccess(t, pl.Motor())
	test.ExpectSuccess(t, pl.Write(0x00aa, 0x00, sched.CurrentTime()))
	test.ExpectSuccess(t, pl.Write(0x00aa, cassette.RegMotor, sched.CurrentTime()))
	test.ExpectEquality(t, sched.Len(), 0)

	// rewinding returns to Play mode and the tape rolls again
	test.ExpectSuccess(t, pl.Rewind(sched.CurrentTime()))
	test.ExpectEquality(t, pl.Mode(), cassette.Play)
	test.ExpectInequality(t, sched.Len(), 0)

	test.ExpectSuccess(t, pl.Close())
	test.ExpectSuccess(t, sched.Teardown())
}

func TestAudioOutput(t *testing.T) {
	sched, pl := newPlayer(t, 1000)
	tape := clocks.NewClock(tapeRate)

	test.ExpectSuccess(t, pl.Write(0x00aa, cassette.RegMotor, clocks.Zero))

	// the periodic sync point keeps the audio up to date
	test.ExpectSuccess(t, sched.AdvanceTo(tape.TimeOf(50)))
	s := pl.Drain()
	test.DemandEquality(t, len(s), 2205)

	var high, low int
	for _, v := range s {
		switch {
		case v > 0:
			high++
		case v < 0:
			low++
		}
	}
	// the first fifty tape samples are three blocks of high and two blocks of
	// low
	test.ExpectApproximate(t, high, 1323, 0.01)
	test.ExpectApproximate(t, low, 882, 0.01)
}

func TestSnapshot(t *testing.T) {
	sched, pl := newPlayer(t, 1000)
	tape := clocks.NewClock(tapeRate)
	test.ExpectSuccess(t, pl.Write(0x00aa, cassette.RegMotor, clocks.Zero))
	test.ExpectSuccess(t, sched.AdvanceTo(tape.TimeOf(100)))

	ss := sched.Snapshot()
	ps := pl.Snapshot()
	test.ExpectSuccess(t, sched.AdvanceTo(tape.TimeOf(500)))
	test.ExpectSuccess(t, pl.SyncTo(tape.TimeOf(500)))
	test.ExpectEquality(t, pl.Position(), uint64(500))

	sched.Restore(ss)
	pl.Plumb(ps)
	test.ExpectEquality(t, pl.Position(), uint64(100))
	test.ExpectSuccess(t, sched.AdvanceTo(tape.TimeOf(1000)))
	test.ExpectEquality(t, pl.Mode(), cassette.Stop)
	test.ExpectEquality(t, pl.Position(), uint64(1000))
}

func TestMotorControl(t *testing.T) {
	sched, pl := newPlayer(t, 100)
	tape := clocks.NewClock(tapeRate)
	test.ExpectSuccess(t, pl.MotorControl())

	// without motor control the tape rolls with the motor bit clear
	test.ExpectSuccess(t, pl.SetMotorControl(false, clocks.Zero))
	test.ExpectSuccess(t, sched.AdvanceTo(tape.TimeOf(20)))
	test.ExpectSuccess(t, pl.SyncTo(tape.TimeOf(20)))
	test.ExpectFailure(t, pl.Motor())
	test.ExpectEquality(t, pl.Position(), uint64(20))

	test.ExpectSuccess(t, pl.SetMotorControl(true, tape.TimeOf(20)))
	test.ExpectSuccess(t, sched.AdvanceTo(tape.TimeOf(40)))
	test.ExpectSuccess(t, pl.SyncTo(tape.TimeOf(40)))
	test.ExpectEquality(t, pl.Position(), uint64(20))
	test.ExpectEquality(t, sched.Len(), 0)
}

// the cassette-out signal toggles every halfPeriod CPU cycles
const halfPeriod = 1000

// recordSquare records a square wave of the specified number of half periods.
// the signal is high in the first half period
func recordSquare(t *testing.T, sched *scheduler.Scheduler, pl *cassette.Player, n int) clocks.Time {
	t.Helper()
	cpu := clocks.NewClock(clocks.CPUFreq)
	for k := range n {
		tm := cpu.TimeOf(uint64(k * halfPeriod))
		test.DemandSuccess(t, sched.AdvanceTo(tm))
		data := uint8(cassette.RegMotor)
		if k%2 == 0 {
			data |= cassette.RegOutput
		}
		test.DemandSuccess(t, pl.Write(0x00aa, data, tm))
	}
	end := cpu.TimeOf(uint64(n * halfPeriod))
	test.DemandSuccess(t, sched.AdvanceTo(end))
	return end
}

func TestRecord(t *testing.T) {
	env := newEnv(t)
	sched := scheduler.NewScheduler(env)
	pl := cassette.NewPlayer(env, sched, 0x00aa)

	fn := filepath.Join(t.TempDir(), "recording.wav")
	ww, err := wavwriter.New(fn, cassette.RecordFreq)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, pl.Record(ww, clocks.Zero))
	test.ExpectEquality(t, pl.Mode(), cassette.Record)

	const halves = 40
	end := recordSquare(t, sched, pl, halves)
	test.ExpectSuccess(t, pl.Stop(end))
	test.ExpectEquality(t, pl.Mode(), cassette.Stop)

	// the writer has been closed by the player
	test.ExpectFailure(t, ww.SetAudio([]int16{0}))
	expected := float64(halves*halfPeriod) * cassette.RecordFreq / float64(clocks.CPUFreq)
	test.ExpectApproximate(t, float64(ww.Samples()), expected, 0.01)

	// play the recording back. the motor bit is still set so the tape rolls
	// as soon as it is inserted
	tp, err := cassette.LoadTape(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tp.SampleRate, uint64(cassette.RecordFreq))
	test.DemandSuccess(t, pl.Insert(tp, end))
	test.ExpectEquality(t, pl.Mode(), cassette.Play)

	cpu := clocks.NewClock(clocks.CPUFreq)
	cpu.Reset(end)
	for k := range halves - 1 {
		tm := cpu.TimeOf(uint64(k*halfPeriod + halfPeriod/2))
		test.DemandSuccess(t, sched.AdvanceTo(tm))
		v, err := pl.Read(0x00aa, tm)
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, v&cassette.RegInput == cassette.RegInput, k%2 == 0, k)
	}

	test.ExpectSuccess(t, pl.Close())
}

type recording struct {
	samples int
	ended   bool
}

func (r *recording) SetAudio(buffer []int16) error {
	r.samples += len(buffer)
	return nil
}

func (r *recording) EndMixing() error {
	r.ended = true
	return nil
}

func TestRecordingNotInSnapshot(t *testing.T) {
	env := newEnv(t)
	sched := scheduler.NewScheduler(env)
	pl := cassette.NewPlayer(env, sched, 0x00aa)

	rec := &recording{}
	test.DemandSuccess(t, pl.Record(rec, clocks.Zero))
	ss := sched.Snapshot()
	ps := pl.Snapshot()

	recordSquare(t, sched, pl, 10)

	// restoring the earlier state ends the recording
	sched.Restore(ss)
	pl.Plumb(ps)
	test.ExpectSuccess(t, rec.ended)
	test.ExpectInequality(t, rec.samples, 0)
	test.ExpectEquality(t, pl.Mode(), cassette.Stop)

	// nothing more is recorded
	n := rec.samples
	recordSquare(t, sched, pl, 10)
	test.ExpectEquality(t, rec.samples, n)
}

func TestCloseEndsRecording(t *testing.T) {
	env := newEnv(t)
	sched := scheduler.NewScheduler(env)
	pl := cassette.NewPlayer(env, sched, 0x00aa)

	rec := &recording{}
	test.DemandSuccess(t, pl.Record(rec, clocks.Zero))
	recordSquare(t, sched, pl, 4)
	test.ExpectSuccess(t, pl.Close())
	test.ExpectSuccess(t, rec.ended)
	test.ExpectInequality(t, rec.samples, 0)
	test.ExpectSuccess(t, sched.Teardown())
}

func TestRecordingIsFlushed(t *testing.T) {
	env := newEnv(t)
	sched := scheduler.NewScheduler(env)
	pl := cassette.NewPlayer(env, sched, 0x00aa)

	rec := &recording{}
	test.DemandSuccess(t, pl.Record(rec, clocks.Zero))

	// the register is written far more often than the periodic sync point
	// but recorded samples still reach the recorder before recording ends
	recordSquare(t, sched, pl, 400)
	test.ExpectInequality(t, rec.samples, 0)
	test.ExpectFailure(t, rec.ended)
}
