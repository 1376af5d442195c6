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

package cassette

import (
	"fmt"

	"github.com/jetsetilly/gophermsx/environment"
	"github.com/jetsetilly/gophermsx/hardware/catchup"
	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/scheduler"
	"github.com/jetsetilly/gophermsx/hardware/sound"
	"github.com/jetsetilly/gophermsx/logger"
)

// sync point tags
const (
	tagEndOfTape = iota
	tagAudio
)

// register bits. the output bit is the cassette-out signal written by the
// emulated machine and is recorded in Record mode
const (
	RegMotor  = 0x01
	RegOutput = 0x02
	RegInput  = 0x80
)

// RecordFreq is the sample rate of recordings.
const RecordFreq = 44100

// the interval between the periodic sync points while the tape is rolling
var audioInterval = clocks.DurationOf(1, 100)

// the level of the tape audio in the sound mix
const outputVolume = 4096

// the level of the recorded signal
const recordAmplitude = 16384

// recorded samples are sent to the recorder in blocks of this size
const recordBlock = 4096

// Mode of the Player.
type Mode int

// List of valid Mode values.
const (
	Stop Mode = iota
	Play
	Record
)

func (m Mode) String() string {
	switch m {
	case Stop:
		return "stop"
	case Play:
		return "play"
	case Record:
		return "record"
	}
	return "unknown"
}

type state struct {
	mode  Mode
	motor bool

	// when motor control is off the tape rolls whatever the motor bit says
	motorControl bool

	// the most recent cassette-out signal
	output bool

	// the position of the tape in samples
	position uint64

	// counts tape samples while the tape is rolling
	tapeClock clocks.Clock

	// the host audio sample clock
	outClock clocks.Clock

	// the recording sample clock
	recClock clocks.Clock
}

// Player is a cassette player and recorder. It implements the
// scheduler.Schedulable, bus.Device, bus.Syncer and sound.Source interfaces.
type Player struct {
	scheduler.Base

	env     *environment.Environment
	base    uint16
	tracker catchup.Tracker

	tape    *Tape
	state   state
	samples []int16

	// the destination of recorded samples in Record mode. the recorder is
	// not part of a snapshot
	recorder sound.AudioMixer
	recorded []int16
	numRec   int
}

// NewPlayer is the preferred method of initialisation for the Player type.
// The player has no tape.
func NewPlayer(env *environment.Environment, sched *scheduler.Scheduler, base uint16) *Player {
	pl := &Player{
		env:     env,
		base:    base,
		tracker: catchup.NewTracker("cassette", env),
	}
	pl.state.motorControl = true
	pl.Attach(sched, pl)
	pl.Reset(sched.CurrentTime())
	return pl
}

func (pl *Player) String() string {
	if pl.state.mode == Record {
		return fmt.Sprintf("cassette: record %d samples motor=%v", pl.numRec+len(pl.recorded), pl.state.motor)
	}
	if pl.tape == nil {
		return "cassette: no tape"
	}
	return fmt.Sprintf("cassette: %s %s %d/%d motor=%v", pl.state.mode, pl.tape.Name, pl.state.position, len(pl.tape.Data), pl.state.motor)
}

// SchedName implements the scheduler.Schedulable interface.
func (pl *Player) SchedName() string {
	return "cassette"
}

// Label implements the bus.Device interface.
func (pl *Player) Label() string {
	return "cassette"
}

// Reset implements the bus.Resetter interface. The motor is stopped but the
// tape is not rewound and the mode is unchanged.
func (pl *Player) Reset(time clocks.Time) {
	pl.RemoveSyncPoints()
	pl.state.motor = false
	pl.state.output = false
	pl.state.outClock = clocks.NewClock(uint64(pl.env.Prefs.AudioFreq.Get().(int)))
	pl.state.outClock.Reset(time)
	pl.state.recClock = clocks.NewClock(RecordFreq)
	pl.state.recClock.Reset(time)
	pl.samples = pl.samples[:0]
	pl.tracker.Reset(time)
}

// Close implements the bus.Closer interface. Any recording is ended.
func (pl *Player) Close() error {
	err := pl.endRecording(pl.CurrentTime())
	pl.Detach()
	return err
}

// Mode returns the current mode of the Player.
func (pl *Player) Mode() Mode {
	return pl.state.mode
}

// Position returns the position of the tape in samples.
func (pl *Player) Position() uint64 {
	return pl.state.position
}

// Motor returns true if the motor bit is set.
func (pl *Player) Motor() bool {
	return pl.state.motor
}

// MotorControl returns true if the tape only rolls when the motor bit is
// set.
func (pl *Player) MotorControl() bool {
	return pl.state.motorControl
}

// rolling is true when the tape is moving
func (pl *Player) rolling() bool {
	return pl.state.mode != Stop && (pl.state.motor || !pl.state.motorControl)
}

func (pl *Player) playing() bool {
	return pl.state.mode == Play && pl.rolling() && !pl.atEnd()
}

func (pl *Player) atEnd() bool {
	return pl.tape == nil || pl.state.position >= uint64(len(pl.tape.Data))
}

// change synchronises the player to the specified time, applies the change
// and then reschedules the sync points
func (pl *Player) change(time clocks.Time, f func()) error {
	if err := pl.SyncTo(time); err != nil {
		return err
	}

	rolling := pl.rolling()
	f()
	if !rolling && pl.rolling() && pl.tape != nil {
		pl.state.tapeClock = clocks.NewClock(pl.tape.SampleRate)
		pl.state.tapeClock.Reset(time)
	}

	pl.RemoveSyncPoint(tagEndOfTape)
	if !pl.rolling() {
		pl.RemoveSyncPoint(tagAudio)
		return nil
	}
	if pl.state.mode == Play {
		if err := pl.scheduleEndOfTape(time); err != nil {
			return err
		}
	}

	// the periodic sync point is not moved by changes while rolling
	if pl.PendingSyncPoint(tagAudio) {
		return nil
	}
	return pl.SetSyncPoint(time.Add(audioInterval), tagAudio)
}

// Insert a tape into the player. The tape is rewound and the Player is put
// into Play mode. A nil tape ejects the current tape. Any recording is ended.
func (pl *Player) Insert(tape *Tape, time clocks.Time) error {
	if err := pl.endRecording(time); err != nil {
		return err
	}
	err := pl.change(time, func() {
		pl.tape = tape
		pl.state.position = 0
		if tape == nil {
			pl.state.mode = Stop
		} else {
			pl.state.mode = Play
			pl.state.tapeClock = clocks.NewClock(tape.SampleRate)
			pl.state.tapeClock.Reset(time)
		}
	})
	if err != nil {
		return err
	}
	if tape != nil {
		logger.Logf(pl.env, "cassette", "inserted %s (%.02fs)", tape.Name, tape.Duration())
	}
	return nil
}

// Rewind the tape to the beginning. The Player is put into Play mode if
// there is a tape. Any recording is ended.
func (pl *Player) Rewind(time clocks.Time) error {
	if err := pl.endRecording(time); err != nil {
		return err
	}
	return pl.change(time, func() {
		pl.state.position = 0
		if pl.tape != nil {
			pl.state.mode = Play
			pl.state.tapeClock = clocks.NewClock(pl.tape.SampleRate)
			pl.state.tapeClock.Reset(time)
		}
	})
}

// Stop the Player. The tape is not ejected. Any recording is ended.
func (pl *Player) Stop(time clocks.Time) error {
	if err := pl.endRecording(time); err != nil {
		return err
	}
	return pl.change(time, func() {
		pl.state.mode = Stop
	})
}

// Record puts the Player into Record mode. Any tape is ejected. While the
// tape is rolling the cassette-out signal is sampled at RecordFreq and sent to
// the recorder. The recorder's EndMixing() function is called when recording
// ends.
func (pl *Player) Record(recorder sound.AudioMixer, time clocks.Time) error {
	if err := pl.endRecording(time); err != nil {
		return err
	}
	err := pl.change(time, func() {
		pl.tape = nil
		pl.state.position = 0
		pl.state.mode = Record
		pl.state.recClock.Reset(time)
		pl.recorder = recorder
		pl.recorded = pl.recorded[:0]
		pl.numRec = 0
	})
	if err != nil {
		return err
	}
	logger.Logf(pl.env, "cassette", "recording at %v", time)
	return nil
}

// SetMotorControl sets whether the tape only rolls when the motor bit is set.
func (pl *Player) SetMotorControl(on bool, time clocks.Time) error {
	return pl.change(time, func() {
		pl.state.motorControl = on
	})
}

// send recorded samples to the recorder
func (pl *Player) flushRecording() error {
	if pl.recorder == nil || len(pl.recorded) == 0 {
		return nil
	}
	pl.numRec += len(pl.recorded)
	buffer := append([]int16(nil), pl.recorded...)
	pl.recorded = pl.recorded[:0]
	return pl.recorder.SetAudio(buffer)
}

// end the recording if there is one. the mode is set to Stop
func (pl *Player) endRecording(time clocks.Time) error {
	if pl.recorder == nil {
		return nil
	}
	if err := pl.SyncTo(time); err != nil {
		return err
	}
	err := pl.finishRecording()
	if e := pl.change(time, func() { pl.state.mode = Stop }); e != nil && err == nil {
		err = e
	}
	return err
}

// send the remaining samples to the recorder and forget about it
func (pl *Player) finishRecording() error {
	err := pl.flushRecording()
	if e := pl.recorder.EndMixing(); e != nil && err == nil {
		err = e
	}
	logger.Logf(pl.env, "cassette", "recorded %d samples", pl.numRec)
	pl.recorder = nil
	return err
}

func (pl *Player) scheduleEndOfTape(now clocks.Time) error {
	if pl.atEnd() {
		return pl.SetSyncPoint(now, tagEndOfTape)
	}
	remaining := uint64(len(pl.tape.Data)) - pl.state.position
	return pl.SetSyncPoint(pl.state.tapeClock.TimeOf(pl.state.tapeClock.Count()+remaining), tagEndOfTape)
}

// ExecuteUntil implements the scheduler.Schedulable interface.
func (pl *Player) ExecuteUntil(time clocks.Time, tag int) error {
	switch tag {
	case tagEndOfTape:
		if err := pl.change(time, func() { pl.state.mode = Stop }); err != nil {
			return err
		}
		logger.Logf(pl.env, "cassette", "end of tape at %v", time)
	case tagAudio:
		if err := pl.SyncTo(time); err != nil {
			return err
		}
		if len(pl.recorded) >= recordBlock {
			if err := pl.flushRecording(); err != nil {
				return err
			}
		}
		if !pl.rolling() {
			return nil
		}
		return pl.SetSyncPoint(time.Add(audioInterval), tagAudio)
	}
	return nil
}

// SyncTo implements the bus.Syncer and sound.Source interfaces.
func (pl *Player) SyncTo(time clocks.Time) error {
	return pl.tracker.Sync(time, pl.replay)
}

// the tape position, the audio output and the recording are all functions of
// time so the state is always valid up to the requested time
func (pl *Player) replay(_ clocks.Time, to clocks.Time) clocks.Time {
	n := pl.state.outClock.PeriodsUntil(to)
	c := pl.state.outClock.Count()
	for i := uint64(1); i <= n; i++ {
		pl.advanceTape(pl.state.outClock.TimeOf(c + i))
		pl.samples = append(pl.samples, pl.output())
	}
	pl.state.outClock.Step(n)
	pl.advanceTape(to)
	pl.record(to)
	return to
}

func (pl *Player) advanceTape(to clocks.Time) {
	if !pl.playing() {
		return
	}
	n := pl.state.tapeClock.PeriodsUntil(to)
	pl.state.tapeClock.Step(n)
	pl.state.position = min(pl.state.position+n, uint64(len(pl.tape.Data)))
}

// the cassette-out signal does not change between syncs so every recorded
// sample up to the requested time has the same value
func (pl *Player) record(to clocks.Time) {
	n := pl.state.recClock.PeriodsUntil(to)
	pl.state.recClock.Step(n)
	if pl.state.mode != Record || !pl.rolling() {
		return
	}
	v := int16(-recordAmplitude)
	if pl.state.output {
		v = recordAmplitude
	}
	for range n {
		pl.recorded = append(pl.recorded, v)
	}
}

func (pl *Player) level() float32 {
	if !pl.playing() {
		return 0
	}
	return pl.tape.Data[pl.state.position]
}

func (pl *Player) output() int16 {
	return int16(pl.level() * outputVolume)
}

// Drain implements the sound.Source interface.
func (pl *Player) Drain() []int16 {
	s := pl.samples
	pl.samples = pl.samples[:0]
	return s
}

func (pl *Player) register() uint8 {
	var v uint8
	if pl.state.motor {
		v |= RegMotor
	}
	if pl.state.output {
		v |= RegOutput
	}
	if pl.level() > 0 {
		v |= RegInput
	}
	return v
}

// Read implements the bus.Device interface.
func (pl *Player) Read(_ uint16, time clocks.Time) (uint8, error) {
	if err := pl.SyncTo(time); err != nil {
		return 0, err
	}
	return pl.register(), nil
}

// Write implements the bus.Device interface.
func (pl *Player) Write(_ uint16, data uint8, time clocks.Time) error {
	return pl.change(time, func() {
		pl.state.motor = data&RegMotor == RegMotor
		pl.state.output = data&RegOutput == RegOutput
	})
}

// Peek implements the bus.Device interface. The tape position is not brought
// up to date.
func (pl *Player) Peek(_ uint16, _ clocks.Time) (uint8, error) {
	return pl.register(), nil
}

// ReadCacheLine implements the bus.Device interface.
func (pl *Player) ReadCacheLine(_ uint16) []uint8 {
	return nil
}

// WriteCacheLine implements the bus.Device interface.
func (pl *Player) WriteCacheLine(_ uint16) []uint8 {
	return nil
}

// State is a copy of the Player state. The tape data is not copied.
type State struct {
	tape      *Tape
	state     state
	samples   []int16
	validUpTo clocks.Time
}

// Snapshot creates a copy of the Player state.
func (pl *Player) Snapshot() *State {
	return &State{
		tape:      pl.tape,
		state:     pl.state,
		samples:   append([]int16(nil), pl.samples...),
		validUpTo: pl.tracker.ValidUpTo(),
	}
}

// Plumb restores the Player state from a snapshot. A recording cannot be
// rewound so any recording is ended and a restored Record mode becomes Stop.
// The sync points are part of the scheduler state and are not changed.
func (pl *Player) Plumb(s *State) {
	if pl.recorder != nil {
		if err := pl.finishRecording(); err != nil {
			logger.Log(pl.env, "cassette", err)
		}
	}

	pl.tape = s.tape
	pl.state = s.state
	if pl.state.mode == Record {
		pl.state.mode = Stop
	}
	pl.samples = append(pl.samples[:0], s.samples...)
	pl.tracker.Reset(s.validUpTo)
}
