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

package sound

import (
	"fmt"

	"github.com/jetsetilly/gophermsx/environment"
	"github.com/jetsetilly/gophermsx/hardware/catchup"
	"github.com/jetsetilly/gophermsx/hardware/clocks"
)

// ToneRegisters is the number of addresses occupied by a Tone.
//
//	base+0	period, low 8 bits
//	base+1	period, high 4 bits
//	base+2	volume, 4 bits
//	base+3	control. bit 0 enables output
//
// The frequency of the tone is CPUFreq / (16 * period).
const ToneRegisters = 4

// each volume step
const toneAmplitude = 2048

type toneState struct {
	regs [ToneRegisters]uint8

	// the sample clock
	clock clocks.Clock

	// phase accumulator in units of 1/sampleRate CPU cycles
	acc uint64
	high bool
}

// Tone is a square wave generator. It implements the bus.Device, bus.Syncer
// and Source interfaces.
type Tone struct {
	env     *environment.Environment
	label   string
	base    uint16
	tracker catchup.Tracker

	sampleRate uint64
	state      toneState
	samples    []int16
}

// NewTone is the preferred method of initialisation for the Tone type. The
// sample clock starts at time zero.
func NewTone(env *environment.Environment, label string, base uint16) *Tone {
	tn := &Tone{
		env:     env,
		label:   label,
		base:    base,
		tracker: catchup.NewTracker(label, env),
	}
	tn.Reset(clocks.Zero)
	return tn
}

func (tn *Tone) String() string {
	return fmt.Sprintf("%s: period %d, volume %d, enabled %v", tn.label, tn.period(), tn.volume(), tn.enabled())
}

// Label implements the bus.Device interface.
func (tn *Tone) Label() string {
	return tn.label
}

func (tn *Tone) period() uint64 {
	p := uint64(tn.state.regs[0]) | uint64(tn.state.regs[1]&0x0f)<<8
	if p == 0 {
		return 1
	}
	return p
}

func (tn *Tone) volume() int16 {
	return int16(tn.state.regs[2] & 0x0f)
}

func (tn *Tone) enabled() bool {
	return tn.state.regs[3]&0x01 == 0x01
}

// Reset implements the bus.Resetter interface. The sample clock starts at the
// specified time.
func (tn *Tone) Reset(time clocks.Time) {
	tn.sampleRate = uint64(tn.env.Prefs.AudioFreq.Get().(int))
	tn.state = toneState{
		clock: clocks.NewClock(tn.sampleRate),
	}
	tn.state.clock.Reset(time)
	tn.samples = tn.samples[:0]
	tn.tracker.Reset(time)
}

// SyncTo implements the bus.Syncer and Source interfaces.
func (tn *Tone) SyncTo(time clocks.Time) error {
	return tn.tracker.Sync(time, tn.replay)
}

func (tn *Tone) replay(_ clocks.Time, to clocks.Time) clocks.Time {
	n := tn.state.clock.PeriodsUntil(to)

	// the square wave changes level every 8*period CPU cycles
	half := tn.period() * 8 * tn.sampleRate
	amp := tn.volume() * toneAmplitude

	for range n {
		tn.state.acc += clocks.CPUFreq
		for tn.state.acc >= half {
			tn.state.acc -= half
			tn.state.high = !tn.state.high
		}
		switch {
		case !tn.enabled():
			tn.samples = append(tn.samples, 0)
		case tn.state.high:
			tn.samples = append(tn.samples, amp)
		default:
			tn.samples = append(tn.samples, -amp)
		}
	}

	tn.state.clock.Step(n)
	return tn.state.clock.Time()
}

// Drain implements the Source interface.
func (tn *Tone) Drain() []int16 {
	s := tn.samples
	tn.samples = tn.samples[:0]
	return s
}

// Read implements the bus.Device interface.
func (tn *Tone) Read(address uint16, _ clocks.Time) (uint8, error) {
	return tn.state.regs[(address-tn.base)%ToneRegisters], nil
}

// Write implements the bus.Device interface. Samples up to the time of the
// write are generated with the previous register values.
func (tn *Tone) Write(address uint16, data uint8, time clocks.Time) error {
	if err := tn.SyncTo(time); err != nil {
		return err
	}
	tn.state.regs[(address-tn.base)%ToneRegisters] = data
	return nil
}

// Peek implements the bus.Device interface.
func (tn *Tone) Peek(address uint16, time clocks.Time) (uint8, error) {
	return tn.Read(address, time)
}

// ReadCacheLine implements the bus.Device interface.
func (tn *Tone) ReadCacheLine(_ uint16) []uint8 {
	return nil
}

// WriteCacheLine implements the bus.Device interface. Writes must be seen by
// the device so they are never cached.
func (tn *Tone) WriteCacheLine(_ uint16) []uint8 {
	return nil
}

// ToneState is a copy of the Tone state.
type ToneState struct {
	state     toneState
	samples   []int16
	validUpTo clocks.Time
}

// Snapshot creates a copy of the Tone state.
func (tn *Tone) Snapshot() *ToneState {
	return &ToneState{
		state:     tn.state,
		samples:   append([]int16(nil), tn.samples...),
		validUpTo: tn.tracker.ValidUpTo(),
	}
}

// Plumb restores the Tone state from a snapshot.
func (tn *Tone) Plumb(s *ToneState) {
	tn.state = s.state
	tn.samples = append(tn.samples[:0], s.samples...)
	tn.tracker.Reset(s.validUpTo)
}

