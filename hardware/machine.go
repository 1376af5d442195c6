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

package hardware

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gophermsx/curated"
	"github.com/jetsetilly/gophermsx/environment"
	"github.com/jetsetilly/gophermsx/hardware/cassette"
	"github.com/jetsetilly/gophermsx/hardware/cpu"
	"github.com/jetsetilly/gophermsx/hardware/memory"
	"github.com/jetsetilly/gophermsx/hardware/memory/bus"
	"github.com/jetsetilly/gophermsx/hardware/memory/pac"
	"github.com/jetsetilly/gophermsx/hardware/memory/ram"
	"github.com/jetsetilly/gophermsx/hardware/memory/shadow"
	"github.com/jetsetilly/gophermsx/hardware/scheduler"
	"github.com/jetsetilly/gophermsx/hardware/sound"
	"github.com/jetsetilly/gophermsx/hardware/video"
	"github.com/jetsetilly/gophermsx/logger"
)

// Sentinel error patterns.
const (
	BadLayout        = "machine: bad layout: %s"
	StepBackwards    = "machine: cannot step from %v to %v"
	UnsupportedState = "machine: unsupported emulation state (%v) in Run() function"
	Stalled          = "machine: no pending sync points"
)

// Machine is the main container for the emulated components.
type Machine struct {
	env *environment.Environment

	Scheduler *scheduler.Scheduler
	Mem       *memory.Memory

	RAM    *ram.RAM
	Shadow *shadow.Shadow
	ROM    *ram.RAM
	PAC    *pac.PAC

	Video    *video.Video
	Mixer    *sound.Mixer
	Tones    []*sound.Tone
	Cassette *cassette.Player

	engine cpu.Engine

	resetters []bus.Resetter
	closers   []bus.Closer
}

// NewMachine creates a new Machine and every device in the layout. The machine
// is reset at time zero.
func NewMachine(env *environment.Environment, layout Layout) (*Machine, error) {
	m := &Machine{
		env:       env,
		Scheduler: scheduler.NewScheduler(env),
		Mem:       memory.NewMemory("main"),
		engine:    layout.Engine,
	}
	if m.engine == nil {
		m.engine = cpu.Idle{}
	}

	// random numbers are keyed by virtual time
	env.Random.Plumb(m.Scheduler)

	if err := m.addMemory(layout); err != nil {
		return nil, err
	}
	if err := m.addVideo(); err != nil {
		return nil, err
	}
	if err := m.addSound(layout); err != nil {
		return nil, err
	}

	logger.Logf(env, "machine", "created with %d ranges", len(m.Mem.MultiMem().Ranges()))
	m.Reset()

	return m, nil
}

func (m *Machine) addMemory(layout Layout) error {
	size := layout.RAMSize
	if size == 0 {
		size = MaxRAMSize
	}
	if size < 0 || size > MaxRAMSize {
		return curated.Errorf(BadLayout, fmt.Sprintf("ram size %#x", size))
	}

	m.RAM = ram.NewRAM(m.env, "ram", RAMBase, size)
	m.resetters = append(m.resetters, m.RAM)

	if layout.Boot != nil {
		var err error
		m.Shadow, err = shadow.NewShadow(m.Scheduler, m.Mem, m.env, layout.Boot, m.RAM, layout.BootDelay)
		if err != nil {
			return curated.Errorf(BadLayout, err)
		}
		if err := m.Mem.Add(m.Shadow, RAMBase, size); err != nil {
			return err
		}
		m.resetters = append(m.resetters, m.Shadow)
		m.closers = append(m.closers, m.Shadow)
	} else if err := m.Mem.Add(m.RAM, RAMBase, size); err != nil {
		return err
	}

	switch {
	case layout.PAC:
		var err error
		m.PAC, err = pac.NewPAC(m.env, m.Mem, layout.PACFile)
		if err != nil {
			return err
		}
		if err := m.Mem.Add(m.PAC, CartBase, CartSize); err != nil {
			return err
		}
		m.resetters = append(m.resetters, m.PAC)
		m.closers = append(m.closers, m.PAC)

	case len(layout.ROM) > 0:
		if len(layout.ROM) > CartSize {
			return curated.Errorf(BadLayout, fmt.Sprintf("cartridge rom size %#x", len(layout.ROM)))
		}
		m.ROM = ram.NewROM(m.env, "rom", CartBase, layout.ROM)
		if err := m.Mem.Add(m.ROM, CartBase, len(layout.ROM)); err != nil {
			return err
		}
	}

	return nil
}

func (m *Machine) addVideo() error {
	timing := video.NTSC
	if m.env.Prefs.IsPAL() {
		timing = video.PAL
	}
	m.Video = video.NewVideo(m.env, m.Scheduler, timing)
	if err := m.Mem.Add(m.Video.Ports(VideoPorts), VideoPorts, 2); err != nil {
		return err
	}
	if err := m.Mem.Add(m.Video.VRAMWindow(VRAMBase), VRAMBase, video.VRAMSize); err != nil {
		return err
	}
	m.resetters = append(m.resetters, m.Video)
	m.closers = append(m.closers, m.Video)
	return nil
}

func (m *Machine) addSound(layout Layout) error {
	if layout.Tones < 0 || layout.Tones > MaxTones {
		return curated.Errorf(BadLayout, fmt.Sprintf("%d tone generators", layout.Tones))
	}

	m.Mixer = sound.NewMixer(m.env, m.Scheduler)
	m.resetters = append(m.resetters, m.Mixer)
	m.closers = append(m.closers, m.Mixer)

	for i := range layout.Tones {
		base := uint16(TonePorts + i*sound.ToneRegisters)
		tn := sound.NewTone(m.env, fmt.Sprintf("tone%d", i), base)
		if err := m.Mem.Add(tn, int(base), sound.ToneRegisters); err != nil {
			return err
		}
		m.Mixer.AddSource(tn)
		m.Tones = append(m.Tones, tn)
		m.resetters = append(m.resetters, tn)
	}

	m.Cassette = cassette.NewPlayer(m.env, m.Scheduler, CassettePort)
	if err := m.Mem.Add(m.Cassette, CassettePort, 1); err != nil {
		return err
	}
	m.Mixer.AddSource(m.Cassette)
	m.resetters = append(m.resetters, m.Cassette)
	m.closers = append(m.closers, m.Cassette)

	if layout.Tape != "" {
		tp, err := cassette.LoadTape(layout.Tape)
		if err != nil {
			return err
		}
		if err := m.Cassette.Insert(tp, m.Scheduler.CurrentTime()); err != nil {
			return err
		}
	}

	return nil
}

func (m *Machine) String() string {
	s := strings.Builder{}
	s.WriteString(m.Scheduler.String())
	s.WriteString("\n")
	s.WriteString(m.Mem.String())
	s.WriteString("\n")
	s.WriteString(m.Video.String())
	return s.String()
}

// Engine returns the CPU engine.
func (m *Machine) Engine() cpu.Engine {
	return m.engine
}

// Reset every device at the current time.
func (m *Machine) Reset() {
	t := m.Scheduler.CurrentTime()
	for _, r := range m.resetters {
		r.Reset(t)
	}
	m.engine.Reset(t)
	m.Mem.InvalidateCache(0, bus.AddressSpace)
}

// End the emulation. Devices are closed in the reverse order to which they
// were created and the scheduler is torn down. The Machine should not be used
// after End() has been called.
func (m *Machine) End() error {
	var err error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if e := m.closers[i].Close(); e != nil {
			logger.Log(m.env, "machine", e)
			if err == nil {
				err = e
			}
		}
	}
	if e := m.Scheduler.Teardown(); e != nil && err == nil {
		err = e
	}
	return err
}
