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

package video

import (
	"fmt"

	"github.com/jetsetilly/gophermsx/environment"
	"github.com/jetsetilly/gophermsx/hardware/catchup"
	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/scheduler"
	"github.com/jetsetilly/gophermsx/logger"
)

// sync point tags
const (
	tagEndOfLine = iota
	tagEndOfFrame
	tagLineInterrupt
)

// Status register bits. The status register is cleared when it is read.
const (
	StatusFrame = 0x80
	StatusLine  = 0x01
)

// register numbers and bits
const (
	regMode0       = 0
	regMode1       = 1
	regBackdrop    = 7
	regPalette     = 8
	regInterrupt   = 19
	regScroll      = 23
	numRegisters   = 32
	mode0LineIRQ   = 0x10
	mode1Display   = 0x40
	mode1FrameIRQ  = 0x20
	registerSelect = numRegisters - 1
)

type state struct {
	vram     [VRAMSize]uint8
	regs     [numRegisters]uint8
	status   uint8
	selected uint8

	frameStart clocks.Time
	frameNum   int

	// number of lines of the current frame that have been rendered
	rendered int

	// the frame buffer. one palette index per pixel
	pixels []uint8
}

func (s state) copy() state {
	n := s
	n.pixels = make([]uint8, len(s.pixels))
	copy(n.pixels, s.pixels)
	return n
}

// Video is the video display processor. It implements the
// scheduler.Schedulable and bus.Syncer interfaces.
type Video struct {
	scheduler.Base

	env     *environment.Environment
	timing  Timing
	tracker catchup.Tracker

	state state

	// set a sync point at the end of every line
	lineSync bool

	triggers []FrameTrigger
}

// NewVideo is the preferred method of initialisation for the Video type.
func NewVideo(env *environment.Environment, sched *scheduler.Scheduler, timing Timing) *Video {
	v := &Video{
		env:     env,
		timing:  timing,
		tracker: catchup.NewTracker("video", env),
	}
	v.state.pixels = make([]uint8, Width*timing.VisibleLines)
	v.Attach(sched, v)
	v.Reset(sched.CurrentTime())
	return v
}

func (v *Video) String() string {
	return fmt.Sprintf("video: frame %d, line %d, %v", v.state.frameNum, v.state.rendered, v.tracker.String())
}

// SchedName implements the scheduler.Schedulable interface.
func (v *Video) SchedName() string {
	return "video"
}

// Timing returns the frame timing of the video processor.
func (v *Video) Timing() Timing {
	return v.timing
}

// AddFrameTrigger registers an implementation of FrameTrigger. Frame triggers
// are called in the order they were added.
func (v *Video) AddFrameTrigger(t FrameTrigger) {
	v.triggers = append(v.triggers, t)
}

// Reset implements the bus.Resetter interface. A new frame is started at the
// specified time.
func (v *Video) Reset(time clocks.Time) {
	v.RemoveSyncPoints()

	vram := v.state.vram
	pixels := v.state.pixels
	clear(pixels)
	v.state = state{
		vram:       vram,
		pixels:     pixels,
		frameStart: time,
	}
	v.tracker.Reset(time)
	v.lineSync = v.env.Prefs.LineSync.Get().(bool)

	if err := v.startFrame(time); err != nil {
		logger.Log(v.env, "video", err)
	}
}

// Close implements the bus.Closer interface.
func (v *Video) Close() error {
	v.Detach()
	return nil
}

// frameEnd returns the time the current frame will end
func (v *Video) frameEnd() clocks.Time {
	return v.state.frameStart.Add(v.timing.FrameTicks())
}

// startFrame sets the sync points for the frame beginning at the specified
// time
func (v *Video) startFrame(time clocks.Time) error {
	v.state.frameStart = time
	v.state.rendered = 0

	if err := v.SetSyncPoint(v.frameEnd(), tagEndOfFrame); err != nil {
		return err
	}
	if v.lineSync {
		if err := v.SetSyncPoint(time.Add(v.timing.LineTicks), tagEndOfLine); err != nil {
			return err
		}
	}
	return v.scheduleLineInterrupt(time)
}

// scheduleLineInterrupt sets the sync point for the line interrupt in the
// current frame. if the interrupt line has already passed then the interrupt
// will be scheduled when the next frame starts
func (v *Video) scheduleLineInterrupt(now clocks.Time) error {
	v.RemoveSyncPoint(tagLineInterrupt)
	if v.state.regs[regMode0]&mode0LineIRQ == 0 {
		return nil
	}
	line := int(v.state.regs[regInterrupt])
	if line >= v.timing.Lines {
		return nil
	}
	t := v.state.frameStart.Add(v.timing.LineTicks * clocks.Duration(line+1))
	if t.Before(now) {
		return nil
	}
	return v.SetSyncPoint(t, tagLineInterrupt)
}

// ExecuteUntil implements the scheduler.Schedulable interface.
func (v *Video) ExecuteUntil(time clocks.Time, tag int) error {
	if err := v.SyncTo(time); err != nil {
		return err
	}

	switch tag {
	case tagEndOfLine:
		next := time.Add(v.timing.LineTicks)
		if next.Before(v.frameEnd()) {
			return v.SetSyncPoint(next, tagEndOfLine)
		}

	case tagLineInterrupt:
		v.state.status |= StatusLine

	case tagEndOfFrame:
		v.state.status |= StatusFrame

		frame := Frame{
			Number: v.state.frameNum,
			Time:   time,
			Width:  Width,
			Height: v.timing.VisibleLines,
			Pixels: make([]uint8, len(v.state.pixels)),
		}
		copy(frame.Pixels, v.state.pixels)

		v.state.frameNum++
		if err := v.startFrame(time); err != nil {
			return err
		}

		for _, t := range v.triggers {
			if err := t.NewFrame(frame); err != nil {
				return err
			}
		}
	}

	return nil
}

// SyncTo implements the bus.Syncer interface. All lines completed by the
// specified time are rendered.
func (v *Video) SyncTo(time clocks.Time) error {
	return v.tracker.Sync(time, v.replay)
}

func (v *Video) replay(_ clocks.Time, to clocks.Time) clocks.Time {
	completed := int(to.Sub(v.state.frameStart) / v.timing.LineTicks)
	if completed > v.timing.Lines {
		completed = v.timing.Lines
	}
	for ; v.state.rendered < completed; v.state.rendered++ {
		if v.state.rendered < v.timing.VisibleLines {
			v.renderLine(v.state.rendered)
		}
	}
	return v.state.frameStart.Add(v.timing.LineTicks * clocks.Duration(completed))
}

func (v *Video) renderLine(y int) {
	dst := v.state.pixels[y*Width : (y+1)*Width]
	backdrop := v.state.regs[regBackdrop] & 0x0f

	if v.state.regs[regMode1]&mode1Display == 0 {
		for x := range dst {
			dst[x] = backdrop
		}
		return
	}

	row := (y + int(v.state.regs[regScroll])) & 0xff
	src := v.state.vram[row*rowBytes : (row+1)*rowBytes]
	for x := range dst {
		p := (src[x>>2] >> (6 - uint(x&3)*2)) & 0x03
		if p == 0 {
			dst[x] = backdrop
		} else {
			dst[x] = v.state.regs[regPalette+int(p)-1] & 0x0f
		}
	}
}

// WriteRegister changes the value of a register at the specified time. Lines
// completed before the time are rendered with the old value.
func (v *Video) WriteRegister(reg uint8, data uint8, time clocks.Time) error {
	if err := v.SyncTo(time); err != nil {
		return err
	}
	reg &= registerSelect
	v.state.regs[reg] = data
	switch reg {
	case regMode0, regInterrupt:
		return v.scheduleLineInterrupt(time)
	}
	return nil
}

// Register returns the current value of a register.
func (v *Video) Register(reg uint8) uint8 {
	return v.state.regs[reg&registerSelect]
}

// ReadStatus returns the status register and clears it.
func (v *Video) ReadStatus(time clocks.Time) (uint8, error) {
	if err := v.SyncTo(time); err != nil {
		return 0, err
	}
	s := v.state.status
	v.state.status = 0
	return s, nil
}

// PeekStatus returns the status register without clearing it.
func (v *Video) PeekStatus() uint8 {
	return v.state.status
}

// IRQ returns true if the video processor is requesting an interrupt.
func (v *Video) IRQ() bool {
	return (v.state.status&StatusFrame != 0 && v.state.regs[regMode1]&mode1FrameIRQ != 0) ||
		(v.state.status&StatusLine != 0 && v.state.regs[regMode0]&mode0LineIRQ != 0)
}

// WriteVRAM changes the value of video RAM at the specified time. Lines
// completed before the time are rendered with the old value.
func (v *Video) WriteVRAM(address uint16, data uint8, time clocks.Time) error {
	if err := v.SyncTo(time); err != nil {
		return err
	}
	v.state.vram[address&(VRAMSize-1)] = data
	return nil
}

// ReadVRAM returns the value of video RAM.
func (v *Video) ReadVRAM(address uint16) uint8 {
	return v.state.vram[address&(VRAMSize-1)]
}

// ValidUpTo returns the time up to which the frame buffer has been rendered.
func (v *Video) ValidUpTo() clocks.Time {
	return v.tracker.ValidUpTo()
}

// FrameNum returns the number of the frame currently being rendered.
func (v *Video) FrameNum() int {
	return v.state.frameNum
}

// Line returns the frame buffer for the visible line. Lines that have not yet
// been rendered contain the pixels from the previous frame. The returned slice
// is not a copy and will change as the frame is rendered.
func (v *Video) Line(y int) []uint8 {
	return v.state.pixels[y*Width : (y+1)*Width]
}

// CurrentFrame renders all lines completed by the specified time and returns a
// copy of the frame buffer.
func (v *Video) CurrentFrame(time clocks.Time) (Frame, error) {
	if err := v.SyncTo(time); err != nil {
		return Frame{}, err
	}
	frame := Frame{
		Number: v.state.frameNum,
		Time:   v.tracker.ValidUpTo(),
		Width:  Width,
		Height: v.timing.VisibleLines,
		Pixels: make([]uint8, len(v.state.pixels)),
	}
	copy(frame.Pixels, v.state.pixels)
	return frame, nil
}

// State is a copy of the video processor state.
type State struct {
	state     state
	validUpTo clocks.Time
}

// ValidUpTo returns the time up to which the frame buffer had been rendered.
func (s *State) ValidUpTo() clocks.Time {
	return s.validUpTo
}

// Snapshot creates a copy of the video processor state. The pending sync
// points are part of the scheduler state.
func (v *Video) Snapshot() *State {
	return &State{
		state:     v.state.copy(),
		validUpTo: v.tracker.ValidUpTo(),
	}
}

// Plumb restores the video processor state from a snapshot.
func (v *Video) Plumb(s *State) {
	v.state = s.state.copy()
	v.tracker.Reset(s.validUpTo)
}
