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
	"github.com/jetsetilly/gophermsx/curated"
	"github.com/jetsetilly/gophermsx/govern"
	"github.com/jetsetilly/gophermsx/hardware/clocks"
)

// Step runs the machine until the target time. The engine runs up to the
// next pending sync point and then the scheduler is advanced to the time the
// engine reached. This repeats until the target time is reached.
func (m *Machine) Step(target clocks.Time) error {
	now := m.Scheduler.CurrentTime()
	if target.Before(now) {
		return curated.Errorf(StepBackwards, now, target)
	}

	for {
		limit := clocks.Min(m.Scheduler.NextSyncPoint(), target)
		t, err := m.engine.Execute(m.Mem, now, limit)
		if err != nil {
			return err
		}
		if t.Before(now) {
			return curated.Errorf(StepBackwards, now, t)
		}
		if err := m.Scheduler.AdvanceTo(t); err != nil {
			return err
		}
		now = t

		if now == target {
			return nil
		}
	}
}

// step to the next sync point
func (m *Machine) stepSyncPoint() error {
	next := m.Scheduler.NextSyncPoint()
	if next == clocks.Infinity {
		return curated.Errorf(Stalled)
	}
	return m.Step(next)
}

// Run sets the emulation running as quickly as possible. The continueCheck
// function is called after every sync point and should return govern.Ending
// when the emulation should stop.
func (m *Machine) Run(continueCheck func() (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func() (govern.State, error) { return govern.Running, nil }
	}

	var err error

	state := govern.Running

	for state.Continue() {
		switch state {
		case govern.Running:
			if err := m.stepSyncPoint(); err != nil {
				return err
			}
		case govern.Paused:
		default:
			return curated.Errorf(UnsupportedState, state)
		}

		state, err = continueCheck()
		if err != nil {
			return err
		}
	}

	return nil
}

// RunForFrameCount sets emulator running for the specified number of frames.
// Useful for performance measurement and digests.
func (m *Machine) RunForFrameCount(numFrames int, continueCheck func(frame int) (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func(frame int) (govern.State, error) { return govern.Running, nil }
	}

	frameNum := m.Video.FrameNum()
	targetFrame := frameNum + numFrames

	state := govern.Running
	for frameNum != targetFrame && state != govern.Ending {
		if err := m.stepSyncPoint(); err != nil {
			return err
		}

		frameNum = m.Video.FrameNum()

		var err error
		state, err = continueCheck(frameNum)
		if err != nil {
			return err
		}
	}

	return nil
}
