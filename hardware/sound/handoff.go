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
	"sync/atomic"

	"github.com/jetsetilly/gophermsx/logger"
)

// Handoff is an AudioMixer that passes buffers to another AudioMixer running
// on its own goroutine. The queue between the two is bounded and SetAudio()
// never blocks. Buffers that do not fit in the queue are dropped.
type Handoff struct {
	mixer   AudioMixer
	queue   chan []int16
	done    chan error
	dropped atomic.Int64
}

// NewHandoff is the preferred method of initialisation for the Handoff type.
// The depth argument is the number of buffers that can be queued.
func NewHandoff(mixer AudioMixer, depth int) *Handoff {
	h := &Handoff{
		mixer: mixer,
		queue: make(chan []int16, depth),
		done:  make(chan error, 1),
	}

	go func() {
		var err error
		for buffer := range h.queue {
			if e := h.mixer.SetAudio(buffer); e != nil && err == nil {
				err = e
			}
		}
		if e := h.mixer.EndMixing(); e != nil && err == nil {
			err = e
		}
		h.done <- err
	}()

	return h
}

// SetAudio implements the AudioMixer interface.
func (h *Handoff) SetAudio(buffer []int16) error {
	select {
	case h.queue <- buffer:
	default:
		h.dropped.Add(1)
	}
	return nil
}

// EndMixing implements the AudioMixer interface. It waits for the queue to
// drain and returns the first error from the wrapped AudioMixer. The number
// of dropped buffers is logged.
func (h *Handoff) EndMixing() error {
	close(h.queue)
	err := <-h.done
	if n := h.Dropped(); n > 0 {
		logger.Logf(logger.Allow, "handoff", "%d audio buffers dropped", n)
	}
	return err
}

// Dropped returns the number of buffers that were dropped because the queue
// was full.
func (h *Handoff) Dropped() int {
	return int(h.dropped.Load())
}
