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

// Package limiter provides a rough and ready way of limiting events to a fixed
// rate.
//
// A new Limiter can be created with:
//
//	lim := limiter.NewLimiter(59.92)
//	defer lim.Stop()
//
// Operations can then be stalled with the Wait() function. For example:
//
//	for {
//		lim.Wait()
//		renderImage()
//	}
package limiter

import (
	"sync/atomic"
	"time"
)

// Limiter will trigger a fixed number of times per second.
type Limiter struct {
	period atomic.Int64
	tick   chan bool
	quit   chan bool
}

// NewLimiter is the preferred method of initialisation for Limiter type.
func NewLimiter(rate float64) *Limiter {
	lim := &Limiter{
		tick: make(chan bool),
		quit: make(chan bool),
	}
	lim.SetLimit(rate)

	go func() {
		t := time.Now()
		for {
			select {
			case lim.tick <- true:
			case <-lim.quit:
				return
			}

			// the next deadline is measured from the previous deadline and not
			// from when the tick was taken. a late tick is followed by an
			// early one
			t = t.Add(time.Duration(lim.period.Load()))
			if d := time.Until(t); d > 0 {
				time.Sleep(d)
			} else if d < -time.Second {
				// too far behind to catch up
				t = time.Now()
			}
		}
	}()

	return lim
}

// SetLimit changes the rate at which the Limiter triggers.
func (lim *Limiter) SetLimit(rate float64) {
	lim.period.Store(int64(float64(time.Second) / rate))
}

// Wait will block until trigger.
func (lim *Limiter) Wait() {
	<-lim.tick
}

// HasWaited will return true if the trigger has already happened and false if
// it is still yet to happen.
func (lim *Limiter) HasWaited() bool {
	select {
	case <-lim.tick:
		return true
	default:
		return false
	}
}

// Stop the limiter. Wait() must not be called after Stop().
func (lim *Limiter) Stop() {
	close(lim.quit)
}
