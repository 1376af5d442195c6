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

package clocks

import (
	"fmt"
	"math/bits"
)

// Clock counts whole periods of a clock with a rational frequency of num/den
// Hz. The period count is relative to an origin time. The time of period n is
// always calculated as
//
//	origin + floor(n * MainFreq * den / num)
//
// so there is no accumulation of rounding error however long the clock runs.
type Clock struct {
	origin Time
	num    uint64
	den    uint64
	count  uint64
}

// NewClock is the preferred method of initialisation for a Clock with an
// integer frequency.
func NewClock(freq uint64) Clock {
	return NewRationalClock(freq, 1)
}

// NewRationalClock is the preferred method of initialisation for a Clock with a
// frequency of num/den Hz.
func NewRationalClock(num, den uint64) Clock {
	if num == 0 || den == 0 {
		panic(fmt.Sprintf("clocks: invalid clock frequency %d/%d", num, den))
	}
	return Clock{num: num, den: den}
}

func (c Clock) String() string {
	return fmt.Sprintf("%d/%dHz @ %v", c.num, c.den, c.Time())
}

// Reset sets the origin of the clock and sets the period count to zero.
func (c *Clock) Reset(origin Time) {
	c.origin = origin
	c.count = 0
}

// Origin returns the time the clock was last Reset().
func (c Clock) Origin() Time {
	return c.origin
}

// Count returns the number of periods since the origin.
func (c Clock) Count() uint64 {
	return c.count
}

// TimeOf returns the time of period n, relative to the origin.
func (c Clock) TimeOf(n uint64) Time {
	hi, lo := bits.Mul64(n, MainFreq*c.den)
	q, _ := bits.Div64(hi, lo, c.num)
	return Time{ticks: c.origin.ticks + q}
}

// Time returns the time of the current period.
func (c Clock) Time() Time {
	return c.TimeOf(c.count)
}

// Next returns the time of the period after the current period.
func (c Clock) Next() Time {
	return c.TimeOf(c.count + 1)
}

// Step the clock forward n periods.
func (c *Clock) Step(n uint64) {
	c.count += n
}

// countAt returns the number of the last period that begins at or before t.
func (c Clock) countAt(t Time) uint64 {
	if t.ticks < c.origin.ticks {
		return 0
	}

	// the largest n such that floor(n*MainFreq*den/num) <= x is
	// floor(((x+1)*num - 1) / (MainFreq*den))
	x := t.ticks - c.origin.ticks
	hi, lo := bits.Mul64(x+1, c.num)
	lo, borrow := bits.Sub64(lo, 1, 0)
	hi -= borrow
	q, _ := bits.Div64(hi, lo, MainFreq*c.den)
	return q
}

// PeriodsUntil returns the number of whole periods between the current period
// and time t. The result is zero if t is before the next period.
func (c Clock) PeriodsUntil(t Time) uint64 {
	n := c.countAt(t)
	if n <= c.count {
		return 0
	}
	return n - c.count
}

// Advance moves the clock to the last period that begins at or before t. The
// clock never moves backwards.
func (c *Clock) Advance(t Time) {
	if n := c.countAt(t); n > c.count {
		c.count = n
	}
}
