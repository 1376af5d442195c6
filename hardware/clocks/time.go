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
	"math"
	"math/bits"

	"github.com/jetsetilly/gophermsx/curated"
)

// MainFreq is the number of ticks in one virtual second.
const MainFreq uint64 = 3579545 * 960

// Commonly used clock frequencies.
const (
	CPUFreq   uint64 = 3579545
	VideoFreq uint64 = CPUFreq * 6
)

// NegativeDuration is the pattern for errors returned by Elapsed() when the
// two times are out of order.
const NegativeDuration = "clocks: negative duration from %v to %v"

// Time is a point in virtual time. The zero value is machine power-on.
type Time struct {
	ticks uint64
}

// Zero is the time of machine power-on.
var Zero = Time{}

// Infinity is later than any other time. It is useful as a limit value.
var Infinity = Time{ticks: math.MaxUint64}

// FromTicks creates a Time value from a tick count.
func FromTicks(ticks uint64) Time {
	return Time{ticks: ticks}
}

// Ticks returns the number of ticks since power-on.
func (t Time) Ticks() uint64 {
	return t.ticks
}

// Seconds returns the time since power-on in seconds. The result is not exact
// and should only be used for display purposes.
func (t Time) Seconds() float64 {
	return float64(t.ticks) / float64(MainFreq)
}

func (t Time) String() string {
	if t == Infinity {
		return "inf"
	}
	return fmt.Sprintf("%d", t.ticks)
}

// Add a duration to the time. Adding a duration that takes the time before
// power-on or beyond Infinity is a programming error and will panic.
func (t Time) Add(d Duration) Time {
	if d >= 0 {
		n, carry := bits.Add64(t.ticks, uint64(d), 0)
		if carry != 0 || n == math.MaxUint64 {
			panic(fmt.Sprintf("clocks: time overflow: %v + %d", t, d))
		}
		return Time{ticks: n}
	}
	if uint64(-d) > t.ticks {
		panic(fmt.Sprintf("clocks: time underflow: %v - %d", t, -d))
	}
	return Time{ticks: t.ticks - uint64(-d)}
}

// Sub returns the signed duration t-o. A negative result means the arguments
// were out of order, which is almost certainly a bug in the caller. Use
// Elapsed() where the order must be checked.
func (t Time) Sub(o Time) Duration {
	return Duration(int64(t.ticks - o.ticks))
}

// Before returns true if t is earlier than o.
func (t Time) Before(o Time) bool {
	return t.ticks < o.ticks
}

// After returns true if t is later than o.
func (t Time) After(o Time) bool {
	return t.ticks > o.ticks
}

// Ordering is the result of Compare().
type Ordering int

// List of valid Ordering values.
const (
	Before Ordering = -1
	Equal  Ordering = 0
	After  Ordering = 1
)

func (o Ordering) String() string {
	switch o {
	case Before:
		return "before"
	case Equal:
		return "equal"
	case After:
		return "after"
	}
	panic("unknown clocks.Ordering")
}

// Compare a with b. The result says whether a is Before, Equal or After b.
func Compare(a, b Time) Ordering {
	switch {
	case a.ticks < b.ticks:
		return Before
	case a.ticks > b.ticks:
		return After
	}
	return Equal
}

// Min returns the earlier of the two times.
func Min(a, b Time) Time {
	if a.ticks < b.ticks {
		return a
	}
	return b
}

// Elapsed returns the duration between from and to. An error is returned if
// to is before from. The duration is not clamped in that case.
func Elapsed(from, to Time) (Duration, error) {
	d := to.Sub(from)
	if d < 0 {
		return d, curated.Errorf(NegativeDuration, from, to)
	}
	return d, nil
}

// Duration is a signed number of ticks.
type Duration int64

// Seconds returns the duration in seconds. For display purposes only.
func (d Duration) Seconds() float64 {
	return float64(d) / float64(MainFreq)
}

func (d Duration) String() string {
	return fmt.Sprintf("%d", int64(d))
}

// DurationOf returns the duration of n periods of a clock running at freq Hz.
// The result is rounded down if it isn't a whole number of ticks.
func DurationOf(n uint64, freq uint64) Duration {
	return Duration(muldiv(n, MainFreq, freq))
}

// muldiv returns floor(a*b/c) using 128 bit intermediate arithmetic. The
// result must fit in 64 bits.
func muldiv(a, b, c uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	q, _ := bits.Div64(hi, lo, c)
	return q
}
