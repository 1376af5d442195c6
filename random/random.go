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

package random

import (
	"math/rand"
	"time"

	"github.com/jetsetilly/gophermsx/hardware/clocks"
)

// the base seed for all random numbers
var baseSeed int64

// initialise base seed
func init() {
	baseSeed = int64(time.Now().Nanosecond())
}

// Timer is the source of the current virtual time. In practice this will be
// the scheduler.
type Timer interface {
	CurrentTime() clocks.Time
}

// Random is a random number generator that is sensitive to time within the
// emulation. Required for the rewind package and parallel emulations.
type Random struct {
	timer Timer

	// use zero seed rather than the random base seed. this is only really
	// useful for normalised instances where random numbers must be predictable
	ZeroSeed bool

	// the generator used by NoRewind()
	norewind *rand.Rand
}

// NewRandom is the preferred method of initialisation for the Random type. The
// Timer can be nil, in which case it should be supplied later with Plumb().
func NewRandom(timer Timer) *Random {
	return &Random{
		timer:    timer,
		norewind: rand.New(rand.NewSource(baseSeed)),
	}
}

// Plumb a new Timer into the Random instance.
func (rnd *Random) Plumb(timer Timer) {
	rnd.timer = timer
}

func (rnd *Random) seed() int64 {
	var t int64
	if rnd.timer != nil {
		t = int64(rnd.timer.CurrentTime().Ticks())
	}
	if rnd.ZeroSeed {
		return t
	}
	return baseSeed + t
}

// Rewindable returns a random number in the range [0, n) that is always the
// same for the same virtual time.
func (rnd *Random) Rewindable(n int) int {
	return rand.New(rand.NewSource(rnd.seed())).Intn(n)
}

// Fill the slice with random bytes. The contents are always the same for the
// same virtual time.
func (rnd *Random) Fill(p []uint8) {
	r := rand.New(rand.NewSource(rnd.seed()))
	for i := range p {
		p[i] = uint8(r.Intn(256))
	}
}

// NoRewind returns a random number in the range [0, n) regardless of the
// virtual time.
func (rnd *Random) NoRewind(n int) int {
	if rnd.ZeroSeed {
		return rnd.Rewindable(n)
	}
	return rnd.norewind.Intn(n)
}
