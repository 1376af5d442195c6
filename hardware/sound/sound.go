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
	"github.com/jetsetilly/gophermsx/hardware/clocks"
)

// AudioMixer implementations work with sound; most probably playing it. An
// example of an AudioMixer that does not play sound but otherwise works with
// it is the digest.Audio type.
type AudioMixer interface {
	// SetAudio receives a buffer of mono samples at the rate returned by
	// Mixer.SampleRate(). The buffer is shared between every AudioMixer and
	// must not be modified. It is never reused by the Mixer so it can be kept.
	SetAudio(buffer []int16) error

	// some mixers may need to conclude and/or dispose of resources gently.
	// for simplicity, the AudioMixer should be considered unusable after
	// EndMixing() has been called
	EndMixing() error
}

// Source is a sound generating device.
type Source interface {
	// SyncTo generates every sample up to the specified time.
	SyncTo(time clocks.Time) error

	// Drain returns the samples generated since the previous call to Drain().
	// The returned slice is only valid until the next call to SyncTo().
	Drain() []int16
}

// mix adds the samples in b to a. a must be at least as long as b
func mix(a []int32, b []int16) {
	for i, s := range b {
		a[i] += int32(s)
	}
}

func clip(v int32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
