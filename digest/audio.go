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

package digest

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"

	"github.com/jetsetilly/gophermsx/hardware/sound"
)

// Audio implements the sound.AudioMixer interface.
type Audio struct {
	digest  [sha1.Size]byte
	buffer  []uint8
	samples int
}

// NewAudio is the preferred method of initialisation for the Audio type. The
// digest is attached to the mixer as an audio output.
func NewAudio(mixer *sound.Mixer) *Audio {
	dig := &Audio{}
	mixer.AddAudioMixer(dig)
	return dig
}

// Hash implements digest.Digest interface.
func (dig *Audio) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements digest.Digest interface.
func (dig *Audio) ResetDigest() {
	clear(dig.digest[:])
	dig.samples = 0
}

// Samples returns the number of samples added to the digest since the last
// reset.
func (dig *Audio) Samples() int {
	return dig.samples
}

// SetAudio implements the sound.AudioMixer interface.
func (dig *Audio) SetAudio(buffer []int16) error {
	dig.buffer = dig.buffer[:0]
	dig.buffer = append(dig.buffer, dig.digest[:]...)
	for _, s := range buffer {
		dig.buffer = binary.LittleEndian.AppendUint16(dig.buffer, uint16(s))
	}
	dig.digest = sha1.Sum(dig.buffer)
	dig.samples += len(buffer)
	return nil
}

// EndMixing implements the sound.AudioMixer interface.
func (dig *Audio) EndMixing() error {
	return nil
}
