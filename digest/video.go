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
	"fmt"

	"github.com/jetsetilly/gophermsx/hardware/video"
)

// Video implements the video.FrameTrigger interface.
type Video struct {
	digest   [sha1.Size]byte
	pixels   []byte
	frameNum int
}

// NewVideo is the preferred method of initialisation for the Video type. The
// digest is attached to the video device as a frame trigger.
func NewVideo(v *video.Video) *Video {
	dig := &Video{}
	v.AddFrameTrigger(dig)
	return dig
}

// Hash implements digest.Digest interface.
func (dig *Video) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements digest.Digest interface.
func (dig *Video) ResetDigest() {
	clear(dig.digest[:])
}

// FrameNum returns the number of the last frame added to the digest.
func (dig *Video) FrameNum() int {
	return dig.frameNum
}

// NewFrame implements the video.FrameTrigger interface.
func (dig *Video) NewFrame(frame video.Frame) error {
	// the previous digest occupies the head of the buffer
	l := len(dig.digest) + len(frame.Pixels)
	if len(dig.pixels) != l {
		dig.pixels = make([]byte, l)
	}
	copy(dig.pixels, dig.digest[:])
	copy(dig.pixels[len(dig.digest):], frame.Pixels)

	dig.digest = sha1.Sum(dig.pixels)
	dig.frameNum = frame.Number
	return nil
}
