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

// Package screenshot converts video frames to images and saves them as PNG
// files.
package screenshot

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/jetsetilly/gophermsx/curated"
	"github.com/jetsetilly/gophermsx/hardware/video"
	"golang.org/x/image/draw"
)

// Sentinal error returned by screenshot functions.
const ScreenshotError = "screenshot: %v"

// Image converts the frame to an RGBA image. Each pixel is scaled by the
// scale value.
func Image(frame video.Frame, scale int) *image.RGBA {
	src := image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	for y := range frame.Height {
		for x := range frame.Width {
			r, g, b := frame.RGB(x, y)
			src.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}

	if scale <= 1 {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, frame.Width*scale, frame.Height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Save the frame as a PNG file.
func Save(frame video.Frame, scale int, filename string) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf(ScreenshotError, err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = curated.Errorf(ScreenshotError, err)
		}
	}()

	if err := png.Encode(f, Image(frame, scale)); err != nil {
		return curated.Errorf(ScreenshotError, err)
	}

	return nil
}

// Trigger saves the next completed frame when requested. It implements the
// video.FrameTrigger interface.
type Trigger struct {
	base      string
	scale     int
	requested bool

	// filenames of the saved screenshots
	Saved []string
}

// NewTrigger is the preferred method of initialisation for the Trigger type.
// Filenames are created by appending the frame number to the base filename.
func NewTrigger(v *video.Video, base string, scale int) *Trigger {
	trg := &Trigger{
		base:  base,
		scale: scale,
	}
	v.AddFrameTrigger(trg)
	return trg
}

// Request a screenshot of the next frame.
func (trg *Trigger) Request() {
	trg.requested = true
}

// NewFrame implements the video.FrameTrigger interface.
func (trg *Trigger) NewFrame(frame video.Frame) error {
	if !trg.requested {
		return nil
	}
	trg.requested = false

	fn := fmt.Sprintf("%s_%06d.png", trg.base, frame.Number)
	if err := Save(frame, trg.scale, fn); err != nil {
		return err
	}
	trg.Saved = append(trg.Saved, fn)

	return nil
}
