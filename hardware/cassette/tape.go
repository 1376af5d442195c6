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

package cassette

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jetsetilly/gophermsx/curated"
)

// Sentinel error patterns for tape loading.
const (
	UnsupportedFormat = "cassette: unsupported tape format: %s"
	DecodeError       = "cassette: %s: %v"
)

// Tape is a decoded tape image.
type Tape struct {
	Name       string
	SampleRate uint64

	// mono samples normalised to the range -1 to 1. the first channel is used
	// for stereo recordings
	Data []float32
}

// Duration returns the length of the tape in seconds.
func (tp *Tape) Duration() float64 {
	return float64(len(tp.Data)) / float64(tp.SampleRate)
}

// LoadTape decodes the named file. The format is decided by the file
// extension.
func LoadTape(filename string) (*Tape, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf(DecodeError, filepath.Base(filename), err)
	}
	defer f.Close()
	return DecodeTape(filepath.Base(filename), f)
}

// DecodeTape decodes tape data. The format is decided by the extension of the
// name argument.
func DecodeTape(name string, r io.ReadSeeker) (*Tape, error) {
	tp := &Tape{Name: name}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".wav":
		dec := wav.NewDecoder(r)
		if !dec.IsValidFile() {
			return nil, curated.Errorf(DecodeError, name, "not a valid wav file")
		}

		buf, err := dec.FullPCMBuffer()
		if err != nil {
			return nil, curated.Errorf(DecodeError, name, err)
		}
		floatBuf := buf.AsFloat32Buffer()

		chans := int(dec.NumChans)
		if chans < 1 {
			chans = 1
		}
		tp.Data = make([]float32, 0, len(floatBuf.Data)/chans)
		for i := 0; i < len(floatBuf.Data); i += chans {
			tp.Data = append(tp.Data, floatBuf.Data[i])
		}
		tp.SampleRate = uint64(dec.SampleRate)

	case ".mp3":
		dec, err := mp3.NewDecoder(r)
		if err != nil {
			return nil, curated.Errorf(DecodeError, name, err)
		}

		// the stream is always 16bit little endian with two channels. we
		// only want the left channel
		chunk := make([]byte, 4096)
		for {
			n, err := io.ReadFull(dec, chunk)
			for i := 0; i+1 < n; i += 4 {
				tp.Data = append(tp.Data, float32(int16(uint16(chunk[i])|uint16(chunk[i+1])<<8)))
			}
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			if err != nil {
				return nil, curated.Errorf(DecodeError, name, err)
			}
		}
		tp.SampleRate = uint64(dec.SampleRate())

	default:
		return nil, curated.Errorf(UnsupportedFormat, name)
	}

	if tp.SampleRate == 0 {
		return nil, curated.Errorf(DecodeError, name, "zero sample rate")
	}

	tp.normalise()
	return tp, nil
}

// remove any DC offset and scale the peak to 1. the decoders return values in
// the range of the source bit depth and eight bit wav data is unsigned
func (tp *Tape) normalise() {
	if len(tp.Data) == 0 {
		return
	}

	var sum float64
	for _, v := range tp.Data {
		sum += float64(v)
	}
	mean := float32(sum / float64(len(tp.Data)))

	var peak float32
	for i := range tp.Data {
		tp.Data[i] -= mean
		peak = float32(math.Max(float64(peak), math.Abs(float64(tp.Data[i]))))
	}

	if peak == 0 {
		return
	}
	for i := range tp.Data {
		tp.Data[i] /= peak
	}
}
