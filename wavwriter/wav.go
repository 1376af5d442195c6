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

// Package wavwriter allows writing of audio data to disk as a WAV file. Audio
// data is written as it arrives and the WAV header is finalised when mixing
// ends.
package wavwriter

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/gophermsx/curated"
	"github.com/jetsetilly/gophermsx/logger"
)

// Sentinal error returned by WavWriter.
const WavWriterError = "wavwriter: %v"

const (
	bitDepth    = 16
	numChannels = 1
	pcmFormat   = 1
)

// WavWriter implements the sound.AudioMixer interface.
type WavWriter struct {
	filename string
	f        *os.File
	enc      *wav.Encoder
	buffer   *audio.IntBuffer
	samples  int
}

// New is the preferred method of initialisation for the WavWriter type.
func New(filename string, sampleRate int) (*WavWriter, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, curated.Errorf(WavWriterError, err)
	}

	aw := &WavWriter{
		filename: filename,
		f:        f,
		enc:      wav.NewEncoder(f, sampleRate, bitDepth, numChannels, pcmFormat),
		buffer: &audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: numChannels,
				SampleRate:  sampleRate,
			},
			SourceBitDepth: bitDepth,
		},
	}

	return aw, nil
}

func (aw *WavWriter) String() string {
	return aw.filename
}

// Samples returns the number of samples written so far.
func (aw *WavWriter) Samples() int {
	return aw.samples
}

// SetAudio implements the sound.AudioMixer interface.
func (aw *WavWriter) SetAudio(buffer []int16) error {
	if aw.enc == nil {
		return curated.Errorf(WavWriterError, "writer has been closed")
	}

	aw.buffer.Data = aw.buffer.Data[:0]
	for _, s := range buffer {
		aw.buffer.Data = append(aw.buffer.Data, int(s))
	}
	if err := aw.enc.Write(aw.buffer); err != nil {
		return curated.Errorf(WavWriterError, err)
	}
	aw.samples += len(buffer)

	return nil
}

// EndMixing implements the sound.AudioMixer interface.
func (aw *WavWriter) EndMixing() (rerr error) {
	if aw.enc == nil {
		return nil
	}

	defer func() {
		err := aw.f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf(WavWriterError, err)
		}
	}()

	err := aw.enc.Close()
	aw.enc = nil
	if err != nil {
		return curated.Errorf(WavWriterError, err)
	}

	logger.Logf(logger.Allow, "wavwriter", "%d samples written to %s", aw.samples, aw.filename)

	return nil
}
