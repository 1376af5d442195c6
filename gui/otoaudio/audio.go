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

// Package otoaudio plays the emulation's audio output with the oto library.
//
// The audio device pulls samples from a stream on its own goroutine. The
// emulation pushes samples onto the stream with SetAudio(). If the emulation
// falls behind the stream is padded with the most recent sample value. If the
// emulation runs ahead the oldest samples are discarded.
package otoaudio

import (
	"github.com/ebitengine/oto/v3"
	"github.com/jetsetilly/gophermsx/curated"
	"github.com/jetsetilly/gophermsx/logger"
)

// Sentinal error returned by the Audio type.
const AudioError = "otoaudio: %v"

// Audio outputs sound using oto. It implements the sound.AudioMixer interface.
type Audio struct {
	ctx    *oto.Context
	player *oto.Player
	stream *stream
}

// NewAudio is the preferred method of initialisation for the Audio type. Only
// one Audio instance can exist in a program.
func NewAudio(sampleRate int, bufferLength int) (*Audio, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, curated.Errorf(AudioError, err)
	}
	<-ready

	aud := &Audio{
		ctx:    ctx,
		stream: newStream(bufferLength * maxQueuedBuffers),
	}
	aud.player = ctx.NewPlayer(aud.stream)
	aud.player.Play()

	return aud, nil
}

// the maximum number of buffers that are held in the stream
const maxQueuedBuffers = 4

// SetAudio implements the sound.AudioMixer interface.
func (aud *Audio) SetAudio(buffer []int16) error {
	aud.stream.push(buffer)
	return nil
}

// EndMixing implements the sound.AudioMixer interface.
func (aud *Audio) EndMixing() error {
	under, over := aud.stream.counts()
	if under > 0 || over > 0 {
		logger.Logf(logger.Allow, "otoaudio", "%d samples padded, %d samples discarded", under, over)
	}

	if err := aud.player.Close(); err != nil {
		return curated.Errorf(AudioError, err)
	}
	return nil
}
