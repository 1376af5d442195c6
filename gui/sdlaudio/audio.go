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

// Package sdlaudio plays the emulation's audio output through an SDL audio
// device.
package sdlaudio

import (
	"encoding/binary"

	"github.com/jetsetilly/gophermsx/curated"
	"github.com/jetsetilly/gophermsx/logger"
	"github.com/veandco/go-sdl2/sdl"
)

// Sentinal error returned by the Audio type.
const AudioError = "sdlaudio: %v"

// the number of buffers that can be queued before incoming audio is
// discarded. too many and the audio lags behind the video. too few and there
// will be gaps in the audio
const maxQueuedBuffers = 4

// Audio outputs sound using SDL. It implements the sound.AudioMixer interface.
type Audio struct {
	id   sdl.AudioDeviceID
	spec sdl.AudioSpec

	// samples converted to bytes for SDL
	buffer []uint8

	// number of buffers discarded because the queue was full
	dropped int
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio(sampleRate int, bufferLength int) (*Audio, error) {
	if err := sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
		return nil, curated.Errorf(AudioError, err)
	}

	aud := &Audio{}

	spec := &sdl.AudioSpec{
		Freq:     int32(sampleRate),
		Format:   sdl.AUDIO_S16LSB,
		Channels: 1,
		Samples:  uint16(bufferLength),
	}

	var err error
	aud.id, err = sdl.OpenAudioDevice("", false, spec, &aud.spec, 0)
	if err != nil {
		return nil, curated.Errorf(AudioError, err)
	}

	if aud.spec.Freq != spec.Freq {
		logger.Logf(logger.Allow, "sdlaudio", "device frequency is %d not %d", aud.spec.Freq, spec.Freq)
	}

	sdl.PauseAudioDevice(aud.id, false)

	return aud, nil
}

// Dropped returns the number of buffers that have been discarded.
func (aud *Audio) Dropped() int {
	return aud.dropped
}

// SetAudio implements the sound.AudioMixer interface.
func (aud *Audio) SetAudio(buffer []int16) error {
	aud.buffer = aud.buffer[:0]
	for _, s := range buffer {
		aud.buffer = binary.LittleEndian.AppendUint16(aud.buffer, uint16(s))
	}

	if sdl.GetQueuedAudioSize(aud.id) > uint32(len(aud.buffer)*maxQueuedBuffers) {
		aud.dropped++
		return nil
	}

	if err := sdl.QueueAudio(aud.id, aud.buffer); err != nil {
		return curated.Errorf(AudioError, err)
	}

	return nil
}

// EndMixing implements the sound.AudioMixer interface.
func (aud *Audio) EndMixing() error {
	sdl.ClearQueuedAudio(aud.id)
	sdl.CloseAudioDevice(aud.id)
	sdl.QuitSubSystem(sdl.INIT_AUDIO)
	if aud.dropped > 0 {
		logger.Logf(logger.Allow, "sdlaudio", "%d audio buffers dropped", aud.dropped)
	}
	return nil
}
