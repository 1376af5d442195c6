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

package otoaudio

import (
	"encoding/binary"
	"sync"
)

// stream is a fixed size FIFO of samples. it implements the io.Reader
// interface and is safe to push to and read from in different goroutines
type stream struct {
	crit sync.Mutex

	samples []int16
	head    int
	count   int

	// the last sample read. used to pad the stream on underrun
	last int16

	underrun int
	overrun  int
}

func newStream(size int) *stream {
	return &stream{
		samples: make([]int16, size),
	}
}

func (s *stream) push(buffer []int16) {
	s.crit.Lock()
	defer s.crit.Unlock()

	for _, v := range buffer {
		if s.count == len(s.samples) {
			s.head = (s.head + 1) % len(s.samples)
			s.count--
			s.overrun++
		}
		s.samples[(s.head+s.count)%len(s.samples)] = v
		s.count++
	}
}

// Read implements the io.Reader interface. it never blocks and always fills p
// (rounded down to a whole number of samples)
func (s *stream) Read(p []byte) (int, error) {
	s.crit.Lock()
	defer s.crit.Unlock()

	n := len(p) / 2
	for i := range n {
		if s.count > 0 {
			s.last = s.samples[s.head]
			s.head = (s.head + 1) % len(s.samples)
			s.count--
		} else {
			s.underrun++
		}
		binary.LittleEndian.PutUint16(p[i*2:], uint16(s.last))
	}

	return n * 2, nil
}

func (s *stream) counts() (underrun int, overrun int) {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.underrun, s.overrun
}
