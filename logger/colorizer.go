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

package logger

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	dimRed    = "\033[2;31m"
	normalPen = "\033[0m"
)

// Colorizer applies basic coloring rules to logging output. Coloring is only
// applied if the underlying writer is a terminal.
type Colorizer struct {
	out      io.Writer
	terminal bool
}

// NewColorizer is the preferred method if initialisation for the Colorizer type.
func NewColorizer(out io.Writer) Colorizer {
	c := Colorizer{out: out}
	if f, ok := out.(*os.File); ok {
		c.terminal = term.IsTerminal(int(f.Fd()))
	}
	return c
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (n int, err error) {
	if !c.terminal {
		return c.out.Write(p)
	}

	l := strings.Split(strings.TrimSpace(string(p)), "\n")
	if len(l) == 0 {
		return 0, nil
	}

	// the first line of an entry is always written with the normal pen
	m, err := c.out.Write([]byte(l[0] + "\n"))
	n += m
	if err != nil || len(l) == 1 {
		return n, err
	}

	m, err = c.out.Write([]byte(dimRed))
	n += m
	if err != nil {
		return n, err
	}

	defer func() {
		_, _ = c.out.Write([]byte(normalPen))
	}()

	for _, s := range l[1:] {
		m, err := c.out.Write([]byte(s + "\n"))
		n += m
		if err != nil {
			return n, err
		}
	}

	return n, nil
}
