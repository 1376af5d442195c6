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

// Package modalflag wraps the flag package so that a program can have modes,
// each mode with its own set of flags. For example:
//
//	gophermsx run -frames 100
//	gophermsx digest -frames 60 -script boot.txt
//
// Arguments are supplied once with NewArgs(). Each layer of the command line
// is then described with NewMode(), AddSubModes() and the Add*() flag
// functions, and parsed with Parse(). The selected mode is returned by Mode().
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "DIGEST")
//	if p, _ := md.Parse(); p != modalflag.ParseContinue {
//		return
//	}
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		frames := md.AddInt("frames", 0, "number of frames")
//		...
//	}
//
// The first sub-mode is the default and is selected if the next argument is
// not the name of a sub-mode. Sub-mode names are case insensitive.
package modalflag
