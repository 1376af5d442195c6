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

package prefs

// preference keys that are no longer used. they are removed from the prefs
// file the next time it is saved. the value is the key that replaced it, if
// any
var defunct = map[string]string{
	"rewind.freq":       "rewind.snapshotFreq",
	"audio.buffersize":  "audio.bufferlength",
	"video.interlace":   "",
	"hardware.randpins": "",
}

// returns true if key is in list of defunct keys.
func isDefunct(key string) bool {
	_, ok := defunct[key]
	return ok
}
