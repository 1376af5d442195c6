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

// Package digest is used to create SHA-1 hashes of the emulation's video and
// audio output. Each hash is chained to the previous hash so that a single
// value identifies the entire output since the last call to ResetDigest().
//
// Useful for regression testing and for checking that different rendering
// strategies produce the same output.
package digest

// Digest implementations compute a hash of the emulation's output.
type Digest interface {
	Hash() string
	ResetDigest()
}
