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

package rewind

import "github.com/jetsetilly/gophermsx/hardware"

// SetComparison points the comparison to the most recently plumbed entry.
func (r *Rewind) SetComparison() {
	if r.count == 0 {
		return
	}
	r.comparison = r.entry(r.curr)
}

// GetComparison gets a reference to current comparison point. The state
// should not be altered.
func (r *Rewind) GetComparison() *hardware.State {
	return r.comparison
}
