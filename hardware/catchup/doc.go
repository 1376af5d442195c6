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

// Package catchup implements the lazy synchronisation used by every component
// that caches state derived from the passage of virtual time. Rendered video
// lines, generated audio samples and tape positions are all examples of such
// state.
//
// A component keeps a Tracker alongside the cached state. The Tracker records
// the time up to which the cached state is valid. Before the component accepts
// a change that would affect the cached state, or before it hands out the
// cached state, it calls Sync() with the current time. Sync() calls the
// component's replay function to bring the cached state up to date.
//
// The replay function returns the time up to which it has actually brought the
// cached state. This will be less than the requested time if the cached state
// is made up of discrete units (video lines for example) and the requested time
// falls in the middle of a unit. The replay function must never include a
// partial unit.
//
// Sync() is idempotent and guards against reentrant calls from the replay
// function.
package catchup
