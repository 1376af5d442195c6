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

// Package prefs facilitates the storage of preferential values in the
// gophermsx system. It is a way of storing key/value pairs in a single file
// on disk.
//
// The Bool, Int, Float and String types are used to store the live value of a
// preference. The types are safe to use from more than one goroutine. The
// Generic type can be used for preference values that are built from more
// than one live value.
//
// Preferences are collated by the Disk type, which saves and loads the values
// to and from a file. Each line in the file is of the form:
//
//	key :: value
//
// Preference values can also be specified on the command line, in which case
// the value on the command line takes precedence over the value in the file.
// See PushCommandLineStack() for details.
package prefs
