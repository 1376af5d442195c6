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

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/jetsetilly/gophermsx/curated"
	"github.com/jetsetilly/gophermsx/paths"
)

// DefaultPrefsFile is the default filename of the global preferences file.
const DefaultPrefsFile = "preferences"

// WarningBoilerPlate is inserted at the beginning of a preferences file.
const WarningBoilerPlate = "*** do not edit this file by hand ***"

// Sentinal error patterns returned by the Disk type.
const (
	NoPrefsFile  = "prefs: no prefs file (%s)"
	DuplicateKey = "prefs: duplicate key (%s)"
	InvalidKey   = "prefs: invalid key (%s)"
	LoadError    = "prefs: load: %s: %v"
)

// the string used to separate key from value in the prefs file
const separator = " :: "

// Disk represents preference values as stored on disk. More than one Disk
// instance can share the same file. Saving from one Disk instance does not
// affect the entries belonging to the other instances.
type Disk struct {
	path    string
	entries map[string]pref
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	if path == "" {
		return nil, fmt.Errorf("prefs: no path specified")
	}
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}, nil
}

// keys returns the keys of the Disk entries in sorted order.
func (dsk *Disk) keys() []string {
	k := make([]string, 0, len(dsk.entries))
	for key := range dsk.entries {
		k = append(k, key)
	}
	sort.Strings(k)
	return k
}

func (dsk *Disk) String() string {
	s := strings.Builder{}
	for _, key := range dsk.keys() {
		s.WriteString(fmt.Sprintf("%s%s%s\n", key, separator, dsk.entries[key].String()))
	}
	return s.String()
}

// Add preference value to the Disk instance. The key must be unique and must
// not contain the "::" sequence.
func (dsk *Disk) Add(key string, p pref) error {
	key = strings.TrimSpace(key)
	if key == "" || strings.Contains(key, "::") {
		return curated.Errorf(InvalidKey, key)
	}
	if _, ok := dsk.entries[key]; ok {
		return curated.Errorf(DuplicateKey, key)
	}
	dsk.entries[key] = p
	return nil
}

// Reset all preference values to their zero value. Command line values will
// be applied after the reset.
func (dsk *Disk) Reset() error {
	for _, key := range dsk.keys() {
		if err := dsk.entries[key].Reset(); err != nil {
			return err
		}
	}
	return dsk.commandLine()
}

// commandLine applies any values on the command line stack that match a key
// in the Disk instance.
func (dsk *Disk) commandLine() error {
	for _, key := range dsk.keys() {
		if ok, v := GetCommandLinePref(key); ok {
			if err := dsk.entries[key].Set(v); err != nil {
				return fmt.Errorf("prefs: command line: %s: %w", key, err)
			}
		}
	}
	return nil
}

// readFile returns the key/value pairs in the prefs file. a missing file
// results in an empty map and the NoPrefsFile error
func (dsk *Disk) readFile() (map[string]string, error) {
	kv := make(map[string]string)

	f, err := os.Open(dsk.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return kv, curated.Errorf(NoPrefsFile, dsk.path)
		}
		return kv, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		l := scanner.Text()
		if l == WarningBoilerPlate {
			continue
		}
		k, v, ok := strings.Cut(l, separator)
		if !ok {
			continue
		}
		kv[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}

	return kv, scanner.Err()
}

// Load preference values from disk. Values on the command line stack take
// precedence over values loaded from disk.
//
// Returns a NoPrefsFile error if the prefs file does not exist. The command
// line values will have been applied in that case.
func (dsk *Disk) Load() error {
	kv, err := dsk.readFile()
	if err != nil {
		if curated.Is(err, NoPrefsFile) {
			if clErr := dsk.commandLine(); clErr != nil {
				return clErr
			}
		}
		return err
	}

	for _, key := range dsk.keys() {
		if v, ok := kv[key]; ok {
			if err := dsk.entries[key].Set(v); err != nil {
				return curated.Errorf(LoadError, key, err)
			}
		}
	}

	return dsk.commandLine()
}

// Save current preference values to disk. Entries in the prefs file that do
// not belong to the Disk instance are preserved, unless they are defunct.
func (dsk *Disk) Save() error {
	kv, err := dsk.readFile()
	if err != nil && !curated.Is(err, NoPrefsFile) {
		return err
	}

	for key, p := range dsk.entries {
		kv[key] = p.String()
	}

	keys := make([]string, 0, len(kv))
	for key := range kv {
		if !isDefunct(key) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	if err := paths.CreatePath(dsk.path); err != nil {
		return err
	}

	f, err := os.Create(dsk.path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, WarningBoilerPlate)
	for _, key := range keys {
		fmt.Fprintf(w, "%s%s%s\n", key, separator, kv[key])
	}

	if err := w.Flush(); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
