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

package paths

import (
	"os"
	"path/filepath"
)

// the base path for all resources. note that we don't use this value directly
// except in the getBasePath() function. that function should be used instead.
const baseResourcePath = ".gophermsx"

// the name of the directory in the user's config directory
const configDir = "gophermsx"

// ResourcePath returns the resource string (representing the resource to be
// loaded) prepended with operating system specific details.
//
// Both arguments can be empty.
func ResourcePath(subPth string, file string) (string, error) {
	base, err := getBasePath()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, subPth, file), nil
}

// CreatePath makes sure that the directory part of the path exists.
func CreatePath(pth string) error {
	return os.MkdirAll(filepath.Dir(pth), 0o700)
}

// getBasePath() returns baseResourcePath if it is present in the current
// directory, otherwise it returns the path to the gophermsx directory in the
// user's config directory.
func getBasePath() (string, error) {
	if _, err := os.Stat(baseResourcePath); err == nil {
		return baseResourcePath, nil
	}

	cnf, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(cnf, configDir), nil
}
