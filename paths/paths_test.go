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

package paths_test

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/jetsetilly/gophermsx/paths"
	"github.com/jetsetilly/gophermsx/test"
)

func TestResourcePath(t *testing.T) {
	pth, err := paths.ResourcePath("foo/bar", "baz")
	if err != nil {
		t.Skipf("no config directory: %v", err)
	}
	test.ExpectSuccess(t, strings.HasSuffix(pth, filepath.Join("foo", "bar", "baz")))

	a, _ := paths.ResourcePath("", "")
	b, _ := paths.ResourcePath("", "baz")
	test.ExpectEquality(t, filepath.Join(a, "baz"), b)
}

func TestCreatePath(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "a", "b", "file")
	test.ExpectSuccess(t, paths.CreatePath(pth))
	info, err := os.Stat(filepath.Dir(pth))
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, info.IsDir())
}

func TestUniqueFilename(t *testing.T) {
	fn := paths.UniqueFilename("screenshot", "pac")
	test.ExpectSuccess(t, regexp.MustCompile(`^screenshot_pac_\d{8}_\d{6}$`).MatchString(fn))

	fn = paths.UniqueFilename("screenshot", " ")
	test.ExpectSuccess(t, regexp.MustCompile(`^screenshot_\d{8}_\d{6}$`).MatchString(fn))
}
