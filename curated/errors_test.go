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

package curated_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/gophermsx/curated"
	"github.com/jetsetilly/gophermsx/test"
)

const testPattern = "test: %v"
const testPatternB = "multimem: %s"

func TestDuplicateErrors(t *testing.T) {
	e := curated.Errorf(testPattern, "foo")
	test.ExpectEquality(t, e.Error(), "test: foo")

	// packing errors of the same type next to each other causes
	// one of them to be dropped
	f := curated.Errorf(testPattern, e)
	test.ExpectEquality(t, f.Error(), "test: foo")
}

func TestIs(t *testing.T) {
	e := curated.Errorf(testPattern, "foo")
	test.ExpectSuccess(t, curated.Is(e, testPattern))
	test.ExpectFailure(t, curated.Is(e, testPatternB))

	f := curated.Errorf(testPatternB, e)
	test.ExpectFailure(t, curated.Is(f, testPattern))
	test.ExpectSuccess(t, curated.Is(f, testPatternB))
	test.ExpectSuccess(t, curated.Has(f, testPattern))
	test.ExpectSuccess(t, curated.Has(f, testPatternB))

	test.ExpectFailure(t, curated.Is(nil, testPattern))
	test.ExpectFailure(t, curated.Has(errors.New("plain"), testPattern))
}

func TestIsAny(t *testing.T) {
	test.ExpectSuccess(t, curated.IsAny(curated.Errorf("foo")))
	test.ExpectFailure(t, curated.IsAny(errors.New("foo")))
	test.ExpectFailure(t, curated.IsAny(nil))
}

func TestUnwrap(t *testing.T) {
	sentinel := errors.New("sentinel")
	e := curated.Errorf(testPattern, sentinel)
	test.ExpectSuccess(t, errors.Is(e, sentinel))
	test.ExpectEquality(t, e.Error(), "test: sentinel")
}
