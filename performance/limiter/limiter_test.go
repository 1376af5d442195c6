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

package limiter_test

import (
	"testing"
	"time"

	"github.com/jetsetilly/gophermsx/performance/limiter"
	"github.com/jetsetilly/gophermsx/test"
)

func TestLimiter(t *testing.T) {
	lim := limiter.NewLimiter(100)
	defer lim.Stop()

	start := time.Now()
	for range 21 {
		lim.Wait()
	}
	elapsed := time.Since(start)

	// twenty periods of 10ms. generous upper bound for busy machines
	test.ExpectSuccess(t, elapsed >= 190*time.Millisecond, elapsed)
	test.ExpectSuccess(t, elapsed < 2*time.Second, elapsed)
}
