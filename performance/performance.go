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

package performance

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/gophermsx/govern"
	"github.com/jetsetilly/gophermsx/hardware"
)

// sentinal error returned by Run() loop.
var timedOut = errors.New("performance timed out")

// the number of calls to the continue check function between checks of the
// timer channel
const performanceBrake = 100

// Check the performance of the emulator by running the machine as fast as
// possible for the specified duration. A summary is written to output.
//
// Profiling information will be created as defined by the Profile argument.
func Check(output io.Writer, profile Profile, m *hardware.Machine, duration string) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	startFrame := m.Video.FrameNum()
	startTime := m.Scheduler.CurrentTime()

	runner := func() error {
		// the timer channel signals false when the leadtime has elapsed and
		// true when the measurement period has finished
		timerChan := make(chan bool, 2)

		// a short leadtime allows the rate to settle before measurement begins
		time.AfterFunc(time.Second/2, func() {
			timerChan <- false
			time.AfterFunc(dur, func() {
				timerChan <- true
			})
		})

		brake := 0

		return m.Run(func() (govern.State, error) {
			brake++
			if brake < performanceBrake {
				return govern.Running, nil
			}
			brake = 0

			select {
			case v := <-timerChan:
				if v {
					return govern.Ending, timedOut
				}
				startFrame = m.Video.FrameNum()
				startTime = m.Scheduler.CurrentTime()
			default:
			}
			return govern.Running, nil
		})
	}

	err = RunProfiler(profile, "performance", runner)
	if err != nil && !errors.Is(err, timedOut) {
		return fmt.Errorf("performance: %w", err)
	}

	numFrames := m.Video.FrameNum() - startFrame
	virtual := m.Scheduler.CurrentTime().Sub(startTime).Seconds()
	fps, accuracy := CalcFPS(m.Video.Timing(), numFrames, dur.Seconds())

	fmt.Fprintf(output, "%.2f fps (%d frames in %.2f seconds) %.1f%%\n", fps, numFrames, dur.Seconds(), accuracy)
	fmt.Fprintf(output, "%.2f virtual seconds per second\n", virtual/dur.Seconds())

	return nil
}
