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

package shadow

import (
	"fmt"

	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/memory/bus"
	"github.com/jetsetilly/gophermsx/hardware/memory/ram"
	"github.com/jetsetilly/gophermsx/hardware/scheduler"
	"github.com/jetsetilly/gophermsx/logger"
)

// sync point tags
const (
	tagSwitchOff = iota
)

// Shadow implements the bus.Device and scheduler.Schedulable interfaces.
type Shadow struct {
	scheduler.Base

	inv   bus.Invalidator
	perm  logger.Permission
	boot  []uint8
	ram   *ram.RAM
	delay clocks.Duration

	overlay bool
}

// NewShadow is the preferred method of initialisation for the Shadow type.
// The boot ROM overlays the beginning of the RAM for the specified duration
// after every reset.
func NewShadow(sched *scheduler.Scheduler, inv bus.Invalidator, perm logger.Permission, boot []uint8, r *ram.RAM, delay clocks.Duration) (*Shadow, error) {
	if len(boot) > r.Size() {
		return nil, fmt.Errorf("shadow: boot rom (%d bytes) larger than ram (%d bytes)", len(boot), r.Size())
	}
	sh := &Shadow{
		inv:   inv,
		perm:  perm,
		boot:  make([]uint8, len(boot)),
		ram:   r,
		delay: delay,
	}
	copy(sh.boot, boot)
	sh.Attach(sched, sh)
	return sh, nil
}

// SchedName implements the scheduler.Schedulable interface.
func (sh *Shadow) SchedName() string {
	return "shadow"
}

// ExecuteUntil implements the scheduler.Schedulable interface.
func (sh *Shadow) ExecuteUntil(_ clocks.Time, tag int) error {
	switch tag {
	case tagSwitchOff:
		sh.overlay = false
		sh.inv.InvalidateCache(sh.ram.Base(), sh.ram.Size())
		logger.Log(sh.perm, "shadow", "boot rom switched off")
	}
	return nil
}

// Reset implements the bus.Resetter interface. The RAM is not reset.
func (sh *Shadow) Reset(time clocks.Time) {
	sh.overlay = true
	sh.inv.InvalidateCache(sh.ram.Base(), sh.ram.Size())
	if err := sh.SetSyncPoint(time.Add(sh.delay), tagSwitchOff); err != nil {
		logger.Log(sh.perm, "shadow", err)
	}
}

// Close implements the bus.Closer interface.
func (sh *Shadow) Close() error {
	sh.Detach()
	return nil
}

// Overlay returns true if the boot ROM is currently visible.
func (sh *Shadow) Overlay() bool {
	return sh.overlay
}

// Snapshot returns the state of the overlay. The pending sync point is part of
// the scheduler state.
func (sh *Shadow) Snapshot() bool {
	return sh.overlay
}

// Plumb restores the state of the overlay.
func (sh *Shadow) Plumb(overlay bool) {
	sh.overlay = overlay
	sh.inv.InvalidateCache(sh.ram.Base(), sh.ram.Size())
}

// Label implements the bus.Device interface.
func (sh *Shadow) Label() string {
	return fmt.Sprintf("shadow(%s)", sh.ram.Label())
}

func (sh *Shadow) inBoot(address uint16) (int, bool) {
	o := int(address) - int(sh.ram.Base())
	return o, sh.overlay && o >= 0 && o < len(sh.boot)
}

// Read implements the bus.Device interface.
func (sh *Shadow) Read(address uint16, t clocks.Time) (uint8, error) {
	if o, ok := sh.inBoot(address); ok {
		return sh.boot[o], nil
	}
	return sh.ram.Read(address, t)
}

// Write implements the bus.Device interface.
func (sh *Shadow) Write(address uint16, data uint8, t clocks.Time) error {
	return sh.ram.Write(address, data, t)
}

// Peek implements the bus.Device interface.
func (sh *Shadow) Peek(address uint16, t clocks.Time) (uint8, error) {
	return sh.Read(address, t)
}

// ReadCacheLine implements the bus.Device interface.
func (sh *Shadow) ReadCacheLine(start uint16) []uint8 {
	if o, ok := sh.inBoot(start); ok {
		if o+bus.CacheLineSize > len(sh.boot) {
			return nil
		}
		return sh.boot[o : o+bus.CacheLineSize]
	}
	return sh.ram.ReadCacheLine(start)
}

// WriteCacheLine implements the bus.Device interface.
func (sh *Shadow) WriteCacheLine(start uint16) []uint8 {
	return sh.ram.WriteCacheLine(start)
}
