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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface and are created with the
// Errorf() function, which takes a formatting pattern and placeholder values
// in the same way as fmt.Errorf().
//
// The pattern is what identifies a curated error. Packages that want callers
// to be able to recognise an error export the pattern as a constant:
//
//	const OrderingViolation = "scheduler: sync point for %s at %v is before current time %v"
//
//	err := curated.Errorf(OrderingViolation, name, t, now)
//
//	if curated.Is(err, OrderingViolation) {
//		...
//	}
//
// Is() only looks at the outermost error. Has() looks for the pattern
// anywhere in the chain of curated errors:
//
//	f := curated.Errorf("machine: %v", err)
//	curated.Has(f, scheduler.OrderingViolation) // true
//	curated.Is(f, scheduler.OrderingViolation)  // false
//
// The Error() implementation normalises the message so that adjacent
// duplicate parts are removed. Parts are sub-strings separated by ": ". This
// means that code can wrap an error without worrying whether the caller has
// already added the same context:
//
//	memory: memory: address not mapped
//
// is reported as
//
//	memory: address not mapped
//
// Curated errors also implement Unwrap() for the first error value, so they
// cooperate with errors.Is() and errors.As() from the standard library.
package curated
