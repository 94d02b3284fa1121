// Package clock provides the time source for the display.
// All elapsed-time math runs against a Clock so tests can pin "now"
// to an exact second.
package clock

import "time"

// Clock returns the current time in the display's configured timezone.
type Clock interface {
	Now() time.Time
}

// System is a Clock backed by the system clock, shifted to a fixed
// UTC offset. The device has no tz database; the offset comes from
// configuration, as it did on the original hardware.
type System struct {
	loc *time.Location
}

// NewSystem creates a System clock for the named zone at the given
// fixed offset in hours from UTC.
func NewSystem(name string, offsetHours int) *System {
	return &System{loc: time.FixedZone(name, offsetHours*60*60)}
}

// Now returns the current time in the configured zone.
func (s *System) Now() time.Time {
	return time.Now().In(s.loc)
}

// Location returns the fixed zone the clock reports in.
func (s *System) Location() *time.Location {
	return s.loc
}
