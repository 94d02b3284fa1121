package stopwatch

import (
	"fmt"
	"time"
)

// Elapsed decomposes now − ref into hours and minutes-within-hour.
// The difference is truncated to whole seconds, then floor-divided: a
// reference in the future gives negative hours with minutes staying in
// [0, 60). Five minutes in the future is (-1, 55), not (0, -5).
func Elapsed(now, ref time.Time) (hours, minutes int64) {
	total := int64(now.Sub(ref) / time.Second)
	hours = floorDiv(total, 60*60)
	remaining := total - hours*60*60
	minutes = remaining / 60
	return hours, minutes
}

// ElapsedMinutes returns the whole-second-truncated difference in minutes,
// the unit the indicator thresholds are expressed in.
func ElapsedMinutes(now, ref time.Time) float64 {
	return float64(int64(now.Sub(ref)/time.Second)) / 60
}

// Format renders hours and minutes as the display string. Hours are
// unbounded, minutes zero-padded to two digits.
func Format(hours, minutes int64) string {
	return fmt.Sprintf("%d:%02d", hours, minutes)
}

// FormatElapsed is Elapsed composed with Format.
func FormatElapsed(now, ref time.Time) string {
	return Format(Elapsed(now, ref))
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
