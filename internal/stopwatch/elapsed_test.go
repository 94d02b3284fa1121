package stopwatch

import (
	"testing"
	"time"
)

var edt = time.FixedZone("EDT", -4*60*60)

func TestElapsedFormatting(t *testing.T) {
	ref := time.Date(2021, 4, 19, 10, 28, 42, 0, edt)
	now := time.Date(2021, 4, 19, 12, 29, 0, 0, edt)

	h, m := Elapsed(now, ref)
	if h != 2 || m != 0 {
		t.Errorf("expected 2h00m, got %dh%02dm", h, m)
	}
	if got := FormatElapsed(now, ref); got != "2:00" {
		t.Errorf("expected \"2:00\", got %q", got)
	}
}

func TestElapsedTable(t *testing.T) {
	base := time.Date(2021, 4, 19, 12, 0, 0, 0, edt)
	tests := []struct {
		name  string
		delta time.Duration
		want  string
	}{
		{"zero", 0, "0:00"},
		{"under a minute", 59 * time.Second, "0:00"},
		{"one minute", 60 * time.Second, "0:01"},
		{"just under an hour", 59*time.Minute + 59*time.Second, "0:59"},
		{"one hour", time.Hour, "1:00"},
		{"over a day", 26*time.Hour + 5*time.Minute, "26:05"},
	}

	for _, tt := range tests {
		if got := FormatElapsed(base.Add(tt.delta), base); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

// A reference in the future floor-divides: hours go negative, minutes stay
// in [0, 60). This is the pinned boundary behavior, not an accident.
func TestElapsedNegative(t *testing.T) {
	now := time.Date(2021, 4, 19, 12, 0, 0, 0, edt)
	ref := now.Add(5 * time.Minute)

	h, m := Elapsed(now, ref)
	if h != -1 || m != 55 {
		t.Errorf("expected (-1, 55) for reference 5m in the future, got (%d, %d)", h, m)
	}
	if got := FormatElapsed(now, ref); got != "-1:55" {
		t.Errorf("expected \"-1:55\", got %q", got)
	}

	// Sub-second future reference truncates to zero seconds elapsed.
	h, m = Elapsed(now, now.Add(500*time.Millisecond))
	if h != 0 || m != 0 {
		t.Errorf("expected (0, 0) for sub-second future reference, got (%d, %d)", h, m)
	}

	// Exactly one hour in the future.
	h, m = Elapsed(now, now.Add(time.Hour))
	if h != -1 || m != 0 {
		t.Errorf("expected (-1, 0) for reference 1h in the future, got (%d, %d)", h, m)
	}
}

func TestElapsedMinutes(t *testing.T) {
	now := time.Date(2021, 4, 19, 12, 0, 0, 0, edt)

	if got := ElapsedMinutes(now, now.Add(-150*time.Minute)); got != 150 {
		t.Errorf("expected 150 minutes, got %v", got)
	}
	if got := ElapsedMinutes(now, now.Add(-90*time.Second)); got != 1.5 {
		t.Errorf("expected 1.5 minutes, got %v", got)
	}
	if got := ElapsedMinutes(now, now.Add(5*time.Minute)); got != -5 {
		t.Errorf("expected -5 minutes, got %v", got)
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct {
		a, b, want int64
	}{
		{7, 2, 3},
		{-7, 2, -4},
		{6, 3, 2},
		{-6, 3, -2},
		{0, 5, 0},
		{-1, 3600, -1},
	}
	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("floorDiv(%d, %d): expected %d, got %d", tt.a, tt.b, tt.want, got)
		}
	}
}
