package indicator

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/sweeney/stopwatch-display/internal/led"
)

func at(hour int) time.Time {
	return time.Date(2021, 4, 19, hour, 30, 0, 0, time.FixedZone("EDT", -4*60*60))
}

func TestDecide(t *testing.T) {
	th := Thresholds{AlertMinutes: 150, AlertEarliestHour: 8, BacklightBrightness: 0.1}

	tests := []struct {
		name    string
		th      Thresholds
		now     time.Time
		minutes float64
		want    State
	}{
		{"alert when over threshold", th, at(12), 150, StateAlert},
		{"backlight when under threshold", th, at(12), 149.9, StateBacklight},
		{"alert gated before earliest hour", th, at(7), 500, StateBacklight},
		{"alert at exactly earliest hour", th, at(8), 150, StateAlert},
		{"negative threshold disables alert",
			Thresholds{AlertMinutes: -1, AlertEarliestHour: 0, BacklightBrightness: 0.1},
			at(12), 100000, StateBacklight},
		{"hour 24 disables alert",
			Thresholds{AlertMinutes: 0, AlertEarliestHour: 24, BacklightBrightness: 0},
			at(23), 100000, StateOff},
		{"zero brightness disables backlight",
			Thresholds{AlertMinutes: -1, AlertEarliestHour: 24, BacklightBrightness: 0.0},
			at(12), 100, StateOff},
		{"negative elapsed never alerts", th, at(12), -5, StateBacklight},
		{"zero threshold alerts immediately",
			Thresholds{AlertMinutes: 0, AlertEarliestHour: 0, BacklightBrightness: 0},
			at(12), 0, StateAlert},
	}

	for _, tt := range tests {
		if got := Decide(tt.th, tt.now, tt.minutes); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.name, tt.want, got)
		}
	}
}

// When both ALERT and BACKLIGHT conditions hold, ALERT wins.
func TestDecidePriority(t *testing.T) {
	th := Thresholds{AlertMinutes: 10, AlertEarliestHour: 0, BacklightBrightness: 0.5}
	if got := Decide(th, at(12), 20); got != StateAlert {
		t.Errorf("expected ALERT over BACKLIGHT, got %s", got)
	}
}

func TestCheckAlertTransition(t *testing.T) {
	strip := led.NewFakeStrip()
	c := New(Thresholds{AlertMinutes: 150, AlertEarliestHour: 8, BacklightBrightness: 0}, strip, zap.NewNop().Sugar())

	c.Check(at(12), 200)
	if c.State() != StateAlert {
		t.Fatalf("expected ALERT, got %s", c.State())
	}
	if !strip.Enabled || strip.Brightness != 1.0 || strip.Color != led.Green {
		t.Errorf("expected enabled green at full brightness, got %+v", strip)
	}
	if len(strip.Ops) != 3 {
		t.Errorf("expected 3 hardware ops for the transition, got %d", len(strip.Ops))
	}
}

func TestCheckBacklightTransition(t *testing.T) {
	strip := led.NewFakeStrip()
	c := New(Thresholds{AlertMinutes: -1, AlertEarliestHour: 24, BacklightBrightness: 0.1}, strip, zap.NewNop().Sugar())

	c.Check(at(12), 0)
	if c.State() != StateBacklight {
		t.Fatalf("expected BACKLIGHT, got %s", c.State())
	}
	if !strip.Enabled || strip.Brightness != 0.1 || strip.Color != led.White {
		t.Errorf("expected enabled white at configured brightness, got %+v", strip)
	}
}

func TestCheckTransitionSuppression(t *testing.T) {
	strip := led.NewFakeStrip()
	th := Thresholds{AlertMinutes: 150, AlertEarliestHour: 8, BacklightBrightness: 0}
	c := New(th, strip, zap.NewNop().Sugar())

	// The controller starts OFF and inputs keep it OFF: no hardware writes.
	for i := 0; i < 5; i++ {
		c.Check(at(12), 10)
	}
	if len(strip.Ops) != 0 {
		t.Fatalf("expected no hardware ops while staying OFF, got %d", len(strip.Ops))
	}

	// Into ALERT once, then repeated checks stay silent.
	c.Check(at(12), 200)
	ops := len(strip.Ops)
	for i := 0; i < 5; i++ {
		c.Check(at(12), 201)
	}
	if len(strip.Ops) != ops {
		t.Errorf("expected no ops for repeated ALERT decisions, got %d extra", len(strip.Ops)-ops)
	}

	// Back to OFF writes the disable exactly once.
	c.Check(at(12), 10)
	c.Check(at(12), 10)
	if len(strip.Ops) != ops+1 {
		t.Errorf("expected exactly one disable op, got %d extra", len(strip.Ops)-ops)
	}
	if strip.Enabled {
		t.Error("strip should be disabled")
	}
}

func TestCheckAllTransitionsAllowed(t *testing.T) {
	strip := led.NewFakeStrip()
	th := Thresholds{AlertMinutes: 150, AlertEarliestHour: 0, BacklightBrightness: 0.1}
	c := New(th, strip, zap.NewNop().Sugar())

	c.Check(at(12), 0)
	if c.State() != StateBacklight {
		t.Fatalf("expected BACKLIGHT, got %s", c.State())
	}
	c.Check(at(12), 200)
	if c.State() != StateAlert {
		t.Fatalf("expected ALERT from BACKLIGHT, got %s", c.State())
	}
	c.Check(at(12), 0)
	if c.State() != StateBacklight {
		t.Fatalf("expected BACKLIGHT from ALERT, got %s", c.State())
	}
}

func TestCheckHardwareFailureRetries(t *testing.T) {
	strip := led.NewFakeStrip()
	strip.Err = errors.New("spi gone")
	th := Thresholds{AlertMinutes: 0, AlertEarliestHour: 0, BacklightBrightness: 0}
	c := New(th, strip, zap.NewNop().Sugar())

	c.Check(at(12), 100)
	if c.State() != StateOff {
		t.Fatalf("failed transition should not change recorded state, got %s", c.State())
	}

	// Next check retries and succeeds.
	strip.Err = nil
	c.Check(at(12), 100)
	if c.State() != StateAlert {
		t.Errorf("expected ALERT after retry, got %s", c.State())
	}
	if !strip.Enabled || strip.Color != led.Green {
		t.Errorf("expected enabled green strip, got %+v", strip)
	}
}
