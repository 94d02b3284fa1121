// Package indicator decides the front light state from elapsed time and
// time of day, and applies hardware changes only on state transitions.
// The decision itself is a pure function of the thresholds and inputs.
package indicator

import (
	"time"

	"go.uber.org/zap"

	"github.com/sweeney/stopwatch-display/internal/led"
)

// State is the current physical light mode. Exactly one is active.
type State string

const (
	StateOff       State = "OFF"
	StateAlert     State = "ALERT"
	StateBacklight State = "BACKLIGHT"
)

// Thresholds configure the decision. Immutable after startup.
type Thresholds struct {
	// AlertMinutes is the elapsed-minutes threshold for ALERT.
	// Negative disables ALERT entirely.
	AlertMinutes int

	// AlertEarliestHour suppresses ALERT before this hour of the day
	// (0-23). 24 makes the condition unsatisfiable, disabling ALERT.
	AlertEarliestHour int

	// BacklightBrightness is the BACKLIGHT level. 0.0 disables BACKLIGHT.
	BacklightBrightness float64
}

// Decide returns the desired state for the given inputs.
// Priority: ALERT > BACKLIGHT > OFF.
func Decide(th Thresholds, now time.Time, elapsedMinutes float64) State {
	alert := th.AlertMinutes >= 0 &&
		elapsedMinutes >= float64(th.AlertMinutes) &&
		now.Hour() >= th.AlertEarliestHour
	if alert {
		return StateAlert
	}
	if th.BacklightBrightness > 0.0 {
		return StateBacklight
	}
	return StateOff
}

// Controller applies Decide's output to the strip, writing hardware only
// when the decision changes.
type Controller struct {
	th    Thresholds
	strip led.Strip
	log   *zap.SugaredLogger
	state State
}

// New creates a Controller starting in the OFF state, which matches the
// strip's powered-down state at session start.
func New(th Thresholds, strip led.Strip, log *zap.SugaredLogger) *Controller {
	return &Controller{
		th:    th,
		strip: strip,
		log:   log,
		state: StateOff,
	}
}

// Check re-evaluates the decision and applies a transition if needed.
// A failed hardware write leaves the recorded state unchanged so the next
// check retries the transition.
func (c *Controller) Check(now time.Time, elapsedMinutes float64) {
	want := Decide(c.th, now, elapsedMinutes)
	if want == c.state {
		return
	}

	if err := c.apply(want); err != nil {
		c.log.Errorf("indicator transition to %s failed: %v", want, err)
		return
	}
	c.log.Debugf("indicator %s -> %s", c.state, want)
	c.state = want
}

func (c *Controller) apply(want State) error {
	switch want {
	case StateAlert:
		if err := c.strip.SetEnabled(true); err != nil {
			return err
		}
		if err := c.strip.SetBrightness(1.0); err != nil {
			return err
		}
		return c.strip.Fill(led.Green)
	case StateBacklight:
		if err := c.strip.SetEnabled(true); err != nil {
			return err
		}
		if err := c.strip.SetBrightness(c.th.BacklightBrightness); err != nil {
			return err
		}
		return c.strip.Fill(led.White)
	default:
		return c.strip.SetEnabled(false)
	}
}

// State returns the currently applied state.
func (c *Controller) State() State {
	return c.state
}
