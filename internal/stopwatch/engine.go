// Package stopwatch maintains the reference timestamps and produces the
// elapsed-duration text on the display. Time is always injected through a
// Clock, and hardware side effects go through the display Surface, so the
// package is fully testable without hardware.
package stopwatch

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sweeney/stopwatch-display/internal/clock"
	"github.com/sweeney/stopwatch-display/internal/display"
)

// Reference slots. The primary slot is always populated; the secondary slot
// carries a synthetic "now" and switches the display into dual-duration mode.
const (
	SlotPrimary   = 0
	SlotSecondary = 1

	slotCount = 2
)

// ErrInvalidSlot is returned for slot indices outside {0, 1}.
var ErrInvalidSlot = errors.New("stopwatch: invalid slot")

// Checker is notified after every render with the current time and the
// primary slot's elapsed minutes. The indicator controller implements it.
type Checker interface {
	Check(now time.Time, elapsedMinutes float64)
}

// Engine computes and renders elapsed durations against the stored
// references. Renders are idempotent: the display is written only when the
// formatted text changes.
type Engine struct {
	clk     clock.Clock
	surface display.Surface
	checker Checker
	log     *zap.SugaredLogger

	refs      [slotCount]time.Time
	populated [slotCount]bool

	lastRendered string
}

// New creates an Engine. The primary reference starts at the current time,
// matching the "0:00" the panel shows after power-up; an inbound event
// overwrites it.
func New(clk clock.Clock, surface display.Surface, checker Checker, log *zap.SugaredLogger) *Engine {
	e := &Engine{
		clk:          clk,
		surface:      surface,
		checker:      checker,
		log:          log,
		lastRendered: "0:00",
	}
	e.refs[SlotPrimary] = clk.Now()
	e.populated[SlotPrimary] = true
	return e
}

// SetReference stores t into the given slot. A fresh primary reference
// clears the secondary slot so a stale synthetic "now" cannot pin the
// display in dual mode. If autoRefresh is true the display is re-rendered
// immediately.
func (e *Engine) SetReference(slot int, t time.Time, autoRefresh bool) error {
	if slot < 0 || slot >= slotCount {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	e.refs[slot] = t
	e.populated[slot] = true
	if slot == SlotPrimary {
		e.populated[SlotSecondary] = false
	}
	if autoRefresh {
		return e.Render()
	}
	return nil
}

// ClearReference empties the given slot. Clearing the secondary slot drops
// the display back to single-duration mode on the next render.
func (e *Engine) ClearReference(slot int) error {
	if slot < 0 || slot >= slotCount {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	e.populated[slot] = false
	return nil
}

// Render recomputes the elapsed durations against the current time and
// writes the display if the text changed. The indicator check runs on every
// render, written or not, because indicator state can change with the clock
// even when the formatted minutes have not.
func (e *Engine) Render() error {
	now := e.clk.Now()
	primary := FormatElapsed(now, e.refs[SlotPrimary])

	text := primary
	if e.populated[SlotSecondary] {
		text = primary + " " + FormatElapsed(now, e.refs[SlotSecondary])
	}

	if text != e.lastRendered {
		e.log.Debugf("rendering %q (was %q)", text, e.lastRendered)
		if err := e.write(now, primary); err != nil {
			return err
		}
		e.lastRendered = text
	}

	if e.checker != nil {
		e.checker.Check(now, ElapsedMinutes(now, e.refs[SlotPrimary]))
	}
	return nil
}

// write stages the full region layout and commits it in one panel refresh.
func (e *Engine) write(now time.Time, primary string) error {
	if e.populated[SlotSecondary] {
		secondary := FormatElapsed(now, e.refs[SlotSecondary])
		if err := e.surface.SetText(display.RegionPrimary, "", false); err != nil {
			return fmt.Errorf("clear primary region: %w", err)
		}
		if err := e.surface.SetText(display.RegionUpper, primary, false); err != nil {
			return fmt.Errorf("write upper region: %w", err)
		}
		if err := e.surface.SetText(display.RegionLower, secondary, true); err != nil {
			return fmt.Errorf("write lower region: %w", err)
		}
		return nil
	}

	if err := e.surface.SetText(display.RegionUpper, "", false); err != nil {
		return fmt.Errorf("clear upper region: %w", err)
	}
	if err := e.surface.SetText(display.RegionLower, "", false); err != nil {
		return fmt.Errorf("clear lower region: %w", err)
	}
	if err := e.surface.SetText(display.RegionPrimary, primary, true); err != nil {
		return fmt.Errorf("write primary region: %w", err)
	}
	return nil
}

// Text returns the last rendered display text.
func (e *Engine) Text() string {
	return e.lastRendered
}
