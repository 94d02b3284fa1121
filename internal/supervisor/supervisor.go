// Package supervisor owns the connection-resilience loop around the
// message-bus session: it dispatches inbound events to the stopwatch
// engine, drives the periodic re-render, and escalates failures through
// three tiers: transient probe retry, single reconnect, fatal restart.
package supervisor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sweeney/stopwatch-display/internal/bus"
	"github.com/sweeney/stopwatch-display/internal/indicator"
	"github.com/sweeney/stopwatch-display/internal/led"
	"github.com/sweeney/stopwatch-display/internal/status"
	"github.com/sweeney/stopwatch-display/internal/stopwatch"
)

// Config holds the session parameters.
type Config struct {
	TopicPrimary   string
	TopicSecondary string

	// LoopTimeout bounds each blocking wait for inbound messages.
	LoopTimeout time.Duration

	// RefreshInterval is the idle period between polling iterations,
	// i.e. the display's re-render cadence.
	RefreshInterval time.Duration
}

// Session is one connect-subscribe-poll run. It ends at the first fatal
// failure; the caller rebuilds everything and starts a fresh Session.
// Reference timestamps survive reconnects within a session but not the
// fatal boundary.
type Session struct {
	cfg     Config
	bus     bus.Client
	engine  *stopwatch.Engine
	ind     *indicator.Controller
	strip   led.Strip
	tracker *status.Tracker
	log     *zap.SugaredLogger

	// sleep is injectable for tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a Session over freshly constructed components.
func New(cfg Config, client bus.Client, engine *stopwatch.Engine, ind *indicator.Controller, strip led.Strip, tracker *status.Tracker, log *zap.SugaredLogger) *Session {
	return &Session{
		cfg:     cfg,
		bus:     client,
		engine:  engine,
		ind:     ind,
		strip:   strip,
		tracker: tracker,
		log:     log,
		sleep:   ctxSleep,
	}
}

// SetSleep replaces the idle sleep between polling iterations. Tests use
// it to advance fake clocks and stop the loop.
func (s *Session) SetSleep(fn func(ctx context.Context, d time.Duration) error) {
	s.sleep = fn
}

// Run executes the session until a fatal failure or context cancellation.
// Start-phase failures propagate without partial retry; the polling loop
// classifies failures per tier. The returned error is what the outer
// restart handler logs before rebuilding.
func (s *Session) Run(ctx context.Context) error {
	if err := s.bus.Connect(); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer s.bus.Disconnect()
	s.tracker.SetConn(status.ConnConnected)

	if err := s.bus.Probe(); err != nil {
		return fmt.Errorf("initial probe: %w", err)
	}
	if err := s.engine.Render(); err != nil {
		return fmt.Errorf("initial render: %w", err)
	}
	s.updateTracker()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		// Tier 1: transient probe failures are retried next iteration, no
		// backoff. A probe reporting the session definitively down is a
		// loop failure and takes the reconnect tier; the idle sleep
		// dominates each iteration, so a broker drop is usually noticed
		// here first.
		if err := s.bus.Probe(); err != nil {
			if bus.KindOf(err) == bus.KindTransient {
				s.log.Errorf("broker probe failed: %v; retrying", err)
				continue
			}
			s.log.Errorf("broker probe lost the session: %v; reconnecting", err)
			if rerr := s.reconnect(); rerr != nil {
				return rerr
			}
			continue
		}

		msgs, err := s.bus.Loop(s.cfg.LoopTimeout)
		for _, m := range msgs {
			s.dispatch(m)
		}
		if err != nil {
			s.log.Errorf("message loop failed: %v; reconnecting", err)
			if rerr := s.reconnect(); rerr != nil {
				return rerr
			}
			continue
		}

		if err := s.engine.Render(); err != nil {
			s.fail()
			return fmt.Errorf("render: %w", err)
		}
		s.updateTracker()

		s.log.Infof("sleeping for %v", s.cfg.RefreshInterval)
		if err := s.sleep(ctx, s.cfg.RefreshInterval); err != nil {
			return err
		}
	}
}

// reconnect is tier 2: exactly one attempt, without resubscription; the
// on-connect handler subscribes on every fresh connect. A failure here is
// tier 3: release hardware and hand the failure to the restart handler.
func (s *Session) reconnect() error {
	s.tracker.SetConn(status.ConnReconnecting)
	if err := s.bus.Reconnect(false); err != nil {
		s.log.Errorf("reconnect failed: %v; resetting", err)
		s.fail()
		return fmt.Errorf("reconnect: %w", err)
	}
	s.tracker.SetConn(status.ConnConnected)
	return nil
}

// dispatch routes one inbound message. Malformed payloads and unexpected
// topics are logged and dropped; they never feed the escalation ladder.
func (s *Session) dispatch(m bus.Message) {
	payload := strings.TrimSpace(string(m.Payload))
	s.log.Debugf("message on %s: %s", m.Topic, payload)

	switch m.Topic {
	case s.cfg.TopicPrimary:
		ts, err := parseTimestamp(payload)
		if err != nil {
			s.log.Warnf("bad timestamp on %s: %v", m.Topic, err)
			s.tracker.RecordIgnored()
			return
		}
		if err := s.engine.SetReference(stopwatch.SlotPrimary, ts, true); err != nil {
			s.log.Errorf("apply reference: %v", err)
			return
		}
		s.tracker.RecordPrimary(ts)
	case s.cfg.TopicSecondary:
		ts, err := parseTimestamp(payload)
		if err != nil {
			s.log.Warnf("bad timestamp on %s: %v", m.Topic, err)
			s.tracker.RecordIgnored()
			return
		}
		if err := s.engine.SetReference(stopwatch.SlotSecondary, ts, true); err != nil {
			s.log.Errorf("apply synthetic now: %v", err)
			return
		}
		s.tracker.RecordSecondary(ts)
	default:
		s.log.Warnf("ignoring message on unexpected topic %q", m.Topic)
		s.tracker.RecordIgnored()
	}
}

// fail releases acquired hardware before the session unwinds.
func (s *Session) fail() {
	s.tracker.SetConn(status.ConnFatal)
	if err := s.strip.SetEnabled(false); err != nil {
		s.log.Errorf("release indicator: %v", err)
	}
}

func (s *Session) updateTracker() {
	s.tracker.SetDisplay(s.engine.Text(), string(s.ind.State()))
}

// parseTimestamp parses the ISO-8601 payload published on the topics,
// e.g. "2021-04-19T10:28:42.061205-04:00".
func parseTimestamp(payload string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, payload)
}

func ctxSleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
