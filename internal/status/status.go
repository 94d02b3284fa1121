// Package status provides a thread-safe status tracker for the display
// daemon. It is read by the HTTP status handlers and survives session
// restarts, so it also carries the restart counter.
package status

import (
	"sync"
	"time"
)

// ConnState is the message-bus connection state.
type ConnState string

const (
	ConnConnected    ConnState = "CONNECTED"
	ConnDisconnected ConnState = "DISCONNECTED"
	ConnReconnecting ConnState = "RECONNECTING"
	ConnFatal        ConnState = "FATAL"
)

// Config contains daemon configuration for display on the status page.
type Config struct {
	Broker              string
	Port                int
	SSID                string
	TopicPrimary        string
	TopicSecondary      string
	RefreshMins         int
	AlertMinutes        int
	AlertEarliestHour   int
	BacklightBrightness float64
	Timezone            string
	HTTPAddr            string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	DisplayText    string
	Indicator      string
	Conn           ConnState
	LastPrimary    time.Time // zero = no event yet this session
	LastSecondary  time.Time
	PrimaryCount   int
	SecondaryCount int
	IgnoredCount   int
	Restarts       int
	StartTime      time.Time
	Now            time.Time
	Config         Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Conn:      ConnDisconnected,
			Indicator: "OFF",
			Config:    cfg,
		},
	}
}

// SetConn sets the connection state.
func (t *Tracker) SetConn(state ConnState) {
	t.mu.Lock()
	t.snap.Conn = state
	t.mu.Unlock()
}

// SetDisplay sets the currently rendered text and indicator state.
// Called by the supervisor on every polling iteration.
func (t *Tracker) SetDisplay(text, indicator string) {
	t.mu.Lock()
	t.snap.DisplayText = text
	t.snap.Indicator = indicator
	t.mu.Unlock()
}

// RecordPrimary records a primary reference event.
func (t *Tracker) RecordPrimary(ts time.Time) {
	t.mu.Lock()
	t.snap.LastPrimary = ts
	t.snap.PrimaryCount++
	t.mu.Unlock()
}

// RecordSecondary records a secondary reference event.
func (t *Tracker) RecordSecondary(ts time.Time) {
	t.mu.Lock()
	t.snap.LastSecondary = ts
	t.snap.SecondaryCount++
	t.mu.Unlock()
}

// RecordIgnored counts a message that was logged and dropped
// (unexpected topic or malformed payload).
func (t *Tracker) RecordIgnored() {
	t.mu.Lock()
	t.snap.IgnoredCount++
	t.mu.Unlock()
}

// RecordRestart counts a fatal session restart and clears per-session
// event state, mirroring the rebuilt component graph.
func (t *Tracker) RecordRestart() {
	t.mu.Lock()
	t.snap.Restarts++
	t.snap.LastPrimary = time.Time{}
	t.snap.LastSecondary = time.Time{}
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
