// Package bus provides the MQTT subscription client with abstraction for
// testing. The real implementation wraps an eclipse/paho client; the fake
// implementation scripts connection behavior for supervisor tests.
package bus

import "time"

// Message is one inbound publication.
type Message struct {
	Topic   string
	Payload []byte
}

// Client is the message-bus session used by the supervisor. It separates the
// three operations whose failures are handled at different escalation tiers:
// Probe (transient retry), Loop (one reconnect), Reconnect (fatal on failure).
type Client interface {
	// Connect establishes the broker session. Subscriptions are made by the
	// on-connect handler, so they are re-established on any fresh connect.
	Connect() error

	// Probe checks broker connectivity. A transient failure is retried by
	// the caller on its next iteration without backoff; any other kind
	// means the session is down and takes the reconnect tier.
	Probe() error

	// Loop waits up to timeout for inbound messages and returns them in
	// delivery order. An error means the session is down and the caller
	// should attempt exactly one Reconnect.
	Loop(timeout time.Duration) ([]Message, error)

	// Reconnect re-establishes a dropped session. Resubscription is skipped
	// by default because the on-connect handler already subscribes on every
	// fresh connect; pass resubscribe=true to force it anyway. A failure
	// here is fatal for the session.
	Reconnect(resubscribe bool) error

	// Disconnect tears the session down.
	Disconnect()
}
