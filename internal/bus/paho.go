package bus

import (
	"errors"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Connection timing. Keep-alive matches the original device firmware; the
// connect timeout bounds the blocking token wait.
const (
	DefaultKeepAlive = 15 * time.Second
	connectTimeout   = 10 * time.Second

	// queueCapacity bounds inbound buffering between Loop calls. The broker
	// publishes a handful of retained timestamps, so overflow means the
	// control loop has stalled.
	queueCapacity = 32
)

var errNotConnected = errors.New("not connected to broker")

// PahoClient is the real Client backed by an eclipse/paho session.
type PahoClient struct {
	client paho.Client
	topics []string
	broker string
	queue  *inboundQueue
	log    *zap.SugaredLogger
}

// NewPahoClient builds a client for the given broker and subscription topics.
// Empty topic strings are skipped. The session is not connected until
// Connect is called.
func NewPahoClient(host string, port int, topics []string, keepAlive time.Duration, log *zap.SugaredLogger) *PahoClient {
	c := &PahoClient{
		broker: fmt.Sprintf("tcp://%s:%d", host, port),
		queue:  newInboundQueue(queueCapacity),
		log:    log,
	}
	for _, t := range topics {
		if t != "" {
			c.topics = append(c.topics, t)
		}
	}

	clientID := "stopwatch-display-" + uuid.NewString()[:8]
	opts := paho.NewClientOptions().
		AddBroker(c.broker).
		SetClientID(clientID).
		SetKeepAlive(keepAlive).
		SetCleanSession(true).
		SetAutoReconnect(false).
		SetOnConnectHandler(c.onConnect).
		SetConnectionLostHandler(c.onConnectionLost)

	c.client = paho.NewClient(opts)
	return c
}

// onConnect subscribes to every configured topic. It runs on each fresh
// connect, which is why Reconnect skips resubscription by default.
func (c *PahoClient) onConnect(client paho.Client) {
	c.log.Debugf("connected to MQTT broker at %s", c.broker)
	for _, topic := range c.topics {
		c.log.Debugf("listening for topic changes on %s", topic)
		token := client.Subscribe(topic, 0, c.onMessage)
		if !token.WaitTimeout(connectTimeout) {
			c.log.Errorf("subscribe to %s timed out", topic)
			continue
		}
		if err := token.Error(); err != nil {
			c.log.Errorf("subscribe to %s: %v", topic, err)
		}
	}
}

func (c *PahoClient) onConnectionLost(client paho.Client, err error) {
	c.log.Warnf("disconnected from MQTT broker %s: %v", c.broker, err)
}

// onMessage runs on the paho delivery goroutine and queues the message for
// the next Loop call. Delivery order is preserved by the FIFO.
func (c *PahoClient) onMessage(client paho.Client, m paho.Message) {
	dropped := c.queue.push(Message{Topic: m.Topic(), Payload: m.Payload()})
	if dropped == 1 {
		c.log.Warnf("inbound queue full (%d messages), dropping oldest", queueCapacity)
	}
}

// Connect establishes the broker session and waits for the initial
// subscription handshake.
func (c *PahoClient) Connect() error {
	token := c.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("connect to %s: timeout", c.broker)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("connect to %s: %w", c.broker, err)
	}
	return nil
}

// Probe checks that the session still looks alive. A closed connection is
// not transient here: with auto-reconnect off it stays closed until someone
// reconnects, so it is reported loop-kind and takes the reconnect tier.
func (c *PahoClient) Probe() error {
	if !c.client.IsConnectionOpen() {
		return wrap(KindLoop, errNotConnected)
	}
	return nil
}

// Loop returns queued messages, waiting up to timeout for the first arrival.
// If the session has dropped it returns a loop-kind error.
func (c *PahoClient) Loop(timeout time.Duration) ([]Message, error) {
	if msgs := c.queue.drain(); len(msgs) > 0 {
		return msgs, nil
	}
	if !c.client.IsConnectionOpen() {
		return nil, wrap(KindLoop, errNotConnected)
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	select {
	case <-c.queue.notify:
	case <-deadline.C:
	}

	msgs := c.queue.drain()
	if len(msgs) == 0 && !c.client.IsConnectionOpen() {
		return nil, wrap(KindLoop, errNotConnected)
	}
	return msgs, nil
}

// Reconnect re-establishes a dropped session. The on-connect handler
// subscribes on every fresh connect, so resubscribe is normally false.
func (c *PahoClient) Reconnect(resubscribe bool) error {
	token := c.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return wrap(KindReconnect, fmt.Errorf("reconnect to %s: timeout", c.broker))
	}
	if err := token.Error(); err != nil {
		return wrap(KindReconnect, fmt.Errorf("reconnect to %s: %w", c.broker, err))
	}
	if resubscribe {
		c.onConnect(c.client)
	}
	return nil
}

// Disconnect tears the session down.
func (c *PahoClient) Disconnect() {
	c.client.Disconnect(1000) // 1 second timeout
}
