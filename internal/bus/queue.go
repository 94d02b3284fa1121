package bus

import "sync"

// inboundQueue is a fixed-capacity FIFO holding messages delivered by the
// paho client until the control loop drains them. Paho delivers on its own
// goroutine, so the queue synchronizes internally and signals arrivals on
// a notification channel.
type inboundQueue struct {
	mu       sync.Mutex
	buf      []Message
	capacity int
	head     int // next write position
	count    int
	dropped  int // messages lost to overflow since last drain

	notify chan struct{}
}

func newInboundQueue(capacity int) *inboundQueue {
	return &inboundQueue{
		buf:      make([]Message, capacity),
		capacity: capacity,
		notify:   make(chan struct{}, 1),
	}
}

// push appends a message, overwriting the oldest when full. It returns the
// number of messages dropped so far since the last drain.
func (q *inboundQueue) push(msg Message) int {
	q.mu.Lock()
	if q.count == q.capacity {
		// Overwrite oldest: head is already pointing at it
		q.buf[q.head] = msg
		q.head = (q.head + 1) % q.capacity
		q.dropped++
	} else {
		q.buf[q.head] = msg
		q.head = (q.head + 1) % q.capacity
		q.count++
	}
	dropped := q.dropped
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
	return dropped
}

// drain removes and returns all queued messages, oldest first.
func (q *inboundQueue) drain() []Message {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count == 0 {
		return nil
	}

	result := make([]Message, q.count)
	// Oldest item is at (head - count) mod capacity
	start := (q.head - q.count + q.capacity) % q.capacity
	for i := 0; i < q.count; i++ {
		result[i] = q.buf[(start+i)%q.capacity]
	}

	q.count = 0
	q.head = 0
	q.dropped = 0
	return result
}

func (q *inboundQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}
