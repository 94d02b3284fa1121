package bus

import "time"

// LoopResult scripts one Loop call on the fake client.
type LoopResult struct {
	Msgs []Message
	Err  error
}

// FakeClient scripts bus behavior for supervisor tests. Each call consumes
// the next scripted result; exhausted scripts return success.
type FakeClient struct {
	// ConnectErr, if set, is returned by Connect.
	ConnectErr error

	// ProbeResults are consumed one per Probe call.
	ProbeResults []error

	// LoopResults are consumed one per Loop call.
	LoopResults []LoopResult

	// ReconnectResults are consumed one per Reconnect call.
	ReconnectResults []error

	// Call records.
	ConnectCalls   int
	ProbeCalls     int
	LoopCalls      int
	LoopTimeouts   []time.Duration
	ReconnectCalls int
	ResubFlags     []bool
	Disconnected   bool
}

// NewFakeClient creates a FakeClient.
func NewFakeClient() *FakeClient {
	return &FakeClient{}
}

// Connect returns the scripted connect error.
func (f *FakeClient) Connect() error {
	f.ConnectCalls++
	return f.ConnectErr
}

// Probe consumes the next scripted probe result.
func (f *FakeClient) Probe() error {
	f.ProbeCalls++
	if len(f.ProbeResults) == 0 {
		return nil
	}
	err := f.ProbeResults[0]
	f.ProbeResults = f.ProbeResults[1:]
	return err
}

// Loop consumes the next scripted loop result.
func (f *FakeClient) Loop(timeout time.Duration) ([]Message, error) {
	f.LoopCalls++
	f.LoopTimeouts = append(f.LoopTimeouts, timeout)
	if len(f.LoopResults) == 0 {
		return nil, nil
	}
	r := f.LoopResults[0]
	f.LoopResults = f.LoopResults[1:]
	return r.Msgs, r.Err
}

// Reconnect consumes the next scripted reconnect result.
func (f *FakeClient) Reconnect(resubscribe bool) error {
	f.ReconnectCalls++
	f.ResubFlags = append(f.ResubFlags, resubscribe)
	if len(f.ReconnectResults) == 0 {
		return nil
	}
	err := f.ReconnectResults[0]
	f.ReconnectResults = f.ReconnectResults[1:]
	return err
}

// Disconnect marks the client as disconnected.
func (f *FakeClient) Disconnect() {
	f.Disconnected = true
}
