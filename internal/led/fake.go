package led

// Op records one hardware call on the fake strip.
type Op struct {
	Kind       string // "enable", "brightness", "fill"
	Enabled    bool
	Brightness float64
	Color      RGB
}

// FakeStrip records hardware calls for test assertions.
type FakeStrip struct {
	// Enabled, Brightness and Color hold the last applied values.
	Enabled    bool
	Brightness float64
	Color      RGB

	// Ops contains every call in order.
	Ops []Op

	// Err, if set, will be returned by every mutating call.
	Err error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeStrip creates a FakeStrip.
func NewFakeStrip() *FakeStrip {
	return &FakeStrip{}
}

// SetEnabled records the power change.
func (f *FakeStrip) SetEnabled(on bool) error {
	if f.Err != nil {
		return f.Err
	}
	f.Enabled = on
	f.Ops = append(f.Ops, Op{Kind: "enable", Enabled: on})
	return nil
}

// SetBrightness records the brightness change.
func (f *FakeStrip) SetBrightness(b float64) error {
	if f.Err != nil {
		return f.Err
	}
	f.Brightness = b
	f.Ops = append(f.Ops, Op{Kind: "brightness", Brightness: b})
	return nil
}

// Fill records the color change.
func (f *FakeStrip) Fill(c RGB) error {
	if f.Err != nil {
		return f.Err
	}
	f.Color = c
	f.Ops = append(f.Ops, Op{Kind: "fill", Color: c})
	return nil
}

// Close marks the strip as closed.
func (f *FakeStrip) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded calls.
func (f *FakeStrip) Reset() {
	f.Enabled = false
	f.Brightness = 0
	f.Color = RGB{}
	f.Ops = nil
	f.Err = nil
	f.Closed = false
}
