package clock

import "time"

// Fake is a Clock that returns a scripted time. Advance moves it forward.
type Fake struct {
	Current time.Time
}

// NewFake creates a Fake clock pinned to the given instant.
func NewFake(t time.Time) *Fake {
	return &Fake{Current: t}
}

// Now returns the pinned time.
func (f *Fake) Now() time.Time {
	return f.Current
}

// Advance moves the pinned time forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.Current = f.Current.Add(d)
}

// Set pins the clock to an exact instant.
func (f *Fake) Set(t time.Time) {
	f.Current = t
}
