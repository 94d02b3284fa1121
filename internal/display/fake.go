package display

import "fmt"

// Write records one SetText call.
type Write struct {
	Region  int
	Text    string
	Refresh bool
}

// FakeSurface records writes for test assertions.
type FakeSurface struct {
	// Regions holds the last staged text per region.
	Regions [RegionCount]string

	// Writes contains every SetText call in order.
	Writes []Write

	// Refreshes counts panel commits.
	Refreshes int

	// SetError, if set, will be returned by SetText.
	SetError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeSurface creates a FakeSurface.
func NewFakeSurface() *FakeSurface {
	return &FakeSurface{}
}

// SetText records the write.
func (f *FakeSurface) SetText(region int, text string, refresh bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	if region < 0 || region >= RegionCount {
		return fmt.Errorf("display: region %d out of range", region)
	}
	f.Regions[region] = text
	f.Writes = append(f.Writes, Write{Region: region, Text: text, Refresh: refresh})
	if refresh {
		f.Refreshes++
	}
	return nil
}

// Close marks the surface as closed.
func (f *FakeSurface) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded writes.
func (f *FakeSurface) Reset() {
	f.Regions = [RegionCount]string{}
	f.Writes = nil
	f.Refreshes = 0
	f.SetError = nil
	f.Closed = false
}
