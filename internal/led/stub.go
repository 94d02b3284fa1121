//go:build !linux

package led

import "errors"

// RealStrip is not available on non-Linux platforms.
type RealStrip struct{}

// NewRealStrip returns an error on non-Linux platforms.
func NewRealStrip(powerPin, pixels int, spiDevice string) (*RealStrip, error) {
	return nil, errors.New("led: not supported on this platform (requires Linux)")
}

// SetEnabled is not implemented on non-Linux platforms.
func (s *RealStrip) SetEnabled(on bool) error {
	return errors.New("led: not supported")
}

// SetBrightness is not implemented on non-Linux platforms.
func (s *RealStrip) SetBrightness(b float64) error {
	return errors.New("led: not supported")
}

// Fill is not implemented on non-Linux platforms.
func (s *RealStrip) Fill(c RGB) error {
	return errors.New("led: not supported")
}

// Close is not implemented on non-Linux platforms.
func (s *RealStrip) Close() error {
	return nil
}
