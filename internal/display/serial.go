package display

import (
	"fmt"
	"io"

	serial "github.com/tarm/goserial"
)

// SerialSurface drives the panel through the display co-processor's line
// protocol: "T<region>:<text>\n" stages a region, "R\n" commits a refresh.
type SerialSurface struct {
	port io.ReadWriteCloser
}

// NewSerialSurface opens the co-processor serial device.
func NewSerialSurface(device string, baud int) (*SerialSurface, error) {
	sc := &serial.Config{Name: device, Baud: baud}
	port, err := serial.OpenPort(sc)
	if err != nil {
		return nil, fmt.Errorf("open display port %s: %w", device, err)
	}
	return &SerialSurface{port: port}, nil
}

// newSerialSurface wraps an already-open port. Used by tests.
func newSerialSurface(port io.ReadWriteCloser) *SerialSurface {
	return &SerialSurface{port: port}
}

// SetText stages text into a region, optionally refreshing the panel.
func (s *SerialSurface) SetText(region int, text string, refresh bool) error {
	if region < 0 || region >= RegionCount {
		return fmt.Errorf("display: region %d out of range", region)
	}
	if _, err := fmt.Fprintf(s.port, "T%d:%s\n", region, text); err != nil {
		return fmt.Errorf("stage region %d: %w", region, err)
	}
	if refresh {
		if _, err := io.WriteString(s.port, "R\n"); err != nil {
			return fmt.Errorf("refresh panel: %w", err)
		}
	}
	return nil
}

// Close closes the serial link.
func (s *SerialSurface) Close() error {
	return s.port.Close()
}
