// Package led drives the front RGB indicator strip with hardware abstraction.
// The real implementation powers the strip through a GPIO line and clocks
// pixel data out over SPI. The fake implementation allows testing without
// hardware.
package led

// RGB is a pixel color.
type RGB struct {
	R, G, B byte
}

// Fill colors used by the indicator.
var (
	Green = RGB{R: 0x00, G: 0xFF, B: 0x00}
	White = RGB{R: 0xFF, G: 0xFF, B: 0xFF}
)

// Strip controls the indicator hardware.
type Strip interface {
	// SetEnabled powers the strip on or off. Brightness and color are
	// retained across power cycles.
	SetEnabled(on bool) error

	// SetBrightness scales pixel output. b is clamped to [0.0, 1.0].
	SetBrightness(b float64) error

	// Fill sets every pixel to the same color.
	Fill(c RGB) error

	// Close powers the strip down and releases its resources.
	Close() error
}

// Hardware defaults (BCM numbering, front strip of four pixels).
const (
	DefaultPowerPin   = 21
	DefaultPixelCount = 4
	DefaultSPIDevice  = "/dev/spidev0.0"
)
