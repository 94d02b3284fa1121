package led

// WS2812 framing over SPI at 6.4 MHz: each pixel bit becomes one SPI byte
// whose high pulse width encodes the bit. The trailing zero bytes hold the
// line low long enough for the strip to latch.
const (
	spiBitOne  = 0xF8
	spiBitZero = 0xC0
	latchBytes = 64
)

// scale applies brightness to a single channel.
func scale(v byte, brightness float64) byte {
	if brightness < 0 {
		brightness = 0
	}
	if brightness > 1 {
		brightness = 1
	}
	return byte(float64(v) * brightness)
}

// encodeFrame builds the SPI byte stream for a strip of identical pixels
// of color c at the given brightness. Channel order on the wire is GRB,
// most significant bit first.
func encodeFrame(c RGB, brightness float64, pixels int) []byte {
	channels := []byte{
		scale(c.G, brightness),
		scale(c.R, brightness),
		scale(c.B, brightness),
	}

	frame := make([]byte, 0, pixels*len(channels)*8+latchBytes)
	for p := 0; p < pixels; p++ {
		for _, ch := range channels {
			for bit := 7; bit >= 0; bit-- {
				if ch&(1<<uint(bit)) != 0 {
					frame = append(frame, spiBitOne)
				} else {
					frame = append(frame, spiBitZero)
				}
			}
		}
	}
	frame = append(frame, make([]byte, latchBytes)...)
	return frame
}
