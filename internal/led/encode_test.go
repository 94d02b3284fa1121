package led

import "testing"

func TestEncodeFrameLength(t *testing.T) {
	frame := encodeFrame(Green, 1.0, 4)
	// 4 pixels x 3 channels x 8 bits, one SPI byte per bit, plus latch.
	want := 4*3*8 + latchBytes
	if len(frame) != want {
		t.Errorf("expected frame length %d, got %d", want, len(frame))
	}
}

func TestEncodeFrameBits(t *testing.T) {
	// Green at full brightness: G=0xFF R=0x00 B=0x00, GRB wire order.
	frame := encodeFrame(Green, 1.0, 1)

	for i := 0; i < 8; i++ {
		if frame[i] != spiBitOne {
			t.Errorf("green channel bit %d: expected %#x, got %#x", i, spiBitOne, frame[i])
		}
	}
	for i := 8; i < 24; i++ {
		if frame[i] != spiBitZero {
			t.Errorf("red/blue channel bit %d: expected %#x, got %#x", i, spiBitZero, frame[i])
		}
	}
	for i := 24; i < 24+latchBytes; i++ {
		if frame[i] != 0 {
			t.Errorf("latch byte %d: expected 0, got %#x", i, frame[i])
		}
	}
}

func TestEncodeFrameBrightness(t *testing.T) {
	// White at half brightness scales every channel to 0x7F: MSB clear.
	frame := encodeFrame(White, 0.5, 1)
	for ch := 0; ch < 3; ch++ {
		msb := frame[ch*8]
		if msb != spiBitZero {
			t.Errorf("channel %d MSB: expected %#x at half brightness, got %#x", ch, spiBitZero, msb)
		}
		if frame[ch*8+1] != spiBitOne {
			t.Errorf("channel %d bit 6: expected %#x, got %#x", ch, spiBitOne, frame[ch*8+1])
		}
	}
}

func TestScaleClamps(t *testing.T) {
	if got := scale(0xFF, 1.5); got != 0xFF {
		t.Errorf("expected clamp to 0xFF, got %#x", got)
	}
	if got := scale(0xFF, -0.1); got != 0 {
		t.Errorf("expected clamp to 0, got %#x", got)
	}
	if got := scale(0x80, 0.0); got != 0 {
		t.Errorf("expected 0 at zero brightness, got %#x", got)
	}
}
