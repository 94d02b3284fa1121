//go:build linux

package led

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/warthog618/go-gpiocdev"
	"golang.org/x/sys/unix"
)

const (
	spiSpeedHz       = 6400000
	spiWrMaxSpeedHz  = 0x40046B04 // SPI_IOC_WR_MAX_SPEED_HZ
	spiWrBitsPerWord = 0x40016B03 // SPI_IOC_WR_BITS_PER_WORD
	spiFrameWordBits = 8
)

// RealStrip drives an actual strip: power through a GPIO line, pixel data
// over the SPI character device.
type RealStrip struct {
	chip   *gpiocdev.Chip
	power  *gpiocdev.Line
	spi    *os.File
	pixels int

	enabled    bool
	brightness float64
	color      RGB
}

// NewRealStrip opens the GPIO power line and the SPI device. The strip
// starts powered down.
func NewRealStrip(powerPin, pixels int, spiDevice string) (*RealStrip, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	power, err := chip.RequestLine(powerPin, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request power pin %d: %w", powerPin, err)
	}

	spi, err := os.OpenFile(spiDevice, os.O_WRONLY, 0)
	if err != nil {
		power.Close()
		chip.Close()
		return nil, fmt.Errorf("open spi device %s: %w", spiDevice, err)
	}

	s := &RealStrip{
		chip:   chip,
		power:  power,
		spi:    spi,
		pixels: pixels,
	}
	if err := s.configureSPI(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *RealStrip) configureSPI() error {
	speed := uint32(spiSpeedHz)
	if err := s.ioctl(spiWrMaxSpeedHz, unsafe.Pointer(&speed)); err != nil {
		return fmt.Errorf("set spi speed: %w", err)
	}
	bits := uint8(spiFrameWordBits)
	if err := s.ioctl(spiWrBitsPerWord, unsafe.Pointer(&bits)); err != nil {
		return fmt.Errorf("set spi word size: %w", err)
	}
	return nil
}

func (s *RealStrip) ioctl(req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, s.spi.Fd(), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// SetEnabled powers the strip on or off. Powering on rewrites the current
// color frame since the pixels lose state without power.
func (s *RealStrip) SetEnabled(on bool) error {
	val := 0
	if on {
		val = 1
	}
	if err := s.power.SetValue(val); err != nil {
		return fmt.Errorf("set power pin: %w", err)
	}
	s.enabled = on
	if on {
		return s.writeFrame()
	}
	return nil
}

// SetBrightness scales pixel output and rewrites the frame if powered.
func (s *RealStrip) SetBrightness(b float64) error {
	s.brightness = b
	if s.enabled {
		return s.writeFrame()
	}
	return nil
}

// Fill sets every pixel to c and rewrites the frame if powered.
func (s *RealStrip) Fill(c RGB) error {
	s.color = c
	if s.enabled {
		return s.writeFrame()
	}
	return nil
}

func (s *RealStrip) writeFrame() error {
	frame := encodeFrame(s.color, s.brightness, s.pixels)
	if _, err := s.spi.Write(frame); err != nil {
		return fmt.Errorf("write pixel frame: %w", err)
	}
	return nil
}

// Close powers the strip down and releases the GPIO and SPI handles.
// The power line is reconfigured to input with pull-down to match Pi boot
// defaults before closing.
func (s *RealStrip) Close() error {
	var errs []error

	if s.power != nil {
		if err := s.power.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("power down: %w", err))
		}
		if err := s.power.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure power pin: %w", err))
		}
		if err := s.power.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close power pin: %w", err))
		}
	}
	if s.chip != nil {
		if err := s.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if s.spi != nil {
		if err := s.spi.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close spi: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
