// Command stopwatch-display drives an e-paper elapsed-time display and its
// RGB indicator from timestamps published on an MQTT bus.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sweeney/stopwatch-display/internal/bus"
	"github.com/sweeney/stopwatch-display/internal/clock"
	"github.com/sweeney/stopwatch-display/internal/config"
	"github.com/sweeney/stopwatch-display/internal/display"
	"github.com/sweeney/stopwatch-display/internal/indicator"
	"github.com/sweeney/stopwatch-display/internal/led"
	"github.com/sweeney/stopwatch-display/internal/status"
	"github.com/sweeney/stopwatch-display/internal/stopwatch"
	"github.com/sweeney/stopwatch-display/internal/supervisor"
	"github.com/sweeney/stopwatch-display/internal/web"
)

// hardware bundles the device paths resolved from flags.
type hardware struct {
	DisplayDevice string
	DisplayBaud   int
	SPIDevice     string
	PowerPin      int
	Pixels        int
}

func main() {
	cfgPath := flag.String("config", "stopwatch.yaml", "Path to config file")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	displayDev := flag.String("display-dev", "/dev/ttyAMA0", "Display co-processor serial device")
	displayBaud := flag.Int("display-baud", 115200, "Display co-processor baud rate")
	spiDev := flag.String("spi", led.DefaultSPIDevice, "SPI device for the LED strip")
	ledPin := flag.Int("led-pin", led.DefaultPowerPin, "BCM pin number for LED strip power")
	pixels := flag.Int("pixels", led.DefaultPixelCount, "Number of pixels on the strip")
	httpAddr := flag.String("http", ":8080", "HTTP status address (empty to disable)")
	restartBackoff := flag.Duration("restart-backoff", 10*time.Second, "Delay before restarting after a fatal failure")
	loopTimeout := flag.Duration("loop-timeout", 10*time.Second, "Bound on each blocking message wait")

	flag.Parse()

	var zapLogger *zap.Logger
	var err error
	if *debug {
		zapLogger, err = zap.NewDevelopment()
	} else {
		zapLogger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Printf("can't initialize zap logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()
	log := zapLogger.Sugar()

	cfg, err := config.Load(*cfgPath, log)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	hw := hardware{
		DisplayDevice: *displayDev,
		DisplayBaud:   *displayBaud,
		SPIDevice:     *spiDev,
		PowerPin:      *ledPin,
		Pixels:        *pixels,
	}

	if err := run(cfg, hw, *httpAddr, *restartBackoff, *loopTimeout, log); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(cfg *config.Config, hw hardware, httpAddr string, restartBackoff, loopTimeout time.Duration, log *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracker := status.NewTracker(time.Now(), trackerConfig(cfg, httpAddr))

	if httpAddr != "" {
		srv := web.New(httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Errorf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Infof("http status server listening on %s", httpAddr)
	}

	log.Infof("started: broker=%s:%d topic=%s refresh=%dm",
		cfg.Broker, cfg.Port, cfg.TopicPrimary, cfg.RefreshMins)

	// The device never stops on its own. Every fatal session failure is
	// answered with a fixed-backoff restart of a fresh component graph, so
	// reference timestamps do not survive this boundary.
	for {
		err := runSession(ctx, cfg, hw, loopTimeout, tracker, log)
		if err == nil || errors.Is(err, context.Canceled) {
			log.Infof("shutting down")
			return nil
		}

		log.Errorf("session failed: %v; restarting in %v", err, restartBackoff)
		tracker.RecordRestart()
		select {
		case <-time.After(restartBackoff):
		case <-ctx.Done():
			return nil
		}
	}
}

// runSession builds one session's component graph and runs it to its first
// fatal failure. Hardware handles are per-session: a restart reacquires
// them from scratch.
func runSession(ctx context.Context, cfg *config.Config, hw hardware, loopTimeout time.Duration, tracker *status.Tracker, log *zap.SugaredLogger) error {
	surface, err := display.NewSerialSurface(hw.DisplayDevice, hw.DisplayBaud)
	if err != nil {
		return fmt.Errorf("init display: %w", err)
	}
	defer surface.Close()

	strip, err := led.NewRealStrip(hw.PowerPin, hw.Pixels, hw.SPIDevice)
	if err != nil {
		return fmt.Errorf("init led strip: %w", err)
	}
	defer strip.Close()

	clk := clock.NewSystem(cfg.Timezone, cfg.TimezoneOffsetHours)
	ind := indicator.New(thresholds(cfg), strip, log)
	engine := stopwatch.New(clk, surface, ind, log)
	client := bus.NewPahoClient(cfg.Broker, cfg.Port,
		[]string{cfg.TopicPrimary, cfg.TopicSecondary}, bus.DefaultKeepAlive, log)

	sess := supervisor.New(supervisor.Config{
		TopicPrimary:    cfg.TopicPrimary,
		TopicSecondary:  cfg.TopicSecondary,
		LoopTimeout:     loopTimeout,
		RefreshInterval: time.Duration(cfg.RefreshMins) * time.Minute,
	}, client, engine, ind, strip, tracker, log)

	return sess.Run(ctx)
}

func thresholds(cfg *config.Config) indicator.Thresholds {
	return indicator.Thresholds{
		AlertMinutes:        cfg.AlertMinutes,
		AlertEarliestHour:   cfg.AlertEarliestHour,
		BacklightBrightness: cfg.BacklightBrightness,
	}
}

func trackerConfig(cfg *config.Config, httpAddr string) status.Config {
	return status.Config{
		Broker:              cfg.Broker,
		Port:                cfg.Port,
		SSID:                cfg.SSID,
		TopicPrimary:        cfg.TopicPrimary,
		TopicSecondary:      cfg.TopicSecondary,
		RefreshMins:         cfg.RefreshMins,
		AlertMinutes:        cfg.AlertMinutes,
		AlertEarliestHour:   cfg.AlertEarliestHour,
		BacklightBrightness: cfg.BacklightBrightness,
		Timezone:            cfg.Timezone,
		HTTPAddr:            httpAddr,
	}
}
