// Package config loads the daemon configuration file. The file plays the
// role the secrets store played on the original hardware: broker location,
// topics, WiFi credentials, and the display thresholds.
package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Defaults for optional keys.
const (
	DefaultPort                = 1883
	DefaultRefreshMins         = 1
	DefaultAlertMinutes        = -1 // disabled
	DefaultAlertEarliestHour   = 24 // never gates
	DefaultBacklightBrightness = 0.0
	DefaultTimezone            = "America/New_York"
	DefaultTimezoneOffsetHours = -4
)

// Config is the resolved daemon configuration. Immutable after Load.
type Config struct {
	// Required.
	Broker       string `yaml:"broker"`
	TopicPrimary string `yaml:"topic_past"`

	// WiFi association is handled by the OS; the credentials are carried
	// for provisioning and the SSID shown on the status page.
	SSID     string `yaml:"ssid"`
	Password string `yaml:"password"`

	// Optional.
	Port                int     `yaml:"port"`
	TopicSecondary      string  `yaml:"topic_now"`
	RefreshMins         int     `yaml:"refresh_mins"`
	AlertMinutes        int     `yaml:"leds_on_mins_threshold"`
	AlertEarliestHour   int     `yaml:"sleep_daily_before_hour"`
	BacklightBrightness float64 `yaml:"backlight_brightness"`
	Timezone            string  `yaml:"timezone"`
	TimezoneOffsetHours int     `yaml:"timezone_offset"`
}

// optionalKeys maps YAML keys to their default description for resolved-value
// logging. Every optional key's final value is logged at load so a
// misconfigured device can be diagnosed from its boot log.
var optionalKeys = []string{
	"port",
	"topic_now",
	"refresh_mins",
	"leds_on_mins_threshold",
	"sleep_daily_before_hour",
	"backlight_brightness",
	"timezone",
	"timezone_offset",
}

func defaults() Config {
	return Config{
		Port:                DefaultPort,
		RefreshMins:         DefaultRefreshMins,
		AlertMinutes:        DefaultAlertMinutes,
		AlertEarliestHour:   DefaultAlertEarliestHour,
		BacklightBrightness: DefaultBacklightBrightness,
		Timezone:            DefaultTimezone,
		TimezoneOffsetHours: DefaultTimezoneOffsetHours,
	}
}

// Load reads and validates the configuration file at path.
func Load(path string, log *zap.SugaredLogger) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// A second pass into a map tells us which optional keys were present,
	// so resolved values can be logged with a default marker.
	present := map[string]any{}
	if err := yaml.Unmarshal(raw, &present); err == nil {
		logResolved(log, &cfg, present)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func logResolved(log *zap.SugaredLogger, cfg *Config, present map[string]any) {
	values := map[string]any{
		"port":                    cfg.Port,
		"topic_now":               cfg.TopicSecondary,
		"refresh_mins":            cfg.RefreshMins,
		"leds_on_mins_threshold":  cfg.AlertMinutes,
		"sleep_daily_before_hour": cfg.AlertEarliestHour,
		"backlight_brightness":    cfg.BacklightBrightness,
		"timezone":                cfg.Timezone,
		"timezone_offset":         cfg.TimezoneOffsetHours,
	}
	for _, key := range optionalKeys {
		if _, ok := present[key]; ok {
			log.Infof("%s = %v", key, values[key])
		} else {
			log.Infof("%s = %v  [default value]", key, values[key])
		}
	}
}

func (c *Config) validate() error {
	if c.Broker == "" {
		return fmt.Errorf("config: broker is required")
	}
	if c.TopicPrimary == "" {
		return fmt.Errorf("config: topic_past is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Port)
	}
	if c.RefreshMins < 1 {
		return fmt.Errorf("config: refresh_mins must be at least 1, got %d", c.RefreshMins)
	}
	if c.AlertEarliestHour < 0 || c.AlertEarliestHour > 24 {
		return fmt.Errorf("config: sleep_daily_before_hour %d out of range 0-24", c.AlertEarliestHour)
	}
	if c.BacklightBrightness < 0.0 || c.BacklightBrightness > 1.0 {
		return fmt.Errorf("config: backlight_brightness %v out of range 0.0-1.0", c.BacklightBrightness)
	}
	if c.TimezoneOffsetHours < -12 || c.TimezoneOffsetHours > 14 {
		return fmt.Errorf("config: timezone_offset %d out of range", c.TimezoneOffsetHours)
	}
	return nil
}
