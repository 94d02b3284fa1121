package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	DisplayText   string     `json:"display_text"`
	Indicator     string     `json:"indicator"`
	Connection    string     `json:"connection"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	Restarts      int        `json:"restarts"`
	Events        EventsJSON `json:"events"`
	Config        ConfigJSON `json:"config"`
}

// EventsJSON reports inbound message activity.
type EventsJSON struct {
	LastPrimary    string `json:"last_primary,omitempty"`
	LastSecondary  string `json:"last_secondary,omitempty"`
	PrimaryCount   int    `json:"primary_count"`
	SecondaryCount int    `json:"secondary_count"`
	IgnoredCount   int    `json:"ignored_count"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	Broker              string  `json:"broker"`
	Port                int     `json:"port"`
	SSID                string  `json:"ssid,omitempty"`
	TopicPrimary        string  `json:"topic_primary"`
	TopicSecondary      string  `json:"topic_secondary,omitempty"`
	RefreshMins         int     `json:"refresh_mins"`
	AlertMinutes        int     `json:"alert_minutes"`
	AlertEarliestHour   int     `json:"alert_earliest_hour"`
	BacklightBrightness float64 `json:"backlight_brightness"`
	Timezone            string  `json:"timezone"`
	HTTPAddr            string  `json:"http_addr,omitempty"`
}

// FormatJSON renders a snapshot as the status JSON document.
func FormatJSON(s Snapshot) []byte {
	inner := StatusInner{
		DisplayText:   s.DisplayText,
		Indicator:     s.Indicator,
		Connection:    string(s.Conn),
		UptimeSeconds: int64(s.Uptime().Seconds()),
		StartTime:     s.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     s.Now.UTC().Format(time.RFC3339),
		Restarts:      s.Restarts,
		Events: EventsJSON{
			PrimaryCount:   s.PrimaryCount,
			SecondaryCount: s.SecondaryCount,
			IgnoredCount:   s.IgnoredCount,
		},
		Config: ConfigJSON{
			Broker:              s.Config.Broker,
			Port:                s.Config.Port,
			SSID:                s.Config.SSID,
			TopicPrimary:        s.Config.TopicPrimary,
			TopicSecondary:      s.Config.TopicSecondary,
			RefreshMins:         s.Config.RefreshMins,
			AlertMinutes:        s.Config.AlertMinutes,
			AlertEarliestHour:   s.Config.AlertEarliestHour,
			BacklightBrightness: s.Config.BacklightBrightness,
			Timezone:            s.Config.Timezone,
			HTTPAddr:            s.Config.HTTPAddr,
		},
	}
	if !s.LastPrimary.IsZero() {
		inner.Events.LastPrimary = s.LastPrimary.Format(time.RFC3339)
	}
	if !s.LastSecondary.IsZero() {
		inner.Events.LastSecondary = s.LastSecondary.Format(time.RFC3339)
	}

	out, err := json.Marshal(StatusJSON{Status: inner})
	if err != nil {
		// Snapshot contains only marshalable types.
		return []byte(`{"status":{}}`)
	}
	return out
}
