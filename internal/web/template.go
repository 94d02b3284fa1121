package web

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/sweeney/stopwatch-display/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"eventTime": func(t time.Time) string {
		if t.IsZero() {
			return "none this session"
		}
		return t.Format("2006-01-02 15:04:05 MST")
	},
	"textOrBlank": func(s string) string {
		if s == "" {
			return "(blank)"
		}
		return s
	},
	"lower": strings.ToLower,
	"connClass": func(c status.ConnState) string {
		return strings.ToLower(string(c))
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Stopwatch Display</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.displayed { font-size: 2.2em; letter-spacing: 0.05em; }
.alert { color: green; font-weight: bold; }
.backlight { color: #888; font-weight: bold; }
.connected { color: green; }
.disconnected, .fatal { color: red; }
.reconnecting { color: orange; }
footer { color: #888; font-size: 0.9em; }
</style>
<meta http-equiv="refresh" content="10">
</head>
<body>
<h1>Stopwatch Display</h1>

<p class="displayed">{{textOrBlank .DisplayText}}</p>

<table>
<tr><th>Indicator</th><td class="{{.Indicator | lower}}">{{.Indicator}}</td></tr>
<tr><th>Broker</th><td class="{{.Conn | connClass}}">{{.Conn}} ({{.Config.Broker}}:{{.Config.Port}})</td></tr>
<tr><th>Last reference</th><td>{{eventTime .LastPrimary}}</td></tr>
<tr><th>Last synthetic now</th><td>{{eventTime .LastSecondary}}</td></tr>
<tr><th>Messages</th><td>{{.PrimaryCount}} primary / {{.SecondaryCount}} secondary / {{.IgnoredCount}} ignored</td></tr>
<tr><th>Session restarts</th><td>{{.Restarts}}</td></tr>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
</table>

<table>
{{if .Config.SSID}}<tr><th>WiFi SSID</th><td>{{.Config.SSID}}</td></tr>{{end}}
<tr><th>Topic (reference)</th><td>{{.Config.TopicPrimary}}</td></tr>
{{if .Config.TopicSecondary}}<tr><th>Topic (now)</th><td>{{.Config.TopicSecondary}}</td></tr>{{end}}
<tr><th>Refresh interval</th><td>{{.Config.RefreshMins}} min</td></tr>
<tr><th>Alert threshold</th><td>{{.Config.AlertMinutes}} min (earliest hour {{.Config.AlertEarliestHour}})</td></tr>
<tr><th>Backlight brightness</th><td>{{printf "%.2f" .Config.BacklightBrightness}}</td></tr>
<tr><th>Timezone</th><td>{{.Config.Timezone}}</td></tr>
</table>

<footer>Generated {{.Now.Format "2006-01-02 15:04:05"}} &middot; <a href="/index.json">JSON</a></footer>
</body>
</html>
`

// renderHTML writes the status page for the given snapshot.
func renderHTML(w io.Writer, snap status.Snapshot) {
	indexTmpl.Execute(w, snap)
}
