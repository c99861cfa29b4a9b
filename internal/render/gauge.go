package render

import (
	"strings"

	"github.com/hostdeck/hostdeck/internal/sampler"
)

// GaugeSlots is the fixed width of every bar gauge.
const GaugeSlots = 40

// Gauge renders a percentage as a fixed-width bar. The percentage is
// clamped before the slot math so a skewed source value can never
// overflow the bar.
func Gauge(pct, warn, crit int) string {
	pct = sampler.ClampPercent(pct)
	filled := pct * GaugeSlots / 100

	style := bandStyle(pct, warn, crit)
	bar := style.Render(strings.Repeat("█", filled)) +
		styleMuted.Render(strings.Repeat("░", GaugeSlots-filled))
	return "[" + bar + "]"
}
