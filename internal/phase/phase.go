package phase

import (
	"math"
	"strings"
	"time"
)

// Canonical is one of the eight lunar-phase buckets. All equality
// comparisons between catalog entries and a target phase go through
// Normalize first so flexible labels like "Waning Gibbous Moon" and
// "waning gibbous" land in the same bucket.
type Canonical string

const (
	New            Canonical = "new"
	WaxingCrescent Canonical = "waxing crescent"
	FirstQuarter   Canonical = "first quarter"
	WaxingGibbous  Canonical = "waxing gibbous"
	Full           Canonical = "full"
	WaningGibbous  Canonical = "waning gibbous"
	LastQuarter    Canonical = "last quarter"
	WaningCrescent Canonical = "waning crescent"
)

// Normalize maps a free-text phase label to its canonical bucket.
// An unrecognized label comes back lower-cased and trimmed rather than
// as an error, so downstream equality checks simply never match.
// The rule order is load-bearing: "waning crescent" has to survive the
// earlier checks untouched, and "third quarter" is an alias for the
// last quarter.
func Normalize(label string) Canonical {
	p := strings.ToLower(label)
	p = strings.ReplaceAll(p, "moon", "")
	p = strings.TrimSpace(p)

	switch {
	case strings.Contains(p, "new"):
		return New
	case strings.Contains(p, "waxing crescent"):
		return WaxingCrescent
	case strings.Contains(p, "first"):
		return FirstQuarter
	case strings.Contains(p, "waxing gibbous"):
		return WaxingGibbous
	case strings.Contains(p, "full"):
		return Full
	case strings.Contains(p, "waning gibbous"):
		return WaningGibbous
	case strings.Contains(p, "last"), strings.Contains(p, "third"):
		return LastQuarter
	case strings.Contains(p, "waning crescent"):
		return WaningCrescent
	}
	return Canonical(p)
}

var displayNames = map[string]string{
	"NEW_MOON":        "New Moon",
	"WAXING_CRESCENT": "Waxing Crescent",
	"FIRST_QUARTER":   "First Quarter",
	"WAXING_GIBBOUS":  "Waxing Gibbous",
	"FULL_MOON":       "Full Moon",
	"WANING_GIBBOUS":  "Waning Gibbous",
	"LAST_QUARTER":    "Last Quarter",
	"THIRD_QUARTER":   "Last Quarter", // alias
	"WANING_CRESCENT": "Waning Crescent",
}

// DisplayName formats a raw phase label from the astronomy service
// ("WAXING_GIBBOUS") for display. Empty input is shown as "Unknown";
// an unmapped label passes through unchanged.
func DisplayName(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "Unknown"
	}
	key := strings.ToUpper(strings.Join(strings.Fields(trimmed), "_"))
	if name, ok := displayNames[key]; ok {
		return name
	}
	return raw
}

// Emoji returns the moon glyph for a phase label, with a generic moon
// for anything Normalize cannot place.
func Emoji(label string) string {
	switch Normalize(label) {
	case New:
		return "🌑"
	case WaxingCrescent:
		return "🌒"
	case FirstQuarter:
		return "🌓"
	case WaxingGibbous:
		return "🌔"
	case Full:
		return "🌕"
	case WaningGibbous:
		return "🌖"
	case LastQuarter:
		return "🌗"
	case WaningCrescent:
		return "🌘"
	}
	return "🌙"
}

// ForDate guesses the phase for a calendar date by taking the day of
// month against the synodic month. Crude, but it keeps the
// recommendation flow working when no astronomy service is configured.
func ForDate(t time.Time) string {
	d := math.Mod(float64(t.Day()), 29.53)
	switch {
	case d < 1:
		return "New Moon"
	case d < 7:
		return "Waxing Crescent Moon"
	case d < 10:
		return "First Quarter"
	case d < 14:
		return "Waxing Gibbous Moon"
	case d < 16:
		return "Full Moon"
	case d < 22:
		return "Waning Gibbous Moon"
	case d < 25:
		return "Last Quarter"
	}
	return "Waning Crescent Moon"
}
