// Package format renders distances and walking times for the guidance
// overlay. It produces plain values with a period decimal separator; locale
// handling belongs to the presentation layer.
package format

import (
	"fmt"
	"math"
)

// Mode selects what the overlay shows for a distance.
type Mode int

const (
	// ModeDistance shows meters below 1 km, kilometers with one decimal above.
	ModeDistance Mode = iota
	// ModeMinutes shows estimated walking time.
	ModeMinutes
	// ModeBoth shows distance with walking time in parentheses.
	ModeBoth
)

// Unit switch point between meters and kilometers.
const unitSwitchMeters = 1000.0

// DefaultWalkingSpeedMps is deliberately slower than typical pavement walking
// speed to account for unpaved terrain.
const DefaultWalkingSpeedMps = 1.0

// Formatter renders distance strings using a configured walking speed.
type Formatter struct {
	walkingSpeedMps float64
}

// New returns a Formatter. A non-positive speed falls back to the default.
func New(walkingSpeedMps float64) Formatter {
	if walkingSpeedMps <= 0 {
		walkingSpeedMps = DefaultWalkingSpeedMps
	}
	return Formatter{walkingSpeedMps: walkingSpeedMps}
}

// Distance renders a metric distance in the given mode.
// Below 1000 m: whole meters. At or above: kilometers with exactly one
// decimal digit.
func (f Formatter) Distance(meters float64, mode Mode) string {
	switch mode {
	case ModeMinutes:
		return fmt.Sprintf("%d min", f.Minutes(meters))
	case ModeBoth:
		return fmt.Sprintf("%s (%d min)", f.distanceOnly(meters), f.Minutes(meters))
	default:
		return f.distanceOnly(meters)
	}
}

func (f Formatter) distanceOnly(meters float64) string {
	if meters < unitSwitchMeters {
		return fmt.Sprintf("%d m", int(math.Round(meters)))
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}

// Minutes converts a distance into estimated walking minutes, never below 1
// so the overlay never shows "0 min".
func (f Formatter) Minutes(meters float64) int {
	m := int(math.Round(meters / f.walkingSpeedMps / 60))
	if m < 1 {
		m = 1
	}
	return m
}

// PathProgress renders the overlay text while following a path. Off-path it
// shows the distance to the path first, then the along-path remainder; once
// the user counts as on-path the first number collapses away.
func (f Formatter) PathProgress(toPathMeters, remainingMeters float64, onPath bool, mode Mode) string {
	remaining := fmt.Sprintf("%s left", f.Distance(remainingMeters, mode))
	if onPath {
		return remaining
	}
	return fmt.Sprintf("%s to path, %s", f.distanceOnly(toPathMeters), remaining)
}
