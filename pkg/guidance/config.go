// Package guidance turns position fixes and a device heading into the values
// the on-screen indicator needs: a steering angle, visibility, and distance
// text. It performs no I/O and no rendering.
package guidance

import "time"

// Config holds the guidance tunables. All thresholds live here, never inline
// in the algorithms.
type Config struct {
	// MinUpdateInterval gates how often a new steering angle may be applied,
	// regardless of sensor rate.
	MinUpdateInterval time.Duration
	// MinAngleChangeDeg suppresses indicator rotations smaller than this.
	MinAngleChangeDeg float64
	// HideDistanceMeters hides the indicator when the distance to the target
	// drops below it.
	HideDistanceMeters float64
	// ShowDistanceMargin is added to HideDistanceMeters to form the show
	// threshold. Must stay positive or the hysteresis collapses into a
	// single flickering threshold.
	ShowDistanceMargin float64
	// DistanceCheckInterval throttles proximity re-checks, independent of
	// the angle throttle.
	DistanceCheckInterval time.Duration
	// AverageWalkingSpeedMps feeds the walking-time formatter.
	AverageWalkingSpeedMps float64
	// AutoActivate enables proximity-based path activation from the
	// no-target state. Off by default; explicit selection always wins.
	AutoActivate bool
	// AutoActivateMeters is the activation distance when AutoActivate is on.
	AutoActivateMeters float64
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		MinUpdateInterval:      50 * time.Millisecond,
		MinAngleChangeDeg:      2,
		HideDistanceMeters:     20,
		ShowDistanceMargin:     5,
		DistanceCheckInterval:  500 * time.Millisecond,
		AverageWalkingSpeedMps: 1.0,
		AutoActivate:           false,
		AutoActivateMeters:     100,
	}
}

// withDefaults fills zero-valued fields so a partially specified config
// behaves sanely.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MinUpdateInterval <= 0 {
		c.MinUpdateInterval = d.MinUpdateInterval
	}
	if c.MinAngleChangeDeg <= 0 {
		c.MinAngleChangeDeg = d.MinAngleChangeDeg
	}
	if c.HideDistanceMeters <= 0 {
		c.HideDistanceMeters = d.HideDistanceMeters
	}
	if c.ShowDistanceMargin <= 0 {
		c.ShowDistanceMargin = d.ShowDistanceMargin
	}
	if c.DistanceCheckInterval <= 0 {
		c.DistanceCheckInterval = d.DistanceCheckInterval
	}
	if c.AverageWalkingSpeedMps <= 0 {
		c.AverageWalkingSpeedMps = d.AverageWalkingSpeedMps
	}
	if c.AutoActivateMeters <= 0 {
		c.AutoActivateMeters = d.AutoActivateMeters
	}
	return c
}
