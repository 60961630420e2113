package guidance

import (
	"math"
	"time"

	"trail_guide/pkg/geo"
)

// Throttle gates how often steering angles and visibility changes reach the
// indicator. It exists to rate-limit the render tick against the much lower
// rate of meaningful change, not to protect shared memory; all use is
// single-goroutine within the Navigator.
type Throttle struct {
	cfg   Config
	state State
}

// NewThrottle returns a throttle with fresh state.
func NewThrottle(cfg Config) *Throttle {
	return &Throttle{cfg: cfg.withDefaults(), state: NewState()}
}

// Apply decides whether a freshly computed angle should rotate the indicator
// now. Two gates, both required:
//   - at most one applied angle per MinUpdateInterval
//   - the shortest-arc delta from the last applied angle must exceed
//     MinAngleChangeDeg
//
// The first ever angle always applies. Returns the angle and whether to act.
func (t *Throttle) Apply(now time.Time, angleDeg float64) (float64, bool) {
	s := &t.state

	if !s.LastUpdate.IsZero() && now.Sub(s.LastUpdate) < t.cfg.MinUpdateInterval {
		return s.LastAppliedDeg, false
	}

	if s.HasAppliedAngle() {
		delta := math.Abs(geo.NormalizeAngleDeg(angleDeg - s.LastAppliedDeg))
		if delta <= t.cfg.MinAngleChangeDeg {
			return s.LastAppliedDeg, false
		}
	}

	s.LastUpdate = now
	s.LastAppliedDeg = angleDeg
	return angleDeg, true
}

// CheckProximity re-evaluates the hide/show hysteresis for a new distance to
// the target. Checks are themselves throttled to DistanceCheckInterval. The
// thresholds are asymmetric on purpose: once hidden, the indicator only
// returns past hide+margin, so a user hovering at the boundary never sees it
// flicker. Returns the current hidden flag and whether it just changed.
func (t *Throttle) CheckProximity(now time.Time, distanceMeters float64) (hidden, changed bool) {
	s := &t.state

	if !s.LastDistanceCheck.IsZero() && now.Sub(s.LastDistanceCheck) < t.cfg.DistanceCheckInterval {
		return s.HiddenByProximity, false
	}
	s.LastDistanceCheck = now
	s.LastDistanceMeters = distanceMeters

	hideAt := t.cfg.HideDistanceMeters
	showAt := hideAt + t.cfg.ShowDistanceMargin

	switch {
	case !s.HiddenByProximity && distanceMeters < hideAt:
		s.HiddenByProximity = true
		return true, true
	case s.HiddenByProximity && distanceMeters > showAt:
		s.HiddenByProximity = false
		return false, true
	}
	return s.HiddenByProximity, false
}

// Hidden reports the current proximity-visibility state.
func (t *Throttle) Hidden() bool { return t.state.HiddenByProximity }

// State returns a copy of the internal state for inspection.
func (t *Throttle) State() State { return t.state }

// Reset clears all throttling state. Called on every target switch so stale
// decisions from the previous target never leak into the new one.
func (t *Throttle) Reset() {
	t.state.Reset()
}
