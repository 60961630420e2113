package guidance

import (
	"math"
	"time"
)

// State is the mutable throttling/visibility state for the current target.
// It never survives a target switch.
type State struct {
	// LastUpdate is when an angle was last applied; zero before the first.
	LastUpdate time.Time
	// LastAppliedDeg is the last applied steering angle; NaN when unset.
	LastAppliedDeg float64
	// HiddenByProximity reports whether the indicator is hidden because the
	// user is on target.
	HiddenByProximity bool
	// LastDistanceCheck is when proximity was last evaluated.
	LastDistanceCheck time.Time
	// LastDistanceMeters is the distance seen at that check; NaN when unknown.
	LastDistanceMeters float64
}

// NewState returns a reset State with sentinel values in place.
func NewState() State {
	return State{
		LastAppliedDeg:     math.NaN(),
		LastDistanceMeters: math.NaN(),
	}
}

// Reset clears the state back to its initial sentinels.
func (s *State) Reset() {
	*s = NewState()
}

// HasAppliedAngle reports whether any angle has been applied yet.
func (s *State) HasAppliedAngle() bool {
	return !math.IsNaN(s.LastAppliedDeg)
}
