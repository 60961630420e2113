package guidance

import (
	"trail_guide/pkg/geo"
)

// SteeringAngleDeg returns the signed angle in (-180, 180] the user must turn
// through to face the target: both points are projected into the AR world
// frame, the world bearing between them is taken, and the current heading
// (already expressed in the same frame by the sensor collaborator) is
// subtracted. Normalization keeps the indicator rotating through the shorter
// arc. Pure function; throttling is the caller's job.
func SteeringAngleDeg(userPos, targetPos geo.Point, headingDeg float64, project geo.Projector) float64 {
	bearing := geo.WorldBearingDeg(project(userPos), project(targetPos))
	return geo.NormalizeAngleDeg(bearing - headingDeg)
}
