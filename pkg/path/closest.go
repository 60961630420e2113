package path

import (
	"math"

	"trail_guide/pkg/geo"
)

// ClosestResult is a point snapped onto a path. Transient: recomputed on
// every query, no identity across calls.
type ClosestResult struct {
	Point          geo.Point
	SegmentIndex   int // 0 <= SegmentIndex < NumSegments()
	DistanceMeters float64
}

// ClosestPoint returns the point on the path nearest to pos, scanning every
// segment. Returns nil for a nil path (the per-frame caller treats that as
// "nothing to do", not an error).
//
// The scan is deliberately O(n) with no spatial index: guidance paths are
// tens to low hundreds of vertices and queried once per GPS fix, so an index
// would add build cost for no measurable win. Ties go to the lowest segment
// index.
func ClosestPoint(pos geo.Point, p *Path) *ClosestResult {
	if p == nil || len(p.coords) < 2 {
		return nil
	}

	best := ClosestResult{DistanceMeters: math.Inf(1)}

	for i := 0; i < len(p.coords)-1; i++ {
		proj, _ := geo.ProjectOntoSegment(pos, p.coords[i], p.coords[i+1])
		d := geo.Distance(pos, proj)
		if d < best.DistanceMeters {
			best = ClosestResult{Point: proj, SegmentIndex: i, DistanceMeters: d}
		}
	}

	return &best
}
