// Package path holds the navigation path model and the closest-point query
// that path-following guidance is built on.
package path

import (
	"errors"
	"fmt"

	"trail_guide/pkg/geo"
)

// ErrTooShort is returned when a path has fewer than 2 coordinates.
var ErrTooShort = errors.New("path needs at least 2 coordinates")

// Path is an ordered polyline of connected segments. Construct with New;
// the coordinate slice and derived lengths must not be mutated afterwards.
// A changed path is a new Path.
type Path struct {
	ID   string
	Name string

	coords []geo.Point
	segLen []float64 // segLen[i] = meters between coords[i] and coords[i+1]
	cumLen []float64 // cumLen[i] = meters from start to coords[i]
	total  float64
}

// New validates the coordinates and derives per-segment and cumulative
// lengths once, so later queries never recompute them.
func New(id, name string, coords []geo.Point) (*Path, error) {
	if len(coords) < 2 {
		return nil, fmt.Errorf("path %q: %w", id, ErrTooShort)
	}

	p := &Path{
		ID:     id,
		Name:   name,
		coords: append([]geo.Point(nil), coords...),
		segLen: make([]float64, len(coords)-1),
		cumLen: make([]float64, len(coords)),
	}

	for i := 0; i < len(p.coords)-1; i++ {
		d := geo.Distance(p.coords[i], p.coords[i+1])
		p.segLen[i] = d
		p.cumLen[i+1] = p.cumLen[i] + d
	}
	p.total = p.cumLen[len(p.cumLen)-1]

	return p, nil
}

// Coords returns the ordered vertices. Callers must not modify the slice.
func (p *Path) Coords() []geo.Point { return p.coords }

// NumPoints returns the vertex count.
func (p *Path) NumPoints() int { return len(p.coords) }

// NumSegments returns the segment count (vertices - 1).
func (p *Path) NumSegments() int { return len(p.segLen) }

// Segment returns the endpoints of segment i.
func (p *Path) Segment(i int) (from, to geo.Point) {
	return p.coords[i], p.coords[i+1]
}

// SegmentLength returns the length in meters of segment i.
func (p *Path) SegmentLength(i int) float64 { return p.segLen[i] }

// TotalMeters returns the full polyline length in meters.
func (p *Path) TotalMeters() float64 { return p.total }

// RemainingMeters returns the along-path distance in meters from a point on
// segment seg to the path's end. The point is assumed to lie on that segment
// (typically a ClosestResult).
func (p *Path) RemainingMeters(seg int, at geo.Point) float64 {
	if seg < 0 || seg >= len(p.segLen) {
		return 0
	}
	walked := p.cumLen[seg] + geo.Distance(p.coords[seg], at)
	rem := p.total - walked
	if rem < 0 {
		return 0
	}
	return rem
}
