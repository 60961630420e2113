package guidance

import (
	"errors"
	"time"

	"trail_guide/pkg/format"
	"trail_guide/pkg/geo"
	"trail_guide/pkg/marker"
	"trail_guide/pkg/path"
)

// ErrNoSuchMarker is returned when a marker index is out of range.
var ErrNoSuchMarker = errors.New("no such marker")

// ErrNoSuchPath is returned when a path index is out of range.
var ErrNoSuchPath = errors.New("no such path")

// Fix is one position update from the location provider.
type Fix struct {
	Point          geo.Point
	AccuracyMeters float64
}

// Update is what the rendering layer applies to the directional indicator on
// a render tick. When Apply is false the indicator keeps its previous
// rotation (AngleDeg then carries the last applied angle, or NaN if none).
type Update struct {
	AngleDeg float64
	Apply    bool
	Hidden   bool
}

// Navigator owns the guidance state: the active target, the throttle, the
// last fix, and the live closest-point result while a path is active. All
// methods are intended for a single goroutine (the event/render loop); the
// HTTP layer serializes access itself.
//
// Every computation no-ops cleanly when input is missing (no fix yet, no
// target selected): the navigator runs on every render tick, so returning
// zero values beats making each caller guard against panics.
type Navigator struct {
	cfg     Config
	project geo.Projector
	paths   []*path.Path
	markers *marker.Store
	fmtr    format.Formatter

	sel      Selector
	throttle *Throttle

	hasFix  bool
	pos     geo.Point
	closest *path.ClosestResult // fresh per fix while a path is active
}

// New builds a Navigator over the given path set and marker store. A nil
// marker store is replaced with an empty one.
func New(cfg Config, project geo.Projector, paths []*path.Path, markers *marker.Store) *Navigator {
	cfg = cfg.withDefaults()
	if markers == nil {
		markers = marker.NewStore()
	}
	return &Navigator{
		cfg:      cfg,
		project:  project,
		paths:    paths,
		markers:  markers,
		fmtr:     format.New(cfg.AverageWalkingSpeedMps),
		throttle: NewThrottle(cfg),
	}
}

// Markers returns the marker store.
func (n *Navigator) Markers() *marker.Store { return n.markers }

// Paths returns the loaded path set. Callers must not modify the slice.
func (n *Navigator) Paths() []*path.Path { return n.paths }

// Target returns the active target kind and its index (marker or path).
func (n *Navigator) Target() (TargetKind, int) {
	switch n.sel.Kind() {
	case TargetMarker:
		return TargetMarker, n.sel.MarkerIndex()
	case TargetPath:
		return TargetPath, n.sel.PathIndex()
	default:
		return TargetNone, 0
	}
}

// SelectMarker makes the given marker the active target. Switching targets
// resets the throttle state synchronously.
func (n *Navigator) SelectMarker(i int) error {
	if _, ok := n.markers.At(i); !ok {
		return ErrNoSuchMarker
	}
	if n.sel.SelectMarker(i) {
		n.resetForNewTarget()
	}
	return nil
}

// SelectPath activates path-following on the given path. Switching targets
// resets the throttle state synchronously.
func (n *Navigator) SelectPath(i int) error {
	if i < 0 || i >= len(n.paths) {
		return ErrNoSuchPath
	}
	if n.sel.SelectPath(i) {
		n.resetForNewTarget()
		if n.hasFix {
			n.closest = path.ClosestPoint(n.pos, n.paths[i])
		}
	}
	return nil
}

// ClearTarget deactivates guidance entirely.
func (n *Navigator) ClearTarget() {
	if n.sel.Clear() {
		n.resetForNewTarget()
	}
}

func (n *Navigator) resetForNewTarget() {
	n.throttle.Reset()
	n.closest = nil
}

// OnPositionFix ingests a new GPS fix: refreshes the closest point on the
// active path, re-checks proximity visibility, and, when the auto-activation
// policy is enabled and nothing is selected, activates a path the user has
// walked up to. Explicit selections are never overridden.
func (n *Navigator) OnPositionFix(now time.Time, f Fix) {
	n.pos = f.Point
	n.hasFix = true

	switch n.sel.Kind() {
	case TargetPath:
		n.closest = path.ClosestPoint(n.pos, n.paths[n.sel.PathIndex()])
		if n.closest != nil {
			n.throttle.CheckProximity(now, n.closest.DistanceMeters)
		}
	case TargetNone:
		if n.cfg.AutoActivate {
			n.tryAutoActivate(now)
		}
	}
}

// tryAutoActivate selects the nearest path if its closest point is within
// the activation distance.
func (n *Navigator) tryAutoActivate(now time.Time) {
	bestIdx := -1
	var best *path.ClosestResult
	for i, p := range n.paths {
		res := path.ClosestPoint(n.pos, p)
		if res == nil || res.DistanceMeters > n.cfg.AutoActivateMeters {
			continue
		}
		if best == nil || res.DistanceMeters < best.DistanceMeters {
			best = res
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return
	}
	n.sel.SelectPath(bestIdx)
	n.resetForNewTarget()
	n.closest = best
	n.throttle.CheckProximity(now, best.DistanceMeters)
}

// OnRenderTick evaluates the steering angle for the current heading and runs
// it through the throttle. Called at display refresh rate; heading changes
// continuously even without a new fix.
func (n *Navigator) OnRenderTick(now time.Time, headingDeg float64) Update {
	target, ok := n.TargetPoint()
	if !ok {
		return Update{}
	}

	angle := SteeringAngleDeg(n.pos, target, headingDeg, n.project)
	applied, apply := n.throttle.Apply(now, angle)
	return Update{
		AngleDeg: applied,
		Apply:    apply,
		Hidden:   n.throttle.Hidden(),
	}
}

// TargetPoint resolves the live navigation target: the fixed marker point,
// or the fresh closest point on the active path. False when there is no fix
// or no target yet.
func (n *Navigator) TargetPoint() (geo.Point, bool) {
	if !n.hasFix {
		return geo.Point{}, false
	}
	switch n.sel.Kind() {
	case TargetMarker:
		m, ok := n.markers.At(n.sel.MarkerIndex())
		if !ok {
			return geo.Point{}, false
		}
		return m.Point, true
	case TargetPath:
		if n.closest == nil {
			n.closest = path.ClosestPoint(n.pos, n.paths[n.sel.PathIndex()])
		}
		if n.closest == nil {
			return geo.Point{}, false
		}
		return n.closest.Point, true
	default:
		return geo.Point{}, false
	}
}

// Closest returns a copy of the latest closest-point result, or nil when no
// path is active or no fix has arrived.
func (n *Navigator) Closest() *path.ClosestResult {
	if n.closest == nil {
		return nil
	}
	c := *n.closest
	return &c
}

// Position returns the last fix position.
func (n *Navigator) Position() (geo.Point, bool) {
	return n.pos, n.hasFix
}

// GuidanceState returns a copy of the throttle state for inspection.
func (n *Navigator) GuidanceState() State {
	return n.throttle.State()
}

// DistanceText renders the overlay distance line for the active target.
// Empty when nothing can be computed yet.
func (n *Navigator) DistanceText(mode format.Mode) string {
	if !n.hasFix {
		return ""
	}
	switch n.sel.Kind() {
	case TargetMarker:
		m, ok := n.markers.At(n.sel.MarkerIndex())
		if !ok {
			return ""
		}
		return n.fmtr.Distance(geo.Distance(n.pos, m.Point), mode)
	case TargetPath:
		if n.closest == nil {
			return ""
		}
		p := n.paths[n.sel.PathIndex()]
		remaining := p.RemainingMeters(n.closest.SegmentIndex, n.closest.Point)
		onPath := n.closest.DistanceMeters < n.cfg.HideDistanceMeters
		return n.fmtr.PathProgress(n.closest.DistanceMeters, remaining, onPath, mode)
	default:
		return ""
	}
}

// CompanionMarker returns the marker sitting at the active path's endpoint,
// if one exists within the hide distance. The marker list highlights it while
// the path is active; steering still follows the live closest point.
func (n *Navigator) CompanionMarker() (int, bool) {
	if n.sel.Kind() != TargetPath {
		return 0, false
	}
	p := n.paths[n.sel.PathIndex()]
	coords := p.Coords()
	end := coords[len(coords)-1]

	within := n.markers.WithinRadius(end, n.cfg.HideDistanceMeters)
	if len(within) == 0 {
		return 0, false
	}
	for i := 0; i < n.markers.Len(); i++ {
		if m, ok := n.markers.At(i); ok && m.ID == within[0].ID {
			return i, true
		}
	}
	return 0, false
}
