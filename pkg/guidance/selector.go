package guidance

// TargetKind tags the active navigation target.
type TargetKind int

const (
	// TargetNone means no guidance is shown.
	TargetNone TargetKind = iota
	// TargetMarker steers toward a fixed marker by store index.
	TargetMarker
	// TargetPath steers toward the live closest point on a path by index.
	TargetPath
)

func (k TargetKind) String() string {
	switch k {
	case TargetMarker:
		return "marker"
	case TargetPath:
		return "path"
	default:
		return "none"
	}
}

// Selector is the target selection state machine. Exactly one target is
// active at a time; every transition is atomic, and the Navigator resets the
// throttle state whenever Select* reports a change. Blending two targets is
// forbidden by construction: the selector stores one kind and one index.
type Selector struct {
	kind      TargetKind
	markerIdx int
	pathIdx   int
}

// Kind returns the active target kind.
func (s *Selector) Kind() TargetKind { return s.kind }

// MarkerIndex returns the active marker index; valid only when Kind is
// TargetMarker.
func (s *Selector) MarkerIndex() int { return s.markerIdx }

// PathIndex returns the active path index; valid only when Kind is
// TargetPath.
func (s *Selector) PathIndex() int { return s.pathIdx }

// SelectMarker activates a fixed marker target. Reports whether the active
// target changed.
func (s *Selector) SelectMarker(i int) bool {
	if s.kind == TargetMarker && s.markerIdx == i {
		return false
	}
	s.kind = TargetMarker
	s.markerIdx = i
	return true
}

// SelectPath activates path-following. Reports whether the active target
// changed.
func (s *Selector) SelectPath(i int) bool {
	if s.kind == TargetPath && s.pathIdx == i {
		return false
	}
	s.kind = TargetPath
	s.pathIdx = i
	return true
}

// Clear deactivates the current target. Reports whether anything was active.
func (s *Selector) Clear() bool {
	if s.kind == TargetNone {
		return false
	}
	s.kind = TargetNone
	return true
}
