package api

// FixRequest is the JSON body for POST /api/v1/fix: one GPS fix plus the
// current device heading in the world-frame convention.
type FixRequest struct {
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	AccuracyMeters float64 `json:"accuracy_m"`
	HeadingDeg     float64 `json:"heading_deg"`
}

// GuidanceResponse is what the client applies to its overlay.
type GuidanceResponse struct {
	Target       string       `json:"target"` // "none", "marker" or "path"
	TargetIndex  int          `json:"target_index"`
	AngleDeg     float64      `json:"angle_deg"`
	Apply        bool         `json:"apply"`
	Hidden       bool         `json:"hidden"`
	DistanceText string       `json:"distance_text,omitempty"`
	Closest      *ClosestJSON `json:"closest,omitempty"`
}

// ClosestJSON is the closest point on the active path.
type ClosestJSON struct {
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	SegmentIndex   int     `json:"segment_index"`
	DistanceMeters float64 `json:"distance_m"`
}

// TargetRequest is the JSON body for POST /api/v1/target.
type TargetRequest struct {
	Kind  string `json:"kind"` // "marker", "path" or "none"
	Index int    `json:"index"`
}

// PathJSON summarizes one loaded path.
type PathJSON struct {
	Index       int     `json:"index"`
	ID          string  `json:"id"`
	Name        string  `json:"name,omitempty"`
	TotalMeters float64 `json:"total_m"`
	NumPoints   int     `json:"num_points"`
}

// MarkerJSON is one marker in the list response.
type MarkerJSON struct {
	Index int     `json:"index"`
	ID    string  `json:"id"`
	Label string  `json:"label,omitempty"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

// ErrorResponse is the JSON response for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// StatsResponse is the JSON response for GET /api/v1/stats.
type StatsResponse struct {
	NumPaths   int     `json:"num_paths"`
	NumMarkers int     `json:"num_markers"`
	TotalKm    float64 `json:"total_km"`
}

// HealthResponse is the JSON response for GET /api/v1/health.
type HealthResponse struct {
	Status string `json:"status"`
}
