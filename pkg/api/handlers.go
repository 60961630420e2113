package api

import (
	"encoding/json"
	"errors"
	"math"
	"mime"
	"net/http"
	"sync"
	"time"

	"trail_guide/pkg/format"
	"trail_guide/pkg/geo"
	"trail_guide/pkg/guidance"
)

// Handlers holds the HTTP handlers and their dependencies. The Navigator is
// single-threaded by design, so every handler serializes on mu.
type Handlers struct {
	mu   sync.Mutex
	nav  *guidance.Navigator
	mode format.Mode
	now  func() time.Time
}

// NewHandlers creates handlers around the given navigator.
func NewHandlers(nav *guidance.Navigator, mode format.Mode) *Handlers {
	return &Handlers{nav: nav, mode: mode, now: time.Now}
}

// HandleFix handles POST /api/v1/fix: ingest a fix plus heading, return the
// guidance values for the overlay.
func (h *Handlers) HandleFix(w http.ResponseWriter, r *http.Request) {
	// Enforce Content-Type.
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	var req FixRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1024)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	if err := validateCoord(req.Lat, req.Lon); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_coordinates", "position")
		return
	}
	if math.IsNaN(req.HeadingDeg) || math.IsInf(req.HeadingDeg, 0) {
		writeError(w, http.StatusBadRequest, "invalid_heading", "heading_deg")
		return
	}

	h.mu.Lock()
	now := h.now()
	h.nav.OnPositionFix(now, guidance.Fix{
		Point:          geo.Point{Lat: req.Lat, Lon: req.Lon},
		AccuracyMeters: req.AccuracyMeters,
	})
	upd := h.nav.OnRenderTick(now, req.HeadingDeg)
	kind, idx := h.nav.Target()
	text := h.nav.DistanceText(h.mode)
	closest := h.nav.Closest()
	h.mu.Unlock()

	resp := GuidanceResponse{
		Target:       kind.String(),
		TargetIndex:  idx,
		AngleDeg:     upd.AngleDeg,
		Apply:        upd.Apply,
		Hidden:       upd.Hidden,
		DistanceText: text,
	}
	if math.IsNaN(resp.AngleDeg) {
		resp.AngleDeg = 0 // no angle applied yet; JSON has no NaN
	}
	if closest != nil {
		resp.Closest = &ClosestJSON{
			Lat:            closest.Point.Lat,
			Lon:            closest.Point.Lon,
			SegmentIndex:   closest.SegmentIndex,
			DistanceMeters: closest.DistanceMeters,
		}
	}

	writeJSON(w, resp)
}

// HandleTarget handles POST /api/v1/target: explicit target selection.
func (h *Handlers) HandleTarget(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	var req TargetRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1024)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	h.mu.Lock()
	var err error
	switch req.Kind {
	case "marker":
		err = h.nav.SelectMarker(req.Index)
	case "path":
		err = h.nav.SelectPath(req.Index)
	case "none":
		h.nav.ClearTarget()
	default:
		h.mu.Unlock()
		writeError(w, http.StatusBadRequest, "invalid_target_kind", "kind")
		return
	}
	kind, idx := h.nav.Target()
	h.mu.Unlock()

	if err != nil {
		if errors.Is(err, guidance.ErrNoSuchMarker) || errors.Is(err, guidance.ErrNoSuchPath) {
			writeError(w, http.StatusNotFound, "target_not_found", "index")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}

	writeJSON(w, TargetRequest{Kind: kind.String(), Index: idx})
}

// HandlePaths handles GET /api/v1/paths.
func (h *Handlers) HandlePaths(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	paths := h.nav.Paths()
	h.mu.Unlock()

	out := make([]PathJSON, len(paths))
	for i, p := range paths {
		out[i] = PathJSON{
			Index:       i,
			ID:          p.ID,
			Name:        p.Name,
			TotalMeters: p.TotalMeters(),
			NumPoints:   p.NumPoints(),
		}
	}
	writeJSON(w, out)
}

// HandleMarkers handles GET /api/v1/markers.
func (h *Handlers) HandleMarkers(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	markers := h.nav.Markers().All()
	h.mu.Unlock()

	out := make([]MarkerJSON, len(markers))
	for i, m := range markers {
		out[i] = MarkerJSON{
			Index: i,
			ID:    m.ID,
			Label: m.Label,
			Lat:   m.Point.Lat,
			Lon:   m.Point.Lon,
		}
	}
	writeJSON(w, out)
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	paths := h.nav.Paths()
	numMarkers := h.nav.Markers().Len()
	h.mu.Unlock()

	var totalMeters float64
	for _, p := range paths {
		totalMeters += p.TotalMeters()
	}
	writeJSON(w, StatsResponse{
		NumPaths:   len(paths),
		NumMarkers: numMarkers,
		TotalKm:    totalMeters / 1000,
	})
}

func validateCoord(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return errors.New("coordinates must be finite numbers")
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return errors.New("coordinates out of range")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, field string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: code, Field: field})
}
