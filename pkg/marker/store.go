// Package marker keeps the labeled target/rescue markers and answers spatial
// queries against them.
package marker

import (
	"math"
	"sort"
	"sync"

	"github.com/tidwall/rtree"

	"trail_guide/pkg/geo"
)

// Marker is a fixed labeled point (a target pin or rescue point).
type Marker struct {
	ID    string
	Label string
	Point geo.Point
}

// Store holds markers in insertion order (indexes are stable while no marker
// is removed) with an R-tree over lon/lat for nearest and radius queries.
// Safe for concurrent use; the HTTP layer reads it from multiple requests.
type Store struct {
	mu    sync.RWMutex
	items []Marker
	tr    rtree.RTreeG[Marker]
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Add appends a marker and returns its index.
func (s *Store) Add(m Marker) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, m)
	pt := [2]float64{m.Point.Lon, m.Point.Lat}
	s.tr.Insert(pt, pt, m)
	return len(s.items) - 1
}

// Remove deletes the marker with the given ID. Returns the index it occupied
// and whether it existed. Indexes above the removed slot shift down by one.
func (s *Store) Remove(id string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, m := range s.items {
		if m.ID == id {
			pt := [2]float64{m.Point.Lon, m.Point.Lat}
			s.tr.Delete(pt, pt, m)
			s.items = append(s.items[:i], s.items[i+1:]...)
			return i, true
		}
	}
	return 0, false
}

// Len returns the marker count.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// At returns the marker at index i.
func (s *Store) At(i int) (Marker, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.items) {
		return Marker{}, false
	}
	return s.items[i], true
}

// All returns a snapshot of the markers in insertion order.
func (s *Store) All() []Marker {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Marker(nil), s.items...)
}

// Nearest returns the marker closest to pos and its distance in meters.
func (s *Store) Nearest(pos geo.Point) (Marker, float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		found bool
		best  Marker
	)
	// Priority order in degree-scaled planar space is enough to pick the
	// winner; the displayed distance uses haversine.
	cosLat := math.Cos(pos.Lat * math.Pi / 180)
	s.tr.Nearby(
		func(min, max [2]float64, _ Marker, _ bool) float64 {
			dx := axisDist(pos.Lon, min[0], max[0]) * cosLat
			dy := axisDist(pos.Lat, min[1], max[1])
			return dx*dx + dy*dy
		},
		func(_, _ [2]float64, m Marker, _ float64) bool {
			best = m
			found = true
			return false // first item is the nearest
		},
	)
	if !found {
		return Marker{}, 0, false
	}
	return best, geo.Distance(pos, best.Point), true
}

// WithinRadius returns all markers within the given distance of pos, nearest
// first.
func (s *Store) WithinRadius(pos geo.Point, meters float64) []Marker {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if meters <= 0 {
		return nil
	}

	// Bounding box in degrees around pos, then exact haversine filter.
	dLat := meters / 111_320.0
	cosLat := math.Cos(pos.Lat * math.Pi / 180)
	dLon := dLat
	if cosLat > 1e-9 {
		dLon = dLat / cosLat
	}

	type hit struct {
		m Marker
		d float64
	}
	var hits []hit
	s.tr.Search(
		[2]float64{pos.Lon - dLon, pos.Lat - dLat},
		[2]float64{pos.Lon + dLon, pos.Lat + dLat},
		func(_, _ [2]float64, m Marker) bool {
			if d := geo.Distance(pos, m.Point); d <= meters {
				hits = append(hits, hit{m: m, d: d})
			}
			return true
		},
	)

	sort.Slice(hits, func(i, j int) bool { return hits[i].d < hits[j].d })
	out := make([]Marker, len(hits))
	for i, h := range hits {
		out[i] = h.m
	}
	return out
}

// axisDist returns the 1D distance from a value to an interval (0 if inside).
func axisDist(v, lo, hi float64) float64 {
	if v < lo {
		return lo - v
	}
	if v > hi {
		return v - hi
	}
	return 0
}
