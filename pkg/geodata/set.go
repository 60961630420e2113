// Package geodata is the ingestion and export boundary: it parses external
// path/marker formats into the normalized model and validates coordinate
// ranges, so the core math never sees out-of-range input.
package geodata

import (
	"fmt"

	"trail_guide/pkg/marker"
	"trail_guide/pkg/path"
)

// Set is the normalized result of loading a data source.
type Set struct {
	Paths   []*path.Path
	Markers []marker.Marker
}

// validateLonLat rejects coordinates outside WGS84 ranges. Ingestion is the
// only place this check runs; everything downstream assumes valid input.
func validateLonLat(lon, lat float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %f outside [-90, 90]", lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("longitude %f outside [-180, 180]", lon)
	}
	return nil
}
