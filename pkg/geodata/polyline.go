package geodata

import (
	"fmt"

	"github.com/twpayne/go-polyline"

	"trail_guide/pkg/geo"
	"trail_guide/pkg/path"
)

// LoadPolyline decodes a Google encoded polyline into a path.
func LoadPolyline(encoded, id, name string) (*path.Path, error) {
	if encoded == "" {
		return nil, fmt.Errorf("empty polyline")
	}

	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode polyline: %w", err)
	}

	pts := make([]geo.Point, len(coords))
	for i, c := range coords {
		if err := validateLonLat(c[1], c[0]); err != nil {
			return nil, fmt.Errorf("polyline point %d: %w", i, err)
		}
		pts[i] = geo.Point{Lat: c[0], Lon: c[1]}
	}
	return path.New(id, name, pts)
}
