package geodata

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"trail_guide/pkg/geo"
	"trail_guide/pkg/marker"
	"trail_guide/pkg/path"
)

// LoadGeoJSON parses a GeoJSON FeatureCollection: LineString and
// MultiLineString features become paths, Point features become markers.
// Other geometry types are skipped. Any out-of-range coordinate fails the
// whole load.
func LoadGeoJSON(data []byte) (*Set, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse GeoJSON: %w", err)
	}

	set := &Set{}
	for i, f := range fc.Features {
		name := f.Properties.MustString("name", "")

		switch g := f.Geometry.(type) {
		case orb.Point:
			if err := validateLonLat(g.Lon(), g.Lat()); err != nil {
				return nil, fmt.Errorf("feature %d: %w", i, err)
			}
			set.Markers = append(set.Markers, marker.Marker{
				ID:    featureID(f, i, "marker"),
				Label: name,
				Point: geo.Point{Lat: g.Lat(), Lon: g.Lon()},
			})

		case orb.LineString:
			p, err := lineToPath(featureID(f, i, "path"), name, g)
			if err != nil {
				return nil, fmt.Errorf("feature %d: %w", i, err)
			}
			set.Paths = append(set.Paths, p)

		case orb.MultiLineString:
			for j, ls := range g {
				id := fmt.Sprintf("%s-%d", featureID(f, i, "path"), j)
				p, err := lineToPath(id, name, ls)
				if err != nil {
					return nil, fmt.Errorf("feature %d line %d: %w", i, j, err)
				}
				set.Paths = append(set.Paths, p)
			}
		}
	}
	return set, nil
}

func lineToPath(id, name string, ls orb.LineString) (*path.Path, error) {
	coords := make([]geo.Point, len(ls))
	for i, pt := range ls {
		if err := validateLonLat(pt.Lon(), pt.Lat()); err != nil {
			return nil, err
		}
		coords[i] = geo.Point{Lat: pt.Lat(), Lon: pt.Lon()}
	}
	return path.New(id, name, coords)
}

// featureID prefers an explicit feature ID or "id" property, falling back to
// a positional one.
func featureID(f *geojson.Feature, i int, kind string) string {
	if f.ID != nil {
		return fmt.Sprintf("%v", f.ID)
	}
	if id := f.Properties.MustString("id", ""); id != "" {
		return id
	}
	return fmt.Sprintf("%s-%d", kind, i)
}
