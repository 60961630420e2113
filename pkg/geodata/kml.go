package geodata

import (
	"fmt"
	"io"

	kml "github.com/twpayne/go-kml/v2"
)

// WriteKML renders the set as a KML document (one LineString placemark per
// path, one Point placemark per marker) for map overlays and debugging.
func WriteKML(w io.Writer, set *Set) error {
	children := []kml.Element{kml.Name("trail_guide export")}

	for _, p := range set.Paths {
		coords := make([]kml.Coordinate, p.NumPoints())
		for i, c := range p.Coords() {
			coords[i] = kml.Coordinate{Lon: c.Lon, Lat: c.Lat}
		}
		name := p.Name
		if name == "" {
			name = p.ID
		}
		children = append(children, kml.Placemark(
			kml.Name(name),
			kml.Description(fmt.Sprintf("%.0f m", p.TotalMeters())),
			kml.LineString(kml.Coordinates(coords...)),
		))
	}

	for _, m := range set.Markers {
		name := m.Label
		if name == "" {
			name = m.ID
		}
		children = append(children, kml.Placemark(
			kml.Name(name),
			kml.Point(kml.Coordinates(kml.Coordinate{Lon: m.Point.Lon, Lat: m.Point.Lat})),
		))
	}

	return kml.KML(kml.Document(children...)).WriteIndent(w, "", "  ")
}
