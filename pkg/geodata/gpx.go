package geodata

import (
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"trail_guide/pkg/geo"
	"trail_guide/pkg/marker"
	"trail_guide/pkg/path"
)

// gpxFile models the subset of GPX 1.1 this system consumes: tracks, routes,
// and waypoints. Extensions and metadata are ignored.
type gpxFile struct {
	XMLName   xml.Name   `xml:"gpx"`
	Waypoints []gpxPoint `xml:"wpt"`
	Routes    []gpxRoute `xml:"rte"`
	Tracks    []gpxTrack `xml:"trk"`
}

type gpxTrack struct {
	Name     string       `xml:"name"`
	Segments []gpxSegment `xml:"trkseg"`
}

type gpxSegment struct {
	Points []gpxPoint `xml:"trkpt"`
}

type gpxRoute struct {
	Name   string     `xml:"name"`
	Points []gpxPoint `xml:"rtept"`
}

type gpxPoint struct {
	Lat  float64   `xml:"lat,attr"`
	Lon  float64   `xml:"lon,attr"`
	Name string    `xml:"name"`
	Time time.Time `xml:"time"`
}

// LoadGPX parses a GPX document. Each track segment and each route becomes
// its own path (segments may have gaps between them, so they are never
// stitched together); waypoints become markers.
func LoadGPX(r io.Reader) (*Set, error) {
	var g gpxFile
	if err := xml.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("parse GPX: %w", err)
	}

	set := &Set{}

	for wi, w := range g.Waypoints {
		if err := validateLonLat(w.Lon, w.Lat); err != nil {
			return nil, fmt.Errorf("wpt %d: %w", wi, err)
		}
		set.Markers = append(set.Markers, marker.Marker{
			ID:    fmt.Sprintf("wpt-%d", wi),
			Label: w.Name,
			Point: geo.Point{Lat: w.Lat, Lon: w.Lon},
		})
	}

	for ri, rte := range g.Routes {
		p, err := pointsToPath(fmt.Sprintf("rte-%d", ri), rte.Name, rte.Points)
		if err != nil {
			return nil, fmt.Errorf("rte %d: %w", ri, err)
		}
		set.Paths = append(set.Paths, p)
	}

	for ti, trk := range g.Tracks {
		for si, seg := range trk.Segments {
			if len(seg.Points) == 0 {
				continue
			}
			id := fmt.Sprintf("trk-%d-seg-%d", ti, si)
			p, err := pointsToPath(id, trk.Name, seg.Points)
			if err != nil {
				return nil, fmt.Errorf("trk %d seg %d: %w", ti, si, err)
			}
			set.Paths = append(set.Paths, p)
		}
	}

	return set, nil
}

func pointsToPath(id, name string, pts []gpxPoint) (*path.Path, error) {
	coords := make([]geo.Point, len(pts))
	for i, pt := range pts {
		if err := validateLonLat(pt.Lon, pt.Lat); err != nil {
			return nil, err
		}
		coords[i] = geo.Point{Lat: pt.Lat, Lon: pt.Lon}
	}
	return path.New(id, name, coords)
}

// TrackPoint is one timestamped point of a recorded GPX track, used to
// replay a walk as a fix stream.
type TrackPoint struct {
	Point geo.Point
	Time  time.Time
}

// TrackPoints flattens all track points of a GPX document in document order,
// for fix replay.
func TrackPoints(r io.Reader) ([]TrackPoint, error) {
	var g gpxFile
	if err := xml.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("parse GPX: %w", err)
	}

	var out []TrackPoint
	for _, trk := range g.Tracks {
		for _, seg := range trk.Segments {
			for _, pt := range seg.Points {
				if err := validateLonLat(pt.Lon, pt.Lat); err != nil {
					return nil, err
				}
				out = append(out, TrackPoint{
					Point: geo.Point{Lat: pt.Lat, Lon: pt.Lon},
					Time:  pt.Time,
				})
			}
		}
	}
	return out, nil
}
