package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"trail_guide/pkg/geodata"
	"trail_guide/pkg/marker"
	osmimport "trail_guide/pkg/osm"
	pathpkg "trail_guide/pkg/path"
)

func main() {
	input := flag.String("input", "", "Input file (.geojson, .gpx or .osm.pbf)")
	output := flag.String("output", "pathset.bin", "Output binary path set")
	markersOut := flag.String("markers", "", "Optional output GeoJSON for markers found in the input")
	kmlOut := flag.String("kml", "", "Optional KML export of the imported set (for map preview)")
	bbox := flag.String("bbox", "", "Bounding box filter for PBF input: minLat,minLng,maxLat,maxLng")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: import --input <file.geojson|file.gpx|file.osm.pbf> [--output pathset.bin] [--markers markers.geojson] [--kml preview.kml] [--bbox minLat,minLng,maxLat,maxLng]")
		os.Exit(1)
	}

	start := time.Now()

	set, err := load(*input, *bbox)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", *input, err)
	}
	log.Printf("Loaded %d paths, %d markers", len(set.Paths), len(set.Markers))

	log.Printf("Writing path set to %s...", *output)
	if err := pathpkg.WriteBinary(*output, set.Paths); err != nil {
		log.Fatalf("Failed to write path set: %v", err)
	}

	if *markersOut != "" {
		if err := writeMarkers(*markersOut, set.Markers); err != nil {
			log.Fatalf("Failed to write markers: %v", err)
		}
		log.Printf("Wrote %d markers to %s", len(set.Markers), *markersOut)
	}

	if *kmlOut != "" {
		f, err := os.Create(*kmlOut)
		if err != nil {
			log.Fatalf("Failed to create KML file: %v", err)
		}
		if err := geodata.WriteKML(f, set); err != nil {
			f.Close()
			log.Fatalf("Failed to write KML: %v", err)
		}
		if err := f.Close(); err != nil {
			log.Fatalf("Failed to close KML file: %v", err)
		}
		log.Printf("Wrote KML preview to %s", *kmlOut)
	}

	info, _ := os.Stat(*output)
	log.Printf("Done in %s. Output: %s (%.1f KB)",
		time.Since(start).Round(time.Millisecond), *output, float64(info.Size())/1024)
}

func load(input, bbox string) (*geodata.Set, error) {
	ext := strings.ToLower(filepath.Ext(input))
	switch {
	case ext == ".geojson" || ext == ".json":
		data, err := os.ReadFile(input)
		if err != nil {
			return nil, err
		}
		return geodata.LoadGeoJSON(data)

	case ext == ".gpx":
		f, err := os.Open(input)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return geodata.LoadGPX(f)

	case ext == ".pbf":
		f, err := os.Open(input)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		var opts osmimport.ImportOptions
		if bbox != "" {
			var minLat, minLng, maxLat, maxLng float64
			if _, err := fmt.Sscanf(bbox, "%f,%f,%f,%f", &minLat, &minLng, &maxLat, &maxLng); err != nil {
				return nil, fmt.Errorf("invalid bbox format (expected minLat,minLng,maxLat,maxLng): %w", err)
			}
			opts.BBox = osmimport.BBox{MinLat: minLat, MaxLat: maxLat, MinLng: minLng, MaxLng: maxLng}
			log.Printf("Using bounding box filter: lat [%.4f, %.4f], lng [%.4f, %.4f]", minLat, maxLat, minLng, maxLng)
		}

		paths, err := osmimport.ImportTrails(context.Background(), f, opts)
		if err != nil {
			return nil, err
		}
		return &geodata.Set{Paths: paths}, nil

	default:
		return nil, fmt.Errorf("unsupported input format %q", ext)
	}
}

func writeMarkers(filename string, markers []marker.Marker) error {
	fc := geojson.NewFeatureCollection()
	for _, m := range markers {
		f := geojson.NewFeature(orb.Point{m.Point.Lon, m.Point.Lat})
		f.Properties["id"] = m.ID
		if m.Label != "" {
			f.Properties["name"] = m.Label
		}
		fc.Append(f)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}
