// Command simulate replays a recorded GPX track through the guidance engine
// and prints the overlay state per fix. Useful for tuning throttle and
// hysteresis settings against a real hike without a device in hand.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"trail_guide/pkg/format"
	"trail_guide/pkg/geo"
	"trail_guide/pkg/geodata"
	"trail_guide/pkg/guidance"
	"trail_guide/pkg/marker"
	"trail_guide/pkg/path"
)

func main() {
	track := flag.String("track", "", "GPX file with the recorded track to replay")
	pathSet := flag.String("pathset", "", "Binary path set to navigate against")
	geoJSON := flag.String("geojson", "", "GeoJSON with paths and markers to navigate against")
	targetPath := flag.Int("path", 0, "Index of the path to follow")
	interval := flag.Duration("interval", time.Second, "Simulated time between fixes")
	kmlOut := flag.String("kml", "", "Optional KML export of the loaded set")
	flag.Parse()

	if *track == "" || (*pathSet == "" && *geoJSON == "") {
		fmt.Fprintln(os.Stderr, "Usage: simulate --track <hike.gpx> (--pathset pathset.bin | --geojson trails.geojson) [--path N] [--interval 1s] [--kml preview.kml]")
		os.Exit(1)
	}

	set, err := loadSet(*pathSet, *geoJSON)
	if err != nil {
		log.Fatalf("Failed to load navigation data: %v", err)
	}
	log.Printf("Loaded %d paths, %d markers", len(set.Paths), len(set.Markers))

	if *kmlOut != "" {
		if err := exportKML(*kmlOut, set); err != nil {
			log.Fatalf("Failed to write KML: %v", err)
		}
		log.Printf("Wrote KML to %s", *kmlOut)
	}

	f, err := os.Open(*track)
	if err != nil {
		log.Fatalf("Failed to open track: %v", err)
	}
	fixes, err := geodata.TrackPoints(f)
	f.Close()
	if err != nil {
		log.Fatalf("Failed to parse track: %v", err)
	}
	if len(fixes) < 2 {
		log.Fatalf("Track has %d points; need at least 2 to derive headings", len(fixes))
	}
	log.Printf("Replaying %d fixes", len(fixes))

	store := marker.NewStore()
	for _, m := range set.Markers {
		store.Add(m)
	}

	project := geo.EquirectProjector(fixes[0].Point)
	nav := guidance.New(guidance.DefaultConfig(), project, set.Paths, store)
	if err := nav.SelectPath(*targetPath); err != nil {
		log.Fatalf("Failed to select path %d: %v", *targetPath, err)
	}

	// Walk the track. The heading at each fix is the bearing toward the next
	// point, which is what a device compass would roughly read while moving.
	now := time.Now()
	for i, fix := range fixes {
		heading := 0.0
		if i+1 < len(fixes) {
			heading = geo.WorldBearingDeg(project(fix.Point), project(fixes[i+1].Point))
		} else {
			heading = geo.WorldBearingDeg(project(fixes[i-1].Point), project(fix.Point))
		}

		nav.OnPositionFix(now, guidance.Fix{Point: fix.Point})
		upd := nav.OnRenderTick(now, heading)

		status := "hold"
		if upd.Apply {
			status = fmt.Sprintf("steer %+6.1f°", upd.AngleDeg)
		}
		if upd.Hidden {
			status += " (indicator hidden)"
		}
		fmt.Printf("[%3d] %.5f,%.5f heading %6.1f°  %-28s %s\n",
			i, fix.Point.Lat, fix.Point.Lon, heading, status, nav.DistanceText(format.ModeBoth))

		now = now.Add(*interval)
	}

	if closest := nav.Closest(); closest != nil {
		log.Printf("Final: %.1f m from path, segment %d", closest.DistanceMeters, closest.SegmentIndex)
	}
}

func loadSet(pathSet, geoJSON string) (*geodata.Set, error) {
	set := &geodata.Set{}

	if pathSet != "" {
		paths, err := path.ReadBinary(pathSet)
		if err != nil {
			return nil, err
		}
		set.Paths = append(set.Paths, paths...)
	}

	if geoJSON != "" {
		data, err := os.ReadFile(geoJSON)
		if err != nil {
			return nil, err
		}
		loaded, err := geodata.LoadGeoJSON(data)
		if err != nil {
			return nil, err
		}
		set.Paths = append(set.Paths, loaded.Paths...)
		set.Markers = append(set.Markers, loaded.Markers...)
	}

	return set, nil
}

func exportKML(filename string, set *geodata.Set) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := geodata.WriteKML(f, set); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
