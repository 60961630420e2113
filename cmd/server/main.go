package main

import (
	"flag"
	"log"
	"os"
	"time"

	"trail_guide/pkg/api"
	"trail_guide/pkg/config"
	"trail_guide/pkg/format"
	"trail_guide/pkg/geo"
	"trail_guide/pkg/geodata"
	"trail_guide/pkg/guidance"
	"trail_guide/pkg/marker"
	"trail_guide/pkg/path"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	pathSet := flag.String("pathset", "", "Binary path set (overrides config)")
	geoJSON := flag.String("geojson", "", "GeoJSON with extra paths and markers (overrides config)")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	corsOrigin := flag.String("cors-origin", "", "CORS allowed origin (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *pathSet != "" {
		cfg.Data.PathSet = *pathSet
	}
	if *geoJSON != "" {
		cfg.Data.GeoJSON = *geoJSON
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *corsOrigin != "" {
		cfg.Server.CORSOrigin = *corsOrigin
	}

	start := time.Now()

	var paths []*path.Path
	store := marker.NewStore()

	if cfg.Data.PathSet != "" {
		log.Printf("Loading path set from %s...", cfg.Data.PathSet)
		loaded, err := path.ReadBinary(cfg.Data.PathSet)
		if err != nil {
			log.Fatalf("Failed to load path set: %v", err)
		}
		paths = append(paths, loaded...)
	}

	if cfg.Data.GeoJSON != "" {
		log.Printf("Loading GeoJSON from %s...", cfg.Data.GeoJSON)
		data, err := os.ReadFile(cfg.Data.GeoJSON)
		if err != nil {
			log.Fatalf("Failed to read GeoJSON: %v", err)
		}
		set, err := geodata.LoadGeoJSON(data)
		if err != nil {
			log.Fatalf("Failed to parse GeoJSON: %v", err)
		}
		paths = append(paths, set.Paths...)
		for _, m := range set.Markers {
			store.Add(m)
		}
	}

	if len(paths) == 0 && store.Len() == 0 {
		log.Fatal("No paths or markers loaded; pass --pathset or --geojson")
	}

	var totalMeters float64
	for _, p := range paths {
		totalMeters += p.TotalMeters()
	}
	log.Printf("Loaded %d paths (%.1f km), %d markers in %s",
		len(paths), totalMeters/1000, store.Len(), time.Since(start).Round(time.Millisecond))

	nav := guidance.New(
		cfg.Guidance.ToGuidance(),
		geo.EquirectProjector(projectionOrigin(paths, store)),
		paths,
		store,
	)

	srvCfg := api.DefaultConfig(cfg.Server.Addr)
	srvCfg.CORSOrigin = cfg.Server.CORSOrigin
	if cfg.Server.MaxConcurrent > 0 {
		srvCfg.MaxConcurrent = cfg.Server.MaxConcurrent
	}

	handlers := api.NewHandlers(nav, format.ModeBoth)
	srv := api.NewServer(srvCfg, handlers)

	if err := api.ListenAndServe(srv); err != nil {
		log.Printf("Server stopped: %v", err)
		os.Exit(1)
	}
}

// projectionOrigin anchors the local planar projection at the first loaded
// path vertex, or the first marker when no paths are loaded. Guidance areas
// span a few kilometers, so one anchor serves the whole data set.
func projectionOrigin(paths []*path.Path, store *marker.Store) geo.Point {
	if len(paths) > 0 {
		return paths[0].Coords()[0]
	}
	if m, ok := store.At(0); ok {
		return m.Point
	}
	return geo.Point{}
}
