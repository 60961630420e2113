// Package osm imports walkable trails from OSM PBF extracts as navigation
// paths.
package osm

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"

	"trail_guide/pkg/geo"
	pathpkg "trail_guide/pkg/path"
)

// footHighways lists highway tag values walkable on foot.
var footHighways = map[string]bool{
	"path":       true,
	"footway":    true,
	"track":      true,
	"steps":      true,
	"bridleway":  true,
	"pedestrian": true,
	"trailhead":  true,
}

// isFootAccessible returns true if the way is walkable.
func isFootAccessible(tags osm.Tags) bool {
	hw := tags.Find("highway")
	if !footHighways[hw] {
		// Any highway explicitly opened to pedestrians counts too.
		foot := tags.Find("foot")
		if hw == "" || (foot != "yes" && foot != "designated" && foot != "permissive") {
			return false
		}
	}

	// Skip area highways (plazas render as polygons, not walkable lines).
	if tags.Find("area") == "yes" {
		return false
	}

	// Skip restricted access.
	access := tags.Find("access")
	if access == "no" || access == "private" {
		return false
	}
	if tags.Find("foot") == "no" {
		return false
	}

	return true
}

// wayInfo holds parsed way data collected during Pass 1.
type wayInfo struct {
	ID      osm.WayID
	Name    string
	NodeIDs []osm.NodeID
}

// BBox defines a geographic bounding box for filtering.
// If non-zero, only trail points inside the box are kept.
type BBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// IsZero returns true if the bbox is unset.
func (b BBox) IsZero() bool {
	return b.MinLat == 0 && b.MaxLat == 0 && b.MinLng == 0 && b.MaxLng == 0
}

// Contains returns true if the point is inside the bounding box.
func (b BBox) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

// ImportOptions configures the trail importer.
type ImportOptions struct {
	BBox BBox // if non-zero, drop ways with any point outside this box
}

// ImportTrails reads an OSM PBF file and returns walkable ways as navigation
// paths. The reader is consumed twice (seeks back to start for the second
// pass), so it must implement io.ReadSeeker.
func ImportTrails(ctx context.Context, rs io.ReadSeeker, opts ...ImportOptions) ([]*pathpkg.Path, error) {
	var opt ImportOptions
	if len(opts) > 0 {
		opt = opts[0]
	}
	useBBox := !opt.BBox.IsZero()

	// Pass 1: Scan ways to collect referenced node IDs and way info.
	referencedNodes := make(map[osm.NodeID]struct{})
	var ways []wayInfo

	scanner := osmpbf.New(ctx, rs, 1)
	scanner.SkipNodes = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		w, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}

		if !isFootAccessible(w.Tags) {
			continue
		}
		if len(w.Nodes) < 2 {
			continue
		}

		nodeIDs := make([]osm.NodeID, len(w.Nodes))
		for i, wn := range w.Nodes {
			nodeIDs[i] = wn.ID
			referencedNodes[wn.ID] = struct{}{}
		}

		ways = append(ways, wayInfo{
			ID:      w.ID,
			Name:    w.Tags.Find("name"),
			NodeIDs: nodeIDs,
		})
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("pass 1 (ways): %w", err)
	}
	scanner.Close()

	log.Printf("Pass 1 complete: %d walkable ways, %d referenced nodes", len(ways), len(referencedNodes))

	// Pass 2: Scan nodes to collect coordinates for referenced nodes only.
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek for pass 2: %w", err)
	}

	nodeLat := make(map[osm.NodeID]float64, len(referencedNodes))
	nodeLon := make(map[osm.NodeID]float64, len(referencedNodes))

	scanner = osmpbf.New(ctx, rs, 1)
	scanner.SkipWays = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		n, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, needed := referencedNodes[n.ID]; !needed {
			continue
		}
		nodeLat[n.ID] = n.Lat
		nodeLon[n.ID] = n.Lon
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("pass 2 (nodes): %w", err)
	}
	scanner.Close()

	log.Printf("Pass 2 complete: %d node coordinates collected", len(nodeLat))

	// Build paths from ways.
	var paths []*pathpkg.Path
	var skippedWays, bboxFiltered int

	for _, w := range ways {
		coords := make([]geo.Point, 0, len(w.NodeIDs))
		outside := false
		for _, id := range w.NodeIDs {
			lat, okLat := nodeLat[id]
			lon, okLon := nodeLon[id]
			if !okLat || !okLon {
				continue // node missing from the extract
			}
			if useBBox && !opt.BBox.Contains(lat, lon) {
				outside = true
				break
			}
			coords = append(coords, geo.Point{Lat: lat, Lon: lon})
		}

		if outside {
			bboxFiltered++
			continue
		}
		if len(coords) < 2 {
			skippedWays++
			continue
		}

		p, err := pathpkg.New(fmt.Sprintf("osm-way-%d", w.ID), w.Name, coords)
		if err != nil {
			skippedWays++
			continue
		}
		paths = append(paths, p)
	}

	if skippedWays > 0 {
		log.Printf("Warning: skipped %d ways with missing node coordinates", skippedWays)
	}
	if bboxFiltered > 0 {
		log.Printf("Filtered %d ways outside bounding box", bboxFiltered)
	}
	log.Printf("Built %d trail paths", len(paths))

	return paths, nil
}
