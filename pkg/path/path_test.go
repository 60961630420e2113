package path

import (
	"math"
	"testing"

	"trail_guide/pkg/geo"
)

func TestNewRejectsShortPaths(t *testing.T) {
	tests := []struct {
		name   string
		coords []geo.Point
	}{
		{"nil coords", nil},
		{"empty coords", []geo.Point{}},
		{"single point", []geo.Point{{Lat: 59.9, Lon: 10.7}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New("p1", "test", tt.coords); err == nil {
				t.Error("expected error for short path")
			}
		})
	}
}

func TestNewDerivesLengths(t *testing.T) {
	// Three vertices spaced ~111 m apart going north.
	coords := []geo.Point{
		{Lat: 59.900, Lon: 10.70},
		{Lat: 59.901, Lon: 10.70},
		{Lat: 59.902, Lon: 10.70},
	}
	p, err := New("p1", "test", coords)
	if err != nil {
		t.Fatal(err)
	}

	if p.NumPoints() != 3 || p.NumSegments() != 2 {
		t.Fatalf("NumPoints = %d, NumSegments = %d", p.NumPoints(), p.NumSegments())
	}

	segSum := p.SegmentLength(0) + p.SegmentLength(1)
	if math.Abs(p.TotalMeters()-segSum) > 1e-9 {
		t.Errorf("TotalMeters = %f, segment sum = %f", p.TotalMeters(), segSum)
	}
	if p.TotalMeters() < 210 || p.TotalMeters() > 235 {
		t.Errorf("TotalMeters = %f, want ~222", p.TotalMeters())
	}
}

func TestNewCopiesCoords(t *testing.T) {
	coords := []geo.Point{
		{Lat: 59.900, Lon: 10.70},
		{Lat: 59.901, Lon: 10.70},
	}
	p, err := New("p1", "test", coords)
	if err != nil {
		t.Fatal(err)
	}

	coords[0].Lat = 0 // caller mutation must not leak into the path
	if p.Coords()[0].Lat != 59.900 {
		t.Error("path coordinates aliased to caller slice")
	}
}

func TestRemainingMeters(t *testing.T) {
	coords := []geo.Point{
		{Lat: 59.900, Lon: 10.70},
		{Lat: 59.901, Lon: 10.70},
		{Lat: 59.902, Lon: 10.70},
	}
	p, err := New("p1", "test", coords)
	if err != nil {
		t.Fatal(err)
	}

	// At the very start, everything remains.
	rem := p.RemainingMeters(0, coords[0])
	if math.Abs(rem-p.TotalMeters()) > 1e-9 {
		t.Errorf("remaining at start = %f, want %f", rem, p.TotalMeters())
	}

	// At the end of the last segment, nothing remains.
	rem = p.RemainingMeters(1, coords[2])
	if rem > 0.01 {
		t.Errorf("remaining at end = %f, want ~0", rem)
	}

	// Midway along segment 0 leaves segment 1 plus half of segment 0.
	mid := geo.Point{Lat: 59.9005, Lon: 10.70}
	rem = p.RemainingMeters(0, mid)
	want := p.SegmentLength(0)/2 + p.SegmentLength(1)
	if math.Abs(rem-want) > 1 {
		t.Errorf("remaining at midpoint = %f, want ~%f", rem, want)
	}

	// Out-of-range segment index is a no-op, not a panic.
	if got := p.RemainingMeters(-1, mid); got != 0 {
		t.Errorf("remaining for seg -1 = %f, want 0", got)
	}
	if got := p.RemainingMeters(99, mid); got != 0 {
		t.Errorf("remaining for seg 99 = %f, want 0", got)
	}
}

func TestClosestPoint(t *testing.T) {
	// Three collinear points going north; query due east of the middle one.
	coords := []geo.Point{
		{Lat: 0, Lon: 0},
		{Lat: 0.001, Lon: 0},
		{Lat: 0.002, Lon: 0},
	}
	p, err := New("p1", "test", coords)
	if err != nil {
		t.Fatal(err)
	}

	pos := geo.Point{Lat: 0.001, Lon: 0.001}
	res := ClosestPoint(pos, p)
	if res == nil {
		t.Fatal("nil result")
	}
	if res.SegmentIndex != 0 && res.SegmentIndex != 1 {
		t.Errorf("SegmentIndex = %d, want 0 or 1", res.SegmentIndex)
	}
	if math.Abs(res.Point.Lat-0.001) > 1e-9 || math.Abs(res.Point.Lon) > 1e-9 {
		t.Errorf("closest point = %+v, want the middle vertex", res.Point)
	}
	wantDist := geo.Distance(pos, coords[1])
	if math.Abs(res.DistanceMeters-wantDist) > 0.5 {
		t.Errorf("DistanceMeters = %f, want ~%f", res.DistanceMeters, wantDist)
	}
}

func TestClosestPointInteriorOfSegment(t *testing.T) {
	coords := []geo.Point{
		{Lat: 59.900, Lon: 10.70},
		{Lat: 59.910, Lon: 10.70},
	}
	p, _ := New("p1", "test", coords)

	pos := geo.Point{Lat: 59.905, Lon: 10.705}
	res := ClosestPoint(pos, p)
	if res == nil {
		t.Fatal("nil result")
	}
	if res.SegmentIndex != 0 {
		t.Errorf("SegmentIndex = %d, want 0", res.SegmentIndex)
	}
	if math.Abs(res.Point.Lat-59.905) > 1e-6 {
		t.Errorf("projected latitude = %f, want ~59.905", res.Point.Lat)
	}
	if math.Abs(res.Point.Lon-10.70) > 1e-9 {
		t.Errorf("projected longitude = %f, want 10.70", res.Point.Lon)
	}
}

func TestClosestPointNilPath(t *testing.T) {
	if res := ClosestPoint(geo.Point{Lat: 1, Lon: 1}, nil); res != nil {
		t.Errorf("expected nil for nil path, got %+v", res)
	}
}

func TestClosestPointTieLowestIndexWins(t *testing.T) {
	// Out-and-back path: segments 0 and 1 overlap exactly, so every query
	// ties. The stable choice is the lower index.
	coords := []geo.Point{
		{Lat: 59.900, Lon: 10.70},
		{Lat: 59.910, Lon: 10.70},
		{Lat: 59.900, Lon: 10.70},
	}
	p, _ := New("p1", "out-and-back", coords)

	res := ClosestPoint(geo.Point{Lat: 59.905, Lon: 10.701}, p)
	if res == nil {
		t.Fatal("nil result")
	}
	if res.SegmentIndex != 0 {
		t.Errorf("SegmentIndex = %d, want 0 (lowest index on tie)", res.SegmentIndex)
	}
}

func BenchmarkClosestPoint(b *testing.B) {
	// 200-vertex path, representative of a long trail.
	coords := make([]geo.Point, 200)
	for i := range coords {
		coords[i] = geo.Point{Lat: 59.9 + float64(i)*0.0005, Lon: 10.7 + float64(i%7)*0.0003}
	}
	p, _ := New("bench", "bench", coords)
	pos := geo.Point{Lat: 59.93, Lon: 10.705}

	for i := 0; i < b.N; i++ {
		ClosestPoint(pos, p)
	}
}
