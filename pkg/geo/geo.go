package geo

import "math"

const earthRadiusMeters = 6_371_000.0

// degToMeters converts degree-scaled equirectangular distances to meters.
const degToMeters = math.Pi / 180 * earthRadiusMeters

// Point is a WGS84 coordinate in degrees. The math in this package assumes
// coordinates are already range-valid; validation happens at ingestion
// (pkg/geodata), not here.
type Point struct {
	Lat float64
	Lon float64
}

// WorldVec is a position in the AR world frame: X east, Z north, in meters.
type WorldVec struct {
	X float64
	Z float64
}

// Projector maps a geographic point into the AR world frame. The real
// transform is owned by the world-positioning collaborator; EquirectProjector
// is the reference implementation used by the server and simulator.
type Projector func(Point) WorldVec

// Haversine returns the great-circle distance in meters between two points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// Distance returns the great-circle distance in meters between two points.
func Distance(a, b Point) float64 {
	return Haversine(a.Lat, a.Lon, b.Lat, b.Lon)
}

// EquirectangularDist returns an approximate distance in meters.
// ~3x faster than Haversine and accurate to well under 1% at the sub-kilometer
// ranges guidance operates on. Use for candidate filtering and comparisons,
// not for displayed distances.
func EquirectangularDist(lat1, lon1, lat2, lon2 float64) float64 {
	x := (lon2 - lon1) * math.Cos((lat1+lat2)/2*math.Pi/180) * math.Pi / 180
	y := (lat2 - lat1) * math.Pi / 180
	return math.Sqrt(x*x+y*y) * earthRadiusMeters
}

// ProjectOntoSegment returns the point on segment AB closest to P, plus the
// projection ratio along AB clamped to [0,1]. It works in an equirectangular
// local plane, which is only valid for short segments (guidance path segments
// are at most a few hundred meters).
func ProjectOntoSegment(p, a, b Point) (Point, float64) {
	// Degenerate segment: compare original coordinates exactly, before the
	// cosLat multiplication can make identical values differ by ~1e-15.
	if a.Lat == b.Lat && a.Lon == b.Lon {
		return a, 0
	}

	cosLat := math.Cos((a.Lat + b.Lat) / 2 * math.Pi / 180)

	ax := a.Lon * cosLat
	ay := a.Lat
	bx := b.Lon * cosLat
	by := b.Lat
	px := p.Lon * cosLat
	py := p.Lat

	dx := bx - ax
	dy := by - ay
	lenSq := dx*dx + dy*dy

	t := ((px-ax)*dx + (py-ay)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	return Point{
		Lat: a.Lat + t*(b.Lat-a.Lat),
		Lon: a.Lon + t*(b.Lon-a.Lon),
	}, t
}

// NormalizeAngle wraps an angle in radians into (-π, π].
func NormalizeAngle(rad float64) float64 {
	a := math.Mod(rad+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// NormalizeAngleDeg wraps an angle in degrees into (-180, 180].
func NormalizeAngleDeg(deg float64) float64 {
	a := math.Mod(deg+180, 360)
	if a <= 0 {
		a += 360
	}
	return a - 180
}

// WorldBearing returns the direction from one world-frame position to another
// in radians, atan2(dx, dz) convention: 0 points toward +Z (north), positive
// angles turn east. This is the AR-world-frame angle, not a compass bearing.
func WorldBearing(from, to WorldVec) float64 {
	return math.Atan2(to.X-from.X, to.Z-from.Z)
}

// WorldBearingDeg is WorldBearing in degrees, normalized to (-180, 180].
func WorldBearingDeg(from, to WorldVec) float64 {
	return NormalizeAngleDeg(WorldBearing(from, to) * 180 / math.Pi)
}

// EquirectProjector returns a Projector that maps points into a local
// east/north meter plane anchored at origin. Accuracy degrades away from the
// anchor; re-anchor when the session moves far from it.
func EquirectProjector(origin Point) Projector {
	cosLat := math.Cos(origin.Lat * math.Pi / 180)
	return func(p Point) WorldVec {
		return WorldVec{
			X: (p.Lon - origin.Lon) * cosLat * degToMeters,
			Z: (p.Lat - origin.Lat) * degToMeters,
		}
	}
}
