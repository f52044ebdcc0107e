// README: Pure geographic computation helpers shared by route resolution and toll matching.
package geo

import (
	"math"

	"github.com/paulmach/orb"
)

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance in kilometres between two
// points specified in decimal degrees.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLon := degreesToRadians(lon2 - lon1)

	rLat1 := degreesToRadians(lat1)
	rLat2 := degreesToRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// MinDistanceToRoute returns the smallest haversine distance in kilometres
// from (lat, lon) to any vertex of points. Segments between vertices are not
// projected onto, so the result is only as precise as the route's point
// density. An empty route yields +Inf.
func MinDistanceToRoute(lat, lon float64, points orb.LineString) float64 {
	min := math.Inf(1)
	for _, p := range points {
		if d := HaversineKm(lat, lon, p.Lat(), p.Lon()); d < min {
			min = d
		}
	}
	return min
}

// DedupeSequential drops points that repeat the previous kept point within
// tolerance degrees on both axes.
func DedupeSequential(points orb.LineString, tolerance float64) orb.LineString {
	if len(points) == 0 {
		return points
	}
	out := make(orb.LineString, 0, len(points))
	prev := points[0]
	out = append(out, prev)
	for _, p := range points[1:] {
		if math.Abs(prev.Lon()-p.Lon()) > tolerance || math.Abs(prev.Lat()-p.Lat()) > tolerance {
			out = append(out, p)
			prev = p
		}
	}
	return out
}

// ValidCoordinate reports whether lat/lon are finite, in range, and not the
// (0, 0) placeholder datasets use for unknown locations.
func ValidCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}
	if lat == 0 && lon == 0 {
		return false
	}
	return math.Abs(lat) <= 90 && math.Abs(lon) <= 180
}

// OrderLatLon interprets an ambiguous pair. If a fits a latitude and b a
// longitude the pair is (lat, lon); otherwise it is taken as (lon, lat).
func OrderLatLon(a, b float64) orb.Point {
	if math.Abs(a) <= 90 && math.Abs(b) <= 180 {
		return orb.Point{b, a}
	}
	return orb.Point{a, b}
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
