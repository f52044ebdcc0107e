package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/twpayne/go-polyline"
)

// Polyline precisions used by routing providers. Google and ORS use 5
// decimal places; OSRM/Valhalla style services use 6.
const (
	Precision5 = 5
	Precision6 = 6
)

// DecodePolyline decodes an encoded polyline into (lon, lat) points.
// Empty input yields an empty result; malformed input (bytes outside the
// encoding alphabet, a truncated chunk or a dangling latitude) also yields an
// empty result rather than an error.
func DecodePolyline(encoded string, precision int) orb.LineString {
	if encoded == "" {
		return nil
	}
	codec := polyline.Codec{Dim: 2, Scale: math.Pow10(precision)}
	coords, rest, err := codec.DecodeCoords([]byte(encoded))
	if err != nil || len(rest) > 0 {
		return nil
	}

	points := make(orb.LineString, 0, len(coords))
	for _, c := range coords {
		points = append(points, orb.Point{c[1], c[0]})
	}
	return points
}

// DecodePolylineAny tries each precision in order and returns the first
// non-empty decoding.
func DecodePolylineAny(encoded string, precisions ...int) orb.LineString {
	for _, p := range precisions {
		if pts := DecodePolyline(encoded, p); len(pts) > 0 {
			return pts
		}
	}
	return nil
}
