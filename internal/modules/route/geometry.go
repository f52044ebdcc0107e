// README: Ordered geometry extraction strategies over a provider directions answer.
package route

import (
	"github.com/paulmach/orb"

	"tripcost/internal/geo"
	"tripcost/internal/maps"
)

// dedupeTolerance is the per-axis distance in degrees under which two
// synthesized points count as the same point.
const dedupeTolerance = 1e-9

type geometryStrategy struct {
	name    string
	extract func(d *maps.Directions, precisions []int) orb.LineString
}

// geometryStrategies is evaluated in order; the first non-empty result wins.
var geometryStrategies = []geometryStrategy{
	{name: "encoded", extract: fromEncoded},
	{name: "coordinates", extract: fromCoordinates},
	{name: "overview_polyline", extract: fromOverview},
	{name: "legs", extract: fromLegs},
}

func extractGeometry(d *maps.Directions) (orb.LineString, string) {
	precisions := precisionOrder(d.Geometry.Precision)
	for _, s := range geometryStrategies {
		if pts := s.extract(d, precisions); len(pts) > 0 {
			return pts, s.name
		}
	}
	return nil, ""
}

// precisionOrder uses the provider's declared precision, else tries 6 then 5.
func precisionOrder(known int) []int {
	if known != 0 {
		return []int{known}
	}
	return []int{geo.Precision6, geo.Precision5}
}

func fromEncoded(d *maps.Directions, precisions []int) orb.LineString {
	return geo.DecodePolylineAny(d.Geometry.Encoded, precisions...)
}

func fromCoordinates(d *maps.Directions, _ []int) orb.LineString {
	var out orb.LineString
	for _, p := range d.Geometry.Coordinates {
		if geo.ValidCoordinate(p.Lat(), p.Lon()) {
			out = append(out, p)
		}
	}
	return out
}

func fromOverview(d *maps.Directions, precisions []int) orb.LineString {
	return geo.DecodePolylineAny(d.OverviewPolyline, precisions...)
}

// fromLegs stitches per-leg polylines, falling back to step and then leg
// start/end locations.
func fromLegs(d *maps.Directions, precisions []int) orb.LineString {
	var pts orb.LineString
	add := func(p *orb.Point) {
		if p != nil && geo.ValidCoordinate(p.Lat(), p.Lon()) {
			pts = append(pts, *p)
		}
	}
	for _, leg := range d.Legs {
		if decoded := geo.DecodePolylineAny(leg.Polyline, precisions...); len(decoded) > 0 {
			pts = append(pts, decoded...)
			continue
		}
		if len(leg.Steps) > 0 {
			for _, s := range leg.Steps {
				add(s.Start)
				add(s.End)
			}
			continue
		}
		add(leg.Start)
		add(leg.End)
	}
	return geo.DedupeSequential(pts, dedupeTolerance)
}

// routeTotals returns distance in km and duration in hours, from the summary
// when present and summed across legs otherwise.
func routeTotals(d *maps.Directions) (float64, float64) {
	var meters, seconds float64
	if d.Summary != nil {
		meters, seconds = d.Summary.DistanceMeters, d.Summary.DurationSeconds
	} else {
		for _, l := range d.Legs {
			meters += l.DistanceMeters
			seconds += l.DurationSeconds
		}
	}
	return meters / 1000.0, seconds / 3600.0
}
