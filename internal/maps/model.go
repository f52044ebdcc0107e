// README: Provider-neutral directions payload; geometry may arrive in several shapes.
package maps

import "github.com/paulmach/orb"

// Directions is the first route of a directions answer. Any of the geometry
// carriers may be empty; the resolver decides which one to trust.
type Directions struct {
	Summary  *Summary
	Legs     []Leg
	Geometry Geometry
	// OverviewPolyline is an encoded polyline, conventionally precision 5.
	OverviewPolyline string
	// Raw keeps the upstream body for debugging empty geometries.
	Raw []byte
}

// Summary holds whole-route totals in metres and seconds.
type Summary struct {
	DistanceMeters  float64
	DurationSeconds float64
}

// Geometry is the route shape as either an encoded string or coordinates.
type Geometry struct {
	Encoded     string
	Coordinates orb.LineString
	// Precision is the known encoding precision for Encoded, or 0 when the
	// provider does not say.
	Precision int
}

type Leg struct {
	DistanceMeters  float64
	DurationSeconds float64
	Start           *orb.Point
	End             *orb.Point
	Polyline        string
	Steps           []Step
}

type Step struct {
	Start *orb.Point
	End   *orb.Point
}
