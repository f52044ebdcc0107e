// README: Route resolution types and errors.
package route

import (
	"errors"
	"strconv"

	"github.com/paulmach/orb"
)

var (
	ErrGeocodeFailed    = errors.New("geocode failed")
	ErrRouteUnavailable = errors.New("route unavailable")
)

// Failure reasons reported to callers alongside the sentinel errors.
const (
	ReasonGeocodeFailed = "geocode_failed_for_start_or_destination"
	ReasonSnapFailed    = "routable_point_not_found_and_snap_failed"
	ReasonNoPoints      = "route_returned_no_points"
)

// Endpoint is a trip endpoint given either as free text or as a coordinate.
type Endpoint struct {
	Text  string
	Coord *orb.Point
}

func TextEndpoint(text string) Endpoint { return Endpoint{Text: text} }

func CoordEndpoint(p orb.Point) Endpoint { return Endpoint{Coord: &p} }

// String renders coordinate endpoints as "lat,lon".
func (e Endpoint) String() string {
	if e.Coord != nil {
		return strconv.FormatFloat(e.Coord.Lat(), 'f', -1, 64) + "," + strconv.FormatFloat(e.Coord.Lon(), 'f', -1, 64)
	}
	return e.Text
}

// Route is a resolved driving route. Points are (lon, lat).
type Route struct {
	DistanceKm    float64
	DurationHours float64
	Points        orb.LineString
	Origin        orb.Point
	Destination   orb.Point
	// Snapped is set when the endpoints had to be moved onto the road network.
	Snapped bool
	// GeometrySource names the strategy that produced Points.
	GeometrySource string
}
