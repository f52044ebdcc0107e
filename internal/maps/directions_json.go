// README: Decoder for the routes/legs/steps JSON shape shared by the REST providers.
package maps

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

type rawDirections struct {
	Routes []rawRoute `json:"routes"`
}

type rawRoute struct {
	Summary          json.RawMessage `json:"summary"`
	Legs             []rawLeg        `json:"legs"`
	Geometry         json.RawMessage `json:"geometry"`
	OverviewPolyline json.RawMessage `json:"overview_polyline"`
}

type rawLeg struct {
	Distance      json.RawMessage `json:"distance"`
	Duration      json.RawMessage `json:"duration"`
	StartLocation *rawLatLng      `json:"start_location"`
	EndLocation   *rawLatLng      `json:"end_location"`
	Polyline      json.RawMessage `json:"polyline"`
	Steps         []rawStep       `json:"steps"`
}

type rawStep struct {
	StartLocation *rawLatLng `json:"start_location"`
	EndLocation   *rawLatLng `json:"end_location"`
}

type rawLatLng struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

func (l *rawLatLng) point() *orb.Point {
	if l == nil || l.Lat == nil || l.Lng == nil {
		return nil
	}
	return &orb.Point{*l.Lng, *l.Lat}
}

// parseDirections decodes the first route of body. A body without routes
// yields an empty Directions, not an error.
func parseDirections(body []byte) (*Directions, error) {
	var raw rawDirections
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: directions: %v", ErrMalformedPayload, err)
	}
	d := &Directions{Raw: body}
	if len(raw.Routes) == 0 {
		return d, nil
	}
	r := raw.Routes[0]

	if isJSONObject(r.Summary) {
		var s struct {
			Distance json.RawMessage `json:"distance"`
			Duration json.RawMessage `json:"duration"`
		}
		if err := json.Unmarshal(r.Summary, &s); err == nil {
			dist, _ := jsonNumber(s.Distance)
			dur, _ := jsonNumber(s.Duration)
			d.Summary = &Summary{DistanceMeters: dist, DurationSeconds: dur}
		}
	}

	for _, rl := range r.Legs {
		leg := Leg{
			Start:    rl.StartLocation.point(),
			End:      rl.EndLocation.point(),
			Polyline: encodedString(rl.Polyline),
		}
		leg.DistanceMeters, _ = jsonNumber(rl.Distance)
		leg.DurationSeconds, _ = jsonNumber(rl.Duration)
		for _, rs := range rl.Steps {
			leg.Steps = append(leg.Steps, Step{Start: rs.StartLocation.point(), End: rs.EndLocation.point()})
		}
		d.Legs = append(d.Legs, leg)
	}

	switch geom := bytes.TrimSpace(r.Geometry); {
	case len(geom) == 0:
	case geom[0] == '"':
		var s string
		if err := json.Unmarshal(geom, &s); err == nil {
			d.Geometry.Encoded = strings.TrimSpace(s)
		}
	case geom[0] == '{':
		d.Geometry.Coordinates = parseLineString(geom)
	case geom[0] == '[':
		var pairs [][]float64
		if err := json.Unmarshal(geom, &pairs); err == nil {
			d.Geometry.Coordinates = pairsToLineString(pairs)
		}
	}

	d.OverviewPolyline = encodedString(r.OverviewPolyline)
	return d, nil
}

// encodedString accepts "encoded" or {"points": "encoded"}.
func encodedString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var obj struct {
		Points string `json:"points"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return strings.TrimSpace(obj.Points)
	}
	return ""
}

// jsonNumber accepts a number, a numeric string, or {"value": n}.
func jsonNumber(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f, true
		}
		return 0, false
	}
	var obj struct {
		Value *float64 `json:"value"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Value != nil {
		return *obj.Value, true
	}
	return 0, false
}

func isJSONObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}
