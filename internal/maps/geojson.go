package maps

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// firstFeaturePoint extracts the first Point of a geocoder FeatureCollection.
// Payloads that omit GeoJSON "type" members are read leniently.
func firstFeaturePoint(body []byte) (orb.Point, error) {
	if fc, err := geojson.UnmarshalFeatureCollection(body); err == nil {
		if len(fc.Features) == 0 {
			return orb.Point{}, ErrNoCandidate
		}
		if p, ok := fc.Features[0].Geometry.(orb.Point); ok {
			return p, nil
		}
	}

	var loose struct {
		Features []struct {
			Geometry struct {
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
	}
	if err := json.Unmarshal(body, &loose); err != nil {
		return orb.Point{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if len(loose.Features) == 0 || len(loose.Features[0].Geometry.Coordinates) < 2 {
		return orb.Point{}, ErrNoCandidate
	}
	c := loose.Features[0].Geometry.Coordinates
	return orb.Point{c[0], c[1]}, nil
}

// parseLineString reads a GeoJSON LineString object, or any object carrying
// a "coordinates" array of [lon, lat] pairs.
func parseLineString(raw json.RawMessage) orb.LineString {
	var g geojson.Geometry
	if err := json.Unmarshal(raw, &g); err == nil {
		if ls, ok := g.Geometry().(orb.LineString); ok {
			return ls
		}
	}
	var loose struct {
		Coordinates [][]float64 `json:"coordinates"`
	}
	if err := json.Unmarshal(raw, &loose); err != nil {
		return nil
	}
	return pairsToLineString(loose.Coordinates)
}

func pairsToLineString(pairs [][]float64) orb.LineString {
	var ls orb.LineString
	for _, pair := range pairs {
		if len(pair) < 2 {
			continue
		}
		ls = append(ls, orb.Point{pair[0], pair[1]})
	}
	return ls
}
