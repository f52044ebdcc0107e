// README: Toll plaza records and dataset loading.
package toll

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"tripcost/internal/geo"
)

var ErrMalformedDataset = errors.New("malformed toll dataset")

// Plaza is one dataset record. Fee tables vary in shape between records, so
// the raw record is kept for fee extraction.
type Plaza struct {
	ID   string
	Name string
	// Location is nil when the record has no usable coordinate.
	Location *orb.Point
	raw      map[string]any
}

// DedupKey is the plaza id when present, else its name.
func (p Plaza) DedupKey() string {
	if p.ID != "" {
		return p.ID
	}
	return p.Name
}

// LoadPlazas reads a dataset rooted at "toll_plazas", "plazas" or a bare array.
func LoadPlazas(r io.Reader) ([]Plaza, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParsePlazas(body)
}

func LoadPlazasFile(path string) ([]Plaza, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadPlazas(f)
}

func ParsePlazas(body []byte) ([]Plaza, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(body, &records); err != nil {
		var root map[string]json.RawMessage
		if err := json.Unmarshal(body, &root); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedDataset, err)
		}
		list, ok := root["toll_plazas"]
		if !ok {
			list, ok = root["plazas"]
		}
		if !ok {
			return nil, fmt.Errorf("%w: no toll_plazas or plazas list", ErrMalformedDataset)
		}
		if err := json.Unmarshal(list, &records); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedDataset, err)
		}
	}

	plazas := make([]Plaza, 0, len(records))
	for _, rec := range records {
		var raw map[string]any
		if err := json.Unmarshal(rec, &raw); err != nil || raw == nil {
			continue
		}
		plazas = append(plazas, newPlaza(raw))
	}
	return plazas, nil
}

func newPlaza(raw map[string]any) Plaza {
	p := Plaza{
		ID:   scalarString(raw["id"]),
		Name: scalarString(raw["name"]),
		raw:  raw,
	}
	if lat, lon, ok := plazaLocation(raw); ok && geo.ValidCoordinate(lat, lon) {
		p.Location = &orb.Point{lon, lat}
	}
	return p
}

// plazaLocation reads "location" as an object or a pair, else top-level
// lat/lon fields.
func plazaLocation(raw map[string]any) (float64, float64, bool) {
	switch loc := raw["location"].(type) {
	case map[string]any:
		lat, okLat := firstNumber(loc, "lat", "latitude")
		lon, okLon := firstNumber(loc, "lon", "longitude", "lng")
		return lat, lon, okLat && okLon
	case []any:
		if len(loc) < 2 {
			return 0, 0, false
		}
		a, okA := number(loc[0])
		b, okB := number(loc[1])
		if !okA || !okB {
			return 0, 0, false
		}
		p := geo.OrderLatLon(a, b)
		return p.Lat(), p.Lon(), true
	}
	lat, okLat := firstNumber(raw, "lat", "latitude")
	lon, okLon := firstNumber(raw, "lon", "longitude")
	return lat, lon, okLat && okLon
}

func firstNumber(m map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return number(v)
		}
	}
	return 0, false
}

// number accepts JSON numbers and numeric strings.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func scalarString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	}
	return ""
}
