// README: Loosely typed request fields: JSON, form or query values with numeric strings and mixed coordinate shapes.
package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb"

	"tripcost/internal/geo"
)

const maxBodyBytes = 1 << 20

var errInvalidJSON = errors.New("invalid json")

// fields holds request values keyed by their snake_case name. Values are
// strings, json.Number, bools, slices or maps.
type fields map[string]any

// readFields collects the request body, falling back to query parameters
// for any key the body does not carry.
func readFields(c *gin.Context) (fields, error) {
	f := fields{}
	switch c.ContentType() {
	case gin.MIMEPOSTForm, gin.MIMEMultipartPOSTForm:
		if err := c.Request.ParseMultipartForm(maxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return nil, err
		}
		for k, v := range c.Request.PostForm {
			if len(v) > 0 {
				f[k] = v[0]
			}
		}
	default:
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
		if err != nil {
			return nil, err
		}
		if len(bytes.TrimSpace(body)) > 0 {
			dec := json.NewDecoder(bytes.NewReader(body))
			dec.UseNumber()
			if err := dec.Decode(&f); err != nil {
				return nil, errInvalidJSON
			}
		}
	}

	for k, v := range c.Request.URL.Query() {
		if _, ok := f[k]; !ok && len(v) > 0 {
			f[k] = v[0]
		}
	}
	return f, nil
}

func (f fields) str(key string) string {
	switch v := f[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	}
	return ""
}

// num accepts JSON numbers and numeric strings.
func (f fields) num(key string) (float64, bool) {
	return toFloat(f[key])
}

func (f fields) numOrZero(key string) float64 {
	v, _ := f.num(key)
	return v
}

// positive returns the first key holding a value > 0.
func (f fields) positive(keys ...string) *float64 {
	for _, k := range keys {
		if v, ok := f.num(k); ok && v > 0 {
			return &v
		}
	}
	return nil
}

func (f fields) boolean(key string) *bool {
	var b bool
	switch v := f[key].(type) {
	case bool:
		b = v
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil
		}
		b = parsed
	default:
		return nil
	}
	return &b
}

// coord reads "a,b" strings, [a,b] arrays and {lat, lon} objects. Unordered
// pairs are resolved with geo.OrderLatLon.
func (f fields) coord(key string) *orb.Point {
	var p orb.Point
	switch v := f[key].(type) {
	case string:
		parts := strings.Split(v, ",")
		if len(parts) != 2 {
			return nil
		}
		a, errA := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		b, errB := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errA != nil || errB != nil {
			return nil
		}
		p = geo.OrderLatLon(a, b)
	case []any:
		if len(v) != 2 {
			return nil
		}
		a, okA := toFloat(v[0])
		b, okB := toFloat(v[1])
		if !okA || !okB {
			return nil
		}
		p = geo.OrderLatLon(a, b)
	case map[string]any:
		m := fields(v)
		lat, okLat := m.first("lat", "latitude")
		lon, okLon := m.first("lon", "longitude", "lng")
		if !okLat || !okLon {
			return nil
		}
		p = orb.Point{lon, lat}
	default:
		return nil
	}
	if !geo.ValidCoordinate(p.Lat(), p.Lon()) {
		return nil
	}
	return &p
}

func (f fields) first(keys ...string) (float64, bool) {
	for _, k := range keys {
		if v, ok := f.num(k); ok {
			return v, true
		}
	}
	return 0, false
}

// toFloat rejects NaN and infinities so they never reach the pipeline.
func toFloat(v any) (float64, bool) {
	var (
		f   float64
		err error
	)
	switch n := v.(type) {
	case json.Number:
		f, err = n.Float64()
	case float64:
		f = n
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(n), 64)
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
