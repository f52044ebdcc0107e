// README: Ola Maps adapter (places geocode/reverse-geocode, routing directions, snapToRoad).
package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

const olaDefaultBaseURL = "https://api.olamaps.io"

// OlaProvider talks to the Ola Maps REST API with an api_key query parameter.
type OlaProvider struct {
	cfg  ProviderConfig
	http *httpClient
}

func NewOlaProvider(cfg ProviderConfig, logger *zap.Logger) *OlaProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = olaDefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeouts == (Timeouts{}) {
		cfg.Timeouts = DefaultTimeouts
	}
	return &OlaProvider{cfg: cfg, http: newHTTPClient("ola", cfg.HTTPClient, logger)}
}

func (p *OlaProvider) Name() string { return "ola" }

func (p *OlaProvider) Geocode(ctx context.Context, text string) (orb.Point, error) {
	q := url.Values{}
	q.Set("input", text)
	q.Set("size", "1")
	q.Set("api_key", p.cfg.APIKey)
	req, err := p.newRequest(ctx, http.MethodGet, "/places/v1/geocode", q)
	if err != nil {
		return orb.Point{}, err
	}
	body, err := p.http.do(ctx, "geocode", p.cfg.Timeouts.Geocode, req, nil)
	if err != nil {
		return orb.Point{}, err
	}
	return olaPlacePoint(body, "geocodingResults")
}

func (p *OlaProvider) ReverseGeocode(ctx context.Context, pt orb.Point) (orb.Point, error) {
	q := url.Values{}
	q.Set("location", latLng(pt))
	q.Set("size", "1")
	q.Set("api_key", p.cfg.APIKey)
	req, err := p.newRequest(ctx, http.MethodGet, "/places/v1/reverse-geocode", q)
	if err != nil {
		return orb.Point{}, err
	}
	body, err := p.http.do(ctx, "reverse-geocode", p.cfg.Timeouts.Reverse, req, nil)
	if err != nil {
		return orb.Point{}, err
	}
	return olaPlacePoint(body, "results")
}

func (p *OlaProvider) SnapToRoad(ctx context.Context, from, to orb.Point) ([]orb.Point, error) {
	q := url.Values{}
	q.Set("points", latLng(from)+"|"+latLng(to))
	q.Set("api_key", p.cfg.APIKey)
	req, err := p.newRequest(ctx, http.MethodGet, "/routing/v1/snapToRoad", q)
	if err != nil {
		return nil, err
	}
	body, err := p.http.do(ctx, "snap-to-road", p.cfg.Timeouts.Geocode, req, nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		SnappedPoints []struct {
			Location rawLatLng `json:"location"`
		} `json:"snapped_points"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: snap to road: %v", ErrMalformedPayload, err)
	}
	var out []orb.Point
	for _, sp := range resp.SnappedPoints {
		if pt := sp.Location.point(); pt != nil {
			out = append(out, *pt)
		}
	}
	return out, nil
}

func (p *OlaProvider) Directions(ctx context.Context, from, to orb.Point) (*Directions, error) {
	q := url.Values{}
	q.Set("origin", latLng(from))
	q.Set("destination", latLng(to))
	q.Set("overview", "full")
	q.Set("steps", "false")
	q.Set("api_key", p.cfg.APIKey)
	req, err := p.newRequest(ctx, http.MethodPost, "/routing/v1/directions", q)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	body, err := p.http.do(ctx, "directions", p.cfg.Timeouts.Directions, req, olaUnroutable)
	if err != nil {
		return nil, err
	}
	return parseDirections(body)
}

func (p *OlaProvider) newRequest(ctx context.Context, method, path string, q url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, p.cfg.BaseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("ola %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// olaUnroutable reports whether a failed directions call means an endpoint
// is off the road network.
func olaUnroutable(status int, body string) bool {
	return status == http.StatusNotFound ||
		strings.Contains(body, "Route Not Found") ||
		strings.Contains(body, "Could not find routable point")
}

// olaPlacePoint reads a GeoJSON feature answer, falling back to the places
// result list under key.
func olaPlacePoint(body []byte, key string) (orb.Point, error) {
	pt, err := firstFeaturePoint(body)
	if err == nil {
		return pt, nil
	}
	if alt, altErr := olaFirstResult(body, key); altErr == nil {
		return alt, nil
	}
	return orb.Point{}, err
}

// olaFirstResult reads <key>[0].geometry.location from a places answer.
func olaFirstResult(body []byte, key string) (orb.Point, error) {
	var resp map[string]json.RawMessage
	if err := json.Unmarshal(body, &resp); err != nil {
		return orb.Point{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	var results []struct {
		Geometry struct {
			Location rawLatLng `json:"location"`
		} `json:"geometry"`
	}
	if raw, ok := resp[key]; ok {
		if err := json.Unmarshal(raw, &results); err != nil {
			return orb.Point{}, fmt.Errorf("%w: %s: %v", ErrMalformedPayload, key, err)
		}
	}
	if len(results) == 0 {
		return orb.Point{}, ErrNoCandidate
	}
	pt := results[0].Geometry.Location.point()
	if pt == nil {
		return orb.Point{}, ErrNoCandidate
	}
	return *pt, nil
}

// latLng formats p as "lat,lng", the order Ola and Google expect.
func latLng(p orb.Point) string {
	return fmt.Sprintf("%.7f,%.7f", p.Lat(), p.Lon())
}
