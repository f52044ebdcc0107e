// README: OpenRouteService adapter (Pelias geocode/reverse, driving-car directions).
package maps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

const orsDefaultBaseURL = "https://api.openrouteservice.org"

// ORSProvider authenticates with the key in the Authorization header. It has
// no snap endpoint; callers recover unroutable points via ReverseGeocode.
type ORSProvider struct {
	cfg  ProviderConfig
	http *httpClient
}

func NewORSProvider(cfg ProviderConfig, logger *zap.Logger) *ORSProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = orsDefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeouts == (Timeouts{}) {
		cfg.Timeouts = DefaultTimeouts
	}
	return &ORSProvider{cfg: cfg, http: newHTTPClient("ors", cfg.HTTPClient, logger)}
}

func (p *ORSProvider) Name() string { return "ors" }

func (p *ORSProvider) Geocode(ctx context.Context, text string) (orb.Point, error) {
	q := url.Values{}
	q.Set("text", text)
	q.Set("size", "1")
	req, err := p.newRequest(ctx, http.MethodGet, "/geocode/search?"+q.Encode(), nil)
	if err != nil {
		return orb.Point{}, err
	}
	body, err := p.http.do(ctx, "geocode", p.cfg.Timeouts.Geocode, req, nil)
	if err != nil {
		return orb.Point{}, err
	}
	return firstFeaturePoint(body)
}

func (p *ORSProvider) ReverseGeocode(ctx context.Context, pt orb.Point) (orb.Point, error) {
	q := url.Values{}
	q.Set("point.lon", strconv.FormatFloat(pt.Lon(), 'f', -1, 64))
	q.Set("point.lat", strconv.FormatFloat(pt.Lat(), 'f', -1, 64))
	q.Set("size", "1")
	req, err := p.newRequest(ctx, http.MethodGet, "/geocode/reverse?"+q.Encode(), nil)
	if err != nil {
		return orb.Point{}, err
	}
	body, err := p.http.do(ctx, "reverse-geocode", p.cfg.Timeouts.Reverse, req, nil)
	if err != nil {
		return orb.Point{}, err
	}
	return firstFeaturePoint(body)
}

func (p *ORSProvider) SnapToRoad(context.Context, orb.Point, orb.Point) ([]orb.Point, error) {
	return nil, ErrSnapUnsupported
}

func (p *ORSProvider) Directions(ctx context.Context, from, to orb.Point) (*Directions, error) {
	payload, err := json.Marshal(struct {
		Coordinates [][2]float64 `json:"coordinates"`
	}{Coordinates: [][2]float64{{from.Lon(), from.Lat()}, {to.Lon(), to.Lat()}}})
	if err != nil {
		return nil, err
	}
	req, err := p.newRequest(ctx, http.MethodPost, "/v2/directions/driving-car", payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	body, err := p.http.do(ctx, "directions", p.cfg.Timeouts.Directions, req, orsUnroutable)
	if err != nil {
		return nil, err
	}
	d, err := parseDirections(body)
	if err != nil {
		return nil, err
	}
	// ORS encodes route geometry at precision 5 unless elevation is requested.
	if d.Geometry.Encoded != "" {
		d.Geometry.Precision = 5
	}
	return d, nil
}

func (p *ORSProvider) newRequest(ctx context.Context, method, pathAndQuery string, payload []byte) (*http.Request, error) {
	var body *bytes.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, p.cfg.BaseURL+pathAndQuery, body)
	if err != nil {
		return nil, fmt.Errorf("ors %s: %w", pathAndQuery, err)
	}
	req.Header.Set("Authorization", p.cfg.APIKey)
	req.Header.Set("Accept", "application/json, application/geo+json")
	return req, nil
}

func orsUnroutable(status int, body string) bool {
	return status == http.StatusNotFound && strings.Contains(body, "Could not find routable point")
}
