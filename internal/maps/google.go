// README: Google Maps adapter built on the official googlemaps client (geocoding, directions, roads snap).
package maps

import (
	"context"
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"go.uber.org/zap"
	gmaps "googlemaps.github.io/maps"
)

// GoogleProvider wraps *gmaps.Client. Snapping uses the Roads API, which
// needs the same key enabled for roads.googleapis.com.
type GoogleProvider struct {
	client   *gmaps.Client
	timeouts Timeouts
	logger   *zap.Logger
}

// NewGoogleProvider creates a provider for the given API key. BaseURL is only
// set in tests.
func NewGoogleProvider(cfg ProviderConfig, logger *zap.Logger) (*GoogleProvider, error) {
	opts := []gmaps.ClientOption{gmaps.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, gmaps.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, gmaps.WithHTTPClient(cfg.HTTPClient))
	}
	client, err := gmaps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	if cfg.Timeouts == (Timeouts{}) {
		cfg.Timeouts = DefaultTimeouts
	}
	return &GoogleProvider{client: client, timeouts: cfg.Timeouts, logger: logger}, nil
}

func (p *GoogleProvider) Name() string { return "google" }

func (p *GoogleProvider) Geocode(ctx context.Context, text string) (orb.Point, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeouts.Geocode)
	defer cancel()

	results, err := p.client.Geocode(ctx, &gmaps.GeocodingRequest{Address: text})
	if err != nil {
		return orb.Point{}, p.wrap("geocode", err)
	}
	if len(results) == 0 {
		return orb.Point{}, ErrNoCandidate
	}
	return fromLatLng(results[0].Geometry.Location), nil
}

func (p *GoogleProvider) ReverseGeocode(ctx context.Context, pt orb.Point) (orb.Point, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeouts.Reverse)
	defer cancel()

	ll := toLatLng(pt)
	results, err := p.client.ReverseGeocode(ctx, &gmaps.GeocodingRequest{LatLng: &ll})
	if err != nil {
		return orb.Point{}, p.wrap("reverse-geocode", err)
	}
	if len(results) == 0 {
		return orb.Point{}, ErrNoCandidate
	}
	return fromLatLng(results[0].Geometry.Location), nil
}

func (p *GoogleProvider) SnapToRoad(ctx context.Context, from, to orb.Point) ([]orb.Point, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeouts.Geocode)
	defer cancel()

	resp, err := p.client.SnapToRoad(ctx, &gmaps.SnapToRoadRequest{
		Path: []gmaps.LatLng{toLatLng(from), toLatLng(to)},
	})
	if err != nil {
		return nil, p.wrap("snap-to-road", err)
	}
	out := make([]orb.Point, 0, len(resp.SnappedPoints))
	for _, sp := range resp.SnappedPoints {
		out = append(out, fromLatLng(sp.Location))
	}
	return out, nil
}

func (p *GoogleProvider) Directions(ctx context.Context, from, to orb.Point) (*Directions, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeouts.Directions)
	defer cancel()

	r := &gmaps.DirectionsRequest{
		Origin:      latLng(from),
		Destination: latLng(to),
		Mode:        gmaps.TravelModeDriving,
		Region:      "in",
	}
	routes, _, err := p.client.Directions(ctx, r)
	if err != nil {
		return nil, p.wrap("directions", err)
	}
	if len(routes) == 0 {
		return &Directions{}, nil
	}

	route := routes[0]
	d := &Directions{
		OverviewPolyline: route.OverviewPolyline.Points,
		Geometry:         Geometry{Precision: 5},
	}
	for _, l := range route.Legs {
		if l == nil {
			continue
		}
		start, end := fromLatLng(l.StartLocation), fromLatLng(l.EndLocation)
		leg := Leg{
			DistanceMeters:  float64(l.Distance.Meters),
			DurationSeconds: l.Duration.Seconds(),
			Start:           &start,
			End:             &end,
		}
		for _, s := range l.Steps {
			if s == nil {
				continue
			}
			ss, se := fromLatLng(s.StartLocation), fromLatLng(s.EndLocation)
			leg.Steps = append(leg.Steps, Step{Start: &ss, End: &se})
		}
		d.Legs = append(d.Legs, leg)
	}
	return d, nil
}

// wrap turns a client error into a *ProviderError. The client reports API
// statuses as text ("maps: NOT_FOUND - ..."); NOT_FOUND from directions means
// a waypoint could not be placed on the road network.
func (p *GoogleProvider) wrap(endpoint string, err error) error {
	msg := err.Error()
	p.logger.Warn("provider request failed",
		zap.String("provider", "google"),
		zap.String("endpoint", endpoint),
		zap.Error(err),
	)
	return &ProviderError{
		Provider:   "google",
		Endpoint:   endpoint,
		Body:       msg,
		Unroutable: endpoint == "directions" && strings.Contains(msg, "NOT_FOUND"),
	}
}

func toLatLng(p orb.Point) gmaps.LatLng {
	return gmaps.LatLng{Lat: p.Lat(), Lng: p.Lon()}
}

func fromLatLng(ll gmaps.LatLng) orb.Point {
	return orb.Point{ll.Lng, ll.Lat}
}
