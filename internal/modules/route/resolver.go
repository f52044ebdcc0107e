// README: Provider-agnostic route resolution: geocode, directions, single snap retry, geometry extraction.
package route

import (
	"context"
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"tripcost/internal/maps"
)

// Resolver turns two endpoints into a Route using whichever provider the
// caller passes in. It holds no per-request state.
type Resolver struct {
	logger *zap.Logger
}

func NewResolver(logger *zap.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// Resolve geocodes text endpoints, requests directions, and retries once
// with snapped endpoints when the provider reports an unroutable point.
func (r *Resolver) Resolve(ctx context.Context, p maps.Provider, origin, destination Endpoint) (*Route, error) {
	from, err := r.locate(ctx, p, origin)
	if err != nil {
		return nil, err
	}
	to, err := r.locate(ctx, p, destination)
	if err != nil {
		return nil, err
	}

	route := &Route{Origin: from, Destination: to}
	d, err := p.Directions(ctx, from, to)
	if err != nil {
		if !errors.Is(err, maps.ErrUnroutable) {
			return nil, fmt.Errorf("%w: %s: %w", ErrRouteUnavailable, directionsReason(err), err)
		}
		r.logger.Info("directions reported unroutable point, snapping",
			zap.String("provider", p.Name()),
			zap.Float64s("from", from[:]),
			zap.Float64s("to", to[:]),
		)
		sf, st, snapErr := r.snap(ctx, p, from, to)
		if snapErr != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrRouteUnavailable, ReasonSnapFailed, snapErr)
		}
		r.logger.Info("snapped endpoints",
			zap.String("provider", p.Name()),
			zap.Float64s("from", sf[:]),
			zap.Float64s("to", st[:]),
		)
		d, err = p.Directions(ctx, sf, st)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrRouteUnavailable, directionsReason(err), err)
		}
		route.Snapped = true
	}

	route.DistanceKm, route.DurationHours = routeTotals(d)
	route.Points, route.GeometrySource = extractGeometry(d)
	if len(route.Points) == 0 {
		r.logger.Warn("parsed route had no points",
			zap.String("provider", p.Name()),
			zap.String("raw", trim(string(d.Raw), 2000)),
		)
		return nil, fmt.Errorf("%w: %s", ErrRouteUnavailable, ReasonNoPoints)
	}
	return route, nil
}

func (r *Resolver) locate(ctx context.Context, p maps.Provider, e Endpoint) (orb.Point, error) {
	if e.Coord != nil {
		return *e.Coord, nil
	}
	pt, err := p.Geocode(ctx, e.Text)
	if err != nil {
		r.logger.Warn("geocode failed", zap.String("provider", p.Name()), zap.String("text", e.Text), zap.Error(err))
		return orb.Point{}, fmt.Errorf("%w: %s: %w", ErrGeocodeFailed, ReasonGeocodeFailed, err)
	}
	return pt, nil
}

// snap moves both endpoints onto the road network, preferring the
// provider's snap endpoint and falling back to reverse geocoding.
func (r *Resolver) snap(ctx context.Context, p maps.Provider, from, to orb.Point) (orb.Point, orb.Point, error) {
	pts, err := p.SnapToRoad(ctx, from, to)
	if err == nil && len(pts) >= 2 {
		return pts[0], pts[len(pts)-1], nil
	}
	if err != nil && !errors.Is(err, maps.ErrSnapUnsupported) {
		r.logger.Warn("snap to road failed, trying reverse geocode", zap.String("provider", p.Name()), zap.Error(err))
	}

	sf, err := p.ReverseGeocode(ctx, from)
	if err != nil {
		return orb.Point{}, orb.Point{}, err
	}
	st, err := p.ReverseGeocode(ctx, to)
	if err != nil {
		return orb.Point{}, orb.Point{}, err
	}
	return sf, st, nil
}

func directionsReason(err error) string {
	var pe *maps.ProviderError
	if errors.As(err, &pe) && pe.StatusCode > 0 {
		return fmt.Sprintf("directions_http_%d", pe.StatusCode)
	}
	return "directions_failed"
}

func trim(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
