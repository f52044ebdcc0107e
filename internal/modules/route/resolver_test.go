package route

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tripcost/internal/maps"
)

// fakeProvider scripts directions answers in call order.
type fakeProvider struct {
	geocode    map[string]orb.Point
	snapped    []orb.Point
	snapErr    error
	reverse    map[orb.Point]orb.Point
	directions []directionsAnswer

	directionsCalls [][2]orb.Point
	snapCalls       int
	reverseCalls    int
}

type directionsAnswer struct {
	d   *maps.Directions
	err error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Geocode(_ context.Context, text string) (orb.Point, error) {
	p, ok := f.geocode[text]
	if !ok {
		return orb.Point{}, maps.ErrNoCandidate
	}
	return p, nil
}

func (f *fakeProvider) ReverseGeocode(_ context.Context, p orb.Point) (orb.Point, error) {
	f.reverseCalls++
	r, ok := f.reverse[p]
	if !ok {
		return orb.Point{}, maps.ErrNoCandidate
	}
	return r, nil
}

func (f *fakeProvider) SnapToRoad(context.Context, orb.Point, orb.Point) ([]orb.Point, error) {
	f.snapCalls++
	return f.snapped, f.snapErr
}

func (f *fakeProvider) Directions(_ context.Context, from, to orb.Point) (*maps.Directions, error) {
	f.directionsCalls = append(f.directionsCalls, [2]orb.Point{from, to})
	i := len(f.directionsCalls) - 1
	if i >= len(f.directions) {
		return nil, errors.New("unexpected directions call")
	}
	return f.directions[i].d, f.directions[i].err
}

var (
	delhi  = orb.Point{77.2090, 28.6139}
	jaipur = orb.Point{75.7873, 26.9124}
)

func unroutable() error {
	return &maps.ProviderError{Provider: "fake", Endpoint: "directions", StatusCode: http.StatusNotFound, Unroutable: true}
}

func lineDirections() *maps.Directions {
	return &maps.Directions{
		Summary:  &maps.Summary{DistanceMeters: 280000, DurationSeconds: 18000},
		Geometry: maps.Geometry{Coordinates: orb.LineString{delhi, jaipur}},
	}
}

func TestResolveTextEndpoints(t *testing.T) {
	p := &fakeProvider{
		geocode:    map[string]orb.Point{"Delhi": delhi, "Jaipur": jaipur},
		directions: []directionsAnswer{{d: lineDirections()}},
	}

	r, err := NewResolver(zap.NewNop()).Resolve(context.Background(), p, TextEndpoint("Delhi"), TextEndpoint("Jaipur"))
	require.NoError(t, err)
	assert.InDelta(t, 280.0, r.DistanceKm, 1e-9)
	assert.InDelta(t, 5.0, r.DurationHours, 1e-9)
	assert.Equal(t, orb.LineString{delhi, jaipur}, r.Points)
	assert.Equal(t, "coordinates", r.GeometrySource)
	assert.False(t, r.Snapped)
	assert.Equal(t, [2]orb.Point{delhi, jaipur}, p.directionsCalls[0])
}

func TestResolveGeocodeFailure(t *testing.T) {
	p := &fakeProvider{geocode: map[string]orb.Point{"Delhi": delhi}}

	_, err := NewResolver(zap.NewNop()).Resolve(context.Background(), p, TextEndpoint("Delhi"), TextEndpoint("Atlantis"))
	require.ErrorIs(t, err, ErrGeocodeFailed)
	assert.Contains(t, err.Error(), ReasonGeocodeFailed)
	assert.Empty(t, p.directionsCalls)
}

func TestResolveUnroutableThenSnapSucceeds(t *testing.T) {
	snappedFrom := orb.Point{77.21, 28.62}
	snappedTo := orb.Point{75.79, 26.92}
	p := &fakeProvider{
		snapped: []orb.Point{snappedFrom, snappedTo},
		directions: []directionsAnswer{
			{err: unroutable()},
			{d: lineDirections()},
		},
	}

	r, err := NewResolver(zap.NewNop()).Resolve(context.Background(), p, CoordEndpoint(delhi), CoordEndpoint(jaipur))
	require.NoError(t, err)
	assert.NotEmpty(t, r.Points)
	assert.True(t, r.Snapped)
	require.Len(t, p.directionsCalls, 2)
	assert.Equal(t, [2]orb.Point{snappedFrom, snappedTo}, p.directionsCalls[1])
	assert.Equal(t, 0, p.reverseCalls)
}

func TestResolveSnapUnsupportedFallsBackToReverseGeocode(t *testing.T) {
	rf := orb.Point{77.3, 28.7}
	rt := orb.Point{75.9, 27.0}
	p := &fakeProvider{
		snapErr: maps.ErrSnapUnsupported,
		reverse: map[orb.Point]orb.Point{delhi: rf, jaipur: rt},
		directions: []directionsAnswer{
			{err: unroutable()},
			{d: lineDirections()},
		},
	}

	r, err := NewResolver(zap.NewNop()).Resolve(context.Background(), p, CoordEndpoint(delhi), CoordEndpoint(jaipur))
	require.NoError(t, err)
	assert.True(t, r.Snapped)
	assert.Equal(t, 2, p.reverseCalls)
	assert.Equal(t, [2]orb.Point{rf, rt}, p.directionsCalls[1])
}

func TestResolveSecondFailureIsTerminal(t *testing.T) {
	p := &fakeProvider{
		snapped: []orb.Point{delhi, jaipur},
		directions: []directionsAnswer{
			{err: unroutable()},
			{err: unroutable()},
		},
	}

	_, err := NewResolver(zap.NewNop()).Resolve(context.Background(), p, CoordEndpoint(delhi), CoordEndpoint(jaipur))
	require.ErrorIs(t, err, ErrRouteUnavailable)
	assert.Contains(t, err.Error(), "directions_http_404")
	assert.Len(t, p.directionsCalls, 2)
	assert.Equal(t, 1, p.snapCalls)
}

func TestResolveSnapFailure(t *testing.T) {
	p := &fakeProvider{
		snapErr:    errors.New("snap down"),
		directions: []directionsAnswer{{err: unroutable()}},
	}

	_, err := NewResolver(zap.NewNop()).Resolve(context.Background(), p, CoordEndpoint(delhi), CoordEndpoint(jaipur))
	require.ErrorIs(t, err, ErrRouteUnavailable)
	assert.Contains(t, err.Error(), ReasonSnapFailed)
	assert.Len(t, p.directionsCalls, 1)
}

func TestResolveOtherProviderErrorDoesNotRetry(t *testing.T) {
	p := &fakeProvider{
		directions: []directionsAnswer{{err: &maps.ProviderError{Provider: "fake", StatusCode: http.StatusInternalServerError}}},
	}

	_, err := NewResolver(zap.NewNop()).Resolve(context.Background(), p, CoordEndpoint(delhi), CoordEndpoint(jaipur))
	require.ErrorIs(t, err, ErrRouteUnavailable)
	require.ErrorIs(t, err, maps.ErrProvider)
	assert.Contains(t, err.Error(), "directions_http_500")
	assert.Equal(t, 0, p.snapCalls)
}

func TestResolveEmptyGeometry(t *testing.T) {
	p := &fakeProvider{
		directions: []directionsAnswer{{d: &maps.Directions{Summary: &maps.Summary{DistanceMeters: 1000}}}},
	}

	_, err := NewResolver(zap.NewNop()).Resolve(context.Background(), p, CoordEndpoint(delhi), CoordEndpoint(jaipur))
	require.ErrorIs(t, err, ErrRouteUnavailable)
	assert.Contains(t, err.Error(), ReasonNoPoints)
}
