package service_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tripcost/internal/config"
	"tripcost/internal/maps"
	"tripcost/internal/modules/expense"
	"tripcost/internal/modules/fuel"
	"tripcost/internal/modules/history"
	"tripcost/internal/modules/route"
	"tripcost/internal/modules/toll"
	"tripcost/internal/service"
)

var (
	delhi    = orb.Point{77.2090, 28.6139}
	gurugram = orb.Point{76.9830, 28.3955}
)

type stubProvider struct {
	geocode       map[string]orb.Point
	directions    *maps.Directions
	directionsErr error
	panicOnRoute  bool
	calls         int
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Geocode(_ context.Context, text string) (orb.Point, error) {
	s.calls++
	if p, ok := s.geocode[text]; ok {
		return p, nil
	}
	return orb.Point{}, maps.ErrNoCandidate
}

func (s *stubProvider) ReverseGeocode(context.Context, orb.Point) (orb.Point, error) {
	return orb.Point{}, maps.ErrNoCandidate
}

func (s *stubProvider) SnapToRoad(context.Context, orb.Point, orb.Point) ([]orb.Point, error) {
	return nil, maps.ErrSnapUnsupported
}

func (s *stubProvider) Directions(context.Context, orb.Point, orb.Point) (*maps.Directions, error) {
	s.calls++
	if s.panicOnRoute {
		panic("boom")
	}
	return s.directions, s.directionsErr
}

type memoryHistory struct{ records []history.Record }

func (m *memoryHistory) Insert(_ context.Context, r history.Record) error {
	m.records = append(m.records, r)
	return nil
}

func (m *memoryHistory) ListRecent(context.Context, int) ([]history.Record, error) {
	return m.records, nil
}

const testTolls = `[
	{"id":"KD","name":"Kherki Daula","location":{"lat":28.3955,"lon":76.9830},"fees":{"car":{"single":80},"bus":{"single":270}}},
	{"id":"FAR","name":"Far Away","location":{"lat":19.0,"lon":73.0},"fees":{"car":{"single":500}}}
]`

func newTestService(t *testing.T, p *stubProvider, repo history.Repository) *service.TripCostService {
	t.Helper()
	logger := zap.NewNop()
	plazas, err := toll.ParsePlazas([]byte(testTolls))
	require.NoError(t, err)
	book, err := fuel.ParsePriceBook([]byte(`{"Delhi":{"New Delhi":{"petrol":95,"diesel":88}}}`))
	require.NoError(t, err)
	providers, err := maps.NewStaticRegistry("stub", map[string]maps.Provider{"stub": p})
	require.NoError(t, err)

	return service.NewTripCostService(service.Deps{
		Providers: providers,
		Resolver:  route.NewResolver(logger),
		Tolls:     toll.NewMatcher(plazas, toll.DefaultThresholdKm, logger),
		Fuel:      fuel.NewService(book, "", 0, logger),
		History:   history.NewService(repo, logger),
		Logger:    logger,
	})
}

func delhiGurugramRoute() *maps.Directions {
	return &maps.Directions{
		Summary:  &maps.Summary{DistanceMeters: 30000, DurationSeconds: 3600},
		Geometry: maps.Geometry{Coordinates: orb.LineString{delhi, {77.1, 28.5}, gurugram}},
	}
}

func ptr(v float64) *float64 { return &v }

func TestEstimateFullPipeline(t *testing.T) {
	p := &stubProvider{
		geocode:    map[string]orb.Point{"Delhi": delhi, "Gurugram": gurugram},
		directions: delhiGurugramRoute(),
	}
	repo := &memoryHistory{}
	svc := newTestService(t, p, repo)

	got, err := svc.Estimate(context.Background(), service.TripCostRequest{
		Start:       "Delhi",
		Destination: "Gurugram",
		VehicleType: "Jeep",
		Mileage:     10,
		FuelPrice:   ptr(100),
		KmPerDay:    300,
		Extras:      expense.Extras{BorderExpense: 100, DAPerDay: 500},
	})
	require.NoError(t, err)

	assert.Equal(t, "Delhi", got.TripSummary.From)
	assert.Equal(t, "Gurugram", got.TripSummary.To)
	assert.Equal(t, 30.0, got.TripSummary.DistanceKm)
	assert.Equal(t, 1.0, got.TripSummary.DurationHours)
	assert.Equal(t, 1, got.TripSummary.JourneyTimeDays)
	assert.Equal(t, "stub", got.TripSummary.Provider)
	require.NotNil(t, got.TripSummary.FuelTankCapacity)
	assert.Equal(t, service.DefaultFuelTankCapacity, *got.TripSummary.FuelTankCapacity)

	assert.Equal(t, 80.0, got.Tolls.TotalTollCost)
	require.Len(t, got.Tolls.TollDetails, 1)
	assert.Equal(t, "Kherki Daula", got.Tolls.TollDetails[0].Name)
	assert.Equal(t, 0.0, got.Tolls.TollDetails[0].DistanceFromRouteKm)

	assert.Equal(t, 3.0, got.Fuel.TotalFuelNeeded)
	assert.Equal(t, 300.0, got.Fuel.TotalFuelCost)
	require.Len(t, got.Fuel.Refuels, 1)
	assert.Equal(t, fuel.SourceUserPerLitre, got.Fuel.Refuels[0].Source)

	assert.Equal(t, 500.0, got.Extras.DATripAmount)
	assert.Equal(t, 600.0, got.Extras.TotalExtras)
	assert.Equal(t, service.FinalCost{Toll: 80, Fuel: 300, Extras: 600, TotalTripCost: 980}, got.FinalCost)

	require.Len(t, repo.records, 1)
	assert.Equal(t, 980.0, repo.records[0].GrandTotal)
	assert.Equal(t, "stub", repo.records[0].Provider)
}

func TestEstimateCoordinateEndpointsAndDatasetFuel(t *testing.T) {
	p := &stubProvider{directions: delhiGurugramRoute()}
	svc := newTestService(t, p, nil)

	got, err := svc.Estimate(context.Background(), service.TripCostRequest{
		StartCoord:       &delhi,
		DestCoord:        &gurugram,
		VehicleType:      "truck",
		Mileage:          5,
		FuelTankCapacity: ptr(350),
		FuelType:         "diesel",
		KmPerDay:         20,
	})
	require.NoError(t, err)
	assert.Equal(t, "28.6139,77.209", got.TripSummary.From)
	assert.Equal(t, "28.3955,76.983", got.TripSummary.To)
	assert.Equal(t, 2, got.TripSummary.JourneyTimeDays)
	assert.Equal(t, 350.0, *got.TripSummary.FuelTankCapacity)
	assert.Equal(t, 270.0, got.Tolls.TotalTollCost)
	assert.Equal(t, 88.0, got.Fuel.Refuels[0].PricePerLitre)
	assert.Equal(t, "dataset:Delhi/New Delhi", got.Fuel.Refuels[0].Source)
	assert.Equal(t, 528.0, got.Fuel.TotalFuelCost)
}

func TestEstimateValidation(t *testing.T) {
	base := service.TripCostRequest{Start: "Delhi", Destination: "Gurugram", VehicleType: "car", Mileage: 12, KmPerDay: 300}

	tests := []struct {
		name   string
		mutate func(r *service.TripCostRequest)
		want   error
	}{
		{"both endpoint forms", func(r *service.TripCostRequest) { r.StartCoord, r.DestCoord = &delhi, &gurugram }, service.ErrInvalidInput},
		{"no endpoints", func(r *service.TripCostRequest) { r.Start, r.Destination = "", "" }, service.ErrInvalidInput},
		{"half text", func(r *service.TripCostRequest) { r.Destination = "" }, service.ErrInvalidInput},
		{"missing vehicle", func(r *service.TripCostRequest) { r.VehicleType = " " }, service.ErrInvalidInput},
		{"zero mileage", func(r *service.TripCostRequest) { r.Mileage = 0 }, fuel.ErrInvalidMileage},
		{"NaN mileage", func(r *service.TripCostRequest) { r.Mileage = math.NaN() }, fuel.ErrInvalidMileage},
		{"infinite mileage", func(r *service.TripCostRequest) { r.Mileage = math.Inf(1) }, fuel.ErrInvalidMileage},
		{"zero km per day", func(r *service.TripCostRequest) { r.KmPerDay = 0 }, service.ErrInvalidInput},
		{"NaN km per day", func(r *service.TripCostRequest) { r.KmPerDay = math.NaN() }, service.ErrInvalidInput},
		{"negative extra", func(r *service.TripCostRequest) { r.Extras.Tyre = -5 }, expense.ErrInvalidInput},
		{"unknown provider", func(r *service.TripCostRequest) { r.Provider = "here" }, service.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &stubProvider{
				geocode:    map[string]orb.Point{"Delhi": delhi, "Gurugram": gurugram},
				directions: delhiGurugramRoute(),
			}
			req := base
			tt.mutate(&req)
			_, err := newTestService(t, p, nil).Estimate(context.Background(), req)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEstimateValidatesBeforeCallingProvider(t *testing.T) {
	p := &stubProvider{}
	_, err := newTestService(t, p, nil).Estimate(context.Background(), service.TripCostRequest{
		Start: "Delhi", Destination: "Gurugram", VehicleType: "car", Mileage: -1, KmPerDay: 300,
	})
	require.ErrorIs(t, err, fuel.ErrInvalidMileage)
	assert.Zero(t, p.calls)
}

func TestEstimateRouteErrors(t *testing.T) {
	p := &stubProvider{
		geocode:       map[string]orb.Point{"Delhi": delhi},
		directionsErr: &maps.ProviderError{Provider: "stub", StatusCode: 502},
	}
	svc := newTestService(t, p, nil)

	_, err := svc.Estimate(context.Background(), service.TripCostRequest{
		Start: "Delhi", Destination: "Nowhere", VehicleType: "car", Mileage: 10, KmPerDay: 300,
	})
	require.ErrorIs(t, err, route.ErrGeocodeFailed)

	p.geocode["Nowhere"] = gurugram
	_, err = svc.Estimate(context.Background(), service.TripCostRequest{
		Start: "Delhi", Destination: "Nowhere", VehicleType: "car", Mileage: 10, KmPerDay: 300,
	})
	require.ErrorIs(t, err, route.ErrRouteUnavailable)
	require.ErrorIs(t, err, maps.ErrProvider)
}

func TestEstimateRecoversFromPanic(t *testing.T) {
	p := &stubProvider{panicOnRoute: true}
	_, err := newTestService(t, p, nil).Estimate(context.Background(), service.TripCostRequest{
		StartCoord: &delhi, DestCoord: &gurugram, VehicleType: "car", Mileage: 10, KmPerDay: 300,
	})
	require.True(t, errors.Is(err, service.ErrInternal))
}

func TestDatasetLoaders(t *testing.T) {
	logger := zap.NewNop()

	m, err := service.NewTollMatcher(config.DatasetConfig{TollThresholdKm: 2}, logger)
	require.NoError(t, err)
	assert.Greater(t, m.Plazas(), 0)

	_, err = service.NewTollMatcher(config.DatasetConfig{TollPath: "/does/not/exist.json"}, logger)
	require.Error(t, err)

	f := service.NewFuelService(config.DatasetConfig{FuelPath: "/does/not/exist.json", FallbackFuelPrice: 120}, logger)
	est, err := f.Estimate(fuel.Request{DistanceKm: 100, Mileage: 10})
	require.NoError(t, err)
	assert.Equal(t, fuel.SourceFallback, est.Source)
	assert.Equal(t, 1200.0, est.TotalCost)

	f = service.NewFuelService(config.DatasetConfig{}, logger)
	est, err = f.Estimate(fuel.Request{DistanceKm: 100, Mileage: 10})
	require.NoError(t, err)
	assert.Equal(t, "dataset:Delhi/New Delhi", est.Source)
}
