// README: Trip cost pipeline: route resolution, toll matching, fuel estimate, expense aggregation.
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime/debug"
	"strings"

	"go.uber.org/zap"

	"tripcost/internal/maps"
	"tripcost/internal/modules/expense"
	"tripcost/internal/modules/fuel"
	"tripcost/internal/modules/history"
	"tripcost/internal/modules/route"
	"tripcost/internal/modules/toll"
	"tripcost/internal/types"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// ProviderSource resolves a maps provider by name; empty means the default.
type ProviderSource interface {
	Get(name string) (maps.Provider, error)
}

type Deps struct {
	Providers ProviderSource
	Resolver  *route.Resolver
	Tolls     *toll.Matcher
	Fuel      *fuel.Service
	// History may be nil.
	History *history.Service
	Logger  *zap.Logger
}

// TripCostService is safe for concurrent use; all shared state is read-only.
type TripCostService struct {
	providers ProviderSource
	resolver  *route.Resolver
	tolls     *toll.Matcher
	fuel      *fuel.Service
	history   *history.Service
	logger    *zap.Logger
}

func NewTripCostService(d Deps) *TripCostService {
	return &TripCostService{
		providers: d.Providers,
		resolver:  d.Resolver,
		tolls:     d.Tolls,
		fuel:      d.Fuel,
		history:   d.History,
		logger:    d.Logger,
	}
}

// Estimate runs the full pipeline for one request. Unexpected panics are
// logged and reported as ErrInternal.
func (s *TripCostService) Estimate(ctx context.Context, req TripCostRequest) (out *ExpenseBreakdown, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("trip cost pipeline panic",
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()),
			)
			out, err = nil, ErrInternal
		}
	}()

	origin, destination, err := validate(req)
	if err != nil {
		return nil, err
	}
	provider, err := s.providers.Get(req.Provider)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	rt, err := s.resolver.Resolve(ctx, provider, origin, destination)
	if err != nil {
		return nil, err
	}

	class := toll.NormalizeVehicleClass(req.VehicleType)
	tolls := s.tolls.Match(rt.Points, class)

	fuelEst, err := s.fuel.Estimate(fuel.Request{
		DistanceKm:        rt.DistanceKm,
		Mileage:           req.Mileage,
		FuelType:          req.FuelType,
		UserTotalCost:     req.FuelCost,
		UserPricePerLitre: req.FuelPrice,
	})
	if err != nil {
		return nil, err
	}

	totals, err := expense.Aggregate(expense.Input{
		TollTotal:  tolls.Total,
		FuelTotal:  fuelEst.TotalCost,
		DistanceKm: rt.DistanceKm,
		KmPerDay:   req.KmPerDay,
		Extras:     req.Extras,
	})
	if err != nil {
		return nil, err
	}

	out = buildBreakdown(req, provider.Name(), origin, destination, rt, tolls, fuelEst, totals)
	s.logger.Info("trip cost estimated",
		zap.String("provider", provider.Name()),
		zap.String("from", out.TripSummary.From),
		zap.String("to", out.TripSummary.To),
		zap.String("vehicle_class", string(class)),
		zap.Float64("distance_km", rt.DistanceKm),
		zap.Int("tolls_matched", len(tolls.Matches)),
		zap.Float64("total", totals.GrandTotal),
	)

	s.history.Record(ctx, history.Record{
		Provider:    provider.Name(),
		Origin:      out.TripSummary.From,
		Destination: out.TripSummary.To,
		VehicleType: req.VehicleType,
		DistanceKm:  out.TripSummary.DistanceKm,
		TollTotal:   out.FinalCost.Toll,
		FuelTotal:   out.FinalCost.Fuel,
		ExtrasTotal: out.FinalCost.Extras,
		GrandTotal:  out.FinalCost.TotalTripCost,
	})
	return out, nil
}

// validate checks required fields before any upstream call is made.
func validate(req TripCostRequest) (route.Endpoint, route.Endpoint, error) {
	if strings.TrimSpace(req.VehicleType) == "" {
		return route.Endpoint{}, route.Endpoint{}, fmt.Errorf("%w: vehicle_type is required", ErrInvalidInput)
	}
	if !finitePositive(req.Mileage) {
		return route.Endpoint{}, route.Endpoint{}, fuel.ErrInvalidMileage
	}
	if !finitePositive(req.KmPerDay) {
		return route.Endpoint{}, route.Endpoint{}, fmt.Errorf("%w: kilometers_per_day must be > 0", ErrInvalidInput)
	}

	hasText := strings.TrimSpace(req.Start) != "" && strings.TrimSpace(req.Destination) != ""
	hasCoords := req.StartCoord != nil && req.DestCoord != nil
	if hasText == hasCoords {
		return route.Endpoint{}, route.Endpoint{}, fmt.Errorf("%w: provide either start/destination text or start_coord/dest_coord, not both", ErrInvalidInput)
	}
	if hasCoords {
		return route.CoordEndpoint(*req.StartCoord), route.CoordEndpoint(*req.DestCoord), nil
	}
	return route.TextEndpoint(strings.TrimSpace(req.Start)), route.TextEndpoint(strings.TrimSpace(req.Destination)), nil
}

func tankCapacity(v *float64) *float64 {
	c := DefaultFuelTankCapacity
	if v != nil && finitePositive(*v) {
		c = *v
	}
	return &c
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func buildBreakdown(
	req TripCostRequest,
	providerName string,
	origin, destination route.Endpoint,
	rt *route.Route,
	tolls toll.Result,
	fuelEst fuel.Estimate,
	totals expense.Totals,
) *ExpenseBreakdown {
	out := &ExpenseBreakdown{
		TripSummary: TripSummary{
			From:             origin.String(),
			To:               destination.String(),
			VehicleType:      req.VehicleType,
			DistanceKm:       types.Round2(rt.DistanceKm),
			DurationHours:    types.Round2(rt.DurationHours),
			Mileage:          req.Mileage,
			JourneyTimeDays:  totals.JourneyDays,
			FuelTankCapacity: tankCapacity(req.FuelTankCapacity),
			Loaded:           req.Loaded,
			Provider:         providerName,
			RouteSnapped:     rt.Snapped,
		},
		Tolls: TollSummary{
			TotalTollCost: types.Round2(tolls.Total),
			TollDetails:   make([]TollDetail, 0, len(tolls.Matches)),
		},
		Fuel: FuelSummary{
			TotalFuelNeeded: types.Round2(fuelEst.LitresNeeded),
			TotalFuelCost:   types.Round2(fuelEst.TotalCost),
			Refuels: []Refuel{{
				PricePerLitre: types.Round2(fuelEst.PricePerLitre),
				Cost:          types.Round2(fuelEst.TotalCost),
				LitresNeeded:  types.Round2(fuelEst.LitresNeeded),
				Source:        fuelEst.Source,
			}},
		},
		Extras: ExtrasSummary{
			BorderExpense:    types.Round2(totals.Extras.BorderExpense),
			LoadingUnloading: types.Round2(totals.Extras.LoadingUnloading),
			Tyre:             types.Round2(totals.Extras.Tyre),
			Incentive:        types.Round2(totals.Extras.Incentive),
			DATripAmount:     types.Round2(totals.DATotal),
			AdditionalCost:   types.Round2(totals.Extras.AdditionalCost),
			TotalExtras:      types.Round2(totals.ExtrasTotal),
		},
		FinalCost: FinalCost{
			Toll:          types.Round2(totals.TollTotal),
			Fuel:          types.Round2(totals.FuelTotal),
			Extras:        types.Round2(totals.ExtrasTotal),
			TotalTripCost: types.Round2(totals.GrandTotal),
		},
	}
	for _, m := range tolls.Matches {
		out.Tolls.TollDetails = append(out.Tolls.TollDetails, TollDetail{
			Name:                m.Name,
			Lat:                 m.Location.Lat(),
			Lon:                 m.Location.Lon(),
			Fee:                 m.Fee,
			DistanceFromRouteKm: types.Round2(m.DistanceKm),
		})
	}
	return out
}
