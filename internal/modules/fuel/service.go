// README: Fuel cost estimator evaluating pricing sources in priority order.
package fuel

import (
	"math"
	"strings"

	"go.uber.org/zap"
)

const (
	DefaultRegion        = "Delhi"
	DefaultFallbackPrice = 110.0
)

type Service struct {
	book          *PriceBook
	defaultRegion string
	fallbackPrice float64
	logger        *zap.Logger
}

// NewService creates an estimator over book. A nil book prices everything
// from the user inputs or the fallback.
func NewService(book *PriceBook, defaultRegion string, fallbackPrice float64, logger *zap.Logger) *Service {
	if defaultRegion == "" {
		defaultRegion = DefaultRegion
	}
	if fallbackPrice <= 0 {
		fallbackPrice = DefaultFallbackPrice
	}
	return &Service{book: book, defaultRegion: defaultRegion, fallbackPrice: fallbackPrice, logger: logger}
}

// priceStrategy returns the per-litre price and total for litres, or false
// when its source does not apply.
type priceStrategy func(s *Service, req Request, litres float64) (Estimate, bool)

// priceStrategies is evaluated in order; the configured fallback price
// applies when none match.
var priceStrategies = []priceStrategy{
	userTotalPrice,
	userPerLitrePrice,
	regionDatasetPrice,
	firstDatasetPrice,
}

func (s *Service) Estimate(req Request) (Estimate, error) {
	if !(req.Mileage > 0) || math.IsInf(req.Mileage, 0) {
		return Estimate{}, ErrInvalidMileage
	}
	if req.FuelType == "" {
		req.FuelType = DefaultFuelType
	}
	litres := req.DistanceKm / req.Mileage

	est := Estimate{PricePerLitre: s.fallbackPrice, TotalCost: litres * s.fallbackPrice, Source: SourceFallback}
	for _, strategy := range priceStrategies {
		if e, ok := strategy(s, req, litres); ok {
			est = e
			break
		}
	}
	est.LitresNeeded = litres
	s.logger.Info("fuel price selected",
		zap.String("source", est.Source),
		zap.Float64("price_per_litre", est.PricePerLitre),
	)
	return est, nil
}

func userTotalPrice(_ *Service, req Request, litres float64) (Estimate, bool) {
	if req.UserTotalCost == nil || *req.UserTotalCost <= 0 {
		return Estimate{}, false
	}
	est := Estimate{TotalCost: *req.UserTotalCost, Source: SourceUserTotal}
	if litres > 0 {
		est.PricePerLitre = est.TotalCost / litres
	}
	return est, true
}

func userPerLitrePrice(_ *Service, req Request, litres float64) (Estimate, bool) {
	if req.UserPricePerLitre == nil || *req.UserPricePerLitre <= 0 {
		return Estimate{}, false
	}
	p := *req.UserPricePerLitre
	return Estimate{PricePerLitre: p, TotalCost: litres * p, Source: SourceUserPerLitre}, true
}

func regionDatasetPrice(s *Service, req Request, litres float64) (Estimate, bool) {
	for _, e := range s.book.Entries(req.FuelType) {
		if strings.EqualFold(e.State, s.defaultRegion) {
			return datasetEstimate(e, litres), true
		}
	}
	return Estimate{}, false
}

func firstDatasetPrice(s *Service, req Request, litres float64) (Estimate, bool) {
	entries := s.book.Entries(req.FuelType)
	if len(entries) == 0 {
		return Estimate{}, false
	}
	return datasetEstimate(entries[0], litres), true
}

func datasetEstimate(e PriceEntry, litres float64) Estimate {
	return Estimate{
		PricePerLitre: e.Price,
		TotalCost:     litres * e.Price,
		Source:        sourceDatasetPrefix + e.State + "/" + e.City,
	}
}
