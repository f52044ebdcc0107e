// README: Fuel price reference data and estimate types.
package fuel

import (
	"errors"

	"github.com/paulmach/orb"
)

var ErrInvalidMileage = errors.New("mileage must be greater than zero")

// DefaultFuelType applies when a request names none.
const DefaultFuelType = "petrol"

// PriceEntry is one city's price for a single fuel type.
type PriceEntry struct {
	State    string
	City     string
	Price    float64
	Location *orb.Point
}

type Request struct {
	DistanceKm float64
	Mileage    float64
	FuelType   string
	// UserTotalCost is an explicit total spend; it wins over every other source.
	UserTotalCost *float64
	// UserPricePerLitre is an explicit per-litre rate.
	UserPricePerLitre *float64
}

type Estimate struct {
	LitresNeeded  float64
	PricePerLitre float64
	TotalCost     float64
	// Source names the pricing strategy that applied.
	Source string
}

const (
	SourceUserTotal     = "user_total"
	SourceUserPerLitre  = "user_per_litre"
	SourceFallback      = "fallback"
	sourceDatasetPrefix = "dataset:"
)
