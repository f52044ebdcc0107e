// README: Combines toll, fuel and incidental costs into trip totals.
package expense

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidInput = errors.New("invalid expense input")

// MaxJourneyDays bounds the day count so the float quotient always fits an int.
const MaxJourneyDays = 100000

// Extras are user-supplied incidental costs; all default to zero.
type Extras struct {
	BorderExpense    float64
	LoadingUnloading float64
	Tyre             float64
	Incentive        float64
	DAPerDay         float64
	AdditionalCost   float64
}

type Input struct {
	TollTotal  float64
	FuelTotal  float64
	DistanceKm float64
	KmPerDay   float64
	Extras     Extras
}

// Totals keeps full precision; callers round at the output boundary.
type Totals struct {
	JourneyDays int
	DATotal     float64
	Extras      Extras
	ExtrasTotal float64
	TollTotal   float64
	FuelTotal   float64
	GrandTotal  float64
}

func Aggregate(in Input) (Totals, error) {
	if !(in.KmPerDay > 0) || math.IsInf(in.KmPerDay, 0) {
		return Totals{}, fmt.Errorf("%w: kilometers_per_day must be > 0", ErrInvalidInput)
	}
	if q := in.DistanceKm / in.KmPerDay; math.IsNaN(q) || q > MaxJourneyDays {
		return Totals{}, fmt.Errorf("%w: journey exceeds %d days at kilometers_per_day=%g", ErrInvalidInput, MaxJourneyDays, in.KmPerDay)
	}
	if err := in.Extras.validate(); err != nil {
		return Totals{}, err
	}

	days := JourneyDays(in.DistanceKm, in.KmPerDay)
	t := Totals{
		JourneyDays: days,
		DATotal:     in.Extras.DAPerDay * float64(days),
		Extras:      in.Extras,
		TollTotal:   in.TollTotal,
		FuelTotal:   in.FuelTotal,
	}
	e := in.Extras
	t.ExtrasTotal = e.BorderExpense + e.LoadingUnloading + e.Tyre + e.Incentive + t.DATotal + e.AdditionalCost
	t.GrandTotal = t.TollTotal + t.FuelTotal + t.ExtrasTotal
	return t, nil
}

// JourneyDays is ceil(distance / kmPerDay), clamped to [1, MaxJourneyDays].
func JourneyDays(distanceKm, kmPerDay float64) int {
	q := math.Ceil(distanceKm / kmPerDay)
	switch {
	case math.IsNaN(q) || q < 1:
		return 1
	case q > MaxJourneyDays:
		return MaxJourneyDays
	}
	return int(q)
}

func (e Extras) validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"border_expense", e.BorderExpense},
		{"loading_unloading", e.LoadingUnloading},
		{"tyre", e.Tyre},
		{"incentive", e.Incentive},
		{"da_amount_per_day", e.DAPerDay},
		{"additional_cost", e.AdditionalCost},
	}
	for _, f := range fields {
		if f.value < 0 || math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be a non-negative number", ErrInvalidInput, f.name)
		}
	}
	return nil
}
