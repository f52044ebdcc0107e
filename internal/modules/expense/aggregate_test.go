package expense

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateJourneyDaysAndDA(t *testing.T) {
	got, err := Aggregate(Input{
		DistanceKm: 650,
		KmPerDay:   300,
		Extras:     Extras{DAPerDay: 500},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, got.JourneyDays)
	assert.Equal(t, 1500.0, got.DATotal)
	assert.Equal(t, 1500.0, got.ExtrasTotal)
}

func TestAggregateGrandTotalIsSumOfParts(t *testing.T) {
	inputs := []Input{
		{TollTotal: 1234.5, FuelTotal: 9876.54, DistanceKm: 1420.7, KmPerDay: 350, Extras: Extras{
			BorderExpense: 1500, LoadingUnloading: 800, Tyre: 250.25, Incentive: 1000, DAPerDay: 650, AdditionalCost: 333.33,
		}},
		{TollTotal: 0, FuelTotal: 0, DistanceKm: 0, KmPerDay: 1},
		{TollTotal: 0.1, FuelTotal: 0.2, DistanceKm: 12, KmPerDay: 500, Extras: Extras{Tyre: 0.3}},
	}
	for _, in := range inputs {
		got, err := Aggregate(in)
		require.NoError(t, err)
		assert.Equal(t, got.TollTotal+got.FuelTotal+got.ExtrasTotal, got.GrandTotal)
		e := got.Extras
		assert.Equal(t, e.BorderExpense+e.LoadingUnloading+e.Tyre+e.Incentive+got.DATotal+e.AdditionalCost, got.ExtrasTotal)
	}
}

func TestJourneyDays(t *testing.T) {
	tests := []struct {
		distance, perDay float64
		want             int
	}{
		{650, 300, 3},
		{600, 300, 2},
		{1, 300, 1},
		{0, 300, 1},
		{300.01, 300, 2},
		{500, 1e-300, MaxJourneyDays},
		{500, math.Inf(1), 1},
		{math.NaN(), 300, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, JourneyDays(tt.distance, tt.perDay), "%v/%v", tt.distance, tt.perDay)
	}
}

func TestAggregateRejectsInvalidInput(t *testing.T) {
	_, err := Aggregate(Input{DistanceKm: 100, KmPerDay: 0})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = Aggregate(Input{DistanceKm: 100, KmPerDay: -10})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = Aggregate(Input{DistanceKm: 100, KmPerDay: 300, Extras: Extras{Tyre: -1}})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "tyre")

	_, err = Aggregate(Input{DistanceKm: 500, KmPerDay: 1e-300})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = Aggregate(Input{DistanceKm: 500, KmPerDay: math.Inf(1)})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = Aggregate(Input{DistanceKm: math.NaN(), KmPerDay: 300})
	require.ErrorIs(t, err, ErrInvalidInput)
}
