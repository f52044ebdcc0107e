// README: Trip cost request and the rounded breakdown returned to callers.
package service

import (
	"github.com/paulmach/orb"

	"tripcost/internal/modules/expense"
)

// DefaultFuelTankCapacity is reported when a request gives no positive capacity.
const DefaultFuelTankCapacity = 200.0

// TripCostRequest carries either Start/Destination text or
// StartCoord/DestCoord, never both.
type TripCostRequest struct {
	Start       string
	Destination string
	StartCoord  *orb.Point
	DestCoord   *orb.Point

	VehicleType      string
	Mileage          float64
	FuelType         string
	FuelTankCapacity *float64
	// FuelCost is an explicit total fuel spend.
	FuelCost *float64
	// FuelPrice is an explicit per-litre rate.
	FuelPrice *float64
	KmPerDay  float64
	Extras    expense.Extras
	Loaded    *bool
	// Provider selects a configured maps provider; empty means the default.
	Provider string
}

type ExpenseBreakdown struct {
	TripSummary TripSummary   `json:"trip_summary"`
	Tolls       TollSummary   `json:"tolls"`
	Fuel        FuelSummary   `json:"fuel"`
	Extras      ExtrasSummary `json:"extras"`
	FinalCost   FinalCost     `json:"final_cost"`
}

type TripSummary struct {
	From             string   `json:"from"`
	To               string   `json:"to"`
	VehicleType      string   `json:"vehicle_type"`
	DistanceKm       float64  `json:"distance_km"`
	DurationHours    float64  `json:"duration_hours"`
	Mileage          float64  `json:"mileage"`
	JourneyTimeDays  int      `json:"journey_time_days"`
	FuelTankCapacity *float64 `json:"fuel_tank_capacity"`
	Loaded           *bool    `json:"loaded,omitempty"`
	Provider         string   `json:"provider"`
	RouteSnapped     bool     `json:"route_snapped,omitempty"`
}

type TollSummary struct {
	TotalTollCost float64      `json:"total_toll_cost"`
	TollDetails   []TollDetail `json:"toll_details"`
}

type TollDetail struct {
	Name                string  `json:"name"`
	Lat                 float64 `json:"lat"`
	Lon                 float64 `json:"lon"`
	Fee                 float64 `json:"fee"`
	DistanceFromRouteKm float64 `json:"distance_from_route_km"`
}

type FuelSummary struct {
	TotalFuelNeeded float64  `json:"total_fuel_needed"`
	TotalFuelCost   float64  `json:"total_fuel_cost"`
	Refuels         []Refuel `json:"refuels"`
}

type Refuel struct {
	PricePerLitre float64 `json:"price_per_litre"`
	Cost          float64 `json:"cost"`
	LitresNeeded  float64 `json:"litres_needed"`
	Source        string  `json:"source"`
}

type ExtrasSummary struct {
	BorderExpense    float64 `json:"border_expense"`
	LoadingUnloading float64 `json:"loading_unloading"`
	Tyre             float64 `json:"tyre"`
	Incentive        float64 `json:"incentive"`
	DATripAmount     float64 `json:"da_trip_amount"`
	AdditionalCost   float64 `json:"additional_cost"`
	TotalExtras      float64 `json:"total_extras"`
}

type FinalCost struct {
	Toll          float64 `json:"toll"`
	Fuel          float64 `json:"fuel"`
	Extras        float64 `json:"extras"`
	TotalTripCost float64 `json:"total_trip_cost"`
}
