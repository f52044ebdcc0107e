// README: Persisted summary of one successful trip estimate.
package history

import (
	"time"

	"github.com/google/uuid"
)

type Record struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Provider    string    `db:"provider" json:"provider"`
	Origin      string    `db:"origin" json:"origin"`
	Destination string    `db:"destination" json:"destination"`
	VehicleType string    `db:"vehicle_type" json:"vehicle_type"`
	DistanceKm  float64   `db:"distance_km" json:"distance_km"`
	TollTotal   float64   `db:"toll_total" json:"toll_total"`
	FuelTotal   float64   `db:"fuel_total" json:"fuel_total"`
	ExtrasTotal float64   `db:"extras_total" json:"extras_total"`
	GrandTotal  float64   `db:"grand_total" json:"grand_total"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
