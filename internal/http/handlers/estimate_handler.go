// README: POST /api/tripExpense; lenient request parsing into a TripCostRequest.
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripcost/internal/modules/expense"
	"tripcost/internal/service"
)

const (
	msgMissingRequired = "Missing required fields: vehicle_type and mileage"
	msgEndpointForms   = "Provide either start/destination text OR start_coord/dest_coord, not both"
	msgKmPerDay        = "Missing or invalid required field: kilometers_per_day (must be > 0)"
)

// Estimator runs the trip cost pipeline.
type Estimator interface {
	Estimate(ctx context.Context, req service.TripCostRequest) (*service.ExpenseBreakdown, error)
}

type EstimateHandler struct {
	svc    Estimator
	logger *zap.Logger
}

func NewEstimateHandler(svc Estimator, logger *zap.Logger) *EstimateHandler {
	return &EstimateHandler{svc: svc, logger: logger}
}

func (h *EstimateHandler) Estimate(c *gin.Context) {
	f, err := readFields(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	req, msg := buildRequest(f)
	if msg != "" {
		writeError(c, http.StatusBadRequest, msg)
		return
	}
	req.Provider = strings.ToLower(strings.TrimSpace(c.Query("provider")))

	out, err := h.svc.Estimate(c.Request.Context(), req)
	if err != nil {
		writeEstimateError(c, h.logger, err)
		return
	}
	writeJSON(c, http.StatusOK, out)
}

// buildRequest applies the HTTP-level required field checks and returns a
// user-facing message when one fails.
func buildRequest(f fields) (service.TripCostRequest, string) {
	vehicle := f.str("vehicle_type")
	mileage, hasMileage := f.num("mileage")
	if vehicle == "" || !hasMileage {
		return service.TripCostRequest{}, msgMissingRequired
	}

	req := service.TripCostRequest{
		Start:       f.str("start"),
		Destination: f.str("destination"),
		StartCoord:  f.coord("start_coord"),
		DestCoord:   f.coord("dest_coord"),
		VehicleType: vehicle,
		Mileage:     mileage,
		FuelType:    strings.ToLower(f.str("fuel_type")),
		Loaded:      f.boolean("loaded"),
	}
	hasText := req.Start != "" && req.Destination != ""
	hasCoords := req.StartCoord != nil && req.DestCoord != nil
	if hasText == hasCoords {
		return service.TripCostRequest{}, msgEndpointForms
	}

	kmPerDay, ok := f.num("kilometers_per_day")
	if !ok || kmPerDay <= 0 {
		return service.TripCostRequest{}, msgKmPerDay
	}
	req.KmPerDay = kmPerDay

	if v, ok := f.num("fuel_tank_capacity"); ok {
		req.FuelTankCapacity = &v
	}
	req.FuelCost = f.positive("fuel_cost")
	req.FuelPrice = f.positive("fuel_price", "fuel_rate", "price_per_litre")
	req.Extras = expense.Extras{
		BorderExpense:    f.numOrZero("border_expense"),
		LoadingUnloading: f.numOrZero("loading_unloading"),
		Tyre:             f.numOrZero("tyre"),
		Incentive:        f.numOrZero("incentive"),
		DAPerDay:         f.numOrZero("da_amount_per_day"),
		AdditionalCost:   f.numOrZero("additional_cost"),
	}
	return req, ""
}
