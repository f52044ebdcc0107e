// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripcost/internal/maps"
	"tripcost/internal/modules/expense"
	"tripcost/internal/modules/fuel"
	"tripcost/internal/modules/route"
	"tripcost/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// clientErrors are pipeline failures caused by the request or by the
// upstream's inability to route it. Their message is returned as is.
var clientErrors = []error{
	service.ErrInvalidInput,
	fuel.ErrInvalidMileage,
	expense.ErrInvalidInput,
	route.ErrGeocodeFailed,
	route.ErrRouteUnavailable,
	maps.ErrProvider,
}

func writeEstimateError(c *gin.Context, logger *zap.Logger, err error) {
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			writeError(c, http.StatusBadRequest, err.Error())
			return
		}
	}
	logger.Error("trip expense failed", zap.Error(err))
	writeError(c, http.StatusInternalServerError, "internal error")
}
