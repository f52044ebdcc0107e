// README: GET /api/tripExpense/history; recent estimates when history is enabled.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripcost/internal/modules/history"
)

type HistoryHandler struct {
	history *history.Service
	logger  *zap.Logger
}

func NewHistoryHandler(svc *history.Service, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{history: svc, logger: logger}
}

func (h *HistoryHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	records, err := h.history.List(c.Request.Context(), limit)
	if errors.Is(err, history.ErrDisabled) {
		writeError(c, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("list trip estimates", zap.Error(err))
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	if records == nil {
		records = []history.Record{}
	}
	writeJSON(c, http.StatusOK, gin.H{"estimates": records})
}
