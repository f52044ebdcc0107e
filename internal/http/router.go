// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripcost/internal/http/handlers"
	"tripcost/internal/http/middleware"
)

func NewRouter(deps ServerDeps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(deps.Logger),
		middleware.Logging(deps.Logger),
	)

	estimateHandler := handlers.NewEstimateHandler(deps.Estimator, deps.Logger)
	historyHandler := handlers.NewHistoryHandler(deps.History, deps.Logger)

	api := r.Group("/api")
	api.POST("/tripExpense", estimateHandler.Estimate)
	api.GET("/tripExpense/history", historyHandler.List)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	return r
}
