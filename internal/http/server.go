// README: API gateway; wires the router into an http.Server.
package http

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"tripcost/internal/http/handlers"
	"tripcost/internal/modules/history"
)

type ServerDeps struct {
	Estimator handlers.Estimator
	// History may be nil; the history endpoint then answers 503.
	History *history.Service
	Logger  *zap.Logger
}

func NewServer(addr string, deps ServerDeps) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		// Directions calls may take up to their own 30s timeout, twice on a snap retry.
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
