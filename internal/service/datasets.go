// README: Loads the read-only toll and fuel reference data once at startup.
package service

import (
	"fmt"

	"go.uber.org/zap"

	"tripcost/data"
	"tripcost/internal/config"
	"tripcost/internal/modules/fuel"
	"tripcost/internal/modules/toll"
)

// NewTollMatcher loads plazas from cfg.TollPath, or the embedded dataset
// when no path is configured.
func NewTollMatcher(cfg config.DatasetConfig, logger *zap.Logger) (*toll.Matcher, error) {
	var (
		plazas []toll.Plaza
		err    error
		source = "embedded"
	)
	if cfg.TollPath != "" {
		source = cfg.TollPath
		plazas, err = toll.LoadPlazasFile(cfg.TollPath)
	} else {
		plazas, err = toll.ParsePlazas(data.TollPlazas)
	}
	if err != nil {
		return nil, fmt.Errorf("load toll dataset %s: %w", source, err)
	}
	logger.Info("toll dataset loaded", zap.String("source", source), zap.Int("plazas", len(plazas)))
	return toll.NewMatcher(plazas, cfg.TollThresholdKm, logger), nil
}

// NewFuelService loads the fuel price book. A load failure is logged and
// leaves the estimator on its fallback price.
func NewFuelService(cfg config.DatasetConfig, logger *zap.Logger) *fuel.Service {
	var (
		book   *fuel.PriceBook
		err    error
		source = "embedded"
	)
	if cfg.FuelPath != "" {
		source = cfg.FuelPath
		book, err = fuel.LoadPriceBookFile(cfg.FuelPath)
	} else {
		book, err = fuel.ParsePriceBook(data.FuelPrices)
	}
	if err != nil {
		logger.Warn("fuel dataset unavailable, using fallback price",
			zap.String("source", source),
			zap.Float64("fallback_price", cfg.FallbackFuelPrice),
			zap.Error(err),
		)
		book = nil
	}
	return fuel.NewService(book, cfg.DefaultFuelRegion, cfg.FallbackFuelPrice, logger)
}
