// README: Builds the trip cost pipeline and its optional redis/postgres collaborators from config.
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tripcost/internal/config"
	"tripcost/internal/infra"
	"tripcost/internal/maps"
	"tripcost/internal/modules/history"
	"tripcost/internal/modules/route"
)

// Runtime is a fully wired pipeline. Close releases the optional
// connections it opened.
type Runtime struct {
	Pipeline  *TripCostService
	History   *history.Service
	Providers *maps.Registry
	closers   []func()
}

func (r *Runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
}

// Bootstrap loads datasets, connects redis and postgres when configured,
// and builds every configured maps provider. Redis and postgres are
// optional: a failed connection is logged and the feature stays off.
func Bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Runtime, error) {
	rt := &Runtime{}

	var cache maps.GeocodeCache
	if cfg.Redis.Addr != "" {
		client, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			logger.Warn("geocode cache disabled", zap.Error(err))
		} else {
			rt.closers = append(rt.closers, func() { _ = client.Close() })
			cache = maps.NewRedisGeocodeCache(client, cfg.Maps.GeocodeCacheTTL)
			logger.Info("geocode cache enabled", zap.String("redis", cfg.Redis.Addr), zap.Duration("ttl", cfg.Maps.GeocodeCacheTTL))
		}
	}

	var repo history.Repository
	if cfg.DB.DSN != "" {
		pool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			logger.Warn("estimate history disabled", zap.Error(err))
		} else {
			rt.closers = append(rt.closers, pool.Close)
			repo = history.NewStore(pool)
			logger.Info("estimate history enabled")
		}
	}
	rt.History = history.NewService(repo, logger)

	providers, err := maps.NewRegistry(cfg.Maps, cache, logger)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("maps providers: %w", err)
	}
	rt.Providers = providers

	tolls, err := NewTollMatcher(cfg.Datasets, logger)
	if err != nil {
		rt.Close()
		return nil, err
	}

	rt.Pipeline = NewTripCostService(Deps{
		Providers: providers,
		Resolver:  route.NewResolver(logger),
		Tolls:     tolls,
		Fuel:      NewFuelService(cfg.Datasets, logger),
		History:   rt.History,
		Logger:    logger,
	})
	logger.Info("trip cost pipeline ready",
		zap.String("default_provider", providers.Default()),
		zap.Strings("providers", providers.Names()),
	)
	return rt, nil
}
