// README: Builds the configured provider set from MapsConfig.
package maps

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"tripcost/internal/config"
)

// Registry resolves providers by name, falling back to the configured default.
type Registry struct {
	providers map[string]Provider
	def       string
}

// NewRegistry builds every provider that has an API key. cache may be nil.
func NewRegistry(cfg config.MapsConfig, cache GeocodeCache, logger *zap.Logger) (*Registry, error) {
	timeouts := Timeouts{
		Geocode:    cfg.GeocodeTimeout,
		Directions: cfg.DirectionsTimeout,
		Reverse:    cfg.ReverseTimeout,
	}
	providers := make(map[string]Provider)
	if cfg.OlaAPIKey != "" {
		providers["ola"] = NewOlaProvider(ProviderConfig{APIKey: cfg.OlaAPIKey, BaseURL: cfg.OlaBaseURL, Timeouts: timeouts}, logger)
	}
	if cfg.ORSAPIKey != "" {
		providers["ors"] = NewORSProvider(ProviderConfig{APIKey: cfg.ORSAPIKey, BaseURL: cfg.ORSBaseURL, Timeouts: timeouts}, logger)
	}
	if cfg.GoogleAPIKey != "" {
		g, err := NewGoogleProvider(ProviderConfig{APIKey: cfg.GoogleAPIKey, Timeouts: timeouts}, logger)
		if err != nil {
			return nil, err
		}
		providers["google"] = g
	}
	if cache != nil {
		for name, p := range providers {
			providers[name] = NewCachedProvider(p, cache, logger)
		}
	}
	return NewStaticRegistry(cfg.Provider, providers)
}

// NewStaticRegistry wraps an existing provider set; def must be present.
func NewStaticRegistry(def string, providers map[string]Provider) (*Registry, error) {
	if _, ok := providers[def]; !ok {
		return nil, fmt.Errorf("%w: default %q is not configured", ErrUnknownProvider, def)
	}
	return &Registry{providers: providers, def: def}, nil
}

// Get returns the named provider, or the default when name is empty.
func (r *Registry) Get(name string) (Provider, error) {
	if name == "" {
		name = r.def
	}
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return p, nil
}

func (r *Registry) Default() string { return r.def }

// Names lists configured providers in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for n := range r.providers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
