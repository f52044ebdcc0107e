// README: Provider capability interface (geocode, directions, snap) implemented once per upstream map service.
package maps

import (
	"context"
	"errors"
	"fmt"

	"github.com/paulmach/orb"
)

// Provider is the capability surface the route resolver needs from an
// upstream map service. Points are (lon, lat).
type Provider interface {
	Name() string
	// Geocode returns the first candidate for text, or ErrNoCandidate.
	Geocode(ctx context.Context, text string) (orb.Point, error)
	// ReverseGeocode returns the nearest indexed place to p, or ErrNoCandidate.
	ReverseGeocode(ctx context.Context, p orb.Point) (orb.Point, error)
	// SnapToRoad maps from and to onto the routable network. Providers
	// without a snap endpoint return ErrSnapUnsupported.
	SnapToRoad(ctx context.Context, from, to orb.Point) ([]orb.Point, error)
	// Directions requests a full-overview driving route. Unroutable
	// endpoints are reported with an error matching ErrUnroutable.
	Directions(ctx context.Context, from, to orb.Point) (*Directions, error)
}

var (
	ErrNoCandidate      = errors.New("no geocoding candidate")
	ErrSnapUnsupported  = errors.New("snap to road not supported")
	ErrUnroutable       = errors.New("no routable point")
	ErrProvider         = errors.New("maps provider error")
	ErrUnknownProvider  = errors.New("unknown maps provider")
	ErrMalformedPayload = errors.New("malformed provider payload")
)

// ProviderError is a non-success answer from an upstream endpoint.
type ProviderError struct {
	Provider   string
	Endpoint   string
	StatusCode int
	Body       string
	Unroutable bool
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s %s: http %d: %s", e.Provider, e.Endpoint, e.StatusCode, trim(e.Body, 200))
}

func (e *ProviderError) Is(target error) bool {
	switch target {
	case ErrProvider:
		return true
	case ErrUnroutable:
		return e.Unroutable
	}
	return false
}

// trim shortens s for logs and error messages.
func trim(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
