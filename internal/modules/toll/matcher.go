// README: Matches toll plazas against route geometry and totals their fees.
package toll

import (
	"math"

	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"tripcost/internal/geo"
)

// DefaultThresholdKm is how close a plaza must be to a route vertex to be charged.
const DefaultThresholdKm = 2.0

// kmPerDegreeLat is the approximate length of one degree of latitude.
const kmPerDegreeLat = 111.32

type Match struct {
	ID         string
	Name       string
	Location   orb.Point
	Fee        float64
	DistanceKm float64
}

type Result struct {
	Total   float64
	Matches []Match
}

// Matcher holds a read-only plaza set shared across requests.
type Matcher struct {
	plazas      []Plaza
	thresholdKm float64
	logger      *zap.Logger
}

func NewMatcher(plazas []Plaza, thresholdKm float64, logger *zap.Logger) *Matcher {
	if thresholdKm <= 0 {
		thresholdKm = DefaultThresholdKm
	}
	return &Matcher{plazas: plazas, thresholdKm: thresholdKm, logger: logger}
}

func (m *Matcher) Plazas() int { return len(m.plazas) }

// Match charges every plaza within the threshold of a route vertex once.
// Distance is to the nearest vertex, not the nearest segment, so accuracy
// depends on route point density.
func (m *Matcher) Match(route orb.LineString, class VehicleClass) Result {
	var res Result
	if len(route) == 0 {
		return res
	}
	bound := paddedBound(route, m.thresholdKm)
	seen := make(map[string]struct{})

	for _, p := range m.plazas {
		if p.Location == nil {
			m.logger.Debug("skipping plaza without location", zap.String("name", p.Name))
			continue
		}
		if !bound.Contains(*p.Location) {
			continue
		}
		d := geo.MinDistanceToRoute(p.Location.Lat(), p.Location.Lon(), route)
		if d > m.thresholdKm {
			continue
		}
		if key := p.DedupKey(); key != "" {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}

		fee, ok := p.Fee(class)
		if !ok || fee <= 0 {
			m.logger.Debug("plaza on route has no fee for class",
				zap.String("name", p.Name), zap.String("class", string(class)))
			continue
		}
		name := p.Name
		if name == "" {
			name = "<unknown>"
		}
		res.Total += fee
		res.Matches = append(res.Matches, Match{
			ID:         p.ID,
			Name:       name,
			Location:   *p.Location,
			Fee:        fee,
			DistanceKm: d,
		})
	}
	return res
}

// paddedBound grows the route's bounding box by thresholdKm so plazas far
// from the route skip the per-vertex scan.
func paddedBound(route orb.LineString, thresholdKm float64) orb.Bound {
	b := route.Bound()
	maxLat := math.Max(math.Abs(b.Min.Lat()), math.Abs(b.Max.Lat()))
	cos := math.Max(math.Cos(maxLat*math.Pi/180), 0.01)
	return b.Pad(thresholdKm / (kmPerDegreeLat * cos) * 1.01)
}
