package geo

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-polyline"
)

// encodePolyline encodes (lon, lat) points with the reference codec.
func encodePolyline(points orb.LineString, precision int) string {
	coords := make([][]float64, 0, len(points))
	for _, p := range points {
		coords = append(coords, []float64{p.Lat(), p.Lon()})
	}
	codec := polyline.Codec{Dim: 2, Scale: math.Pow10(precision)}
	return string(codec.EncodeCoords(nil, coords))
}

func TestDecodePolyline_GoogleReference(t *testing.T) {
	got := DecodePolyline("_p~iF~ps|U_ulLnnqC_mqNvxq`@", Precision5)
	want := orb.LineString{{-120.2, 38.5}, {-120.95, 40.7}, {-126.453, 43.252}}

	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i].Lon(), got[i].Lon(), 1e-5)
		assert.InDelta(t, want[i].Lat(), got[i].Lat(), 1e-5)
	}
}

func TestDecodePolyline_RoundTrip(t *testing.T) {
	route := orb.LineString{
		{77.209021, 28.613939},
		{76.982411, 28.395012},
		{76.430155, 27.998734},
		{75.787270, 26.912434},
		{-0.127758, 51.507351},
	}
	for _, precision := range []int{Precision5, Precision6} {
		encoded := encodePolyline(route, precision)
		got := DecodePolyline(encoded, precision)
		require.Len(t, got, len(route), "precision %d", precision)

		tolerance := math.Pow10(-precision)
		for i := range route {
			assert.InDelta(t, route[i].Lon(), got[i].Lon(), tolerance, "precision %d lon %d", precision, i)
			assert.InDelta(t, route[i].Lat(), got[i].Lat(), tolerance, "precision %d lat %d", precision, i)
		}
	}
}

func TestDecodePolyline_EmptyAndMalformed(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"outside alphabet", "!!!!"},
		{"truncated chunk", "_p~iF~ps|U_"},
		{"dangling latitude", "_p~iF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, DecodePolyline(tt.encoded, Precision5))
			assert.Empty(t, DecodePolyline(tt.encoded, Precision6))
		})
	}
}

func TestDecodePolylineAny_FallsThroughEmpty(t *testing.T) {
	assert.Empty(t, DecodePolylineAny("", Precision6, Precision5))

	route := orb.LineString{{77.2, 28.6}, {75.8, 26.9}}
	got := DecodePolylineAny(encodePolyline(route, Precision6), Precision6, Precision5)
	require.Len(t, got, 2)
	assert.InDelta(t, 28.6, got[0].Lat(), 1e-6)
}
