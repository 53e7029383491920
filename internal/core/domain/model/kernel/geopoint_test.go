package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deliverybot/internal/core/domain/model/kernel"
	"deliverybot/internal/pkg/errs"
)

func TestNewGeoPoint(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		wantErr  bool
	}{
		{
			name: "valid point",
			lat:  55.7558,
			lon:  37.6173,
		},
		{
			name: "valid point at min bounds",
			lat:  kernel.MinLatitude,
			lon:  kernel.MinLongitude,
		},
		{
			name: "valid point at max bounds",
			lat:  kernel.MaxLatitude,
			lon:  kernel.MaxLongitude,
		},
		{
			name: "equator and prime meridian",
			lat:  0,
			lon:  0,
		},
		{
			name:    "latitude too large",
			lat:     90.01,
			lon:     37,
			wantErr: true,
		},
		{
			name:    "latitude too small",
			lat:     -90.01,
			lon:     37,
			wantErr: true,
		},
		{
			name:    "longitude too large",
			lat:     55,
			lon:     180.01,
			wantErr: true,
		},
		{
			name:    "longitude too small",
			lat:     55,
			lon:     -180.01,
			wantErr: true,
		},
		{
			name:    "both coordinates invalid",
			lat:     200,
			lon:     -300,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := kernel.NewGeoPoint(tt.lat, tt.lon)

			if tt.wantErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
				assert.Zero(t, p)
			} else {
				require.NoError(t, err)
				assert.InDelta(t, tt.lat, p.Latitude(), 1e-12)
				assert.InDelta(t, tt.lon, p.Longitude(), 1e-12)
				assert.NoError(t, p.Validate())
			}
		})
	}
}

func TestGeoPoint_Validate(t *testing.T) {
	t.Run("constructed point is valid", func(t *testing.T) {
		p, err := kernel.NewGeoPoint(55, 37)
		require.NoError(t, err)
		assert.NoError(t, p.Validate())
	})

	t.Run("zero value point is invalid", func(t *testing.T) {
		var p kernel.GeoPoint
		err := p.Validate()
		assert.Error(t, err)
		assert.Equal(t, kernel.ErrGeoPointIsNotConstructed, err)
	})
}

func TestGeoPoint_String(t *testing.T) {
	p := mustNewGeoPoint(t, 55.683037, 37.661695)
	assert.Equal(t, "55.683037, 37.661695", p.String())
}

func TestGeoPoint_IsEqual(t *testing.T) {
	t.Run("equal points", func(t *testing.T) {
		a := mustNewGeoPoint(t, 55.7558, 37.6173)
		b := mustNewGeoPoint(t, 55.7558, 37.6173)

		equal, err := a.IsEqual(b)
		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("different points", func(t *testing.T) {
		a := mustNewGeoPoint(t, 55.7558, 37.6173)
		b := mustNewGeoPoint(t, 59.9343, 30.3351)

		equal, err := a.IsEqual(b)
		require.NoError(t, err)
		assert.False(t, equal)
	})

	t.Run("invalid point", func(t *testing.T) {
		a := mustNewGeoPoint(t, 55.7558, 37.6173)

		_, err := a.IsEqual(kernel.GeoPoint{})
		assert.Error(t, err)
	})
}

func TestGeoPoint_DistanceKm(t *testing.T) {
	t.Run("distance to itself is zero", func(t *testing.T) {
		p := mustNewGeoPoint(t, 55.683037, 37.661695)

		d, err := p.DistanceKm(p)
		require.NoError(t, err)
		assert.Zero(t, d)
	})

	t.Run("distance is symmetric", func(t *testing.T) {
		pairs := []struct {
			a, b kernel.GeoPoint
		}{
			{mustNewGeoPoint(t, 55.683037, 37.661695), mustNewGeoPoint(t, 55.7558, 37.6173)},
			{mustNewGeoPoint(t, 0, 0), mustNewGeoPoint(t, 45, 90)},
			{mustNewGeoPoint(t, -33.8688, 151.2093), mustNewGeoPoint(t, 51.5074, -0.1278)},
		}

		for _, pair := range pairs {
			ab, err := pair.a.DistanceKm(pair.b)
			require.NoError(t, err)

			ba, err := pair.b.DistanceKm(pair.a)
			require.NoError(t, err)

			assert.InDelta(t, ab, ba, 1e-9)
		}
	})

	t.Run("moscow to saint petersburg", func(t *testing.T) {
		moscow := mustNewGeoPoint(t, 55.7558, 37.6173)
		spb := mustNewGeoPoint(t, 59.9343, 30.3351)

		d, err := moscow.DistanceKm(spb)
		require.NoError(t, err)

		// Reference great-circle distance is roughly 633 km.
		assert.InDelta(t, 633, d, 5)
	})

	t.Run("quarter of the equator", func(t *testing.T) {
		a := mustNewGeoPoint(t, 0, 0)
		b := mustNewGeoPoint(t, 0, 90)

		d, err := a.DistanceKm(b)
		require.NoError(t, err)

		// 6371 * pi / 2
		assert.InDelta(t, 10007.5, d, 1)
	})

	t.Run("invalid point", func(t *testing.T) {
		p := mustNewGeoPoint(t, 55, 37)

		_, err := p.DistanceKm(kernel.GeoPoint{})
		assert.Error(t, err)
	})
}

func mustNewGeoPoint(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return p
}
