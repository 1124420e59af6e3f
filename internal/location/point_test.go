package location_test

import (
	"testing"

	"github.com/UnknownOlympus/iso6709/internal/location"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPoint(t *testing.T, lat, lon, alt float64, crs string) location.PointLocation {
	t.Helper()

	point, err := location.NewPointLocation(location.FromDegrees(lat), location.FromDegrees(lon), alt, crs)
	require.NoError(t, err)

	return point
}

func TestNewPointLocation(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		point := mustPoint(t, 40.20361, -75.00417, 350.517, "  WGS84 ")

		assert.Equal(t, location.KindLatitude, point.Latitude().Kind())
		assert.Equal(t, location.KindLongitude, point.Longitude().Kind())
		assert.InDelta(t, 350.517, point.Altitude(), 1e-9)
		assert.Equal(t, "WGS84", point.CRS())
	})

	t.Run("invalid latitude", func(t *testing.T) {
		t.Parallel()
		_, err := location.NewPointLocation(location.FromDegrees(95), location.FromDegrees(0), 0, "")
		require.ErrorIs(t, err, location.ErrOutOfRange)
		assert.ErrorContains(t, err, "invalid latitude")
	})

	t.Run("positive antimeridian", func(t *testing.T) {
		t.Parallel()
		_, err := location.NewPointLocation(location.FromDegrees(40), location.FromDegrees(180), 0, "")
		require.ErrorIs(t, err, location.ErrPositiveAntimeridian)
		assert.ErrorContains(t, err, "invalid longitude")
	})
}

func TestPointLocation_String(t *testing.T) {
	t.Parallel()

	lat := 40 + 12/60.0 + 13.123/3600
	lon := -(75 + 15.123/3600)

	assert.Equal(t, "40°12'13\"N 75°00'15\"W", mustPoint(t, lat, lon, 0, "").String())
	assert.Equal(t, "40°12'13\"N 75°00'15\"W 23.230", mustPoint(t, lat, lon, 23.23, "").String())
	assert.Equal(t, "40°12'13\"N 75°00'15\"W -13.130", mustPoint(t, lat, lon, -13.13, "x").String())
}

func TestPointLocation_Compare(t *testing.T) {
	t.Parallel()

	low := mustPoint(t, 40, -75, 10, "")
	high := mustPoint(t, 10, -75, 20, "")
	north := mustPoint(t, 41, -75, 10, "")
	east := mustPoint(t, 40, -74, 10, "")

	assert.Equal(t, -1, low.Compare(high))
	assert.Equal(t, 1, high.Compare(low))
	assert.Negative(t, low.Compare(north))
	assert.Negative(t, low.Compare(east))
	assert.Zero(t, low.Compare(mustPoint(t, 40, -75, 10, "other")))
}

func TestPointLocation_Equal(t *testing.T) {
	t.Parallel()

	point := mustPoint(t, 40, -75, 10, "crs")

	assert.True(t, point.Equal(mustPoint(t, 40, -75, 10, "crs")))
	assert.False(t, point.Equal(mustPoint(t, 40, -75, 10, "other")))
	assert.False(t, point.Equal(mustPoint(t, 40, -75, 11, "crs")))
	assert.False(t, point.Equal(mustPoint(t, 40, -75.5, 10, "crs")))
}
