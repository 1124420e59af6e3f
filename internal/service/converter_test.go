package service_test

import (
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/iso6709/internal/formatter"
	"github.com/UnknownOlympus/iso6709/internal/location"
	"github.com/UnknownOlympus/iso6709/internal/metrics"
	"github.com/UnknownOlympus/iso6709/internal/parser"
	"github.com/UnknownOlympus/iso6709/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConverter() (*service.Converter, *metrics.Metrics) {
	appMetrics := metrics.NewMetrics(prometheus.NewRegistry())
	return service.NewConverter(slog.Default(), appMetrics), appMetrics
}

func TestConverter_PointLocation(t *testing.T) {
	t.Parallel()
	ctx := t.Context()

	t.Run("parse and format", func(t *testing.T) {
		t.Parallel()
		converter, appMetrics := newConverter()

		point, err := converter.ParsePointLocation(ctx, "+401213.1-0750015.1/")
		require.NoError(t, err)

		formatted, err := converter.FormatPointLocation(ctx, point, formatter.Decimal)
		require.NoError(t, err)

		assert.Equal(t, "+40.20364-075.00419/", formatted)
		assert.InDelta(t, 1, testutil.ToFloat64(appMetrics.Parsed.WithLabelValues("point", "success")), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(appMetrics.Formatted.WithLabelValues("decimal", "success")), 0)
		assert.Equal(t, 1, testutil.CollectAndCount(appMetrics.ParseSeconds))
	})

	t.Run("parse error", func(t *testing.T) {
		t.Parallel()
		converter, appMetrics := newConverter()

		_, err := converter.ParsePointLocation(ctx, "+40-075")

		var parseErr *parser.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.InDelta(t, 1, testutil.ToFloat64(appMetrics.Parsed.WithLabelValues("point", "failure")), 0)
	})

	t.Run("format error", func(t *testing.T) {
		t.Parallel()
		converter, appMetrics := newConverter()

		_, err := converter.FormatPointLocation(ctx, location.PointLocation{}, formatter.FormatType(0))

		require.ErrorIs(t, err, formatter.ErrNoFormatType)
		assert.InDelta(t, 1, testutil.ToFloat64(appMetrics.Formatted.WithLabelValues("FormatType(0)", "failure")), 0)
	})
}

func TestConverter_Coordinate(t *testing.T) {
	t.Parallel()
	ctx := t.Context()

	tests := []struct {
		input      string
		kind       location.Kind
		formatType formatter.FormatType
		want       string
	}{
		{"48° 36' 12.20\" N", location.KindLatitude, formatter.Long, "+483612"},
		{"-0750015", location.KindLongitude, formatter.Long, "-0750015"},
		{"+40.20361", location.KindLatitude, formatter.HumanLong, "40°12'13\"N"},
		{"W075", location.KindLongitude, formatter.Short, "-075"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			converter, appMetrics := newConverter()

			angle, err := converter.ParseCoordinate(ctx, tt.input, tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, angle.Kind())

			formatted, err := converter.FormatCoordinate(ctx, angle, tt.formatType)
			require.NoError(t, err)
			assert.Equal(t, tt.want, formatted)
			assert.InDelta(t, 1, testutil.ToFloat64(appMetrics.Parsed.WithLabelValues(tt.kind.String(), "success")), 0)
		})
	}
}

func TestConverter_CoordinateErrors(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	converter, appMetrics := newConverter()

	_, err := converter.ParseCoordinate(ctx, "+91", location.KindLatitude)
	require.ErrorIs(t, err, location.ErrOutOfRange)
	assert.InDelta(t, 1, testutil.ToFloat64(appMetrics.Parsed.WithLabelValues("latitude", "failure")), 0)

	_, err = converter.ParseCoordinate(ctx, "+10", location.KindAngle)
	require.ErrorIs(t, err, service.ErrUnsupportedKind)

	_, err = converter.FormatCoordinate(ctx, location.FromDegrees(10), formatter.Long)
	require.ErrorIs(t, err, formatter.ErrWrongKind)
}
