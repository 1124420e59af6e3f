package httpapi_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/UnknownOlympus/iso6709/internal/httpapi"
	"github.com/UnknownOlympus/iso6709/internal/metrics"
	"github.com/UnknownOlympus/iso6709/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func() error

func (f pingerFunc) Ping(_ context.Context) error { return f() }

func newRouter(pinger httpapi.Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()
	converter := service.NewConverter(logger, metrics.NewMetrics(reg))

	return httpapi.NewRouter(logger, converter, reg, pinger, nil)
}

func get(t *testing.T, router http.Handler, path string, query url.Values) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	target := path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req := httptest.NewRequestWithContext(t.Context(), http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body map[string]any
	if rec.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}

	return rec, body
}

func TestPointLocation(t *testing.T) {
	t.Parallel()
	router := newRouter(nil)

	t.Run("default format", func(t *testing.T) {
		t.Parallel()

		rec, body := get(t, router, "/v1/point-locations", url.Values{"value": {"+40.20361-075.00417+350.517CRSWGS_84/"}})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "long", body["format"])
		assert.Equal(t, "+401213-0750015+350.51700CRSWGS_84/", body["formatted"])
		assert.Equal(t, "WGS_84", body["crs"])
		assert.InDelta(t, 350.517, body["altitude"], 1e-9)

		latitude, ok := body["latitude"].(map[string]any)
		require.True(t, ok)
		assert.InDelta(t, 40.20361, latitude["degrees"], 1e-9)
		assert.InDelta(t, 12, latitude["min"], 0)
		assert.InDelta(t, 13, latitude["sec"], 0)

		longitude, ok := body["longitude"].(map[string]any)
		require.True(t, ok)
		assert.InDelta(t, -75, longitude["deg"], 0)
		assert.InDelta(t, -15, longitude["sec"], 0)
	})

	t.Run("human format", func(t *testing.T) {
		t.Parallel()

		rec, body := get(t, router, "/v1/point-locations",
			url.Values{"value": {"+401213-0750015/"}, "format": {"HUMAN_MEDIUM"}})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "40°12'N 75°00'W", body["formatted"])
		assert.NotContains(t, body, "crs")
	})

	t.Run("parse error", func(t *testing.T) {
		t.Parallel()

		rec, body := get(t, router, "/v1/point-locations", url.Values{"value": {"+40+180/"}})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, body["error"], "180th meridian")
	})

	t.Run("missing value", func(t *testing.T) {
		t.Parallel()

		rec, body := get(t, router, "/v1/point-locations", nil)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, body["error"], "no point location value provided")
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()

		rec, body := get(t, router, "/v1/point-locations", url.Values{"value": {"+40-075/"}, "format": {"utm"}})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, body["error"], "unsupported format type")
	})
}

func TestCoordinate(t *testing.T) {
	t.Parallel()
	router := newRouter(nil)

	tests := []struct {
		name   string
		query  url.Values
		status int
		want   string
	}{
		{
			name:   "human latitude",
			query:  url.Values{"value": {"48° 36' 12.20\" N"}, "kind": {"latitude"}},
			status: http.StatusOK,
			want:   "+483612",
		},
		{
			name:   "compact longitude as decimal",
			query:  url.Values{"value": {"-0750015"}, "kind": {"longitude"}, "format": {"decimal"}},
			status: http.StatusOK,
			want:   "-075.00417",
		},
		{
			name:   "longitude as human short",
			query:  url.Values{"value": {"W07530"}, "kind": {"longitude"}, "format": {"human_short"}},
			status: http.StatusOK,
			want:   "76°W",
		},
		{
			name:   "missing kind",
			query:  url.Values{"value": {"+40"}},
			status: http.StatusBadRequest,
		},
		{
			name:   "latitude out of range",
			query:  url.Values{"value": {"+91"}, "kind": {"latitude"}},
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown format",
			query:  url.Values{"value": {"+40"}, "kind": {"latitude"}, "format": {"dms"}},
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec, body := get(t, router, "/v1/coordinates", tt.query)

			require.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.want, body["formatted"])
				assert.Equal(t, tt.query.Get("kind"), body["kind"])
			} else {
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	t.Run("without database", func(t *testing.T) {
		t.Parallel()

		rec, _ := get(t, newRouter(nil), "/healthz", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OK", rec.Body.String())
	})

	t.Run("database reachable", func(t *testing.T) {
		t.Parallel()

		rec, _ := get(t, newRouter(pingerFunc(func() error { return nil })), "/healthz", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("database unreachable", func(t *testing.T) {
		t.Parallel()

		rec, _ := get(t, newRouter(pingerFunc(func() error { return assert.AnError })), "/healthz", nil)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "DB ping failed", rec.Body.String())
	})
}

func TestMetrics(t *testing.T) {
	t.Parallel()
	router := newRouter(nil)

	get(t, router, "/v1/point-locations", url.Values{"value": {"+40-075/"}})
	rec, _ := get(t, router, "/metrics", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `iso6709_parse_total{kind="point",status="success"} 1`)
}

func TestCORS(t *testing.T) {
	t.Parallel()
	router := newRouter(nil)

	req := httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/v1/point-locations?value=%2B40-075%2F", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
