// Package httpapi exposes the point location conversions over HTTP.
package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/iso6709/internal/formatter"
	"github.com/UnknownOlympus/iso6709/internal/location"
	"github.com/UnknownOlympus/iso6709/internal/service"
	"github.com/gin-gonic/gin"
)

const defaultFormat = "long"

// Handler serves the conversion endpoints.
type Handler struct {
	log       *slog.Logger
	converter *service.Converter
}

type angleResponse struct {
	Degrees float64 `json:"degrees"`
	Deg     int     `json:"deg"`
	Min     int     `json:"min"`
	Sec     int     `json:"sec"`
}

type pointLocationResponse struct {
	Latitude  angleResponse `json:"latitude"`
	Longitude angleResponse `json:"longitude"`
	Altitude  float64       `json:"altitude"`
	CRS       string        `json:"crs,omitempty"`
	Format    string        `json:"format"`
	Formatted string        `json:"formatted"`
}

type coordinateResponse struct {
	angleResponse

	Kind      string `json:"kind"`
	Format    string `json:"format"`
	Formatted string `json:"formatted"`
}

var errMissingKind = errors.New("kind must be latitude or longitude")

// PointLocation parses the value query parameter as an ISO 6709 point location
// and returns its components together with the requested representation.
func (h *Handler) PointLocation(c *gin.Context) {
	ctx := c.Request.Context()

	formatType, err := formatter.ParseFormatType(c.DefaultQuery("format", defaultFormat))
	if err != nil {
		badRequest(c, err)
		return
	}

	point, err := h.converter.ParsePointLocation(ctx, c.Query("value"))
	if err != nil {
		badRequest(c, err)
		return
	}

	formatted, err := h.converter.FormatPointLocation(ctx, point, formatType)
	if err != nil {
		h.log.ErrorContext(ctx, "Failed to format parsed point location", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, pointLocationResponse{
		Latitude:  newAngleResponse(point.Latitude()),
		Longitude: newAngleResponse(point.Longitude()),
		Altitude:  point.Altitude(),
		CRS:       point.CRS(),
		Format:    formatType.String(),
		Formatted: formatted,
	})
}

// Coordinate parses a single latitude or longitude selected by the kind query parameter.
func (h *Handler) Coordinate(c *gin.Context) {
	ctx := c.Request.Context()

	var kind location.Kind
	switch c.Query("kind") {
	case location.KindLatitude.String():
		kind = location.KindLatitude
	case location.KindLongitude.String():
		kind = location.KindLongitude
	default:
		badRequest(c, errMissingKind)
		return
	}

	formatType, err := formatter.ParseFormatType(c.DefaultQuery("format", defaultFormat))
	if err != nil {
		badRequest(c, err)
		return
	}

	angle, err := h.converter.ParseCoordinate(ctx, c.Query("value"), kind)
	if err != nil {
		badRequest(c, err)
		return
	}

	formatted, err := h.converter.FormatCoordinate(ctx, angle, formatType)
	if err != nil {
		h.log.ErrorContext(ctx, "Failed to format parsed coordinate", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, coordinateResponse{
		angleResponse: newAngleResponse(angle),
		Kind:          kind.String(),
		Format:        formatType.String(),
		Formatted:     formatted,
	})
}

func newAngleResponse(angle location.Angle) angleResponse {
	return angleResponse{
		Degrees: angle.Degrees(),
		Deg:     angle.Field(location.Degrees),
		Min:     angle.Field(location.Minutes),
		Sec:     angle.Field(location.Seconds),
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
