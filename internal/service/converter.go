package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/iso6709/internal/formatter"
	"github.com/UnknownOlympus/iso6709/internal/location"
	"github.com/UnknownOlympus/iso6709/internal/metrics"
	"github.com/UnknownOlympus/iso6709/internal/parser"
)

// ErrUnsupportedKind is returned when a coordinate is neither a latitude nor a longitude.
var ErrUnsupportedKind = errors.New("unsupported coordinate kind")

const (
	statusSuccess = "success"
	statusFailure = "failure"
)

// Converter wraps the parser and the formatter with logging and metrics.
// Every entry point of the application converts text through it.
type Converter struct {
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewConverter creates a Converter reporting to the given logger and metrics.
func NewConverter(log *slog.Logger, metrics *metrics.Metrics) *Converter {
	return &Converter{log: log, metrics: metrics}
}

// ParsePointLocation parses an ISO 6709 point location string such as "+401213-0750015/".
func (c *Converter) ParsePointLocation(ctx context.Context, text string) (location.PointLocation, error) {
	startTime := time.Now()
	point, err := parser.ParsePointLocation(text)
	c.metrics.ParseSeconds.Observe(time.Since(startTime).Seconds())

	if err != nil {
		c.metrics.Parsed.WithLabelValues("point", statusFailure).Inc()
		c.log.DebugContext(ctx, "Failed to parse point location", "input", text, "error", err)
		return location.PointLocation{}, err
	}

	c.metrics.Parsed.WithLabelValues("point", statusSuccess).Inc()
	c.log.DebugContext(ctx, "Point location parsed", "input", text, "point", point.String())

	return point, nil
}

// ParseCoordinate parses a single latitude or longitude in compact or human form.
func (c *Converter) ParseCoordinate(ctx context.Context, text string, kind location.Kind) (location.Angle, error) {
	var (
		angle location.Angle
		err   error
	)

	startTime := time.Now()
	switch kind {
	case location.KindLatitude:
		angle, err = parser.ParseLatitude(text)
	case location.KindLongitude:
		angle, err = parser.ParseLongitude(text)
	default:
		return location.Angle{}, fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
	}
	c.metrics.ParseSeconds.Observe(time.Since(startTime).Seconds())

	if err != nil {
		c.metrics.Parsed.WithLabelValues(kind.String(), statusFailure).Inc()
		c.log.DebugContext(ctx, "Failed to parse coordinate", "input", text, "kind", kind.String(), "error", err)
		return location.Angle{}, err
	}

	c.metrics.Parsed.WithLabelValues(kind.String(), statusSuccess).Inc()

	return angle, nil
}

// FormatPointLocation renders a point location in the requested format.
func (c *Converter) FormatPointLocation(
	ctx context.Context,
	point location.PointLocation,
	formatType formatter.FormatType,
) (string, error) {
	formatted, err := formatter.FormatPointLocation(&point, formatType)
	c.observeFormat(ctx, formatType, err)

	return formatted, err
}

// FormatCoordinate renders a latitude or a longitude on its own, depending on the angle kind.
func (c *Converter) FormatCoordinate(
	ctx context.Context,
	angle location.Angle,
	formatType formatter.FormatType,
) (string, error) {
	var (
		formatted string
		err       error
	)

	if angle.Kind() == location.KindLongitude {
		formatted, err = formatter.FormatLongitude(&angle, formatType)
	} else {
		formatted, err = formatter.FormatLatitude(&angle, formatType)
	}
	c.observeFormat(ctx, formatType, err)

	return formatted, err
}

func (c *Converter) observeFormat(ctx context.Context, formatType formatter.FormatType, err error) {
	if err != nil {
		c.metrics.Formatted.WithLabelValues(formatType.String(), statusFailure).Inc()
		c.log.WarnContext(ctx, "Failed to format value", "format", formatType.String(), "error", err)
		return
	}

	c.metrics.Formatted.WithLabelValues(formatType.String(), statusSuccess).Inc()
}
