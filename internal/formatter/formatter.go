// Package formatter renders latitudes, longitudes and point locations in the
// ISO 6709 compact notations and in the human notation with unit marks.
package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/iso6709/internal/location"
)

const (
	latitudeDegreeWidth  = 2
	longitudeDegreeWidth = 3
	// Altitudes closer to zero than this are not written.
	altitudeEpsilon = 1e-6
)

// FormatPointLocation renders a point location. The ISO variants (Decimal,
// Long, Medium, Short) end with a slash.
func FormatPointLocation(point *location.PointLocation, formatType FormatType) (string, error) {
	const op = "format point location"

	if point == nil {
		return "", &FormatError{Op: op, Err: ErrNoValue}
	}
	if formatType == 0 {
		return "", &FormatError{Op: op, Err: ErrNoFormatType}
	}

	switch formatType {
	case HumanLong:
		return point.String(), nil
	case HumanMedium, HumanShort:
		return formatHuman(point, formatType), nil
	case Decimal, Long, Medium, Short:
		return formatISO6709(point, formatType), nil
	default:
		return "", &FormatError{Op: op, Err: fmt.Errorf("%w: %v", ErrUnsupportedFormatType, formatType)}
	}
}

// FormatLatitude renders a latitude on its own, e.g. +401213 for Long.
func FormatLatitude(latitude *location.Angle, formatType FormatType) (string, error) {
	return formatCoordinate("format latitude", latitude, location.KindLatitude, formatType)
}

// FormatLongitude renders a longitude on its own, e.g. -0750015 for Long.
func FormatLongitude(longitude *location.Angle, formatType FormatType) (string, error) {
	return formatCoordinate("format longitude", longitude, location.KindLongitude, formatType)
}

func formatCoordinate(op string, angle *location.Angle, kind location.Kind, formatType FormatType) (string, error) {
	if angle == nil {
		return "", &FormatError{Op: op, Err: ErrNoValue}
	}
	if formatType == 0 {
		return "", &FormatError{Op: op, Err: ErrNoFormatType}
	}
	if angle.Kind() != kind {
		return "", &FormatError{Op: op, Err: fmt.Errorf("%w: got %v", ErrWrongKind, angle.Kind())}
	}

	formatted, ok := formatAngle(*angle, formatType)
	if !ok {
		return "", &FormatError{Op: op, Err: fmt.Errorf("%w: %v", ErrUnsupportedFormatType, formatType)}
	}

	return formatted, nil
}

func formatAngle(angle location.Angle, formatType FormatType) (string, bool) {
	switch formatType {
	case HumanLong:
		return angle.Format(location.Long), true
	case HumanMedium:
		return angle.Format(location.Medium), true
	case HumanShort:
		return angle.Format(location.Short), true
	case Decimal:
		return integerDegrees(angle) + decimalFraction(angle), true
	case Long:
		return integerDegrees(angle) + sexagesimalLong(angle), true
	case Medium:
		return integerDegrees(angle) + sexagesimalMedium(angle), true
	case Short:
		return integerDegrees(angle), true
	default:
		return "", false
	}
}

func formatHuman(point *location.PointLocation, formatType FormatType) string {
	latitude, _ := formatAngle(point.Latitude(), formatType)
	longitude, _ := formatAngle(point.Longitude(), formatType)

	str := latitude + " " + longitude
	if altitude := altitudeWithSign(point.Altitude()); altitude != "" {
		str += " " + altitude
	}

	return str
}

func formatISO6709(point *location.PointLocation, formatType FormatType) string {
	var sbr strings.Builder

	latitude, _ := formatAngle(point.Latitude(), formatType)
	longitude, _ := formatAngle(point.Longitude(), formatType)

	sbr.WriteString(latitude)
	sbr.WriteString(longitude)
	sbr.WriteString(altitudeWithSign(point.Altitude()))
	if crs := point.CRS(); strings.TrimSpace(crs) != "" {
		sbr.WriteString("CRS")
		sbr.WriteString(crs)
	}
	sbr.WriteString("/")

	return sbr.String()
}

// integerDegrees writes the signed whole degrees, two digits wide for
// latitudes and three for longitudes. The 180th meridian is always negative.
// A negative zero keeps its sign so that "-000015" reads back unchanged.
func integerDegrees(angle location.Angle) string {
	sign := "+"
	if math.Signbit(angle.Radians()) {
		sign = "-"
	}

	degrees := abs(angle.Field(location.Degrees))

	width := 0
	switch angle.Kind() {
	case location.KindLatitude:
		width = latitudeDegreeWidth
	case location.KindLongitude:
		width = longitudeDegreeWidth
		if degrees == 180 {
			sign = "-"
		}
	case location.KindAngle:
	}

	return fmt.Sprintf("%s%0*d", sign, width, degrees)
}

func sexagesimalLong(angle location.Angle) string {
	return fmt.Sprintf("%02d%02d", abs(angle.Field(location.Minutes)), abs(angle.Field(location.Seconds)))
}

// sexagesimalMedium rounds the minutes on the seconds without going past 59.
func sexagesimalMedium(angle location.Angle) string {
	minutes := abs(angle.Field(location.Minutes))
	if minutes < 59 && abs(angle.Field(location.Seconds)) >= 30 {
		minutes++
	}

	return fmt.Sprintf("%02d", minutes)
}

// decimalFraction writes the fraction of the absolute decimal degrees with
// five digits and no leading zero, e.g. ".20361".
func decimalFraction(angle location.Angle) string {
	degrees := math.Abs(angle.Degrees())
	fraction := degrees - math.Trunc(degrees)

	return strings.TrimPrefix(strconv.FormatFloat(fraction, 'f', 5, 64), "0")
}

func altitudeWithSign(altitude float64) string {
	if math.Abs(altitude) <= altitudeEpsilon {
		return ""
	}

	sign := "+"
	if altitude < 0 {
		sign = "-"
	}

	return sign + strconv.FormatFloat(math.Abs(altitude), 'f', 5, 64)
}

func abs(value int) int {
	if value < 0 {
		return -value
	}
	return value
}
