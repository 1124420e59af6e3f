package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/iso6709/internal/location"
)

var (
	// coordinatePattern matches latitude, longitude and altitude tokens.
	coordinatePattern = regexp.MustCompile(`[NSEW+\-]\d+\.?\d*`)
	// crsPattern captures the identifier between the last CRS and the final slash.
	crsPattern = regexp.MustCompile(`.*CRS(.*)/$`)
)

const pointLocationTokens = 4

// ParsePointLocation parses an ISO 6709 point location such as
// +40.20361-075.00417+350.517CRSWGS_84/. The string must end with a slash.
// A missing altitude is zero and a missing CRS identifier is empty.
func ParsePointLocation(text string) (location.PointLocation, error) {
	if strings.TrimSpace(text) == "" {
		return location.PointLocation{}, newParseError(text, "no point location value provided")
	}

	if !strings.HasSuffix(text, "/") {
		return location.PointLocation{}, newParseError(text, "point location value must be terminated with /")
	}

	tokens, err := split(text)
	if err != nil {
		return location.PointLocation{}, err
	}

	if len(tokens) != pointLocationTokens {
		return location.PointLocation{}, newParseError(text,
			fmt.Sprintf("cannot parse point location, found %d parts", len(tokens)))
	}

	latitude, err := ParseLatitude(tokens[0])
	if err != nil {
		return location.PointLocation{}, err
	}

	longitude, err := ParseLongitude(tokens[1])
	if err != nil {
		return location.PointLocation{}, err
	}

	point, err := location.NewPointLocation(latitude, longitude, parseAltitude(tokens[2]), tokens[3])
	if err != nil {
		return location.PointLocation{}, &ParseError{Input: text, Reason: "invalid point location", Err: err}
	}

	return point, nil
}

// split tokenizes a point location into latitude, longitude, altitude and
// CRS identifier.
func split(representation string) ([]string, error) {
	tokens := coordinatePattern.FindAllString(representation, -1)

	const minTokens = 2
	if len(tokens) < minTokens {
		return nil, newParseError(representation, "latitude and longitude need to be provided")
	}

	if len(tokens) == minTokens {
		tokens = append(tokens, "0")
	}

	if match := crsPattern.FindStringSubmatch(representation); match != nil && strings.TrimSpace(match[1]) != "" {
		tokens = append(tokens, match[1])
	}

	if len(tokens) == pointLocationTokens-1 {
		tokens = append(tokens, "")
	}

	return tokens, nil
}

// parseAltitude reads the altitude in meters, falling back to zero when the
// token is not a number.
func parseAltitude(token string) float64 {
	altitude, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
	if err != nil {
		return 0
	}

	return altitude
}
