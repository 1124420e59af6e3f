package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/iso6709/internal/location"
)

// angleFieldPattern matches a number directly followed by a unit mark.
var angleFieldPattern = regexp.MustCompile(`(\d+\.?\d*)([°'"])`)

// angleTokens is a coordinate split into its sign and unparsed field values.
// An empty field value stands for zero.
type angleTokens struct {
	sign    int
	degrees string
	minutes string
	seconds string
}

// angleField is one number of the human form together with its unit mark.
type angleField struct {
	value string
	field location.Field
}

// ParseLatitude parses a latitude written either in the compact ISO 6709
// form (+401213.1, N4012) or in the human form (40°12'13.1" N).
func ParseLatitude(text string) (location.Angle, error) {
	angle, err := parseAngle(text)
	if err != nil {
		return location.Angle{}, err
	}

	latitude, err := location.NewLatitude(angle)
	if err != nil {
		return location.Angle{}, &ParseError{Input: text, Reason: "cannot parse latitude", Err: err}
	}

	return latitude, nil
}

// ParseLongitude parses a longitude written either in the compact ISO 6709
// form (-0750015, W07500) or in the human form (75°00'15" W).
func ParseLongitude(text string) (location.Angle, error) {
	angle, err := parseAngle(text)
	if err != nil {
		return location.Angle{}, err
	}

	longitude, err := location.NewLongitude(angle)
	if err != nil {
		return location.Angle{}, &ParseError{Input: text, Reason: "cannot parse longitude", Err: err}
	}

	return longitude, nil
}

func parseAngle(text string) (location.Angle, error) {
	representation := strings.TrimSpace(text)
	if representation == "" {
		return location.Angle{}, newParseError(text, "no value provided")
	}

	var (
		tokens angleTokens
		err    error
	)
	if isCompactForm(representation) {
		tokens, err = splitCompact(representation)
	} else {
		tokens, err = splitHuman(representation)
	}
	if err != nil {
		return location.Angle{}, err
	}

	degrees, err := parseFieldValue(text, tokens.degrees, location.Degrees)
	if err != nil {
		return location.Angle{}, err
	}

	minutes, err := parseFieldValue(text, tokens.minutes, location.Minutes)
	if err != nil {
		return location.Angle{}, err
	}
	if math.Abs(minutes) >= 60 {
		return location.Angle{}, newParseError(text, "too many minutes")
	}

	seconds, err := parseFieldValue(text, tokens.seconds, location.Seconds)
	if err != nil {
		return location.Angle{}, err
	}
	if math.Abs(seconds) >= 60 {
		return location.Angle{}, newParseError(text, "too many seconds")
	}

	return location.FromDegrees(float64(tokens.sign) * (degrees + minutes/60 + seconds/3600)), nil
}

func parseFieldValue(input, value string, field location.Field) (float64, error) {
	if value == "" {
		return 0, nil
	}

	number, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &ParseError{Input: input, Reason: "invalid " + field.String(), Err: err}
	}

	return number, nil
}

// isCompactForm reports whether the coordinate has neither unit marks nor a
// trailing compass letter.
func isCompactForm(representation string) bool {
	for _, field := range []location.Field{location.Degrees, location.Minutes, location.Seconds} {
		if strings.Contains(representation, field.Symbol()) {
			return false
		}
	}

	return !strings.HasSuffix(representation, "N") &&
		!strings.HasSuffix(representation, "S") &&
		!strings.HasSuffix(representation, "E") &&
		!strings.HasSuffix(representation, "W")
}

func compassSign(letter string) (int, bool) {
	switch letter {
	case "N", "E":
		return 1, true
	case "S", "W":
		return -1, true
	default:
		return 0, false
	}
}

// splitCompact splits a compact coordinate such as +401213.1. An even number
// of integer digits means two degree digits, an odd number means three.
// The fraction belongs to the last field present.
func splitCompact(representation string) (angleTokens, error) {
	var tokens angleTokens

	signChar := representation[:1]
	switch signChar {
	case "+":
		tokens.sign = 1
	case "-":
		tokens.sign = -1
	default:
		sign, ok := compassSign(strings.ToUpper(signChar))
		if !ok {
			return angleTokens{}, newParseError(representation, "cannot parse sign")
		}
		tokens.sign = sign
	}

	anglePart, fraction, hasFraction := strings.Cut(representation[1:], ".")
	if anglePart == "" || !isDigits(anglePart) || !isDigits(fraction) {
		return angleTokens{}, newParseError(representation, "not a number")
	}

	fractionPart := ""
	if hasFraction && fraction != "" {
		fractionPart = "." + fraction
	}

	degreeLength := 2
	if len(anglePart)%2 != 0 {
		degreeLength = 3
	}

	hasMinutes := len(anglePart) > degreeLength
	hasSeconds := len(anglePart) > degreeLength+2

	switch {
	case hasSeconds:
		tokens.degrees = anglePart[:degreeLength]
		tokens.minutes = anglePart[degreeLength : degreeLength+2]
		tokens.seconds = anglePart[degreeLength+2:] + fractionPart
	case hasMinutes:
		tokens.degrees = anglePart[:degreeLength]
		tokens.minutes = anglePart[degreeLength:] + fractionPart
	default:
		tokens.degrees = anglePart + fractionPart
	}

	return tokens, nil
}

func isDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// splitHuman splits a coordinate written with unit marks, e.g. 48° 36' 12.20" S.
func splitHuman(representation string) (angleTokens, error) {
	if err := validateHumanCoordinate(representation); err != nil {
		return angleTokens{}, err
	}

	fields, err := splitHumanCoordinates(representation)
	if err != nil {
		return angleTokens{}, err
	}

	tokens := angleTokens{sign: humanSign(representation)}
	for _, field := range fields {
		switch field.field {
		case location.Degrees:
			tokens.degrees = field.value
		case location.Minutes:
			tokens.minutes = field.value
		case location.Seconds:
			tokens.seconds = field.value
		}
	}

	// Every unit mark needs a number in front of it.
	values := [...]string{tokens.degrees, tokens.minutes, tokens.seconds}
	for field, value := range values {
		symbol := location.Field(field).Symbol()
		if strings.Contains(representation, symbol) && value == "" {
			return angleTokens{}, newParseError(representation, "no value for "+location.Field(field).String())
		}
	}

	return tokens, nil
}

// validateHumanCoordinate checks that each unit mark occurs at most once and
// that the marks appear as degrees, minutes, seconds.
func validateHumanCoordinate(representation string) error {
	const reason = "incorrectly formed angle"

	for _, field := range []location.Field{location.Degrees, location.Minutes, location.Seconds} {
		if strings.Count(representation, field.Symbol()) > 1 {
			return newParseError(representation, reason)
		}
	}

	indexDegrees := strings.Index(representation, location.Degrees.Symbol())
	indexMinutes := strings.Index(representation, location.Minutes.Symbol())
	indexSeconds := strings.Index(representation, location.Seconds.Symbol())

	if indexMinutes >= 0 && indexDegrees > indexMinutes {
		return newParseError(representation, reason)
	}
	if indexSeconds >= 0 && (indexMinutes > indexSeconds || indexDegrees > indexSeconds) {
		return newParseError(representation, reason)
	}

	return nil
}

// splitHumanCoordinates returns the numbers written in front of unit marks,
// in order of appearance.
func splitHumanCoordinates(representation string) ([]angleField, error) {
	const maxFields = 3

	var fields []angleField
	for _, match := range angleFieldPattern.FindAllStringSubmatch(representation, -1) {
		field := angleField{value: match[1]}
		switch match[2] {
		case location.Degrees.Symbol():
			field.field = location.Degrees
		case location.Minutes.Symbol():
			field.field = location.Minutes
		default:
			field.field = location.Seconds
		}
		fields = append(fields, field)
	}

	if len(fields) > maxFields {
		return nil, newParseError(representation, "too many parts")
	}

	return fields, nil
}

// humanSign prefers the last compass letter, then a sign character.
// Without either the coordinate is positive.
func humanSign(representation string) int {
	if idx := strings.LastIndexAny(representation, "NSEW"); idx >= 0 {
		sign, _ := compassSign(representation[idx : idx+1])
		return sign
	}

	if idx := strings.IndexAny(representation, "+-"); idx >= 0 && representation[idx] == '-' {
		return -1
	}

	return 1
}
