package formatter

import (
	"fmt"
	"strings"
)

// FormatType selects the textual representation produced by the formatter.
// The zero value is not a valid format type.
type FormatType int

const (
	// HumanLong is 40°12'13"N 75°00'15"W.
	HumanLong FormatType = iota + 1
	// HumanMedium is 40°12'N 75°00'W.
	HumanMedium
	// HumanShort is 40°N 75°W.
	HumanShort
	// Decimal is +40.20361-075.00417/.
	Decimal
	// Long is +401213-0750015/.
	Long
	// Medium is +4012-07500/.
	Medium
	// Short is +40-075/.
	Short
)

var formatTypeNames = map[FormatType]string{
	HumanLong:   "human_long",
	HumanMedium: "human_medium",
	HumanShort:  "human_short",
	Decimal:     "decimal",
	Long:        "long",
	Medium:      "medium",
	Short:       "short",
}

func (f FormatType) String() string {
	if name, ok := formatTypeNames[f]; ok {
		return name
	}
	return fmt.Sprintf("FormatType(%d)", int(f))
}

// ParseFormatType resolves a format type name such as "human_long" or "LONG".
func ParseFormatType(name string) (FormatType, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return 0, &FormatError{Op: "parse format type", Err: ErrNoFormatType}
	}

	for formatType, formatName := range formatTypeNames {
		if formatName == normalized {
			return formatType, nil
		}
	}

	return 0, &FormatError{Op: "parse format type", Err: fmt.Errorf("%w: %s", ErrUnsupportedFormatType, name)}
}

// ParseFormatTypes resolves a comma separated list of format type names.
func ParseFormatTypes(names string) ([]FormatType, error) {
	var formatTypes []FormatType
	for _, name := range strings.Split(names, ",") {
		formatType, err := ParseFormatType(name)
		if err != nil {
			return nil, err
		}
		formatTypes = append(formatTypes, formatType)
	}

	return formatTypes, nil
}
