package location

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Field identifies one part of the sexagesimal decomposition of an angle.
type Field int

// Sexagesimal fields, in the order they are written.
const (
	Degrees Field = iota
	Minutes
	Seconds
)

// Symbol returns the unit mark written after the field value.
func (f Field) Symbol() string {
	switch f {
	case Degrees:
		return "°"
	case Minutes:
		return "'"
	case Seconds:
		return "\""
	default:
		return ""
	}
}

// String returns the lowercase name of the field, e.g. "minutes".
func (f Field) String() string {
	switch f {
	case Degrees:
		return "degrees"
	case Minutes:
		return "minutes"
	case Seconds:
		return "seconds"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// AngleFormat selects the level of detail of Angle.Format.
type AngleFormat int

const (
	// Short shows whole degrees only, rounded on the minutes.
	Short AngleFormat = iota
	// Medium shows degrees and minutes, rounded on the seconds.
	Medium
	// Long shows degrees, minutes and seconds.
	Long
)

// Kind tells whether an angle is a plain angle, a latitude or a longitude.
// The kind decides the direction letters and the degree field width.
type Kind int

const (
	KindAngle Kind = iota
	KindLatitude
	KindLongitude
)

func (k Kind) String() string {
	switch k {
	case KindLatitude:
		return "latitude"
	case KindLongitude:
		return "longitude"
	default:
		return "angle"
	}
}

// Range errors reported by NewLatitude and NewLongitude.
var (
	ErrNotFinite            = errors.New("angle is not a finite number")
	ErrOutOfRange           = errors.New("angle is out of range")
	ErrPositiveAntimeridian = errors.New("the 180th meridian is always negative (180° W)")
)

// Angle is an immutable angular value stored in radians. The degree, minute
// and second fields are computed once at construction and all carry the sign
// of the angle.
type Angle struct {
	radians float64
	kind    Kind
	fields  [3]int
}

// FromDegrees creates a plain angle from decimal degrees.
func FromDegrees(degrees float64) Angle {
	return FromRadians(degrees * math.Pi / 180)
}

// FromRadians creates a plain angle from radians.
func FromRadians(radians float64) Angle {
	return Angle{
		radians: radians,
		kind:    KindAngle,
		fields:  sexagesimalSplit(radians * 180 / math.Pi),
	}
}

// NewLatitude returns a copy of the angle checked against [-90°, +90°].
func NewLatitude(angle Angle) (Angle, error) {
	if err := checkRange(angle, 90); err != nil {
		return Angle{}, err
	}

	angle.kind = KindLatitude

	return angle, nil
}

// NewLongitude returns a copy of the angle checked against (-180°, +180°).
// ISO 6709 writes the 180th meridian as -180°, so exactly +180° is rejected.
func NewLongitude(angle Angle) (Angle, error) {
	if err := checkRange(angle, 180); err != nil {
		return Angle{}, err
	}

	if angle.Degrees() == 180 {
		return Angle{}, ErrPositiveAntimeridian
	}

	angle.kind = KindLongitude

	return angle, nil
}

func checkRange(angle Angle, limit float64) error {
	degrees := angle.Degrees()
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return ErrNotFinite
	}

	if math.Abs(degrees) > limit {
		return fmt.Errorf("%w: %v%s is outside +/-%v%s",
			ErrOutOfRange, degrees, Degrees.Symbol(), limit, Degrees.Symbol())
	}

	return nil
}

// sexagesimalSplit rounds the value to the nearest arcsecond and splits it
// into degrees, minutes and seconds, each carrying the sign of the value.
func sexagesimalSplit(value float64) [3]int {
	sign := 1
	if value < 0 {
		sign = -1
	}

	absValue := math.Abs(value)
	units := int(math.Floor(absValue))
	seconds := int(math.Floor((absValue-float64(units))*3600 + 0.5))

	minutes := seconds / 60
	if minutes == 60 {
		minutes = 0
		units++
	}
	seconds %= 60

	return [3]int{units * sign, minutes * sign, seconds * sign}
}

// Radians returns the canonical value of the angle.
func (a Angle) Radians() float64 {
	return a.radians
}

// Degrees returns the angle in decimal degrees.
func (a Angle) Degrees() float64 {
	return a.radians * 180 / math.Pi
}

// Kind returns whether the angle is a latitude, a longitude or a plain angle.
func (a Angle) Kind() Kind {
	return a.kind
}

// Field returns one signed integer field of the sexagesimal decomposition.
func (a Angle) Field(field Field) int {
	if field < Degrees || field > Seconds {
		return 0
	}

	return a.fields[field]
}

func (a Angle) Sin() float64 {
	return math.Sin(a.radians)
}

func (a Angle) Cos() float64 {
	return math.Cos(a.radians)
}

// Direction returns the compass letter for latitudes (N/S) and longitudes (E/W),
// and an empty string for plain angles.
func (a Angle) Direction() string {
	switch a.kind {
	case KindLatitude:
		if a.radians < 0 {
			return "S"
		}
		return "N"
	case KindLongitude:
		if a.radians < 0 {
			return "W"
		}
		return "E"
	default:
		return ""
	}
}

// Compare orders angles by their integer degree, minute and second fields.
// Angles that differ by less than the arcsecond rounding compare as equal.
func (a Angle) Compare(other Angle) int {
	for _, field := range []Field{Degrees, Minutes, Seconds} {
		if diff := a.Field(field) - other.Field(field); diff != 0 {
			return diff
		}
	}

	return 0
}

// Equal reports whether both angles have the same kind and radian value.
func (a Angle) Equal(other Angle) bool {
	return a.kind == other.kind && a.radians == other.radians
}

// Format renders the angle, e.g. 40°12'13"N. Shorter formats round the last
// shown field on the first dropped one.
func (a Angle) Format(format AngleFormat) string {
	degrees := abs(a.Field(Degrees))
	minutes := abs(a.Field(Minutes))
	seconds := abs(a.Field(Seconds))

	switch format {
	case Short:
		if minutes >= 30 {
			degrees++
		}
	case Medium:
		if seconds >= 30 {
			minutes++
		}
		if minutes == 60 {
			minutes = 0
			degrees++
		}
	case Long:
	}

	var sbr strings.Builder

	direction := a.Direction()
	if direction == "" && a.radians < 0 {
		sbr.WriteString("-")
	}

	fmt.Fprintf(&sbr, "%02d%s", degrees, Degrees.Symbol())
	if format != Short {
		fmt.Fprintf(&sbr, "%02d%s", minutes, Minutes.Symbol())
		if format != Medium {
			fmt.Fprintf(&sbr, "%02d%s", seconds, Seconds.Symbol())
		}
	}

	sbr.WriteString(direction)

	return sbr.String()
}

// String returns the Long format.
func (a Angle) String() string {
	return a.Format(Long)
}

func abs(value int) int {
	if value < 0 {
		return -value
	}
	return value
}
