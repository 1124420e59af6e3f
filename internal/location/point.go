package location

import (
	"fmt"
	"math"
	"strings"
)

// PointLocation is a geographic point: latitude, longitude, altitude in
// meters and an optional coordinate reference system identifier.
type PointLocation struct {
	latitude  Angle
	longitude Angle
	altitude  float64
	crs       string
}

// NewPointLocation validates both angles as latitude and longitude and
// returns the point location. The CRS identifier is trimmed.
func NewPointLocation(latitude, longitude Angle, altitude float64, crs string) (PointLocation, error) {
	lat, err := NewLatitude(latitude)
	if err != nil {
		return PointLocation{}, fmt.Errorf("invalid latitude: %w", err)
	}

	lon, err := NewLongitude(longitude)
	if err != nil {
		return PointLocation{}, fmt.Errorf("invalid longitude: %w", err)
	}

	return PointLocation{
		latitude:  lat,
		longitude: lon,
		altitude:  altitude,
		crs:       strings.TrimSpace(crs),
	}, nil
}

func (p PointLocation) Latitude() Angle {
	return p.latitude
}

func (p PointLocation) Longitude() Angle {
	return p.longitude
}

// Altitude returns the altitude in meters.
func (p PointLocation) Altitude() float64 {
	return p.altitude
}

// CRS returns the coordinate reference system identifier, possibly empty.
func (p PointLocation) CRS() string {
	return p.crs
}

// Compare orders point locations by altitude, then latitude, then longitude.
func (p PointLocation) Compare(other PointLocation) int {
	if diff := p.altitude - other.altitude; diff != 0 {
		return int(math.Copysign(1, diff))
	}

	if comparison := p.latitude.Compare(other.latitude); comparison != 0 {
		return comparison
	}

	return p.longitude.Compare(other.longitude)
}

// Equal reports whether all four fields are identical.
func (p PointLocation) Equal(other PointLocation) bool {
	return p.altitude == other.altitude &&
		p.crs == other.crs &&
		p.latitude.Equal(other.latitude) &&
		p.longitude.Equal(other.longitude)
}

// String renders the point as 40°12'13"N 75°00'15"W, followed by the altitude
// with three decimals when it is not zero.
func (p PointLocation) String() string {
	str := p.latitude.String() + " " + p.longitude.String()
	if p.altitude != 0 {
		str += fmt.Sprintf(" %.3f", p.altitude)
	}

	return str
}
