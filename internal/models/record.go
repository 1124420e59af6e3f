package models

// Record is a stored point location waiting for normalization.
type Record struct {
	ID  int    // ID is the unique identifier of the stored row.
	Raw string // Raw is the point location text as it was received.
}

// Normalized holds the canonical values written back for a record that parsed successfully.
type Normalized struct {
	Latitude  float64 // Latitude in signed decimal degrees.
	Longitude float64 // Longitude in signed decimal degrees.
	Altitude  float64 // Altitude in the unit of the coordinate reference system.
	CRS       string  // CRS is the coordinate reference system identifier, empty when absent.
	Canonical string  // Canonical is the Long ISO 6709 representation.
}
