package domain

// Coordinates is a latitude/longitude value pair. The zero value means
// "unresolved" and must never be treated as a real position.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// IsZero reports whether the coordinates are unresolved.
func (c Coordinates) IsZero() bool {
	return c.Latitude == 0 && c.Longitude == 0
}

// Place is a labelled position, the unit of pickup/destination selection.
type Place struct {
	Label       string      `json:"label"`
	Coordinates Coordinates `json:"coordinates"`
}

// Region describes a map viewport: a center plus zoom deltas.
type Region struct {
	Center         Coordinates `json:"center"`
	LatitudeDelta  float64     `json:"latitude_delta"`
	LongitudeDelta float64     `json:"longitude_delta"`
}
