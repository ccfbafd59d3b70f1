package region

import "github.com/agrivision/agrivision/internal/domain/i18n"

// Overall agronomic ratings the provider is constrained to.
const (
	RatingExcellent = "Excellent"
	RatingGood      = "Good"
	RatingAverage   = "Average"
	RatingPoor      = "Poor"
)

var validRatings = []string{RatingExcellent, RatingGood, RatingAverage, RatingPoor}

// Coordinate is one lat/lon vertex of an area footprint.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Analysis is a land-area agronomic assessment. It is produced only from a
// successful provider call; there is no partial or defaulted instance.
type Analysis struct {
	SoilPotential      string `json:"soilPotential"`
	ClimateSuitability string `json:"climateSuitability"`
	WaterSources       string `json:"waterSources"`
	OverallRating      string `json:"overallRating"`
	AreaSize           string `json:"areaSize,omitempty"`
	Coordinates        string `json:"coordinates,omitempty"`
}

// Request carries the point or area to assess.
type Request struct {
	Lat      float64
	Lon      float64
	Language i18n.Language
	Area     []Coordinate // optional polygon footprint
}
