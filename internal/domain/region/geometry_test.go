package region

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAreaHectaresDegeneratePolygons(t *testing.T) {
	require.Equal(t, 0.0, AreaHectares(nil))
	require.Equal(t, 0.0, AreaHectares([]Coordinate{{Lat: 1, Lon: 1}}))
	require.Equal(t, 0.0, AreaHectares([]Coordinate{{Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}}))
}

func TestAreaHectaresSquareNearEquator(t *testing.T) {
	// Roughly a 1.11km x 1.11km square at the equator, about 123 hectares.
	square := []Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 0.01},
		{Lat: 0.01, Lon: 0.01},
		{Lat: 0.01, Lon: 0},
	}
	area := AreaHectares(square)
	require.InDelta(t, 123.6, area, 1.0)
}

func TestAreaHectaresOrientationInvariant(t *testing.T) {
	clockwise := []Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 0.01, Lon: 0},
		{Lat: 0.01, Lon: 0.01},
		{Lat: 0, Lon: 0.01},
	}
	counter := []Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 0.01},
		{Lat: 0.01, Lon: 0.01},
		{Lat: 0.01, Lon: 0},
	}
	require.InDelta(t, AreaHectares(clockwise), AreaHectares(counter), 0.0001)
}

func TestCentroid(t *testing.T) {
	require.Equal(t, Coordinate{}, Centroid(nil))

	centroid := Centroid([]Coordinate{
		{Lat: 10, Lon: 70},
		{Lat: 20, Lon: 80},
		{Lat: 30, Lon: 90},
	})
	require.InDelta(t, 20.0, centroid.Lat, 0.0001)
	require.InDelta(t, 80.0, centroid.Lon, 0.0001)
}
