package region

import "math"

const earthRadiusMeters = 6371000.0

// AreaHectares computes the approximate area of a lat/lon polygon in
// hectares using the spherical shoelace formula. Polygons with fewer than
// three vertices have zero area.
func AreaHectares(polygon []Coordinate) float64 {
	if len(polygon) < 3 {
		return 0
	}

	sum := 0.0
	for i := range polygon {
		j := (i + 1) % len(polygon)
		lon1 := toRadians(polygon[i].Lon)
		lon2 := toRadians(polygon[j].Lon)
		lat1 := toRadians(polygon[i].Lat)
		lat2 := toRadians(polygon[j].Lat)
		sum += (lon2 - lon1) * (2 + math.Sin(lat1) + math.Sin(lat2))
	}

	areaMeters := math.Abs(sum) * earthRadiusMeters * earthRadiusMeters / 2
	return areaMeters / 10000
}

// Centroid returns the arithmetic mean of the polygon vertices. Good enough
// for labeling a farm plot; not a true spherical centroid.
func Centroid(polygon []Coordinate) Coordinate {
	if len(polygon) == 0 {
		return Coordinate{}
	}
	var lat, lon float64
	for _, p := range polygon {
		lat += p.Lat
		lon += p.Lon
	}
	n := float64(len(polygon))
	return Coordinate{Lat: lat / n, Lon: lon / n}
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
