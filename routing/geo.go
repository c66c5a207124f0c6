package routing

import "math"

const EARTH_RADIUS_NM = 3440.065

// Coordinate is a latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// DistanceTo returns the great-circle distance to other in nautical miles.
func (c Coordinate) DistanceTo(other Coordinate) float64 {
	return haversineDistance(c, other)
}

// Distance is the haversine distance between a and b in nautical miles.
// Inputs are trusted to be valid latitudes and longitudes.
func Distance(a, b Coordinate) float64 {
	return haversineDistance(a, b)
}

func haversineDistance(coord1, coord2 Coordinate) float64 {
	phi1 := toRadians(coord1.Lat)
	phi2 := toRadians(coord2.Lat)
	deltaPhi := toRadians(coord2.Lat - coord1.Lat)
	deltaLambda := toRadians(coord2.Lon - coord1.Lon)

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*
			math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EARTH_RADIUS_NM * c
}
