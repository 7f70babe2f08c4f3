package geo

import (
	"math"
)

// earthRadiusKm is the mean earth radius.
const earthRadiusKm = 6371

func toRadians(degree float64) float64 {
	return degree * math.Pi / 180
}

// DistanceKm returns the great-circle (haversine) distance between two
// coordinate pairs, in kilometers. Pure function, no side effects.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)
	deltaPhi := toRadians(lat2 - lat1)
	deltaLambda := toRadians(lon2 - lon1)

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*
			math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
