// Package geo computes great-circle distances between coordinate pairs.
package geo

import "math"

// Mean Earth radius in kilometers.
const earthRadiusKm = 6371.0088

// DistanceKm returns the great-circle distance between two points in
// kilometers, rounded to 3 decimal places.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	dPhi := radians(lat2 - lat1)
	dLambda := radians(lon2 - lon1)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return round3(earthRadiusKm * c)
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func round3(km float64) float64 {
	return math.Round(km*1000) / 1000
}
