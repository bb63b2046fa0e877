package planner

import "math"

// Separation returns the great-circle angular distance in degrees between
// two equatorial positions given as (RA, Dec) in degrees. Result is in
// [0,180]; symmetric in its arguments.
func Separation(ra1Deg, dec1Deg, ra2Deg, dec2Deg float64) float64 {
	ra1 := ra1Deg * math.Pi / 180
	ra2 := ra2Deg * math.Pi / 180
	dec1 := dec1Deg * math.Pi / 180
	dec2 := dec2Deg * math.Pi / 180

	cosSep := math.Sin(dec1)*math.Sin(dec2) +
		math.Cos(dec1)*math.Cos(dec2)*math.Cos(ra1-ra2)

	// Guard against floating-point overshoot before Acos.
	if cosSep > 1 {
		cosSep = 1
	} else if cosSep < -1 {
		cosSep = -1
	}

	return math.Acos(cosSep) * 180 / math.Pi
}
