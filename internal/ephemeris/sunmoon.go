package ephemeris

import (
	"math"
	"time"
)

const (
	auKm           = 149597870.7
	moonMeanDistKm = 385000.56
)

// sunGeocentric returns an approximate geocentric RA/Dec for the Sun.
//
// Simplified NOAA/Meeus solar model: mean anomaly, mean longitude, equation
// of center, mean obliquity. Good to arcminute level.
func sunGeocentric(t time.Time) equatorial {
	d := daysSinceJ2000(t)

	g := deg2rad(357.529 + 0.98560028*d) // mean anomaly
	q := deg2rad(280.459 + 0.98564736*d) // mean longitude

	// Ecliptic longitude with equation of center.
	L := q +
		deg2rad(1.915)*math.Sin(g) +
		deg2rad(0.020)*math.Sin(2*g)

	eps := deg2rad(23.439 - 0.00000036*d)

	x := math.Cos(L)
	y := math.Cos(eps) * math.Sin(L)
	z := math.Sin(eps) * math.Sin(L)

	ra := math.Atan2(y, x)
	if ra < 0 {
		ra += 2 * math.Pi
	}
	dec := math.Asin(z)

	// Distance in AU from the eccentricity terms.
	rAU := 1.00014 - 0.01671*math.Cos(g) - 0.00014*math.Cos(2*g)

	return equatorial{
		raDeg:  rad2deg(ra),
		decDeg: rad2deg(dec),
		distKm: rAU * auKm,
	}
}

// moonGeocentric returns an approximate geocentric RA/Dec for the Moon.
//
// Truncated Meeus-style series: dominant periodic terms in ecliptic
// longitude and latitude on top of the fundamental arguments. Not
// ephemeris-grade, but well inside a degree for the planner's purposes.
func moonGeocentric(t time.Time) equatorial {
	d := daysSinceJ2000(t)

	Lprime := normalize360(218.3164477 + 13.17639648*d) // mean longitude
	M := normalize360(357.5291092 + 0.98560028*d)       // sun mean anomaly
	Mm := normalize360(134.9633964 + 13.06499295*d)     // moon mean anomaly
	D := normalize360(297.8501921 + 12.19074912*d)      // mean elongation
	F := normalize360(93.2720950 + 13.22935024*d)       // argument of latitude

	Lr := deg2rad(Lprime)
	Mr := deg2rad(M)
	Mmr := deg2rad(Mm)
	Dr := deg2rad(D)
	Fr := deg2rad(F)

	lon := Lr +
		deg2rad(6.289)*math.Sin(Mmr) +
		deg2rad(1.274)*math.Sin(2*Dr-Mmr) +
		deg2rad(0.658)*math.Sin(2*Dr) +
		deg2rad(0.214)*math.Sin(2*Mmr) -
		deg2rad(0.186)*math.Sin(Mr) -
		deg2rad(0.114)*math.Sin(2*Fr)

	lat := deg2rad(5.128)*math.Sin(Fr) +
		deg2rad(0.280)*math.Sin(Mmr+Fr) +
		deg2rad(0.277)*math.Sin(Mmr-Fr) +
		deg2rad(0.173)*math.Sin(2*Dr-Fr)

	eps := deg2rad(23.439291 - 0.0000137*d)

	x := math.Cos(lat) * math.Cos(lon)
	y := math.Cos(lat) * math.Sin(lon)
	z := math.Sin(lat)

	xEq := x
	yEq := y*math.Cos(eps) - z*math.Sin(eps)
	zEq := y*math.Sin(eps) + z*math.Cos(eps)

	ra := math.Atan2(yEq, xEq)
	if ra < 0 {
		ra += 2 * math.Pi
	}
	dec := math.Asin(zEq)

	// Leading distance terms of the same truncated series.
	distKm := moonMeanDistKm -
		20905.355*math.Cos(Mmr) -
		3699.111*math.Cos(2*Dr-Mmr) -
		2955.968*math.Cos(2*Dr)

	return equatorial{
		raDeg:  rad2deg(ra),
		decDeg: rad2deg(dec),
		distKm: distKm,
	}
}
