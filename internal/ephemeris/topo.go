package ephemeris

import (
	"math"
	"time"
)

// equatorial is a geocentric position in equatorial coordinates.
type equatorial struct {
	raDeg  float64 // right ascension, degrees [0,360)
	decDeg float64 // declination, degrees
	distKm float64
}

const earthRadiusKm = 6378.137

func deg2rad(d float64) float64 { return d * math.Pi / 180 }
func rad2deg(r float64) float64 { return r * 180 / math.Pi }

func normalize360(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// julianDay returns the Julian Date for a UTC instant.
func julianDay(t time.Time) float64 {
	u := t.UTC()
	y := float64(u.Year())
	m := float64(u.Month())
	d := float64(u.Day())

	dayFrac := (float64(u.Hour()) +
		float64(u.Minute())/60 +
		float64(u.Second())/3600 +
		float64(u.Nanosecond())/3600e9) / 24

	// January/February count as months 13/14 of the previous year.
	if m <= 2 {
		y--
		m += 12
	}

	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)

	return math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) +
		d + dayFrac + b - 1524.5
}

// daysSinceJ2000 returns UTC days since the J2000.0 epoch.
func daysSinceJ2000(t time.Time) float64 {
	return julianDay(t) - 2451545.0
}

// julianCenturies returns centuries since J2000.0.
func julianCenturies(t time.Time) float64 {
	return daysSinceJ2000(t) / 36525.0
}

// gmstDeg returns Greenwich Mean Sidereal Time in degrees (IAU 1982).
func gmstDeg(t time.Time) float64 {
	d := daysSinceJ2000(t)
	T := d / 36525.0

	gmst := 280.46061837 +
		360.98564736629*d +
		0.000387933*T*T -
		T*T*T/38710000.0

	return normalize360(gmst)
}

// altAz converts geocentric RA/Dec to horizontal coordinates for an observer.
// Azimuth convention: 0 = North, 90 = East.
func altAz(raDeg, decDeg float64, obs Observer, t time.Time) (altDeg, azDeg float64) {
	lat := deg2rad(obs.LatDeg)
	ra := deg2rad(raDeg)
	dec := deg2rad(decDeg)

	lst := deg2rad(normalize360(gmstDeg(t) + obs.LonDeg))
	ha := lst - ra

	sinAlt := math.Sin(dec)*math.Sin(lat) + math.Cos(dec)*math.Cos(lat)*math.Cos(ha)
	if sinAlt > 1 {
		sinAlt = 1
	} else if sinAlt < -1 {
		sinAlt = -1
	}
	alt := math.Asin(sinAlt)

	cosAz := (math.Sin(dec) - math.Sin(alt)*math.Sin(lat)) / (math.Cos(alt) * math.Cos(lat))
	if cosAz > 1 {
		cosAz = 1
	} else if cosAz < -1 {
		cosAz = -1
	}
	az := math.Acos(cosAz)

	// Positive hour angle puts the object west of the meridian.
	if math.Sin(ha) > 0 {
		az = 2*math.Pi - az
	}

	return rad2deg(alt), rad2deg(az)
}

// refractionDeg returns the Saemundsson refraction correction in degrees at
// a given geometric altitude, standard conditions. Positive means the body
// appears higher than geometry says.
func refractionDeg(altDeg float64) float64 {
	if altDeg < -1.0 {
		return 0
	}
	alt := altDeg
	if alt < -0.5 {
		alt = -0.5
	}

	// R (arcmin) = 1.02 / tan(alt + 10.3/(alt+5.11)), argument in degrees.
	arg := deg2rad(alt + 10.3/(alt+5.11))
	t := math.Tan(arg)
	if t == 0 {
		return 0
	}
	return 1.02 / t / 60.0
}

// parallaxDeg returns the altitude depression due to topocentric parallax
// for a body at the given distance. Only significant for the Moon.
func parallaxDeg(altDeg, distKm float64) float64 {
	if distKm <= 0 {
		return 0
	}
	p := math.Asin(earthRadiusKm / distKm)
	return rad2deg(p) * math.Cos(deg2rad(altDeg))
}
