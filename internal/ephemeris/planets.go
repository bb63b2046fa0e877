package ephemeris

import (
	"math"
	"time"
)

// planetElements holds J2000 mean Keplerian elements and their per-century
// rates (JPL approximate elements, valid 1800 AD - 2050 AD). Angles are
// degrees, the semi-major axis is AU.
type planetElements struct {
	a, aDot       float64 // semi-major axis
	e, eDot       float64 // eccentricity
	i, iDot       float64 // inclination
	l, lDot       float64 // mean longitude
	peri, periDot float64 // longitude of perihelion
	node, nodeDot float64 // longitude of ascending node
}

// earthMoonBary is needed to reduce heliocentric positions to geocentric.
var earthMoonBary = planetElements{
	1.00000261, 0.00000562, 0.01671123, -0.00004392,
	-0.00001531, -0.01294668, 100.46457166, 35999.37244981,
	102.93768193, 0.32327364, 0.0, 0.0,
}

var planetTable = map[BodyID]planetElements{
	Mercury: {0.38709927, 0.00000037, 0.20563593, 0.00001906,
		7.00497902, -0.00594749, 252.25032350, 149472.67411175,
		77.45779628, 0.16047689, 48.33076593, -0.12534081},
	Venus: {0.72333566, 0.00000390, 0.00677672, -0.00004107,
		3.39467605, -0.00078890, 181.97909950, 58517.81538729,
		131.60246718, 0.00268329, 76.67984255, -0.27769418},
	Mars: {1.52371034, 0.00001847, 0.09339410, 0.00007882,
		1.84969142, -0.00813131, -4.55343205, 19140.30268499,
		-23.94362959, 0.44441088, 49.55953891, -0.29257343},
	Jupiter: {5.20288700, -0.00011607, 0.04838624, -0.00013253,
		1.30439695, -0.00183714, 34.39644051, 3034.74612775,
		14.72847983, 0.21252668, 100.47390909, 0.20469106},
	Saturn: {9.53667594, -0.00125060, 0.05386179, -0.00050991,
		2.48599187, 0.00193609, 49.95424423, 1222.49362201,
		92.59887831, -0.41897216, 113.66242448, -0.28867794},
	Uranus: {19.18916464, -0.00196176, 0.04725744, -0.00004397,
		0.77263783, -0.00242939, 313.23810451, 428.48202785,
		170.95427630, 0.40805281, 74.01692503, 0.04240589},
}

// vec3 is a heliocentric ecliptic position in AU.
type vec3 struct {
	x, y, z float64
}

// heliocentric solves Kepler's equation for the mean elements at time t and
// returns the heliocentric ecliptic position.
func (el planetElements) heliocentric(t time.Time) vec3 {
	T := julianCenturies(t)

	a := el.a + el.aDot*T
	e := el.e + el.eDot*T
	i := deg2rad(el.i + el.iDot*T)
	l := el.l + el.lDot*T
	peri := el.peri + el.periDot*T
	node := el.node + el.nodeDot*T

	omega := deg2rad(peri - node) // argument of perihelion
	nodeR := deg2rad(node)

	// Mean anomaly, normalized to (-180, 180] for the solver.
	m := math.Mod(l-peri, 360)
	if m > 180 {
		m -= 360
	} else if m < -180 {
		m += 360
	}
	mr := deg2rad(m)

	// Kepler: E - e sin E = M, Newton iteration.
	E := mr + e*math.Sin(mr)
	for iter := 0; iter < 10; iter++ {
		dE := (E - e*math.Sin(E) - mr) / (1 - e*math.Cos(E))
		E -= dE
		if math.Abs(dE) < 1e-8 {
			break
		}
	}

	// Position in the orbital plane.
	xp := a * (math.Cos(E) - e)
	yp := a * math.Sqrt(1-e*e) * math.Sin(E)

	cosO := math.Cos(nodeR)
	sinO := math.Sin(nodeR)
	cosI := math.Cos(i)
	sinI := math.Sin(i)
	cosW := math.Cos(omega)
	sinW := math.Sin(omega)

	return vec3{
		x: (cosW*cosO-sinW*sinO*cosI)*xp + (-sinW*cosO-cosW*sinO*cosI)*yp,
		y: (cosW*sinO+sinW*cosO*cosI)*xp + (-sinW*sinO+cosW*cosO*cosI)*yp,
		z: (sinW*sinI)*xp + (cosW*sinI)*yp,
	}
}

// planetGeocentric returns the geocentric equatorial position of a planet by
// differencing its heliocentric position against the Earth-Moon barycenter
// and rotating ecliptic to equatorial.
func planetGeocentric(id BodyID, t time.Time) (equatorial, bool) {
	el, ok := planetTable[id]
	if !ok {
		return equatorial{}, false
	}

	p := el.heliocentric(t)
	e := earthMoonBary.heliocentric(t)

	x := p.x - e.x
	y := p.y - e.y
	z := p.z - e.z

	eps := deg2rad(23.43928)
	xEq := x
	yEq := y*math.Cos(eps) - z*math.Sin(eps)
	zEq := y*math.Sin(eps) + z*math.Cos(eps)

	ra := math.Atan2(yEq, xEq)
	if ra < 0 {
		ra += 2 * math.Pi
	}
	dist := math.Sqrt(xEq*xEq + yEq*yEq + zEq*zEq)
	dec := math.Asin(zEq / dist)

	return equatorial{
		raDeg:  rad2deg(ra),
		decDeg: rad2deg(dec),
		distKm: dist * auKm,
	}, true
}
