package ephemeris

import (
	"context"
	"fmt"
	"time"
)

// EngineName identifies the built-in provider on the snapshot meta block.
const EngineName = "analytic-meeus"

// Analytic is the built-in position provider. It uses low/medium-precision
// analytic models (Meeus-style sun/moon series, J2000 mean Keplerian
// elements for the planets) and needs no data files or network access.
// Stateless and safe for concurrent use.
type Analytic struct{}

// NewAnalytic creates the built-in provider.
func NewAnalytic() *Analytic {
	return &Analytic{}
}

// Name implements Provider.
func (a *Analytic) Name() string { return EngineName }

// Position implements Provider.
func (a *Analytic) Position(ctx context.Context, obs Observer, t time.Time, id BodyID, refraction bool) (Body, error) {
	if err := ctx.Err(); err != nil {
		return Body{}, err
	}

	var eq equatorial
	switch id {
	case Sun:
		eq = sunGeocentric(t)
	case Moon:
		eq = moonGeocentric(t)
	default:
		var ok bool
		eq, ok = planetGeocentric(id, t)
		if !ok {
			return Body{}, fmt.Errorf("%w: %q", ErrUnknownBody, id)
		}
	}

	alt, az := altAz(eq.raDeg, eq.decDeg, obs, t)

	// The Moon is close enough that the observer's offset from the
	// geocenter depresses its altitude by up to a degree.
	if id == Moon {
		alt -= parallaxDeg(alt, eq.distKm)
	}
	if refraction {
		alt += refractionDeg(alt)
	}

	return Body{
		ID:         id,
		Name:       id.DisplayName(),
		RAHours:    normalize360(eq.raDeg) / 15.0,
		DecDeg:     eq.decDeg,
		AzDeg:      az,
		AltDeg:     alt,
		DistanceKm: eq.distKm,
	}, nil
}

// Positions implements Provider.
func (a *Analytic) Positions(ctx context.Context, obs Observer, t time.Time, refraction bool) ([]Body, error) {
	bodies := make([]Body, 0, len(Catalog))
	for _, id := range Catalog {
		b, err := a.Position(ctx, obs, t, id, refraction)
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}
