package planner

import (
	"context"
	"fmt"
	"time"

	"astroplan/internal/ephemeris"
)

// timeLayout is the boundary timestamp convention: naive ISO-8601 with a
// literal Z suffix and no embedded offset. Kept exactly for compatibility.
const timeLayout = "2006-01-02T15:04:05Z"

// FormatUTC serializes a UTC instant in the boundary convention.
func FormatUTC(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// Service exposes the planner operations over a position provider. It holds
// no mutable state; concurrent calls are independent.
type Service struct {
	provider ephemeris.Provider
}

// NewService creates a planner service backed by the given provider.
func NewService(p ephemeris.Provider) *Service {
	return &Service{provider: p}
}

// ProviderName returns the backing provider's name for snapshot meta.
func (s *Service) ProviderName() string {
	return s.provider.Name()
}

func observerInfo(loc Location, t time.Time) ObserverInfo {
	return ObserverInfo{
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		ElevM:     loc.ElevM,
		Datetime:  FormatUTC(t),
	}
}

func (loc Location) observer() ephemeris.Observer {
	return ephemeris.Observer{
		LatDeg: loc.Latitude,
		LonDeg: loc.Longitude,
		ElevM:  loc.ElevM,
	}
}

// Snapshot returns positions for the whole body catalog, no scoring.
func (s *Service) Snapshot(ctx context.Context, loc Location, t time.Time, refraction bool) (*Snapshot, error) {
	bodies, err := s.provider.Positions(ctx, loc.observer(), t, refraction)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return &Snapshot{
		Observer: observerInfo(loc, t),
		Bodies:   bodies,
		Meta: SnapshotMeta{
			Engine:     s.provider.Name(),
			Refraction: refraction,
		},
	}, nil
}

// Plan computes the observation metrics and recommendation for one target
// at one instant. cloudPct is the forecast cloud cover in percent, nil when
// unknown. An unresolvable target is ErrTargetNotFound; a provider failure
// for the target, sun or moon is ErrUpstream.
func (s *Service) Plan(ctx context.Context, loc Location, t time.Time, refraction bool, target string, cloudPct *float64) (*Plan, error) {
	targetID, ok := ephemeris.ParseBodyID(target)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTargetNotFound, target)
	}

	bodies, err := s.provider.Positions(ctx, loc.observer(), t, refraction)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	var targetBody, sun, moon *ephemeris.Body
	for i := range bodies {
		b := &bodies[i]
		if b.ID == targetID {
			targetBody = b
		}
		switch b.ID {
		case ephemeris.Sun:
			sun = b
		case ephemeris.Moon:
			moon = b
		}
	}
	if targetBody == nil {
		return nil, fmt.Errorf("%w: %q", ErrTargetNotFound, target)
	}
	if sun == nil || moon == nil {
		return nil, fmt.Errorf("%w: required bodies missing from provider output", ErrUpstream)
	}

	// Provider RA is in hours; separation works in degrees.
	moonSep := Separation(
		targetBody.RAHours*15.0, targetBody.DecDeg,
		moon.RAHours*15.0, moon.DecDeg,
	)

	metrics := Metrics{
		TargetAltitudeDeg:       targetBody.AltDeg,
		SunAltitudeDeg:          sun.AltDeg,
		MoonTargetSeparationDeg: moonSep,
		CloudCoverPct:           cloudPct,
	}

	return &Plan{
		Observer:       observerInfo(loc, t),
		Target:         string(targetID),
		Metrics:        metrics,
		Recommendation: Score(metrics),
	}, nil
}
