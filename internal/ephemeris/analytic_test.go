package ephemeris

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var equatorSite = Observer{LatDeg: 0, LonDeg: 0, ElevM: 0}

func TestPositionsCatalogOrder(t *testing.T) {
	p := NewAnalytic()
	bodies, err := p.Positions(context.Background(), equatorSite, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), true)
	require.NoError(t, err)
	require.Len(t, bodies, len(Catalog))
	for i, b := range bodies {
		require.Equal(t, Catalog[i], b.ID)
		require.Equal(t, Catalog[i].DisplayName(), b.Name)
	}
}

func TestPositionRangesSane(t *testing.T) {
	p := NewAnalytic()
	bodies, err := p.Positions(context.Background(), Observer{LatDeg: 37.7749, LonDeg: -122.4194}, time.Date(2025, 9, 13, 6, 0, 0, 0, time.UTC), true)
	require.NoError(t, err)
	for _, b := range bodies {
		require.GreaterOrEqual(t, b.RAHours, 0.0, "%s RA", b.ID)
		require.Less(t, b.RAHours, 24.0, "%s RA", b.ID)
		require.GreaterOrEqual(t, b.DecDeg, -90.0, "%s dec", b.ID)
		require.LessOrEqual(t, b.DecDeg, 90.0, "%s dec", b.ID)
		require.GreaterOrEqual(t, b.AzDeg, 0.0, "%s az", b.ID)
		require.LessOrEqual(t, b.AzDeg, 360.0, "%s az", b.ID)
		require.Greater(t, b.DistanceKm, 0.0, "%s distance", b.ID)
	}
}

func TestSunDeclinationAtSolstice(t *testing.T) {
	p := NewAnalytic()
	b, err := p.Position(context.Background(), equatorSite, time.Date(2025, 12, 21, 12, 0, 0, 0, time.UTC), Sun, false)
	require.NoError(t, err)
	require.InDelta(t, -23.43, b.DecDeg, 0.3)
}

func TestSunHighAtEquinoxNoon(t *testing.T) {
	// Equator, prime meridian, local noon at the March equinox: the sun is
	// close to the zenith (equation of time keeps it off by a little).
	p := NewAnalytic()
	b, err := p.Position(context.Background(), equatorSite, time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC), Sun, false)
	require.NoError(t, err)
	require.Greater(t, b.AltDeg, 80.0)
}

func TestSunBelowHorizonAtMidnight(t *testing.T) {
	p := NewAnalytic()
	b, err := p.Position(context.Background(), equatorSite, time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC), Sun, false)
	require.NoError(t, err)
	require.Less(t, b.AltDeg, -60.0)
}

func TestMoonDistancePlausible(t *testing.T) {
	p := NewAnalytic()
	b, err := p.Position(context.Background(), equatorSite, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Moon, false)
	require.NoError(t, err)
	require.Greater(t, b.DistanceKm, 356000.0)
	require.Less(t, b.DistanceKm, 407000.0)
}

func TestRefractionRaisesLowBody(t *testing.T) {
	p := NewAnalytic()
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	var withRefraction, without *Body
	// Scan for a moment with Saturn low but above the horizon.
	for i := 0; i < 144; i++ {
		sample := at.Add(time.Duration(i) * 10 * time.Minute)
		geo, err := p.Position(context.Background(), equatorSite, sample, Saturn, false)
		require.NoError(t, err)
		if geo.AltDeg > 1 && geo.AltDeg < 15 {
			app, err := p.Position(context.Background(), equatorSite, sample, Saturn, true)
			require.NoError(t, err)
			without, withRefraction = &geo, &app
			break
		}
	}
	require.NotNil(t, without, "expected a low Saturn sample in the scan")
	require.Greater(t, withRefraction.AltDeg, without.AltDeg)
}

func TestPositionUnknownBody(t *testing.T) {
	p := NewAnalytic()
	_, err := p.Position(context.Background(), equatorSite, time.Now(), BodyID("pluto"), false)
	require.ErrorIs(t, err, ErrUnknownBody)
}

func TestPositionCancelledContext(t *testing.T) {
	p := NewAnalytic()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Position(ctx, equatorSite, time.Now(), Sun, false)
	require.Error(t, err)
}

func TestParseBodyID(t *testing.T) {
	id, ok := ParseBodyID("Saturn")
	require.True(t, ok)
	require.Equal(t, Saturn, id)

	id, ok = ParseBodyID("  moon ")
	require.True(t, ok)
	require.Equal(t, Moon, id)

	_, ok = ParseBodyID("pluto")
	require.False(t, ok)

	_, ok = ParseBodyID("")
	require.False(t, ok)
}

func TestDisplayName(t *testing.T) {
	require.Equal(t, "Saturn", Saturn.DisplayName())
	require.Equal(t, "Sun", Sun.DisplayName())
}
