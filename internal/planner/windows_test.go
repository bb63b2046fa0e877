package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var searchStart = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// altByDay scripts one altitude per calendar day of the search, counted
// from the start's day.
func altByDay(alts map[int]float64) *fakeProvider {
	day0 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return &fakeProvider{altFn: func(at time.Time) float64 {
		day := int(at.Sub(day0).Hours() / 24)
		return alts[day]
	}}
}

func TestFutureWindowsRankingAndTruncation(t *testing.T) {
	// Days 1 and 2 tie at the top, day 4 is next, day 0 lowest; day 3 is
	// below the horizon and never qualifies.
	svc := NewService(altByDay(map[int]float64{0: 20, 1: 45, 2: 45, 3: -5, 4: 30}))

	result, err := svc.FutureWindows(context.Background(), testSite, searchStart, "saturn", 5, 3, true, nil, GranularityFine)
	require.NoError(t, err)

	require.Equal(t, "saturn", result.Target)
	require.Equal(t, 4, result.TotalFound)
	require.Equal(t, 3, result.Returned)
	require.Len(t, result.Windows, 3)

	// Sorted by score descending.
	for i := 1; i < len(result.Windows); i++ {
		require.GreaterOrEqual(t, result.Windows[i-1].Score, result.Windows[i].Score)
	}

	// Equal scores keep chronological order: day 1 before day 2.
	require.Equal(t, "2025-06-02T00:00:00Z", result.Windows[0].Datetime)
	require.Equal(t, "2025-06-03T00:00:00Z", result.Windows[1].Datetime)
	require.Equal(t, "2025-06-05T00:00:00Z", result.Windows[2].Datetime)
}

func TestFutureWindowsSearchPeriod(t *testing.T) {
	svc := NewService(constantAlt(45))
	result, err := svc.FutureWindows(context.Background(), testSite, searchStart, "saturn", 2, 3, true, nil, GranularityFine)
	require.NoError(t, err)
	require.Equal(t, "2025-06-01T12:00:00Z", result.SearchPeriod.StartDate)
	require.Equal(t, 2, result.SearchPeriod.DaysAhead)
}

func TestFutureWindowsDefaults(t *testing.T) {
	svc := NewService(constantAlt(45))
	result, err := svc.FutureWindows(context.Background(), testSite, searchStart, "saturn", 0, 0, true, nil, "")
	require.NoError(t, err)
	require.Equal(t, DefaultDaysAhead, result.SearchPeriod.DaysAhead)
	require.Equal(t, DefaultMaxWindows, result.Returned)
	require.Equal(t, DefaultDaysAhead, result.TotalFound)
}

func TestFutureWindowsReturnedNeverExceedsFound(t *testing.T) {
	svc := NewService(altByDay(map[int]float64{0: 45}))
	result, err := svc.FutureWindows(context.Background(), testSite, searchStart, "saturn", 3, 10, true, nil, GranularityFine)
	require.NoError(t, err)
	require.Equal(t, 1, result.TotalFound)
	require.Equal(t, 1, result.Returned)
}

func TestFutureWindowsNoneFound(t *testing.T) {
	svc := NewService(constantAlt(-10))
	result, err := svc.FutureWindows(context.Background(), testSite, searchStart, "saturn", 5, 3, true, nil, GranularityFine)
	require.NoError(t, err)
	require.Equal(t, 0, result.TotalFound)
	require.Empty(t, result.Windows)
}

func TestFutureWindowsUnknownTarget(t *testing.T) {
	svc := NewService(constantAlt(45))
	_, err := svc.FutureWindows(context.Background(), testSite, searchStart, "pluto", 5, 3, true, nil, GranularityFine)
	require.ErrorIs(t, err, ErrTargetNotFound)
}

func TestFutureWindowsDaysAheadOutOfRange(t *testing.T) {
	svc := NewService(constantAlt(45))
	_, err := svc.FutureWindows(context.Background(), testSite, searchStart, "saturn", MaxDaysAhead+1, 3, true, nil, GranularityFine)
	require.ErrorIs(t, err, ErrBadRequest)

	_, err = svc.FutureWindows(context.Background(), testSite, searchStart, "saturn", -2, 3, true, nil, GranularityFine)
	require.ErrorIs(t, err, ErrBadRequest)
}

func TestFutureWindowsSkipsFailedSamples(t *testing.T) {
	// The morning half of the day errors out; the search must still find a
	// window from the surviving afternoon samples.
	p := constantAlt(45)
	p.errFn = func(at time.Time) error {
		if at.Hour() < 12 {
			return errors.New("transient ephemeris failure")
		}
		return nil
	}
	svc := NewService(p)

	result, err := svc.FutureWindows(context.Background(), testSite, searchStart, "saturn", 1, 3, true, nil, GranularityFine)
	require.NoError(t, err)
	require.Equal(t, 1, result.TotalFound)
	require.Equal(t, "2025-06-01T12:00:00Z", result.Windows[0].Datetime)
}

func TestFutureWindowsDailyGranularity(t *testing.T) {
	// Daily sampling starts one day out and zeroes the time of day.
	svc := NewService(constantAlt(45))
	result, err := svc.FutureWindows(context.Background(), testSite, searchStart, "saturn", 2, 5, true, nil, GranularityDaily)
	require.NoError(t, err)
	require.Equal(t, 2, result.TotalFound)
	require.Equal(t, "2025-06-02T00:00:00Z", result.Windows[0].Datetime)
	require.Equal(t, "2025-06-03T00:00:00Z", result.Windows[1].Datetime)
}

func TestFutureWindowsCarriesLabels(t *testing.T) {
	svc := NewService(constantAlt(45))
	result, err := svc.FutureWindows(context.Background(), testSite, searchStart, "saturn", 1, 1, true, nil, GranularityFine)
	require.NoError(t, err)
	require.Len(t, result.Windows, 1)

	w := result.Windows[0]
	require.Equal(t, "Jun 01, 2025", w.DateRange)
	require.Contains(t, w.LocalTime, "(UTC-8)")
	require.True(t, w.Recommendation.OK)
}

func TestParseGranularity(t *testing.T) {
	g, ok := ParseGranularity("")
	require.True(t, ok)
	require.Equal(t, GranularityFine, g)

	g, ok = ParseGranularity("daily")
	require.True(t, ok)
	require.Equal(t, GranularityDaily, g)

	_, ok = ParseGranularity("hourly")
	require.False(t, ok)
}
