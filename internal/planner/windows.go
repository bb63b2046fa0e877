package planner

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"astroplan/internal/ephemeris"
)

// Granularity selects the window-search sampling strategy.
type Granularity string

const (
	// GranularityFine samples every 20 minutes across each day and keeps
	// the best dark-sky sample. Primary strategy.
	GranularityFine Granularity = "fine"

	// GranularityDaily takes a single sample per day with the time-of-day
	// zeroed. Cheaper, coarser.
	GranularityDaily Granularity = "daily"
)

// ParseGranularity resolves a granularity name, defaulting to fine.
func ParseGranularity(s string) (Granularity, bool) {
	switch Granularity(s) {
	case GranularityFine, "":
		return GranularityFine, true
	case GranularityDaily:
		return GranularityDaily, true
	}
	return "", false
}

// Window-search defaults and limits.
const (
	DefaultDaysAhead  = 60
	DefaultMaxWindows = 3
	MaxDaysAhead      = 365

	fineStep       = 20 * time.Minute
	samplesPerDay  = 72 // 24h at 20-minute steps
	minWindowScore = 0.3
	searchWorkers  = 4
)

// FutureWindows searches the horizon for the best viewing window per day,
// then ranks the qualifying days by score and returns the top maxWindows.
//
// Days are evaluated concurrently over a small worker pool; each result
// lands in a slot indexed by day offset, so the subsequent stable sort sees
// candidates in chronological encounter order and the outcome is identical
// to a sequential scan, ties included. Per-sample provider failures skip
// the sample, never the search.
func (s *Service) FutureWindows(ctx context.Context, loc Location, start time.Time, target string, daysAhead, maxWindows int, refraction bool, cloudPct *float64, g Granularity) (*WindowsResult, error) {
	id, ok := ephemeris.ParseBodyID(target)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTargetNotFound, target)
	}
	targetID := string(id)

	if daysAhead == 0 {
		daysAhead = DefaultDaysAhead
	}
	if maxWindows == 0 {
		maxWindows = DefaultMaxWindows
	}
	if daysAhead < 1 || daysAhead > MaxDaysAhead {
		return nil, fmt.Errorf("%w: daysAhead must be in [1,%d]", ErrBadRequest, MaxDaysAhead)
	}
	if maxWindows < 1 {
		return nil, fmt.Errorf("%w: maxWindows must be positive", ErrBadRequest)
	}
	if g == "" {
		g = GranularityFine
	}

	start = start.UTC()
	candidates := make([]*Window, daysAhead)

	var wg sync.WaitGroup
	sem := make(chan struct{}, searchWorkers)
	for day := 0; day < daysAhead; day++ {
		wg.Add(1)
		go func(day int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			switch g {
			case GranularityDaily:
				candidates[day] = s.bestDaily(ctx, loc, start, day, targetID, refraction, cloudPct)
			default:
				candidates[day] = s.bestFine(ctx, loc, start, day, targetID, refraction, cloudPct)
			}
		}(day)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	windows := make([]Window, 0, len(candidates))
	for _, c := range candidates {
		if c != nil {
			windows = append(windows, *c)
		}
	}
	totalFound := len(windows)

	// Stable sort: equal scores keep chronological encounter order.
	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].Score > windows[j].Score
	})
	if len(windows) > maxWindows {
		windows = windows[:maxWindows]
	}

	return &WindowsResult{
		Target: targetID,
		SearchPeriod: SearchPeriod{
			StartDate: FormatUTC(start),
			DaysAhead: daysAhead,
		},
		Windows:    windows,
		TotalFound: totalFound,
		Returned:   len(windows),
	}, nil
}

// bestFine scans one calendar day at 20-minute steps and keeps the
// highest-scoring dark-sky sample, or nil if the day never qualifies.
func (s *Service) bestFine(ctx context.Context, loc Location, start time.Time, dayOffset int, target string, refraction bool, cloudPct *float64) *Window {
	dayStart := startOfDay(start).AddDate(0, 0, dayOffset)

	var best *Window
	for i := 0; i < samplesPerDay; i++ {
		at := dayStart.Add(time.Duration(i) * fineStep)

		plan, err := s.Plan(ctx, loc, at, refraction, target, cloudPct)
		if err != nil {
			// Isolated bad samples must not invalidate the search.
			continue
		}

		// Only dark-sky samples with the target up are candidates.
		if plan.Metrics.TargetAltitudeDeg <= 0 || plan.Metrics.SunAltitudeDeg >= civilTwilightDeg {
			continue
		}
		if best != nil && plan.Recommendation.Score <= best.Score {
			continue
		}
		best = windowFromPlan(at, loc, plan)
	}

	if best == nil || best.Score <= minWindowScore {
		return nil
	}
	return best
}

// bestDaily takes the single zeroed-time-of-day sample for the day at
// offset dayOffset+1, matching the coarse variant's 1-based day offsets.
func (s *Service) bestDaily(ctx context.Context, loc Location, start time.Time, dayOffset int, target string, refraction bool, cloudPct *float64) *Window {
	at := startOfDay(start.AddDate(0, 0, dayOffset+1))

	plan, err := s.Plan(ctx, loc, at, refraction, target, cloudPct)
	if err != nil {
		return nil
	}
	if plan.Recommendation.Score <= minWindowScore {
		return nil
	}
	return windowFromPlan(at, loc, plan)
}

func windowFromPlan(at time.Time, loc Location, plan *Plan) *Window {
	return &Window{
		Datetime:       FormatUTC(at),
		DateRange:      DateLabel(at),
		LocalTime:      LocalTimeLabel(at, loc.Longitude),
		Score:          plan.Recommendation.Score,
		Metrics:        plan.Metrics,
		Recommendation: plan.Recommendation,
	}
}

func startOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
