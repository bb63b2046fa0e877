// Package monitor periodically recomputes observing plans for configured
// targets and fans the results out to MQTT and the API's status endpoint.
package monitor

import (
	"context"
	"log"
	"sync"
	"time"

	"astroplan/internal/mqtt"
	"astroplan/internal/planner"
	"astroplan/internal/weather"
)

type Monitor struct {
	planner    *planner.Service
	weather    weather.Provider
	publisher  *mqtt.Publisher
	site       planner.Location
	targets    []string
	refraction bool
	interval   time.Duration
	enabled    bool

	mu      sync.RWMutex
	latest  map[string]*planner.Plan
	running bool
}

type Config struct {
	Planner    *planner.Service
	Weather    weather.Provider
	Publisher  *mqtt.Publisher
	Site       planner.Location
	Targets    []string
	Refraction bool
	Interval   time.Duration
	Enabled    bool
}

func New(cfg Config) *Monitor {
	return &Monitor{
		planner:    cfg.Planner,
		weather:    cfg.Weather,
		publisher:  cfg.Publisher,
		site:       cfg.Site,
		targets:    cfg.Targets,
		refraction: cfg.Refraction,
		interval:   cfg.Interval,
		enabled:    cfg.Enabled,
		latest:     make(map[string]*planner.Plan),
	}
}

func (m *Monitor) Start(ctx context.Context) error {
	if !m.enabled {
		log.Println("Monitor is disabled")
		return nil
	}

	m.mu.Lock()
	m.running = true
	m.mu.Unlock()

	log.Printf("Starting monitor with interval %s", m.interval)

	// Initial pass
	m.collect(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Monitor stopped")
			m.mu.Lock()
			m.running = false
			m.mu.Unlock()
			return nil
		case <-ticker.C:
			m.collect(ctx)
		}
	}
}

func (m *Monitor) collect(ctx context.Context) {
	now := time.Now().UTC()

	var cloudPct *float64
	if m.weather != nil {
		pct, err := m.weather.CloudCover(ctx, m.site.Latitude, m.site.Longitude, now)
		if err != nil {
			// Scoring falls back to the neutral clouds score.
			log.Printf("Cloud cover unavailable: %v", err)
		} else {
			cloudPct = &pct
		}
	}

	for _, target := range m.targets {
		plan, err := m.planner.Plan(ctx, m.site, now, m.refraction, target, cloudPct)
		if err != nil {
			log.Printf("Error computing plan for %s: %v", target, err)
			continue
		}

		m.mu.Lock()
		m.latest[plan.Target] = plan
		m.mu.Unlock()

		if m.publisher != nil {
			if err := m.publisher.Publish(plan); err != nil {
				log.Printf("Error publishing to MQTT: %v", err)
			}
		}

		log.Printf("Computed %s: score=%.2f ok=%v alt=%.1f sun=%.1f",
			plan.Target, plan.Recommendation.Score, plan.Recommendation.OK,
			plan.Metrics.TargetAltitudeDeg, plan.Metrics.SunAltitudeDeg)
	}
}

// Latest returns a copy of the most recent plan per target.
func (m *Monitor) Latest() map[string]*planner.Plan {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]*planner.Plan, len(m.latest))
	for k, v := range m.latest {
		out[k] = v
	}
	return out
}

func (m *Monitor) Running() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.running
}

func (m *Monitor) Stop() {
	if m.publisher != nil {
		m.publisher.Close()
	}
}
