// Package planner turns raw body positions into observability scores and
// searches a future horizon for the best viewing windows.
package planner

import "astroplan/internal/ephemeris"

// Location is the observer site for a computation.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	ElevM     float64 `json:"elevationM"`
}

// Metrics are the instantaneous quantities the scorer works from.
// CloudCoverPct is nil when no forecast is available.
type Metrics struct {
	TargetAltitudeDeg       float64  `json:"targetAltitudeDeg"`
	SunAltitudeDeg          float64  `json:"sunAltitudeDeg"`
	MoonTargetSeparationDeg float64  `json:"moonTargetSeparationDeg"`
	CloudCoverPct           *float64 `json:"cloudCoverPct"`
}

// CriterionScores are the four normalized criteria, each in [0,1].
type CriterionScores struct {
	Alt    float64 `json:"alt"`
	Sun    float64 `json:"sun"`
	Moon   float64 `json:"moon"`
	Clouds float64 `json:"clouds"`
}

// Recommendation is the scorer output: the blended score in [0,1], the
// per-criterion breakdown, and whether the moment is practically usable.
type Recommendation struct {
	OK       bool            `json:"ok"`
	Score    float64         `json:"score"`
	Criteria CriterionScores `json:"criteria"`
}

// ObserverInfo echoes the site and instant on every response.
type ObserverInfo struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	ElevM     float64 `json:"elevationM"`
	Datetime  string  `json:"datetime"`
}

// SnapshotMeta describes how a snapshot was computed.
type SnapshotMeta struct {
	Engine     string `json:"engine"`
	Refraction bool   `json:"refraction"`
}

// Snapshot is the full-catalog position listing, no scoring.
type Snapshot struct {
	Observer ObserverInfo     `json:"observer"`
	Bodies   []ephemeris.Body `json:"bodies"`
	Meta     SnapshotMeta     `json:"meta"`
}

// Plan is the scored observation plan for one target at one instant.
type Plan struct {
	Observer       ObserverInfo   `json:"observer"`
	Target         string         `json:"target"`
	Metrics        Metrics        `json:"metrics"`
	Recommendation Recommendation `json:"recommendation"`
}

// Window is the best-scoring sampled instant of one qualifying day.
type Window struct {
	Datetime       string         `json:"datetime"`
	DateRange      string         `json:"dateRange"`
	LocalTime      string         `json:"localTime"`
	Score          float64        `json:"score"`
	Metrics        Metrics        `json:"metrics"`
	Recommendation Recommendation `json:"recommendation"`
}

// SearchPeriod echoes the window-search parameters.
type SearchPeriod struct {
	StartDate string `json:"startDate"`
	DaysAhead int    `json:"daysAhead"`
}

// WindowsResult is the ranked window list for a whole horizon search.
type WindowsResult struct {
	Target       string       `json:"target"`
	SearchPeriod SearchPeriod `json:"searchPeriod"`
	Windows      []Window     `json:"windows"`
	TotalFound   int          `json:"totalFound"`
	Returned     int          `json:"returned"`
}
