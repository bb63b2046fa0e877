// Package ephemeris supplies apparent topocentric positions for the solar
// system bodies the planner works with.
package ephemeris

import (
	"context"
	"errors"
	"strings"
	"time"
)

// BodyID identifies a body in the fixed catalog.
type BodyID string

const (
	Sun     BodyID = "sun"
	Moon    BodyID = "moon"
	Mercury BodyID = "mercury"
	Venus   BodyID = "venus"
	Mars    BodyID = "mars"
	Jupiter BodyID = "jupiter"
	Saturn  BodyID = "saturn"
	Uranus  BodyID = "uranus"
)

// Catalog lists every body a provider must resolve, in display order.
var Catalog = []BodyID{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus}

// ParseBodyID resolves a case-insensitive body name against the catalog.
func ParseBodyID(s string) (BodyID, bool) {
	id := BodyID(strings.ToLower(strings.TrimSpace(s)))
	for _, b := range Catalog {
		if b == id {
			return id, true
		}
	}
	return "", false
}

// DisplayName returns the capitalized body name.
func (id BodyID) DisplayName() string {
	if id == "" {
		return ""
	}
	return strings.ToUpper(string(id[0])) + string(id[1:])
}

// Observer is a ground site. Longitude is east-positive.
type Observer struct {
	LatDeg float64
	LonDeg float64
	ElevM  float64
}

// Body is an apparent topocentric position at a single instant.
// Right ascension is in hours [0,24) to match the wire format; all
// other angles are degrees.
type Body struct {
	ID         BodyID  `json:"id"`
	Name       string  `json:"name"`
	RAHours    float64 `json:"ra"`
	DecDeg     float64 `json:"dec"`
	AzDeg      float64 `json:"az"`
	AltDeg     float64 `json:"alt"`
	DistanceKm float64 `json:"distanceKm"`
}

// ErrUnknownBody is returned when a provider is asked for a body outside
// its catalog.
var ErrUnknownBody = errors.New("unknown body")

// Provider computes apparent positions for catalog bodies as seen from an
// observer site. Implementations must be safe for concurrent use.
type Provider interface {
	// Name returns the provider name for display/logging.
	Name() string

	// Position returns the position of a single body.
	Position(ctx context.Context, obs Observer, t time.Time, id BodyID, refraction bool) (Body, error)

	// Positions returns positions for the whole catalog, in catalog order.
	Positions(ctx context.Context, obs Observer, t time.Time, refraction bool) ([]Body, error)
}
