// Package weather provides forecast cloud-cover lookups for a site.
package weather

import (
	"context"
	"time"
)

// Provider returns forecast cloud cover in percent [0,100] for a location
// at (or near) an instant. Failures degrade the planner to its neutral
// clouds score; they never abort a computation.
type Provider interface {
	Name() string
	CloudCover(ctx context.Context, lat, lon float64, at time.Time) (float64, error)
}
