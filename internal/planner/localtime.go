package planner

import (
	"fmt"
	"math"
	"time"
)

// LocalTimeLabel renders a UTC instant as an approximate local civil time
// for an observer, derived from longitude alone: offset = longitude / 15
// hours, no daylight saving, no timezone database. The offset shown is
// rounded to the nearest whole hour; the clock itself is shifted by the
// exact fractional offset.
//
// Display only. Never feed this back into any scoring computation.
func LocalTimeLabel(t time.Time, lonDeg float64) string {
	offsetHours := lonDeg / 15.0
	shifted := t.UTC().Add(time.Duration(offsetHours * float64(time.Hour)))
	return fmt.Sprintf("%s (UTC%+d)",
		shifted.Format("Jan 02, 2006 3:04 PM"),
		int(math.Round(offsetHours)))
}

// DateLabel renders the calendar-date label attached to a viewing window.
func DateLabel(t time.Time) string {
	return t.UTC().Format("Jan 02, 2006")
}
