package main

import (
	"fmt"
	"strings"

	"astroplan/internal/planner"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	goStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#7CFC00"))
	noStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6347"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
)

// renderWindows prints the window search result as a small table.
func renderWindows(result *planner.WindowsResult) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Best windows for %s", result.Target)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("searched %d days from %s, %d candidate days found",
		result.SearchPeriod.DaysAhead, result.SearchPeriod.StartDate, result.TotalFound)))
	b.WriteString("\n\n")

	if len(result.Windows) == 0 {
		b.WriteString(dimStyle.Render("No observable windows in the search period."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-4s %-34s %6s %6s %7s %7s %4s",
		"#", "Local time", "Score", "Alt", "Sun", "MoonSep", "OK")))
	b.WriteString("\n")

	for i, w := range result.Windows {
		verdict := noStyle.Render("no")
		if w.Recommendation.OK {
			verdict = goStyle.Render("GO")
		}
		b.WriteString(fmt.Sprintf("%-4d %-34s %6.2f %5.1f° %6.1f° %6.1f° %4s\n",
			i+1,
			w.LocalTime,
			w.Score,
			w.Metrics.TargetAltitudeDeg,
			w.Metrics.SunAltitudeDeg,
			w.Metrics.MoonTargetSeparationDeg,
			verdict))
	}

	return b.String()
}
