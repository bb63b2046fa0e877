// Package tui provides the live terminal watch view using Bubble Tea.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"astroplan/internal/planner"
	"astroplan/internal/weather"
)

// Display colors
const (
	colorGood = "#7CFC00" // lawn green - usable window
	colorWarn = "#FFD700" // gold - marginal
	colorBad  = "#FF6347" // tomato - not observable
	colorDim  = "60"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorDim))
	headStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	goodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGood))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorWarn))
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorBad))
)

// Msg types for Bubble Tea
type (
	// TickMsg triggers a periodic refresh.
	TickMsg time.Time

	// dataMsg carries freshly computed positions and the target plan.
	dataMsg struct {
		snapshot *planner.Snapshot
		plan     *planner.Plan
		err      error
	}
)

// Model is the watch-view Bubble Tea model.
type Model struct {
	planner    *planner.Service
	weather    weather.Provider
	site       planner.Location
	target     string
	refraction bool
	interval   time.Duration

	width    int
	height   int
	snapshot *planner.Snapshot
	plan     *planner.Plan
	err      error
}

// New creates a watch model for one site and target.
func New(svc *planner.Service, wp weather.Provider, site planner.Location, target string, refraction bool, interval time.Duration) Model {
	return Model{
		planner:    svc,
		weather:    wp,
		site:       site,
		target:     target,
		refraction: refraction,
		interval:   interval,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refresh(), tickCmd(m.interval))
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// refresh recomputes the snapshot and plan off the main loop.
func (m Model) refresh() tea.Cmd {
	svc, wp := m.planner, m.weather
	site, target, refraction := m.site, m.target, m.refraction

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		now := time.Now().UTC()

		var cloudPct *float64
		if wp != nil {
			if pct, err := wp.CloudCover(ctx, site.Latitude, site.Longitude, now); err == nil {
				cloudPct = &pct
			}
		}

		snapshot, err := svc.Snapshot(ctx, site, now, refraction)
		if err != nil {
			return dataMsg{err: err}
		}
		plan, err := svc.Plan(ctx, site, now, refraction, target, cloudPct)
		if err != nil {
			return dataMsg{snapshot: snapshot, err: err}
		}
		return dataMsg{snapshot: snapshot, plan: plan}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			return m, m.refresh()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case TickMsg:
		return m, tea.Batch(m.refresh(), tickCmd(m.interval))

	case dataMsg:
		m.snapshot = msg.snapshot
		m.plan = msg.plan
		m.err = msg.err
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("astroplan watch"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %.4f, %.4f  target: %s", m.site.Latitude, m.site.Longitude, m.target)))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(badStyle.Render(fmt.Sprintf("error: %v", m.err)))
		b.WriteString("\n")
	}

	if m.snapshot == nil {
		b.WriteString(dimStyle.Render("computing..."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(headStyle.Render(fmt.Sprintf("%-9s %8s %8s %8s %9s", "BODY", "ALT", "AZ", "RA", "DEC")))
	b.WriteString("\n")
	for _, body := range m.snapshot.Bodies {
		line := fmt.Sprintf("%-9s %7.1f° %7.1f° %7.2fh %8.2f°",
			body.Name, body.AltDeg, body.AzDeg, body.RAHours, body.DecDeg)
		if body.AltDeg > 0 {
			b.WriteString(line)
		} else {
			b.WriteString(dimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if m.plan != nil {
		b.WriteString("\n")
		b.WriteString(m.renderPlan())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("as of %s  ·  r refresh  ·  q quit", m.snapshot.Observer.Datetime)))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderPlan() string {
	rec := m.plan.Recommendation

	verdict := badStyle.Render("NOT OBSERVABLE")
	if rec.OK {
		verdict = goodStyle.Render("GO")
	} else if rec.Score > 0.3 {
		verdict = warnStyle.Render("MARGINAL")
	}

	var b strings.Builder
	b.WriteString(headStyle.Render(fmt.Sprintf("%s  score %.2f  ", strings.ToUpper(m.plan.Target), rec.Score)))
	b.WriteString(verdict)
	b.WriteString("\n")
	b.WriteString(scoreBar("altitude", rec.Criteria.Alt))
	b.WriteString(scoreBar("darkness", rec.Criteria.Sun))
	b.WriteString(scoreBar("moon sep", rec.Criteria.Moon))
	b.WriteString(scoreBar("clouds", rec.Criteria.Clouds))
	return b.String()
}

func scoreBar(label string, v float64) string {
	const width = 20
	filled := int(v*width + 0.5)
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	style := badStyle
	switch {
	case v >= 0.8:
		style = goodStyle
	case v >= 0.4:
		style = warnStyle
	}
	return fmt.Sprintf("%-9s %s %.2f\n", label, style.Render(bar), v)
}
