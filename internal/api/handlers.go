package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"astroplan/internal/planner"

	"github.com/gin-gonic/gin"
)

// siteQuery is the parameter set shared by every endpoint.
type siteQuery struct {
	loc        planner.Location
	at         time.Time
	refraction bool
}

func badRequest(c *gin.Context, format string, args ...interface{}) {
	c.JSON(http.StatusBadRequest, gin.H{
		"code":    "BadRequest",
		"message": fmt.Sprintf(format, args...),
	})
}

func internalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"code":    "InternalError",
		"message": err.Error(),
	})
}

// writePlannerError maps the planner error taxonomy onto HTTP statuses.
func writePlannerError(c *gin.Context, err error) {
	if errors.Is(err, planner.ErrTargetNotFound) || errors.Is(err, planner.ErrBadRequest) {
		badRequest(c, "%v", err)
		return
	}
	internalError(c, err)
}

func floatQuery(c *gin.Context, name string, def, min, max float64) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	if v < min || v > max {
		return 0, fmt.Errorf("%s must be in [%g,%g]", name, min, max)
	}
	return v, nil
}

func boolQuery(c *gin.Context, name string, def bool) (bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean", name)
	}
	return v, nil
}

func intQuery(c *gin.Context, name string, def, min, max int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	if v < min || v > max {
		return 0, fmt.Errorf("%s must be in [%d,%d]", name, min, max)
	}
	return v, nil
}

// parseTime accepts RFC3339 or the naive-Z boundary convention; empty
// means "now".
func parseTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", strings.TrimSuffix(raw, "Z")); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("datetime must be ISO-8601")
}

func (s *Server) parseSite(c *gin.Context) (siteQuery, error) {
	var q siteQuery

	if c.Query("lat") == "" || c.Query("lon") == "" {
		return q, fmt.Errorf("lat and lon are required")
	}

	lat, err := floatQuery(c, "lat", 0, -90, 90)
	if err != nil {
		return q, err
	}
	lon, err := floatQuery(c, "lon", 0, -180, 180)
	if err != nil {
		return q, err
	}
	elev, err := floatQuery(c, "elev", 0, -500, 9000)
	if err != nil {
		return q, err
	}
	at, err := parseTime(c.Query("datetime"))
	if err != nil {
		return q, err
	}
	refraction, err := boolQuery(c, "refraction", true)
	if err != nil {
		return q, err
	}

	q.loc = planner.Location{Latitude: lat, Longitude: lon, ElevM: elev}
	q.at = at
	q.refraction = refraction
	return q, nil
}

// cloudCover resolves the cloud-cover input: an explicit query value wins,
// otherwise the weather provider is asked and failures degrade to unknown.
func (s *Server) cloudCover(c *gin.Context, q siteQuery) (*float64, error) {
	if raw := c.Query("cloudCoverPct"); raw != "" {
		v, err := floatQuery(c, "cloudCoverPct", 0, 0, 100)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}

	if s.weather == nil {
		return nil, nil
	}
	pct, err := s.weather.CloudCover(c.Request.Context(), q.loc.Latitude, q.loc.Longitude, q.at)
	if err != nil {
		log.Printf("Cloud cover unavailable: %v", err)
		return nil, nil
	}
	return &pct, nil
}

func (s *Server) skyHandler(c *gin.Context) {
	q, err := s.parseSite(c)
	if err != nil {
		badRequest(c, "%v", err)
		return
	}

	snapshot, err := s.planner.Snapshot(c.Request.Context(), q.loc, q.at, q.refraction)
	if err != nil {
		writePlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (s *Server) planHandler(c *gin.Context) {
	q, err := s.parseSite(c)
	if err != nil {
		badRequest(c, "%v", err)
		return
	}

	target := c.DefaultQuery("target", "saturn")
	clouds, err := s.cloudCover(c, q)
	if err != nil {
		badRequest(c, "%v", err)
		return
	}

	plan, err := s.planner.Plan(c.Request.Context(), q.loc, q.at, q.refraction, target, clouds)
	if err != nil {
		writePlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (s *Server) windowsHandler(c *gin.Context) {
	q, err := s.parseSite(c)
	if err != nil {
		badRequest(c, "%v", err)
		return
	}

	target := c.DefaultQuery("target", "saturn")
	days, err := intQuery(c, "days", s.search.DaysAhead, 1, planner.MaxDaysAhead)
	if err != nil {
		badRequest(c, "%v", err)
		return
	}
	max, err := intQuery(c, "max", s.search.MaxWindows, 1, 20)
	if err != nil {
		badRequest(c, "%v", err)
		return
	}
	granularity := s.search.Granularity
	if raw := c.Query("granularity"); raw != "" {
		var ok bool
		granularity, ok = planner.ParseGranularity(raw)
		if !ok {
			badRequest(c, "granularity must be fine or daily")
			return
		}
	}
	clouds, err := s.cloudCover(c, q)
	if err != nil {
		badRequest(c, "%v", err)
		return
	}

	result, err := s.planner.FutureWindows(c.Request.Context(), q.loc, q.at, target, days, max, q.refraction, clouds, granularity)
	if err != nil {
		writePlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
