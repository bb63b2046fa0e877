// Package api exposes the planner over HTTP.
package api

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"astroplan/internal/monitor"
	"astroplan/internal/planner"
	"astroplan/internal/weather"

	"github.com/gin-gonic/gin"
)

type Server struct {
	router  *gin.Engine
	server  *http.Server
	planner *planner.Service
	weather weather.Provider
	monitor *monitor.Monitor
	search  SearchDefaults
	port    int
}

// SearchDefaults are the configured window-search parameters applied when a
// request leaves them unspecified.
type SearchDefaults struct {
	DaysAhead   int
	MaxWindows  int
	Granularity planner.Granularity
}

type ServerConfig struct {
	Port    int
	Planner *planner.Service
	Weather weather.Provider
	Monitor *monitor.Monitor
	Search  SearchDefaults
}

func NewServer(cfg ServerConfig) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	search := cfg.Search
	if search.DaysAhead == 0 {
		search.DaysAhead = planner.DefaultDaysAhead
	}
	if search.MaxWindows == 0 {
		search.MaxWindows = planner.DefaultMaxWindows
	}
	if search.Granularity == "" {
		search.Granularity = planner.GranularityFine
	}

	s := &Server{
		router:  router,
		planner: cfg.Planner,
		weather: cfg.Weather,
		monitor: cfg.Monitor,
		search:  search,
		port:    cfg.Port,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthHandler)

	api := s.router.Group("/api")
	{
		api.GET("/sky", s.skyHandler)
		api.GET("/plan", s.planHandler)
		api.GET("/windows", s.windowsHandler)
		api.GET("/status", s.statusHandler)
	}
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.router,
	}

	log.Printf("API server starting on port %d", s.port)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Router exposes the handler for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"engine": s.planner.ProviderName(),
	})
}

func (s *Server) statusHandler(c *gin.Context) {
	if s.monitor == nil {
		c.JSON(http.StatusOK, gin.H{"monitoring": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"monitoring": s.monitor.Running(),
		"targets":    s.monitor.Latest(),
	})
}
