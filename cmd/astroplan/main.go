package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"astroplan/config"
	"astroplan/internal/api"
	"astroplan/internal/ephemeris"
	"astroplan/internal/monitor"
	"astroplan/internal/mqtt"
	"astroplan/internal/planner"
	"astroplan/internal/tui"
	"astroplan/internal/weather"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	configFile string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "astroplan",
		Short: "Celestial observation planner",
		Long:  "A tool to score observing conditions for solar system bodies and find the best future viewing windows",
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(skyCmd())
	rootCmd.AddCommand(planCmd())
	rootCmd.AddCommand(windowsCmd())
	rootCmd.AddCommand(watchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildWeather(cfg *config.Config) weather.Provider {
	if !cfg.Weather.Enabled {
		return nil
	}
	switch cfg.Weather.Provider {
	case "openweather":
		return weather.NewOpenWeatherClient(cfg.Weather.APIKey)
	default:
		return weather.NewOpenMeteoClient()
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the planning service",
		Long:  "Start the monitor loop, API server, and MQTT publisher",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			svc := planner.NewService(ephemeris.NewAnalytic())
			weatherProvider := buildWeather(cfg)

			publisher, err := mqtt.NewPublisher(mqtt.PublisherConfig{
				Broker:      cfg.MQTT.Broker,
				ClientID:    cfg.MQTT.ClientID,
				Username:    cfg.MQTT.Username,
				Password:    cfg.MQTT.Password,
				TopicPrefix: cfg.MQTT.TopicPrefix,
				Enabled:     cfg.MQTT.Enabled,
			})
			if err != nil {
				log.Printf("Warning: MQTT connection failed: %v", err)
			} else if cfg.MQTT.Enabled {
				log.Printf("MQTT connected to %s", cfg.MQTT.Broker)
			}

			mon := monitor.New(monitor.Config{
				Planner:   svc,
				Weather:   weatherProvider,
				Publisher: publisher,
				Site: planner.Location{
					Latitude:  cfg.Observer.Latitude,
					Longitude: cfg.Observer.Longitude,
					ElevM:     cfg.Observer.Elevation,
				},
				Targets:    cfg.Monitor.Targets,
				Refraction: cfg.Search.Refraction,
				Interval:   cfg.Monitor.Interval,
				Enabled:    cfg.Monitor.Enabled,
			})

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

			go func() {
				if err := mon.Start(ctx); err != nil {
					log.Printf("Monitor error: %v", err)
				}
			}()

			if cfg.API.Enabled {
				granularity, ok := planner.ParseGranularity(cfg.Search.Granularity)
				if !ok {
					return fmt.Errorf("invalid search.granularity %q in config", cfg.Search.Granularity)
				}
				server := api.NewServer(api.ServerConfig{
					Port:    cfg.API.Port,
					Planner: svc,
					Weather: weatherProvider,
					Monitor: mon,
					Search: api.SearchDefaults{
						DaysAhead:   cfg.Search.DaysAhead,
						MaxWindows:  cfg.Search.MaxWindows,
						Granularity: granularity,
					},
				})

				go func() {
					if err := server.Start(); err != nil {
						log.Printf("API server error: %v", err)
					}
				}()
			}

			log.Println("astroplan started. Press Ctrl+C to stop.")

			<-sigChan
			log.Println("Shutting down...")
			cancel()
			mon.Stop()

			return nil
		},
	}
}

// queryFlags is the shared flag set of the one-shot commands.
type queryFlags struct {
	lat, lon, elev float64
	datetime       string
	target         string
	refraction     bool
	clouds         float64
	days, max      int
	granularity    string
	jsonOut        bool
}

func (q *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&q.lat, "lat", 0, "observer latitude in degrees")
	cmd.Flags().Float64Var(&q.lon, "lon", 0, "observer longitude in degrees, east positive")
	cmd.Flags().Float64Var(&q.elev, "elev", 0, "observer elevation in meters")
	cmd.Flags().StringVar(&q.datetime, "datetime", "", "UTC instant (ISO-8601), default now")
	cmd.Flags().BoolVar(&q.refraction, "refraction", true, "apply atmospheric refraction")
	cmd.Flags().Float64Var(&q.clouds, "clouds", -1, "cloud cover percent, -1 to fetch from the weather provider")
}

func (q *queryFlags) site(cmd *cobra.Command, cfg *config.Config) (planner.Location, time.Time, error) {
	loc := planner.Location{
		Latitude:  cfg.Observer.Latitude,
		Longitude: cfg.Observer.Longitude,
		ElevM:     cfg.Observer.Elevation,
	}
	if cmd.Flags().Changed("lat") {
		loc.Latitude = q.lat
	}
	if cmd.Flags().Changed("lon") {
		loc.Longitude = q.lon
	}
	if cmd.Flags().Changed("elev") {
		loc.ElevM = q.elev
	}
	if !cmd.Flags().Changed("refraction") {
		q.refraction = cfg.Search.Refraction
	}

	at := time.Now().UTC()
	if q.datetime != "" {
		parsed, err := time.Parse(time.RFC3339, q.datetime)
		if err != nil {
			return loc, at, fmt.Errorf("invalid --datetime: %w", err)
		}
		at = parsed.UTC()
	}
	return loc, at, nil
}

// cloudCover resolves the one-shot cloud input: explicit flag wins, then
// the weather provider, then unknown.
func (q *queryFlags) cloudCover(ctx context.Context, cfg *config.Config, loc planner.Location, at time.Time) *float64 {
	if q.clouds >= 0 {
		v := q.clouds
		return &v
	}
	wp := buildWeather(cfg)
	if wp == nil {
		return nil
	}
	pct, err := wp.CloudCover(ctx, loc.Latitude, loc.Longitude, at)
	if err != nil {
		if verbose {
			log.Printf("Cloud cover unavailable: %v", err)
		}
		return nil
	}
	return &pct
}

func printJSON(v interface{}) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}

func skyCmd() *cobra.Command {
	var q queryFlags
	cmd := &cobra.Command{
		Use:   "sky",
		Short: "Print current positions of all catalog bodies",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			loc, at, err := q.site(cmd, cfg)
			if err != nil {
				return err
			}

			svc := planner.NewService(ephemeris.NewAnalytic())
			snapshot, err := svc.Snapshot(cmd.Context(), loc, at, q.refraction)
			if err != nil {
				return err
			}
			return printJSON(snapshot)
		},
	}
	q.register(cmd)
	return cmd
}

func planCmd() *cobra.Command {
	var q queryFlags
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Score observing conditions for a target now",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			loc, at, err := q.site(cmd, cfg)
			if err != nil {
				return err
			}

			svc := planner.NewService(ephemeris.NewAnalytic())
			clouds := q.cloudCover(cmd.Context(), cfg, loc, at)

			plan, err := svc.Plan(cmd.Context(), loc, at, q.refraction, q.target, clouds)
			if err != nil {
				return err
			}
			return printJSON(plan)
		},
	}
	q.register(cmd)
	cmd.Flags().StringVar(&q.target, "target", "saturn", "target body")
	return cmd
}

func windowsCmd() *cobra.Command {
	var q queryFlags
	cmd := &cobra.Command{
		Use:   "windows",
		Short: "Find the best future viewing windows for a target",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			loc, at, err := q.site(cmd, cfg)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("days") {
				q.days = cfg.Search.DaysAhead
			}
			if !cmd.Flags().Changed("max") {
				q.max = cfg.Search.MaxWindows
			}
			if !cmd.Flags().Changed("granularity") {
				q.granularity = cfg.Search.Granularity
			}
			granularity, ok := planner.ParseGranularity(q.granularity)
			if !ok {
				return fmt.Errorf("invalid --granularity %q", q.granularity)
			}

			svc := planner.NewService(ephemeris.NewAnalytic())
			clouds := q.cloudCover(cmd.Context(), cfg, loc, at)

			result, err := svc.FutureWindows(cmd.Context(), loc, at, q.target, q.days, q.max, q.refraction, clouds, granularity)
			if err != nil {
				return err
			}

			if q.jsonOut {
				return printJSON(result)
			}
			fmt.Print(renderWindows(result))
			return nil
		},
	}
	q.register(cmd)
	cmd.Flags().StringVar(&q.target, "target", "saturn", "target body")
	cmd.Flags().IntVar(&q.days, "days", 0, "days ahead to search (default from config)")
	cmd.Flags().IntVar(&q.max, "max", 0, "maximum windows to return")
	cmd.Flags().StringVar(&q.granularity, "granularity", "", "sampling granularity: fine or daily")
	cmd.Flags().BoolVar(&q.jsonOut, "json", false, "print raw JSON")
	return cmd
}

func watchCmd() *cobra.Command {
	var q queryFlags
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live terminal view of the sky and target score",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			loc, _, err := q.site(cmd, cfg)
			if err != nil {
				return err
			}

			svc := planner.NewService(ephemeris.NewAnalytic())
			model := tui.New(svc, buildWeather(cfg), loc, q.target, q.refraction, interval)

			p := tea.NewProgram(model, tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
	q.register(cmd)
	cmd.Flags().StringVar(&q.target, "target", "saturn", "target body")
	cmd.Flags().DurationVar(&interval, "interval", 30*time.Second, "refresh interval")
	return cmd
}
