package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Observer ObserverConfig `mapstructure:"observer"`
	Search   SearchConfig   `mapstructure:"search"`
	Weather  WeatherConfig  `mapstructure:"weather"`
	API      APIConfig      `mapstructure:"api"`
	MQTT     MQTTConfig     `mapstructure:"mqtt"`
	Monitor  MonitorConfig  `mapstructure:"monitor"`
}

type ObserverConfig struct {
	Latitude  float64 `mapstructure:"latitude"`
	Longitude float64 `mapstructure:"longitude"`
	Elevation float64 `mapstructure:"elevation"`
}

type SearchConfig struct {
	DaysAhead   int    `mapstructure:"days_ahead"`
	MaxWindows  int    `mapstructure:"max_windows"`
	Granularity string `mapstructure:"granularity"`
	Refraction  bool   `mapstructure:"refraction"`
}

type WeatherConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Provider string `mapstructure:"provider"`
	APIKey   string `mapstructure:"api_key"`
}

type APIConfig struct {
	Port    int  `mapstructure:"port"`
	Enabled bool `mapstructure:"enabled"`
}

type MQTTConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Broker      string `mapstructure:"broker"`
	TopicPrefix string `mapstructure:"topic_prefix"`
	ClientID    string `mapstructure:"client_id"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
}

type MonitorConfig struct {
	Interval time.Duration `mapstructure:"interval"`
	Enabled  bool          `mapstructure:"enabled"`
	Targets  []string      `mapstructure:"targets"`
}

func Load(configPath string) (*Config, error) {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/astroplan")
	}

	// Set defaults
	viper.SetDefault("observer.latitude", 37.7749)
	viper.SetDefault("observer.longitude", -122.4194)
	viper.SetDefault("observer.elevation", 0.0)
	viper.SetDefault("search.days_ahead", 60)
	viper.SetDefault("search.max_windows", 3)
	viper.SetDefault("search.granularity", "fine")
	viper.SetDefault("search.refraction", true)
	viper.SetDefault("weather.enabled", true)
	viper.SetDefault("weather.provider", "openmeteo")
	viper.SetDefault("weather.api_key", "")
	viper.SetDefault("api.port", 8001)
	viper.SetDefault("api.enabled", true)
	viper.SetDefault("mqtt.enabled", false)
	viper.SetDefault("mqtt.broker", "tcp://localhost:1883")
	viper.SetDefault("mqtt.topic_prefix", "astroplan")
	viper.SetDefault("mqtt.client_id", "astroplan")
	viper.SetDefault("monitor.interval", "5m")
	viper.SetDefault("monitor.enabled", true)
	viper.SetDefault("monitor.targets", []string{"saturn"})

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
