// Package config loads the server configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"trail_guide/pkg/guidance"
)

// Config is the top-level configuration file layout.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Data     DataConfig     `yaml:"data"`
	Guidance GuidanceConfig `yaml:"guidance"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr          string `yaml:"addr"`
	CORSOrigin    string `yaml:"cors_origin"`
	MaxConcurrent int    `yaml:"max_concurrent"`
}

// DataConfig points at the data files to load on startup.
type DataConfig struct {
	PathSet string `yaml:"path_set"` // binary path set produced by the import tool
	GeoJSON string `yaml:"geojson"`  // optional extra paths and markers
}

// GuidanceConfig mirrors the guidance tuning knobs. Durations are in
// milliseconds to keep the YAML flat.
type GuidanceConfig struct {
	MinUpdateIntervalMs     int     `yaml:"min_update_interval_ms"`
	MinAngleChangeDeg       float64 `yaml:"min_angle_change_deg"`
	HideDistanceMeters      float64 `yaml:"hide_distance_m"`
	ShowDistanceMargin      float64 `yaml:"show_distance_margin_m"`
	DistanceCheckIntervalMs int     `yaml:"distance_check_interval_ms"`
	WalkingSpeedMps         float64 `yaml:"walking_speed_mps"`
	AutoActivate            bool    `yaml:"auto_activate"`
	AutoActivateMeters      float64 `yaml:"auto_activate_m"`
}

// Default returns the built-in configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Guidance: GuidanceConfig{},
	}
}

// Load reads and parses the YAML file at path. Fields left out of the file
// keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	return cfg, nil
}

// ToGuidance converts the YAML tuning knobs into a guidance.Config. Zero
// values fall back to the guidance defaults.
func (g GuidanceConfig) ToGuidance() guidance.Config {
	cfg := guidance.Config{
		MinAngleChangeDeg:      g.MinAngleChangeDeg,
		HideDistanceMeters:     g.HideDistanceMeters,
		ShowDistanceMargin:     g.ShowDistanceMargin,
		AverageWalkingSpeedMps: g.WalkingSpeedMps,
		AutoActivate:           g.AutoActivate,
		AutoActivateMeters:     g.AutoActivateMeters,
	}
	if g.MinUpdateIntervalMs > 0 {
		cfg.MinUpdateInterval = time.Duration(g.MinUpdateIntervalMs) * time.Millisecond
	}
	if g.DistanceCheckIntervalMs > 0 {
		cfg.DistanceCheckInterval = time.Duration(g.DistanceCheckIntervalMs) * time.Millisecond
	}
	return cfg
}
