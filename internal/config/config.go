// Package config handles procscape configuration loading and management.
package config

import (
	"time"

	"github.com/Faultbox/procscape/internal/obstacle"
)

// Config holds all generator settings.
type Config struct {
	Terrain   TerrainConfig  `yaml:"terrain"`
	Noise     NoiseConfig    `yaml:"noise"`
	Voronoi   VoronoiConfig  `yaml:"voronoi"`
	Obstacles ObstacleConfig `yaml:"obstacles"`
	Game      GameConfig     `yaml:"game"`
	Store     StoreConfig    `yaml:"store"`
	Logging   LoggingConfig  `yaml:"logging"`
}

// TerrainConfig holds height field settings.
type TerrainConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Seed       int64   `yaml:"seed"`
	Amplitude  float32 `yaml:"amplitude"`
	Wavelength float32 `yaml:"wavelength"`
	Strategy   string  `yaml:"strategy"`   // sine, random, perlin, fault, particles
	Iterations int     `yaml:"iterations"` // fault lines or particles
	Smooth     float32 `yaml:"smooth"`     // 0 disables the smoothing pass
}

// NoiseConfig holds fractal noise settings.
type NoiseConfig struct {
	Backend string  `yaml:"backend"` // perlin, simplex, classic
	Scale   float32 `yaml:"scale"`
	Octaves int     `yaml:"octaves"`
}

// VoronoiConfig holds region partition settings.
type VoronoiConfig struct {
	Regions    int     `yaml:"regions"`
	RegionSize float32 `yaml:"region_size"`
}

// ObstacleConfig holds the per-colour obstacle rules.
type ObstacleConfig struct {
	Enabled bool                  `yaml:"enabled"`
	Rules   []obstacle.RegionRule `yaml:"rules"`
}

// GameConfig holds the target-region game settings.
type GameConfig struct {
	RoundTime time.Duration `yaml:"round_time"`
	MaxClimb  float32       `yaml:"max_climb"`
}

// StoreConfig holds the scene database location.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Terrain: TerrainConfig{
			Width:      128,
			Height:     128,
			Seed:       1,
			Amplitude:  3,
			Wavelength: 1,
			Strategy:   "perlin",
			Iterations: 200,
		},
		Noise: NoiseConfig{
			Backend: "perlin",
			Scale:   10,
			Octaves: 5,
		},
		Voronoi: VoronoiConfig{
			Regions:    5,
			RegionSize: 30,
		},
		Obstacles: ObstacleConfig{
			Enabled: true,
			Rules:   obstacle.DefaultRules(),
		},
		Game: GameConfig{
			RoundTime: 10 * time.Second,
			MaxClimb:  1.0,
		},
		Store: StoreConfig{
			Path: "procscape.db",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
