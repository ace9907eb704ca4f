package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Provider  ProviderConfig  `toml:"provider"`
	Match     MatchConfig     `toml:"match"`
	Playback  PlaybackConfig  `toml:"playback"`
	Analytics AnalyticsConfig `toml:"analytics"`
	Database  DatabaseConfig  `toml:"database"`
	Log       LogConfig       `toml:"log"`
}

// ProviderConfig selects where open data is read from.
//
// When DataDir is set the local checkout is used and BaseURL is ignored.
type ProviderConfig struct {
	BaseURL           string  `toml:"base_url"`
	DataDir           string  `toml:"data_dir"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
}

// Timeout returns the HTTP client timeout.
func (p ProviderConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// MatchConfig identifies the match replayed by default.
type MatchConfig struct {
	CompetitionID int    `toml:"competition_id"`
	SeasonID      int    `toml:"season_id"`
	HomeTeam      string `toml:"home_team"`
	MatchID       int    `toml:"match_id"` // Overrides the home team search when non-zero
}

// PlaybackConfig contains the frame clock settings.
type PlaybackConfig struct {
	FPS       int     `toml:"fps"`
	HitRadius float64 `toml:"hit_radius"`
}

// Interval returns the time between two ticks.
func (p PlaybackConfig) Interval() time.Duration {
	if p.FPS <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(p.FPS)
}

// AnalyticsConfig contains the analytic overlay parameters.
type AnalyticsConfig struct {
	HeatmapCols      int     `toml:"heatmap_cols"`
	HeatmapRows      int     `toml:"heatmap_rows"`
	HeatmapLevels    int     `toml:"heatmap_levels"`
	NetworkThreshold float64 `toml:"network_threshold"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
	CacheEnabled bool   `toml:"cache_enabled"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadConfigOrDefault loads the file at path, or the embedded defaults when it does not exist.
func LoadConfigOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// Validate rejects settings the replay cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Provider.BaseURL == "" && c.Provider.DataDir == "":
		return fmt.Errorf("%w: provider needs base_url or data_dir", ErrInvalidConfig)
	case c.Provider.RequestsPerSecond <= 0:
		return fmt.Errorf("%w: provider.requests_per_second must be positive", ErrInvalidConfig)
	case c.Playback.FPS <= 0:
		return fmt.Errorf("%w: playback.fps must be positive", ErrInvalidConfig)
	case c.Playback.HitRadius <= 0:
		return fmt.Errorf("%w: playback.hit_radius must be positive", ErrInvalidConfig)
	case c.Analytics.HeatmapCols < 2 || c.Analytics.HeatmapRows < 2:
		return fmt.Errorf("%w: heatmap grid must be at least 2x2", ErrInvalidConfig)
	case c.Analytics.HeatmapLevels < 2:
		return fmt.Errorf("%w: analytics.heatmap_levels must be at least 2", ErrInvalidConfig)
	case c.Analytics.NetworkThreshold <= 0:
		return fmt.Errorf("%w: analytics.network_threshold must be positive", ErrInvalidConfig)
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
