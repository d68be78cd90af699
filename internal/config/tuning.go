package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
const DefaultConfigPath = "config/tuning.defaults.json"

// TuningConfig holds the planner-side knobs for candidate composition and
// selection. Fields are pointers so a partial JSON file only overrides what
// it names; the Get* methods supply defaults for the rest.
type TuningConfig struct {
	// Composition
	TimeResolution      *float64 `json:"time_resolution,omitempty"` // seconds between trajectory points
	RelativeTime        *float64 `json:"relative_time,omitempty"`   // time of the first trajectory point
	MaxTrajectoryPoints *int     `json:"max_trajectory_points,omitempty"`
	LatencyBudget       *string  `json:"latency_budget,omitempty"` // duration string like "20ms"

	// Geometry
	StartFromTolerance   *float64 `json:"start_from_tolerance,omitempty"` // metres
	DefaultLaneHalfWidth *float64 `json:"default_lane_half_width,omitempty"`

	// Selection
	SelectorConcurrency *int `json:"selector_concurrency,omitempty"`

	// Diagnostics
	DiagnosticsDBPath *string `json:"diagnostics_db_path,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields nil, so every
// getter returns its default.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// DefaultTuningConfig returns a TuningConfig with every field populated
// from the built-in defaults.
func DefaultTuningConfig() *TuningConfig {
	empty := EmptyTuningConfig()
	return &TuningConfig{
		TimeResolution:       ptrFloat64(empty.GetTimeResolution()),
		RelativeTime:         ptrFloat64(empty.GetRelativeTime()),
		MaxTrajectoryPoints:  ptrInt(empty.GetMaxTrajectoryPoints()),
		LatencyBudget:        ptrString(empty.GetLatencyBudget().String()),
		StartFromTolerance:   ptrFloat64(empty.GetStartFromTolerance()),
		DefaultLaneHalfWidth: ptrFloat64(empty.GetDefaultLaneHalfWidth()),
		SelectorConcurrency:  ptrInt(empty.GetSelectorConcurrency()),
		DiagnosticsDBPath:    ptrString(""),
	}
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file must have a .json extension and be under 1MB.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath, searching the current
// directory and its parents. Panics if the file cannot be loaded; intended
// for test setup.
func MustLoadDefaultConfig() *TuningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	if c.TimeResolution != nil && !(*c.TimeResolution > 0) {
		return fmt.Errorf("time_resolution must be positive, got %f", *c.TimeResolution)
	}

	if c.MaxTrajectoryPoints != nil && *c.MaxTrajectoryPoints < 0 {
		return fmt.Errorf("max_trajectory_points must be non-negative, got %d", *c.MaxTrajectoryPoints)
	}

	if c.LatencyBudget != nil && *c.LatencyBudget != "" {
		if _, err := time.ParseDuration(*c.LatencyBudget); err != nil {
			return fmt.Errorf("invalid latency_budget '%s': %w", *c.LatencyBudget, err)
		}
	}

	if c.StartFromTolerance != nil && *c.StartFromTolerance < 0 {
		return fmt.Errorf("start_from_tolerance must be non-negative, got %f", *c.StartFromTolerance)
	}

	if c.DefaultLaneHalfWidth != nil && *c.DefaultLaneHalfWidth <= 0 {
		return fmt.Errorf("default_lane_half_width must be positive, got %f", *c.DefaultLaneHalfWidth)
	}

	if c.SelectorConcurrency != nil && *c.SelectorConcurrency < 1 {
		return fmt.Errorf("selector_concurrency must be at least 1, got %d", *c.SelectorConcurrency)
	}

	return nil
}

// GetTimeResolution returns the time_resolution value or the default.
func (c *TuningConfig) GetTimeResolution() float64 {
	if c.TimeResolution == nil {
		return 0.1
	}
	return *c.TimeResolution
}

// GetRelativeTime returns the relative_time value or the default.
func (c *TuningConfig) GetRelativeTime() float64 {
	if c.RelativeTime == nil {
		return 0
	}
	return *c.RelativeTime
}

// GetMaxTrajectoryPoints returns the max_trajectory_points value or the default.
// Zero disables the cap.
func (c *TuningConfig) GetMaxTrajectoryPoints() int {
	if c.MaxTrajectoryPoints == nil {
		return 2000
	}
	return *c.MaxTrajectoryPoints
}

// GetLatencyBudget parses and returns the LatencyBudget as a time.Duration.
func (c *TuningConfig) GetLatencyBudget() time.Duration {
	if c.LatencyBudget == nil || *c.LatencyBudget == "" {
		return 20 * time.Millisecond // default
	}
	d, err := time.ParseDuration(*c.LatencyBudget)
	if err != nil {
		return 20 * time.Millisecond // default on parse error
	}
	return d
}

// GetStartFromTolerance returns the start_from_tolerance value or the default.
func (c *TuningConfig) GetStartFromTolerance() float64 {
	if c.StartFromTolerance == nil {
		return 0.1
	}
	return *c.StartFromTolerance
}

// GetDefaultLaneHalfWidth returns the default_lane_half_width value or the default.
func (c *TuningConfig) GetDefaultLaneHalfWidth() float64 {
	if c.DefaultLaneHalfWidth == nil {
		return 1.75
	}
	return *c.DefaultLaneHalfWidth
}

// GetSelectorConcurrency returns the selector_concurrency value or the default.
func (c *TuningConfig) GetSelectorConcurrency() int {
	if c.SelectorConcurrency == nil {
		return 4
	}
	return *c.SelectorConcurrency
}

// GetDiagnosticsDBPath returns the diagnostics_db_path value; empty disables
// the SQLite sink.
func (c *TuningConfig) GetDiagnosticsDBPath() string {
	if c.DiagnosticsDBPath == nil {
		return ""
	}
	return *c.DiagnosticsDBPath
}
