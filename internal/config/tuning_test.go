package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultTuningConfig(t *testing.T) {
	cfg := DefaultTuningConfig()

	if cfg.TimeResolution == nil || *cfg.TimeResolution != 0.1 {
		t.Errorf("Expected TimeResolution 0.1, got %v", cfg.TimeResolution)
	}
	if cfg.LatencyBudget == nil || *cfg.LatencyBudget != "20ms" {
		t.Errorf("Expected LatencyBudget '20ms', got %v", cfg.LatencyBudget)
	}
	if cfg.MaxTrajectoryPoints == nil || *cfg.MaxTrajectoryPoints != 2000 {
		t.Errorf("Expected MaxTrajectoryPoints 2000, got %v", cfg.MaxTrajectoryPoints)
	}

	if cfg.GetStartFromTolerance() != 0.1 {
		t.Errorf("GetStartFromTolerance() = %f, want 0.1", cfg.GetStartFromTolerance())
	}
	if cfg.GetDefaultLaneHalfWidth() != 1.75 {
		t.Errorf("GetDefaultLaneHalfWidth() = %f, want 1.75", cfg.GetDefaultLaneHalfWidth())
	}
	if cfg.GetSelectorConcurrency() != 4 {
		t.Errorf("GetSelectorConcurrency() = %d, want 4", cfg.GetSelectorConcurrency())
	}
	if cfg.GetDiagnosticsDBPath() != "" {
		t.Errorf("GetDiagnosticsDBPath() = %q, want empty", cfg.GetDiagnosticsDBPath())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultTuningConfig() should validate, got %v", err)
	}
}

func TestMustLoadDefaultConfig(t *testing.T) {
	cfg := MustLoadDefaultConfig()
	defaults := DefaultTuningConfig()

	if cfg.GetTimeResolution() != defaults.GetTimeResolution() {
		t.Errorf("defaults file time_resolution = %f, built-in %f", cfg.GetTimeResolution(), defaults.GetTimeResolution())
	}
	if cfg.GetLatencyBudget() != defaults.GetLatencyBudget() {
		t.Errorf("defaults file latency_budget = %v, built-in %v", cfg.GetLatencyBudget(), defaults.GetLatencyBudget())
	}
	if cfg.GetSelectorConcurrency() != defaults.GetSelectorConcurrency() {
		t.Errorf("defaults file selector_concurrency = %d, built-in %d", cfg.GetSelectorConcurrency(), defaults.GetSelectorConcurrency())
	}
}

func TestLoadTuningConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.json")

	testJSON := `{
  "time_resolution": 0.05,
  "latency_budget": "5ms",
  "start_from_tolerance": 0.25
}`
	if err := os.WriteFile(configPath, []byte(testJSON), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadTuningConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if got := cfg.GetTimeResolution(); got != 0.05 {
		t.Errorf("GetTimeResolution() = %f, want 0.05", got)
	}
	if got := cfg.GetLatencyBudget(); got != 5*time.Millisecond {
		t.Errorf("GetLatencyBudget() = %v, want 5ms", got)
	}
	if got := cfg.GetStartFromTolerance(); got != 0.25 {
		t.Errorf("GetStartFromTolerance() = %f, want 0.25", got)
	}
	// Omitted fields fall back to defaults.
	if got := cfg.GetMaxTrajectoryPoints(); got != 2000 {
		t.Errorf("GetMaxTrajectoryPoints() = %d, want default 2000", got)
	}
}

func TestLoadTuningConfigErrors(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := LoadTuningConfig("/nonexistent/path/to/config.json"); err == nil {
		t.Error("Expected error when loading missing file, got nil")
	}

	yamlPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(yamlPath, []byte("time_resolution: 0.1"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	if _, err := LoadTuningConfig(yamlPath); err == nil {
		t.Error("Expected error for non-.json extension, got nil")
	}

	invalidPath := filepath.Join(tmpDir, "invalid.json")
	if err := os.WriteFile(invalidPath, []byte(`{"time_resolution": "fast"`), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	if _, err := LoadTuningConfig(invalidPath); err == nil {
		t.Error("Expected error when loading invalid JSON, got nil")
	}

	badValuePath := filepath.Join(tmpDir, "bad_value.json")
	if err := os.WriteFile(badValuePath, []byte(`{"time_resolution": -1}`), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	if _, err := LoadTuningConfig(badValuePath); err == nil {
		t.Error("Expected validation error for negative time_resolution, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *TuningConfig
		wantErr bool
	}{
		{name: "valid config", cfg: DefaultTuningConfig()},
		{name: "empty config is valid", cfg: &TuningConfig{}},
		{name: "zero time resolution", cfg: &TuningConfig{TimeResolution: ptrFloat64(0)}, wantErr: true},
		{name: "negative max points", cfg: &TuningConfig{MaxTrajectoryPoints: ptrInt(-1)}, wantErr: true},
		{name: "zero max points disables cap", cfg: &TuningConfig{MaxTrajectoryPoints: ptrInt(0)}},
		{name: "invalid latency budget", cfg: &TuningConfig{LatencyBudget: ptrString("soon")}, wantErr: true},
		{name: "negative tolerance", cfg: &TuningConfig{StartFromTolerance: ptrFloat64(-0.01)}, wantErr: true},
		{name: "zero lane width", cfg: &TuningConfig{DefaultLaneHalfWidth: ptrFloat64(0)}, wantErr: true},
		{name: "zero concurrency", cfg: &TuningConfig{SelectorConcurrency: ptrInt(0)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetLatencyBudget(t *testing.T) {
	tests := []struct {
		name string
		cfg  *TuningConfig
		want time.Duration
	}{
		{name: "nil uses default", cfg: &TuningConfig{}, want: 20 * time.Millisecond},
		{name: "empty uses default", cfg: &TuningConfig{LatencyBudget: ptrString("")}, want: 20 * time.Millisecond},
		{name: "parse error uses default", cfg: &TuningConfig{LatencyBudget: ptrString("bogus")}, want: 20 * time.Millisecond},
		{name: "explicit", cfg: &TuningConfig{LatencyBudget: ptrString("35ms")}, want: 35 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.GetLatencyBudget(); got != tt.want {
				t.Errorf("GetLatencyBudget() = %v, want %v", got, tt.want)
			}
		})
	}
}
