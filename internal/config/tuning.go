// Package config loads analyzer tuning from JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fitmotion/repcore/internal/exercise"
	"github.com/fitmotion/repcore/internal/pose"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
const DefaultConfigPath = "config/tuning.defaults.json"

// TuningConfig is the root tuning document. All fields are optional;
// the Get* accessors and the *Config builders fall back to the
// production defaults for anything not specified, so partial configs
// are safe.
type TuningConfig struct {
	// Frame pipeline params
	SmoothingAlpha      *float64 `json:"smoothing_alpha,omitempty"`
	VisibilityThreshold *float64 `json:"visibility_threshold,omitempty"`
	TickInterval        *string  `json:"tick_interval,omitempty"` // duration string like "100ms"

	// Push-up params
	PushupMaxBodyTilt         *float64 `json:"pushup_max_body_tilt,omitempty"`
	PushupMaxSymmetryGap      *float64 `json:"pushup_max_symmetry_gap,omitempty"`
	PushupBentElbowMax        *float64 `json:"pushup_bent_elbow_max,omitempty"`
	PushupExtendedElbowMin    *float64 `json:"pushup_extended_elbow_min,omitempty"`
	PushupCalibrationElbowMin *float64 `json:"pushup_calibration_elbow_min,omitempty"`
	PushupMinShoulderDrop     *float64 `json:"pushup_min_shoulder_drop,omitempty"`
	PushupDownElbowMax        *float64 `json:"pushup_down_elbow_max,omitempty"`
	PushupUpElbowMin          *float64 `json:"pushup_up_elbow_min,omitempty"`

	// Squat params
	SquatMaxAngleDifference *float64 `json:"squat_max_angle_difference,omitempty"`
	SquatBentKneeMax        *float64 `json:"squat_bent_knee_max,omitempty"`
	SquatStandingKneeMin    *float64 `json:"squat_standing_knee_min,omitempty"`
	SquatMinHipDrop         *float64 `json:"squat_min_hip_drop,omitempty"`

	// Plank params
	PlankMaxBodyTilt     *float64 `json:"plank_max_body_tilt,omitempty"`
	PlankMaxVerticalDiff *float64 `json:"plank_max_vertical_diff,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with all fields unset.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
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

// Validate checks that the configured values are usable.
func (c *TuningConfig) Validate() error {
	if c.SmoothingAlpha != nil {
		if *c.SmoothingAlpha < 0 || *c.SmoothingAlpha >= 1 {
			return fmt.Errorf("smoothing_alpha must be in [0, 1), got %f", *c.SmoothingAlpha)
		}
	}
	if c.VisibilityThreshold != nil {
		if *c.VisibilityThreshold < 0 || *c.VisibilityThreshold > 1 {
			return fmt.Errorf("visibility_threshold must be in [0, 1], got %f", *c.VisibilityThreshold)
		}
	}
	if c.TickInterval != nil && *c.TickInterval != "" {
		if _, err := time.ParseDuration(*c.TickInterval); err != nil {
			return fmt.Errorf("invalid tick_interval %q: %w", *c.TickInterval, err)
		}
	}
	return nil
}

// GetSmoothingAlpha returns the smoothing alpha or its default.
func (c *TuningConfig) GetSmoothingAlpha() float64 {
	if c.SmoothingAlpha == nil {
		return pose.DefaultSmoothingAlpha
	}
	return *c.SmoothingAlpha
}

// GetTickInterval parses and returns the tick interval or its default.
func (c *TuningConfig) GetTickInterval() time.Duration {
	if c.TickInterval == nil || *c.TickInterval == "" {
		return 100 * time.Millisecond
	}
	d, err := time.ParseDuration(*c.TickInterval)
	if err != nil {
		return 100 * time.Millisecond
	}
	return d
}

// PushupConfig builds the push-up analyzer config, applying any
// overrides on top of the defaults.
func (c *TuningConfig) PushupConfig() exercise.PushupConfig {
	cfg := exercise.DefaultPushupConfig()
	if c.VisibilityThreshold != nil {
		cfg.VisibilityThreshold = *c.VisibilityThreshold
	}
	if c.PushupMaxBodyTilt != nil {
		cfg.MaxBodyTilt = *c.PushupMaxBodyTilt
	}
	if c.PushupMaxSymmetryGap != nil {
		cfg.MaxSymmetryGap = *c.PushupMaxSymmetryGap
	}
	if c.PushupBentElbowMax != nil {
		cfg.BentElbowMax = *c.PushupBentElbowMax
	}
	if c.PushupExtendedElbowMin != nil {
		cfg.ExtendedElbowMin = *c.PushupExtendedElbowMin
	}
	if c.PushupCalibrationElbowMin != nil {
		cfg.CalibrationElbowMin = *c.PushupCalibrationElbowMin
	}
	if c.PushupMinShoulderDrop != nil {
		cfg.MinShoulderDrop = *c.PushupMinShoulderDrop
	}
	if c.PushupDownElbowMax != nil {
		cfg.DownElbowMax = *c.PushupDownElbowMax
	}
	if c.PushupUpElbowMin != nil {
		cfg.UpElbowMin = *c.PushupUpElbowMin
	}
	return cfg
}

// SquatConfig builds the squat analyzer config, applying any overrides
// on top of the defaults.
func (c *TuningConfig) SquatConfig() exercise.SquatConfig {
	cfg := exercise.DefaultSquatConfig()
	if c.VisibilityThreshold != nil {
		cfg.VisibilityThreshold = *c.VisibilityThreshold
	}
	if c.SquatMaxAngleDifference != nil {
		cfg.MaxAngleDifference = *c.SquatMaxAngleDifference
	}
	if c.SquatBentKneeMax != nil {
		cfg.BentKneeMax = *c.SquatBentKneeMax
	}
	if c.SquatStandingKneeMin != nil {
		cfg.StandingKneeMin = *c.SquatStandingKneeMin
	}
	if c.SquatMinHipDrop != nil {
		cfg.MinHipDrop = *c.SquatMinHipDrop
	}
	return cfg
}

// PlankConfig builds the plank analyzer config, applying any overrides
// on top of the defaults.
func (c *TuningConfig) PlankConfig() exercise.PlankConfig {
	cfg := exercise.DefaultPlankConfig()
	if c.VisibilityThreshold != nil {
		cfg.VisibilityThreshold = *c.VisibilityThreshold
	}
	if c.PlankMaxBodyTilt != nil {
		cfg.MaxBodyTilt = *c.PlankMaxBodyTilt
	}
	if c.PlankMaxVerticalDiff != nil {
		cfg.MaxVerticalDiff = *c.PlankMaxVerticalDiff
	}
	return cfg
}
