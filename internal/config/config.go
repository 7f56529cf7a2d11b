// Package config loads application settings from a config file,
// SYLLABUS_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config is the full application configuration.
type Config struct {
	DB          DBConfig          `mapstructure:"db"`
	Catalog     CatalogConfig     `mapstructure:"catalog"`
	Report      ReportConfig      `mapstructure:"report"`
	UI          UIConfig          `mapstructure:"ui"`
	Interaction InteractionConfig `mapstructure:"interaction"`
	Log         LogConfig         `mapstructure:"log"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type CatalogConfig struct {
	// Path to a JSON or YAML catalog. Empty selects the built-in catalog.
	Path string `mapstructure:"path"`
}

type ReportConfig struct {
	Endpoint     string        `mapstructure:"endpoint"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Offline      bool          `mapstructure:"offline"`
	FixtureDelay time.Duration `mapstructure:"fixture_delay"`
}

type UIConfig struct {
	Input         string        `mapstructure:"input"`  // auto, pointer or touch
	Layout        string        `mapstructure:"layout"` // auto, wide or compact
	FrameInterval time.Duration `mapstructure:"frame_interval"`
	// WheelDelta is the synthetic deltaY of one terminal wheel notch.
	WheelDelta float64 `mapstructure:"wheel_delta"`
}

type InteractionConfig struct {
	WheelCooldown    time.Duration `mapstructure:"wheel_cooldown"`
	WheelNoiseFloor  float64       `mapstructure:"wheel_noise_floor"`
	SwipeThreshold   float64       `mapstructure:"swipe_threshold"`
	UnfocusDelay     time.Duration `mapstructure:"unfocus_delay"`
	FeedbackLifetime time.Duration `mapstructure:"feedback_lifetime"`
	FeedbackCap      int           `mapstructure:"feedback_cap"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	// File receives JSON logs. Empty disables logging.
	File string `mapstructure:"file"`
}

var (
	validInputs  = map[string]bool{"auto": true, "pointer": true, "touch": true}
	validLayouts = map[string]bool{"auto": true, "wide": true, "compact": true}
	validLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
)

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error

	if !validInputs[c.UI.Input] {
		errs = append(errs, fmt.Errorf("ui.input: invalid value %q (want auto, pointer or touch)", c.UI.Input))
	}
	if !validLayouts[c.UI.Layout] {
		errs = append(errs, fmt.Errorf("ui.layout: invalid value %q (want auto, wide or compact)", c.UI.Layout))
	}
	if c.UI.FrameInterval <= 0 {
		errs = append(errs, fmt.Errorf("ui.frame_interval must be positive"))
	}
	if c.UI.WheelDelta <= 0 {
		errs = append(errs, fmt.Errorf("ui.wheel_delta must be positive"))
	}
	if c.Report.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("report.timeout must be positive"))
	}
	if c.Report.FixtureDelay < 0 {
		errs = append(errs, fmt.Errorf("report.fixture_delay must not be negative"))
	}
	if c.Interaction.WheelCooldown < 0 {
		errs = append(errs, fmt.Errorf("interaction.wheel_cooldown must not be negative"))
	}
	if c.Interaction.WheelNoiseFloor < 0 {
		errs = append(errs, fmt.Errorf("interaction.wheel_noise_floor must not be negative"))
	}
	if c.Interaction.SwipeThreshold <= 0 {
		errs = append(errs, fmt.Errorf("interaction.swipe_threshold must be positive"))
	}
	if c.Interaction.UnfocusDelay <= 0 {
		errs = append(errs, fmt.Errorf("interaction.unfocus_delay must be positive"))
	}
	if c.Interaction.FeedbackLifetime <= 0 {
		errs = append(errs, fmt.Errorf("interaction.feedback_lifetime must be positive"))
	}
	if c.Interaction.FeedbackCap < 1 {
		errs = append(errs, fmt.Errorf("interaction.feedback_cap must be at least 1"))
	}
	if !validLevels[c.Log.Level] {
		errs = append(errs, fmt.Errorf("log.level: invalid value %q", c.Log.Level))
	}

	return errors.Join(errs...)
}
