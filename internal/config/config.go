// Package config holds the runtime configuration assembled from flags and environment variables.
package config

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/idelchi/gogen/pkg/validator"
)

// Config is populated by viper from flags and CRYPTOBRO_* variables.
type Config struct {
	// Show prints the configuration and exits.
	Show bool `label:"--show" mapstructure:"show"`

	// Namespaces
	Data      string `label:"--data"          mapstructure:"data"          validate:"required"`
	Encrypted string `label:"--encrypted-dir" mapstructure:"encrypted-dir" validate:"required"`
	Decrypted string `label:"--decrypted-dir" mapstructure:"decrypted-dir" validate:"required"`

	// Candidate filtering
	Include     []string `label:"--include"      mapstructure:"include"      validate:"dive,glob"`
	Exclude     []string `label:"--exclude"      mapstructure:"exclude"      validate:"dive,glob"`
	IncludeFrom string   `label:"--include-from" mapstructure:"include-from"`
	ExcludeFrom string   `label:"--exclude-from" mapstructure:"exclude-from"`

	// Output
	LogLevel string `label:"--log-level" mapstructure:"log-level" validate:"oneof=debug info warn error"`
	Quiet    bool   `label:"--quiet"     mapstructure:"quiet"`
	NoColor  bool   `label:"--no-color"  mapstructure:"no-color"`

	// Kind preselects a secret generator and skips the main menu (0 = none).
	Kind int `label:"--kind" mapstructure:"kind" validate:"min=0,max=7"`
}

// Validate validates config against the struct tags.
// It satisfies cobraext.Validator together with Display.
func (c *Config) Validate(config any) error {
	validator := validator.NewValidator()

	if err := registerGlob(validator); err != nil {
		return err
	}

	registerLabels(validator)

	if errs := validator.Validate(config); len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Display reports whether the configuration should be printed instead of running.
func (c *Config) Display() bool {
	return c.Show
}

// Level returns the logrus level implied by LogLevel and Quiet.
func (c *Config) Level() logrus.Level {
	if c.Quiet {
		return logrus.ErrorLevel
	}

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.WarnLevel
	}

	return level
}
