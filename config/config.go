// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config provides the configuration of a scene,
// which can be opened from TOML or YAML files.
package config

import (
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"cogentcore.org/scenegraph/base/errors"
	"cogentcore.org/scenegraph/base/logx"
	"cogentcore.org/scenegraph/math32"
	"cogentcore.org/scenegraph/slot"
)

// Config is the configuration of a scene.
type Config struct {

	// Epsilon is the smallest axis length accepted
	// when decomposing transforms.
	Epsilon float32 `toml:"epsilon" yaml:"epsilon" validate:"gt=0"`

	// Mass is the mass of new nodes.
	Mass float32 `toml:"mass" yaml:"mass" validate:"gte=0"`

	// LogLevel is the level of the default logger:
	// debug, info, warn or error.
	LogLevel string `toml:"log_level" yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error"`

	// Trace turns on the debug logging of slot notifications.
	Trace bool `toml:"trace" yaml:"trace"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Epsilon:  math32.DefaultEpsilon,
		LogLevel: "warn",
	}
}

var validate = validator.New()

// Validate returns an [errors.ErrValue] error
// describing the invalid fields, if any.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: invalid config: %w", errors.ErrValue, err)
	}
	return nil
}

// Apply sets the logging level, the slot tracing and the
// default logger according to the configuration.
func (c *Config) Apply() {
	if level, ok := logx.LevelFromString(c.LogLevel); ok {
		logx.UserLevel = level
	}
	slot.Trace = c.Trace
	logx.SetDefaultLogger()
	slog.Debug("config.Apply", "epsilon", c.Epsilon, "mass", c.Mass, "trace", c.Trace)
}
