// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads wnbuild settings from an optional YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// ErrConfig indicates that configuration could not be loaded.
var ErrConfig = errors.New("config")

// Config holds wnbuild settings. Command-line flags take precedence over
// every field.
type Config struct {
	// SearchDir is the WordNet dictionary directory. When empty the default
	// locations are searched.
	SearchDir string `yaml:"search_dir" env:"WNSEARCHDIR"`

	// Table is the path of the table store to write.
	Table string `yaml:"table" env:"WNBUILD_TABLE"`

	// Blob is the path of the blob store to write.
	Blob string `yaml:"blob" env:"WNBUILD_BLOB"`

	Log LogConfig `yaml:"log"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"WNBUILD_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"WNBUILD_LOG_FORMAT" env-default:"text"`
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format %q", c.Log.Format)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log level %q", c.Log.Level)
	}
	return nil
}

// Load reads configuration from the YAML file at path and the environment.
// Priority: env > YAML > defaults. An empty path loads from the environment
// only.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: file %s: %w", ErrConfig, path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", ErrConfig, path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%w: read env: %w", ErrConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: validate: %w", ErrConfig, err)
	}

	return &cfg, nil
}
