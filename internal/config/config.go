// Copyright 2018 Google LLC
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

// Package config holds the render presets of the dcmrender command.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatPNG = "png"
	FormatBMP = "bmp"
)

// Config is a render preset.
type Config struct {
	LogLevel     string        `yaml:"log_level"`
	Format       string        `yaml:"format"`        // png, bmp
	Scale        float64       `yaml:"scale"`
	OverlayColor string        `yaml:"overlay_color"` // #RRGGBB
	Window       *WindowConfig `yaml:"window,omitempty"`
}

// WindowConfig overrides the VOI window of grayscale images.
type WindowConfig struct {
	Center float64 `yaml:"center"`
	Width  float64 `yaml:"width"`
}

// Default returns the preset used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel:     "info",
		Format:       FormatPNG,
		Scale:        1,
		OverlayColor: "#FF00FF",
	}
}

// Load reads the YAML preset at path on top of the defaults, applies DCMRENDER_* environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.LogLevel = getEnv("DCMRENDER_LOG_LEVEL", cfg.LogLevel)
	cfg.Format = getEnv("DCMRENDER_FORMAT", cfg.Format)
	cfg.Scale = getFloatEnv("DCMRENDER_SCALE", cfg.Scale)
	cfg.OverlayColor = getEnv("DCMRENDER_OVERLAY_COLOR", cfg.OverlayColor)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks every field of cfg.
func Validate(cfg *Config) error {
	var errs []error
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	switch strings.ToLower(cfg.Format) {
	case FormatPNG, FormatBMP:
	default:
		errs = append(errs, fmt.Errorf("format: unknown output format %q", cfg.Format))
	}
	if !(cfg.Scale > 0) || math.IsInf(cfg.Scale, 0) {
		errs = append(errs, fmt.Errorf("scale: must be greater than 0, got %v", cfg.Scale))
	}
	if _, err := ParseColor(cfg.OverlayColor); err != nil {
		errs = append(errs, fmt.Errorf("overlay_color: %w", err))
	}
	if cfg.Window != nil && cfg.Window.Width < 1 {
		errs = append(errs, fmt.Errorf("window.width: must be at least 1, got %v", cfg.Window.Width))
	}
	return errors.Join(errs...)
}

// ParseColor parses an opaque color written as #RRGGBB.
func ParseColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !ok || len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q is not of the form #RRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
