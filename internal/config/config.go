/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package config loads the user configuration: a YAML file in the user
// config directory, overridden by SKP_* environment variables and checked
// against an embedded JSON schema.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	applog "sketchpad/internal/log"
	"sketchpad/internal/model"
	"sketchpad/internal/palette"
)

//go:embed schema.json
var schemaJSON string

// CanvasConfig seeds the drawing state of a new session.
type CanvasConfig struct {
	BrushSize       float64 `yaml:"brush_size" json:"brush_size"`
	BrushColor      string  `yaml:"brush_color" json:"brush_color"`
	BackgroundColor string  `yaml:"background_color" json:"background_color"`
}

type WindowConfig struct {
	Title  string `yaml:"title" json:"title"`
	Width  int    `yaml:"width" json:"width"`
	Height int    `yaml:"height" json:"height"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
	Source bool   `yaml:"source" json:"source"`
	File   string `yaml:"file" json:"file"`
}

// Options converts the logging section for applog.Init.
func (c LoggingConfig) Options() applog.Options {
	return applog.Options{Level: c.Level, Format: c.Format, AddSource: c.Source, File: c.File}
}

// AppConfig is the persisted configuration. Bump ConfigVersion on
// incompatible changes.
type AppConfig struct {
	ConfigVersion int           `yaml:"config_version" json:"config_version"`
	Canvas        CanvasConfig  `yaml:"canvas" json:"canvas"`
	Window        WindowConfig  `yaml:"window" json:"window"`
	Logging       LoggingConfig `yaml:"logging" json:"logging"`
}

// Defaults returns the built-in configuration.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Canvas: CanvasConfig{
			BrushSize:       model.DefaultBrushSize,
			BrushColor:      model.DefaultBrushColor,
			BackgroundColor: model.DefaultBackgroundColor,
		},
		Window:  WindowConfig{Title: "Sketchpad", Width: 1200, Height: 800},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvConfigPath      = "SKP_CONFIG"
	EnvBrushSize       = "SKP_BRUSH_SIZE"
	EnvBrushColor      = "SKP_BRUSH_COLOR"
	EnvBackgroundColor = "SKP_BACKGROUND_COLOR"
	EnvWindowWidth     = "SKP_WINDOW_WIDTH"
	EnvWindowHeight    = "SKP_WINDOW_HEIGHT"
	EnvLogLevel        = applog.EnvLevel
	EnvLogFormat       = applog.EnvFormat
	EnvLogSource       = applog.EnvSource
	EnvLogFile         = applog.EnvFile
)

// ErrInvalid wraps schema validation failures.
var ErrInvalid = errors.New("config: invalid")

// ErrExists is returned by WriteDefaults when a config file is already present.
var ErrExists = errors.New("config: file exists")

// ConfigPath returns the config file location: $SKP_CONFIG, or
// config.yaml under the OS user config directory.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "sketchpad", "config.yaml"), nil
}

// Load reads the config file if present, merges it over the defaults,
// applies environment overrides, normalizes colors and validates the result.
// A missing or unreadable file is not an error; an invalid result is.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			applog.WithComponent("config").Warn("ignoring malformed config file",
				slog.String("path", path), slog.Any("err", err))
		} else {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	normalize(&cfg)
	return cfg, Validate(cfg)
}

// Save writes cfg as YAML to ConfigPath.
func Save(cfg AppConfig) error {
	if err := Validate(cfg); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Marshal renders cfg as YAML.
func Marshal(cfg AppConfig) ([]byte, error) { return yaml.Marshal(cfg) }

// Validate checks cfg against the embedded schema.
func Validate(cfg AppConfig) error {
	res, err := gojsonschema.Validate(gojsonschema.NewStringLoader(schemaJSON), gojsonschema.NewGoLoader(cfg))
	if err != nil {
		return fmt.Errorf("config: run schema: %w", err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.Field()+": "+e.Description())
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// InitialState returns the drawing state a session starts with.
func (c CanvasConfig) InitialState() model.Snapshot {
	return model.Snapshot{
		BrushSize:       c.BrushSize,
		BrushColor:      c.BrushColor,
		BackgroundColor: c.BackgroundColor,
		Tool:            model.Brush,
	}
}

// normalize resolves color names to hex. Unresolvable values are left as-is
// so that Validate reports them.
func normalize(cfg *AppConfig) {
	for _, v := range []*string{&cfg.Canvas.BrushColor, &cfg.Canvas.BackgroundColor} {
		if hex, err := palette.Resolve(*v); err == nil {
			*v = hex
		}
	}
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
}

func mergeInto(dst, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.Canvas.BrushSize != 0 {
		dst.Canvas.BrushSize = src.Canvas.BrushSize
	}
	if s := strings.TrimSpace(src.Canvas.BrushColor); s != "" {
		dst.Canvas.BrushColor = s
	}
	if s := strings.TrimSpace(src.Canvas.BackgroundColor); s != "" {
		dst.Canvas.BackgroundColor = s
	}
	if s := strings.TrimSpace(src.Window.Title); s != "" {
		dst.Window.Title = s
	}
	if src.Window.Width != 0 {
		dst.Window.Width = src.Window.Width
	}
	if src.Window.Height != 0 {
		dst.Window.Height = src.Window.Height
	}
	if s := strings.TrimSpace(src.Logging.Level); s != "" {
		dst.Logging.Level = s
	}
	if s := strings.TrimSpace(src.Logging.Format); s != "" {
		dst.Logging.Format = s
	}
	dst.Logging.Source = src.Logging.Source
	if s := strings.TrimSpace(src.Logging.File); s != "" {
		dst.Logging.File = s
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v, ok := lookup(EnvBrushSize); ok {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Canvas.BrushSize = n
		}
	}
	if v, ok := lookup(EnvBrushColor); ok {
		cfg.Canvas.BrushColor = v
	}
	if v, ok := lookup(EnvBackgroundColor); ok {
		cfg.Canvas.BackgroundColor = v
	}
	if v, ok := lookup(EnvWindowWidth); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Window.Width = n
		}
	}
	if v, ok := lookup(EnvWindowHeight); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Window.Height = n
		}
	}
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.Logging.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok {
		cfg.Logging.Format = v
	}
	if v, ok := lookup(EnvLogSource); ok {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v, ok := lookup(EnvLogFile); ok {
		cfg.Logging.File = v
	}
}

func lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

// envKeys maps dotted config keys to the variables that override them.
var envKeys = []struct{ key, env string }{
	{"canvas.brush_size", EnvBrushSize},
	{"canvas.brush_color", EnvBrushColor},
	{"canvas.background_color", EnvBackgroundColor},
	{"window.width", EnvWindowWidth},
	{"window.height", EnvWindowHeight},
	{"logging.level", EnvLogLevel},
	{"logging.format", EnvLogFormat},
	{"logging.source", EnvLogSource},
	{"logging.file", EnvLogFile},
}

// EnvOverrideFor returns the variable overriding a dotted config key, if set.
func EnvOverrideFor(key string) (string, bool) {
	for _, k := range envKeys {
		if k.key != key {
			continue
		}
		if _, ok := lookup(k.env); !ok {
			return "", false
		}
		return k.env, true
	}
	return "", false
}

// Describe renders cfg as YAML followed by one comment line per key whose
// value currently comes from the environment.
func Describe(cfg AppConfig) ([]byte, error) {
	data, err := Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	b.Write(data)
	for _, k := range envKeys {
		if env, ok := EnvOverrideFor(k.key); ok {
			fmt.Fprintf(&b, "# %s: from %s\n", k.key, env)
		}
	}
	return []byte(b.String()), nil
}

// WriteDefaults saves the built-in configuration to ConfigPath and returns the
// path. An existing file is kept unless force is set.
func WriteDefaults(force bool) (string, error) {
	path, err := ConfigPath()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err == nil && !force {
		return path, fmt.Errorf("%w: %s", ErrExists, path)
	}
	if err := Save(Defaults()); err != nil {
		return path, err
	}
	return path, nil
}
