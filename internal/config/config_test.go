/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points the loader at a config file inside a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(EnvConfigPath, path)
	for _, k := range []string{EnvBrushSize, EnvBrushColor, EnvBackgroundColor, EnvWindowWidth, EnvWindowHeight, EnvLogLevel, EnvLogFormat, EnvLogSource, EnvLogFile} {
		t.Setenv(k, "")
	}
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Canvas.BrushSize != 10 || cfg.Canvas.BrushColor != "#000000" || cfg.Canvas.BackgroundColor != "#f6f6f6" {
		t.Fatalf("unexpected canvas defaults: %+v", cfg.Canvas)
	}
	if st := cfg.Canvas.InitialState(); st.BrushSize != 10 || st.Drawing {
		t.Fatalf("initial state = %+v", st)
	}
}

func TestLoadMergesFileAndResolvesNames(t *testing.T) {
	path := isolate(t)
	data := "canvas:\n  brush_size: 24\n  brush_color: tomato\nwindow:\n  width: 640\nlogging:\n  level: DEBUG\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Canvas.BrushSize != 24 || cfg.Canvas.BrushColor != "#ff6347" {
		t.Fatalf("canvas = %+v", cfg.Canvas)
	}
	if cfg.Canvas.BackgroundColor != "#f6f6f6" || cfg.Window.Height != 800 || cfg.Window.Width != 640 {
		t.Fatalf("defaults not kept for unset fields: %+v", cfg)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level = %q", cfg.Logging.Level)
	}
}

func TestEnvOverridesCanvas(t *testing.T) {
	isolate(t)
	t.Setenv(EnvBrushSize, "33")
	t.Setenv(EnvBackgroundColor, "#ABC")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Canvas.BrushSize != 33 || cfg.Canvas.BackgroundColor != "#aabbcc" {
		t.Fatalf("env overrides not applied: %+v", cfg.Canvas)
	}
	if env, ok := EnvOverrideFor("canvas.brush_size"); !ok || env != EnvBrushSize {
		t.Fatalf("EnvOverrideFor = %q %v", env, ok)
	}
	if _, ok := EnvOverrideFor("canvas.brush_color"); ok {
		t.Fatalf("brush_color is not overridden")
	}
}

func TestEnvOverridesLogging(t *testing.T) {
	isolate(t)
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvLogSource, "1")
	t.Setenv(EnvLogFile, "/tmp/skp.log")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Logging.Level != "error" || cfg.Logging.Format != "json" || !cfg.Logging.Source || cfg.Logging.File != "/tmp/skp.log" {
		t.Fatalf("logging = %+v", cfg.Logging)
	}
	if o := cfg.Logging.Options(); o.Level != "error" || o.Format != "json" || !o.AddSource || o.File != "/tmp/skp.log" {
		t.Fatalf("options = %+v", o)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(*AppConfig){
		"zero size":     func(c *AppConfig) { c.Canvas.BrushSize = 0 },
		"negative size": func(c *AppConfig) { c.Canvas.BrushSize = -3 },
		"bad color":     func(c *AppConfig) { c.Canvas.BrushColor = "ultraviolet" },
		"bad format":    func(c *AppConfig) { c.Logging.Format = "xml" },
		"tiny window":   func(c *AppConfig) { c.Window.Width = 10 },
	}
	for name, mutate := range cases {
		cfg := Defaults()
		mutate(&cfg)
		err := Validate(cfg)
		if !errors.Is(err, ErrInvalid) {
			t.Fatalf("%s: err = %v, want ErrInvalid", name, err)
		}
	}
	if err := Validate(Defaults()); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestLoadReportsInvalidEnvColor(t *testing.T) {
	isolate(t)
	t.Setenv(EnvBrushColor, "not-a-color")
	if _, err := Load(); !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := isolate(t)
	cfg := Defaults()
	cfg.Canvas.BrushSize = 18
	cfg.Window.Title = "Doodles"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(b), "brush_size: 18") {
		t.Fatalf("yaml missing brush size:\n%s", b)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Canvas.BrushSize != 18 || got.Window.Title != "Doodles" {
		t.Fatalf("round trip = %+v", got)
	}
}

func TestDescribeMarksEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv(EnvBrushColor, "red")
	t.Setenv(EnvLogLevel, "debug")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	b, err := Describe(cfg)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	out := string(b)
	for _, want := range []string{"#ff0000", "# canvas.brush_color: from SKP_BRUSH_COLOR", "# logging.level: from SKP_LOG_LEVEL"} {
		if !strings.Contains(out, want) {
			t.Fatalf("describe output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "canvas.brush_size") {
		t.Fatalf("brush_size is not overridden:\n%s", out)
	}
}

func TestWriteDefaults(t *testing.T) {
	path := isolate(t)
	got, err := WriteDefaults(false)
	if err != nil {
		t.Fatalf("WriteDefaults: %v", err)
	}
	if got != path {
		t.Fatalf("path = %q, want %q", got, path)
	}
	if _, err := WriteDefaults(false); !errors.Is(err, ErrExists) {
		t.Fatalf("second write err = %v, want ErrExists", err)
	}
	if _, err := WriteDefaults(true); err != nil {
		t.Fatalf("forced write: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Canvas.BrushSize != 10 || cfg.Canvas.BrushColor != "#000000" || cfg.Canvas.BackgroundColor != "#f6f6f6" {
		t.Fatalf("canvas = %+v", cfg.Canvas)
	}
}

func TestMalformedFileFallsBackToDefaults(t *testing.T) {
	path := isolate(t)
	if err := os.WriteFile(path, []byte("canvas: [unterminated"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Canvas.BrushSize != 10 {
		t.Fatalf("canvas = %+v", cfg.Canvas)
	}
}
