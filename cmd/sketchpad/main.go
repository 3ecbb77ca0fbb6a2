/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"log/slog"
	"os"

	"sketchpad/internal/config"
	"sketchpad/internal/crash"
	applog "sketchpad/internal/log"
	"sketchpad/internal/ui"
	"sketchpad/internal/version"
)

func usage() {
	fmt.Println("Sketchpad: freehand drawing canvas")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  sketchpad version|-v|--version    Show version")
	fmt.Println("  sketchpad config                  Print the effective configuration as YAML")
	fmt.Println("  sketchpad config init [--force]   Write the default configuration file")
	fmt.Println("  sketchpad ui                      Launch the drawing window (build with -tags fyne)")
}

func main() {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	defer crash.Recover(nil)

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("Sketchpad")
			fmt.Println(version.String())
			return
		case "config":
			if len(args) > 2 && args[2] == "init" {
				force := len(args) > 3 && args[3] == "--force"
				path, err := config.WriteDefaults(force)
				if err != nil {
					l.Error("write config failed", slog.String("path", path), slog.Any("err", err))
					fmt.Println("Error:", err)
					os.Exit(1)
				}
				fmt.Println("Wrote", path)
				return
			}
			cfg := mustLoad(l)
			b, err := config.Describe(cfg)
			if err != nil {
				l.Error("marshal config failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if p, err := config.ConfigPath(); err == nil {
				fmt.Printf("# %s\n", p)
			}
			os.Stdout.Write(b)
			return
		case "ui":
			cfg := mustLoad(l)
			if err := ui.Run(cfg); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		}
	}

	usage()
}

// mustLoad returns the effective configuration or exits.
func mustLoad(l *slog.Logger) config.AppConfig {
	cfg, err := config.Load()
	if err != nil {
		l.Error("load config failed", slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	applog.Init(cfg.Logging.Options())
	return cfg
}
