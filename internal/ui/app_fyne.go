//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"sketchpad/internal/app"
	"sketchpad/internal/config"
	"sketchpad/internal/crash"
	applog "sketchpad/internal/log"
	"sketchpad/internal/model"
	"sketchpad/internal/surface"
)

// Run opens the drawing window and blocks until it is closed.
func Run(cfg config.AppConfig) error {
	l := applog.WithComponent("ui")

	var sess *app.Session
	defer crash.Recover(func() model.Snapshot {
		if sess == nil {
			return cfg.Canvas.InitialState()
		}
		return sess.Controller.State()
	})

	a := fyneapp.NewWithID("io.sketchpad")
	w := a.NewWindow(cfg.Window.Title)
	w.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))

	raster := surface.NewRaster(cfg.Window.Width, cfg.Window.Height)
	sh := newShell(cfg.Canvas, raster)
	w.SetContent(sh.content)

	var err error
	sess, err = sh.start(cfg.Canvas, app.Viewport{
		W: float64(cfg.Window.Width),
		H: float64(cfg.Window.Height),
	})
	if err != nil {
		return err
	}

	l.Info("window open", slog.String("title", cfg.Window.Title))
	w.ShowAndRun()
	l.Info("window closed")
	return nil
}
