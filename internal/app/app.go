/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package app is the composition root: it builds the drawing state, the view
// and the controller for one session once the host window is ready.
package app

import (
	"fmt"
	"log/slog"

	"sketchpad/internal/config"
	"sketchpad/internal/controller"
	applog "sketchpad/internal/log"
	"sketchpad/internal/model"
	"sketchpad/internal/surface"
	"sketchpad/internal/view"
)

// Session is a running drawing session.
type Session struct {
	State      *model.State
	View       *view.View
	Controller *controller.Controller
}

// Viewport is the host window's client size in pixels.
type Viewport struct{ W, H float64 }

// New wires a session. ctx may be nil when no rendering context is available.
func New(cfg config.CanvasConfig, ctx surface.Context, controls view.Controls, vp Viewport) (*Session, error) {
	l := applog.WithOperation(applog.WithComponent("app"), "start")

	st := model.NewFrom(cfg.InitialState())
	v, err := view.New(ctx, controls)
	if err != nil {
		return nil, fmt.Errorf("app: bind view: %w", err)
	}
	v.Setup(vp.W, vp.H)
	v.SetBackgroundColor(st.BackgroundColor())
	v.SyncColorSwatches(st.BrushColor(), st.BackgroundColor())

	ctl := controller.New(st, v)
	l.Info("session ready",
		slog.Float64("viewport_w", vp.W),
		slog.Float64("viewport_h", vp.H),
		slog.Float64("brush_size", st.BrushSize()),
		slog.Bool("surface", ctx != nil))
	return &Session{State: st, View: v, Controller: ctl}, nil
}
