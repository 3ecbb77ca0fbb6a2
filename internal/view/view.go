/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package view adapts a drawing surface and its toolbar controls into the
// semantic callbacks and rendering commands the controller works with.
package view

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"

	applog "sketchpad/internal/log"
	"sketchpad/internal/palette"
	"sketchpad/internal/surface"
	"sketchpad/internal/vector"
)

// Toolbar is a row of buttons identified by string ids.
type Toolbar interface {
	// OnActivate registers fn to run when a button is clicked.
	OnActivate(fn func(id string))
	ButtonIDs() []string
	SetActive(id string, active bool)
	// Height is the rendered height of the toolbar in pixels.
	Height() float64
}

// SizeControl is a numeric input, typically a slider.
type SizeControl interface {
	OnInput(fn func(v float64))
	SetValue(v float64)
}

// Label displays text.
type Label interface {
	SetText(s string)
}

// ColorControl is a color input with a preview swatch.
type ColorControl interface {
	OnInput(fn func(value string))
	SetSwatch(c color.NRGBA)
}

// Pointer delivers mouse events in window coordinates.
type Pointer interface {
	OnPress(fn func(pos vector.Pt))
	OnMove(fn func(pos vector.Pt))
	OnRelease(fn func())
}

// Controls groups the widgets the view binds to. All fields are required.
type Controls struct {
	Toolbar    Toolbar
	Pointer    Pointer
	BrushSize  SizeControl
	SizeLabel  Label
	BrushColor ColorControl
	Background ColorControl
}

// ErrMissingControl is returned by New when a control is not bound.
var ErrMissingControl = errors.New("view: missing control")

// DrawOptions starts a stroke.
type DrawOptions struct {
	Coords vector.Pt
	Color  string
	Size   float64
}

// View owns the drawing surface and the controls. A nil surface.Context is
// allowed: every drawing command then does nothing.
type View struct {
	ctx surface.Context
	c   Controls
	log *slog.Logger
}

// New binds a view to ctx and c.
func New(ctx surface.Context, c Controls) (*View, error) {
	for _, ctl := range []struct {
		name  string
		unset bool
	}{
		{"toolbar", c.Toolbar == nil},
		{"pointer", c.Pointer == nil},
		{"brush size", c.BrushSize == nil},
		{"size label", c.SizeLabel == nil},
		{"brush color", c.BrushColor == nil},
		{"background color", c.Background == nil},
	} {
		if ctl.unset {
			return nil, fmt.Errorf("%w: %s", ErrMissingControl, ctl.name)
		}
	}
	v := &View{ctx: ctx, c: c, log: applog.WithComponent("view")}
	if ctx == nil {
		v.log.Warn("no rendering context; drawing disabled")
	}
	return v, nil
}

// Setup sizes the surface to the viewport minus the toolbar and fixes the
// stroke style to round caps and joins.
func (v *View) Setup(viewportW, viewportH float64) {
	if v.ctx == nil {
		return
	}
	h := viewportH - v.c.Toolbar.Height()
	v.ctx.Resize(int(viewportW), int(max(h, 0)))
	v.ctx.SetLineCap(vector.CapRound)
	v.ctx.SetLineJoin(vector.JoinRound)
}

// BindToolChange calls handler with the id of the clicked toolbar button and
// then moves the active highlight to it. Whether the tool actually changes is
// up to the handler.
func (v *View) BindToolChange(handler func(id string)) {
	v.c.Toolbar.OnActivate(func(id string) {
		handler(id)
		for _, b := range v.c.Toolbar.ButtonIDs() {
			v.c.Toolbar.SetActive(b, false)
		}
		v.c.Toolbar.SetActive(id, true)
	})
}

func (v *View) BindChangeBrushColor(handler func(color string)) {
	bindColor(v.c.BrushColor, handler)
}

func (v *View) BindChangeBackgroundColor(handler func(color string)) {
	bindColor(v.c.Background, handler)
}

func bindColor(ctl ColorControl, handler func(string)) {
	ctl.OnInput(func(value string) {
		handler(value)
		ctl.SetSwatch(palette.Swatch(value))
	})
}

// BindChangeBrushSize calls handler with the entered size, then shows the size
// handler reports as accepted. A rejected edit snaps the control back.
func (v *View) BindChangeBrushSize(handler func(size float64) (accepted float64)) {
	v.c.BrushSize.OnInput(func(size float64) {
		v.SyncBrushSizeDisplay(handler(size))
	})
}

func (v *View) BindMousePress(handler func(at vector.Pt)) {
	v.c.Pointer.OnPress(func(pos vector.Pt) { handler(v.local(pos)) })
}

func (v *View) BindMouseDrag(handler func(at vector.Pt)) {
	v.c.Pointer.OnMove(func(pos vector.Pt) { handler(v.local(pos)) })
}

func (v *View) BindMouseRelease(handler func()) {
	v.c.Pointer.OnRelease(handler)
}

// local converts a window position to surface coordinates.
func (v *View) local(pos vector.Pt) vector.Pt {
	if v.ctx == nil {
		return pos
	}
	return pos.Sub(v.ctx.Bounds().Min())
}

// StartDrawing begins a new stroke path at opts.Coords.
func (v *View) StartDrawing(opts DrawOptions) {
	if v.ctx == nil {
		return
	}
	if c, ok := palette.ParseHex(opts.Color); ok {
		v.ctx.SetStrokeColor(c.NRGBA(1))
	} else {
		v.log.Debug("ignoring malformed stroke color", slog.String("color", opts.Color))
	}
	v.ctx.SetLineWidth(opts.Size)
	v.ctx.BeginPath()
	v.ctx.MoveTo(opts.Coords)
}

// ContinueDrawing extends the current stroke to at and renders it.
func (v *View) ContinueDrawing(at vector.Pt) {
	if v.ctx == nil {
		return
	}
	v.ctx.LineTo(at)
	v.ctx.Stroke()
}

// ClearSurface erases every stroke.
func (v *View) ClearSurface() {
	if v.ctx == nil {
		return
	}
	b := v.ctx.Bounds()
	v.ctx.ClearRect(vector.R(0, 0, b.W, b.H))
}

// SetBackgroundColor recolors the area behind the strokes.
func (v *View) SetBackgroundColor(value string) {
	if v.ctx == nil {
		return
	}
	c, ok := palette.ParseHex(value)
	if !ok {
		v.log.Debug("ignoring malformed background color", slog.String("color", value))
		return
	}
	v.ctx.SetBackground(c.NRGBA(1))
}

// SyncColorSwatches tints both color controls' swatches, used once at startup.
func (v *View) SyncColorSwatches(brush, background string) {
	v.c.BrushColor.SetSwatch(palette.Swatch(brush))
	v.c.Background.SetSwatch(palette.Swatch(background))
}

// SyncBrushSizeDisplay pushes size into the size control and its readout.
func (v *View) SyncBrushSizeDisplay(size float64) {
	v.c.BrushSize.SetValue(size)
	v.c.SizeLabel.SetText(palette.FormatSize(size))
}
