/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package controller interprets toolbar and pointer events against the
// drawing state and tells the view what to render.
package controller

import (
	"log/slog"

	applog "sketchpad/internal/log"
	"sketchpad/internal/model"
	"sketchpad/internal/vector"
	"sketchpad/internal/view"
)

// View is the part of *view.View the controller drives.
type View interface {
	BindToolChange(handler func(id string))
	BindChangeBrushColor(handler func(color string))
	BindChangeBackgroundColor(handler func(color string))
	BindChangeBrushSize(handler func(size float64) (accepted float64))
	BindMousePress(handler func(at vector.Pt))
	BindMouseDrag(handler func(at vector.Pt))
	BindMouseRelease(handler func())

	StartDrawing(opts view.DrawOptions)
	ContinueDrawing(at vector.Pt)
	ClearSurface()
	SetBackgroundColor(color string)
	SyncBrushSizeDisplay(size float64)
}

// EraserScale is the factor applied to the brush size when the eraser is picked.
func EraserScale(size float64) float64 {
	switch {
	case size > 50:
		return 1.5
	case size > 20:
		return 2
	default:
		return 3
	}
}

// Controller is the only writer of the drawing state.
type Controller struct {
	state *model.State
	view  View
	log   *slog.Logger

	defaultSize float64
	// savedSize is the brush size to restore when leaving the eraser.
	savedSize *float64
}

// New wires st and v together. The brush size held by st becomes the size
// restored when leaving the eraser without a remembered value.
func New(st *model.State, v View) *Controller {
	c := &Controller{
		state:       st,
		view:        v,
		log:         applog.WithComponent("controller"),
		defaultSize: st.BrushSize(),
	}
	if c.defaultSize <= 0 {
		c.defaultSize = model.DefaultBrushSize
		st.SetBrushSize(c.defaultSize)
	}

	v.SyncBrushSizeDisplay(st.BrushSize())
	v.BindMousePress(c.press)
	v.BindMouseDrag(c.drag)
	v.BindMouseRelease(c.release)
	v.BindToolChange(c.changeTool)
	v.BindChangeBrushColor(c.changeBrushColor)
	v.BindChangeBrushSize(c.changeBrushSize)
	v.BindChangeBackgroundColor(c.changeBackgroundColor)
	return c
}

// State returns a copy of the current drawing state.
func (c *Controller) State() model.Snapshot { return c.state.Snapshot() }

// SavedBrushSize reports the size remembered on entering the eraser.
func (c *Controller) SavedBrushSize() (float64, bool) {
	if c.savedSize == nil {
		return 0, false
	}
	return *c.savedSize, true
}

// StrokeColor is the color strokes are painted with for the active tool.
func (c *Controller) StrokeColor() string {
	if c.state.Tool() == model.Eraser {
		return c.state.BackgroundColor()
	}
	return c.state.BrushColor()
}

func (c *Controller) press(at vector.Pt) {
	c.state.SetDrawing(true)
	c.view.StartDrawing(view.DrawOptions{
		Coords: at,
		Color:  c.StrokeColor(),
		Size:   c.state.BrushSize(),
	})
}

func (c *Controller) drag(at vector.Pt) {
	if !c.state.Drawing() {
		return
	}
	c.view.ContinueDrawing(at)
}

func (c *Controller) release() { c.state.SetDrawing(false) }

func (c *Controller) changeTool(id string) {
	tool, err := model.ParseTool(id)
	if err != nil {
		c.log.Warn("tool not recognized", slog.String("id", id))
		return
	}
	from := c.state.Tool()
	if tool == from {
		return
	}

	switch tool {
	case model.Brush:
		c.switchToBrush(from)
	case model.Eraser:
		c.switchToEraser()
	case model.Cleaner:
		c.switchToCleaner()
	case model.Bucket:
		c.log.Warn("fill tool is not supported", slog.String("id", id))
		return
	default:
		c.log.Warn("tool not recognized", slog.String("id", id))
		return
	}
	c.state.SetDrawing(false)
	saved, _ := c.SavedBrushSize()
	c.log.Debug("tool changed",
		slog.String("from", from.ID()),
		slog.String("to", tool.ID()),
		slog.Float64("brush_size", c.state.BrushSize()),
		slog.Float64("saved_size", saved))
}

// switchToBrush restores the size remembered on entering the eraser. Without
// one, leaving the eraser resets to the configured initial size (10 unless the
// config says otherwise); other tools keep the current size.
func (c *Controller) switchToBrush(from model.Tool) {
	size := c.state.BrushSize()
	switch {
	case c.savedSize != nil:
		size = *c.savedSize
		c.savedSize = nil
	case from == model.Eraser:
		size = c.defaultSize
	}
	c.state.SetTool(model.Brush)
	c.state.SetBrushSize(size)
	c.view.SyncBrushSizeDisplay(size)
}

// switchToEraser scales the brush size. Re-entering the eraser through the
// cleaner scales the remembered size again instead of compounding.
func (c *Controller) switchToEraser() {
	base := c.state.BrushSize()
	if c.savedSize != nil {
		base = *c.savedSize
	} else {
		saved := base
		c.savedSize = &saved
	}
	c.state.SetTool(model.Eraser)
	c.state.SetBrushSize(base * EraserScale(base))
}

func (c *Controller) switchToCleaner() {
	c.state.SetTool(model.Cleaner)
	c.view.ClearSurface()
}

func (c *Controller) changeBrushColor(color string) { c.state.SetBrushColor(color) }

// changeBrushSize stores size and returns the size now in effect. A manual
// edit forgets the remembered brush size, so leaving the eraser afterwards
// falls back to the default size.
func (c *Controller) changeBrushSize(size float64) float64 {
	if size <= 0 {
		c.log.Warn("ignoring non-positive brush size", slog.Float64("size", size))
		return c.state.BrushSize()
	}
	c.state.SetBrushSize(size)
	c.savedSize = nil
	return size
}

func (c *Controller) changeBackgroundColor(color string) {
	c.state.SetBackgroundColor(color)
	c.view.SetBackgroundColor(color)
}
