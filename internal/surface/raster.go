/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package surface provides the 2D rendering context strokes are painted on.
//
// Context mirrors the small subset of an HTML canvas 2D context the view
// needs: stroke style, path building, stroking, clearing and geometry.
// Raster implements it on top of github.com/fogleman/gg.
package surface

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"github.com/fogleman/gg"

	"sketchpad/internal/vector"
)

// Context is a 2D stroke-drawing surface.
type Context interface {
	SetStrokeColor(c color.Color)
	SetLineWidth(w float64)
	SetLineCap(c vector.LineCap)
	SetLineJoin(j vector.LineJoin)
	BeginPath()
	MoveTo(p vector.Pt)
	LineTo(p vector.Pt)
	// Stroke renders the current path and keeps it for further extension.
	Stroke()
	// ClearRect resets the pixels in r to transparent.
	ClearRect(r vector.Rect)
	// Bounds reports the surface's position and size in window coordinates.
	Bounds() vector.Rect
	// SetBackground changes the color shown behind the strokes without
	// touching any stroke pixels.
	SetBackground(c color.Color)
	// Resize sets the drawable size; like a canvas element, existing pixels are dropped.
	Resize(w, h int)
}

// Raster is a Context backed by an in-memory RGBA image. It is safe to call
// Flush from a render goroutine while the UI goroutine draws.
type Raster struct {
	mu     sync.Mutex
	img    *image.RGBA
	dc     *gg.Context
	origin vector.Pt
	bg     color.Color

	// pen survives Resize and Fit
	pen  vector.Stroke
	path vector.Path

	// area changed since the last Flush
	dirty vector.Rect
	full  bool

	// OnChange, when set, is called after every operation that changes what
	// the surface displays.
	OnChange func()
}

// NewRaster returns a w×h transparent surface.
func NewRaster(w, h int) *Raster {
	r := &Raster{pen: vector.Stroke{Color: color.Black, Width: 1}, bg: color.Transparent}
	r.reset(w, h)
	return r
}

func (r *Raster) reset(w, h int) {
	r.img = image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	r.dc = gg.NewContextForRGBA(r.img)
	r.dc.SetColor(r.pen.Color)
	r.dc.SetLineWidth(r.pen.Width)
	r.dc.SetLineCap(ggCap(r.pen.Cap))
	r.dc.SetLineJoin(ggJoin(r.pen.Join))
	r.path.Reset()
	r.full = true
}

func (r *Raster) SetStrokeColor(c color.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pen.Color = c
	r.dc.SetColor(c)
}

func (r *Raster) SetLineWidth(w float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pen.Width = w
	r.dc.SetLineWidth(w)
}

func (r *Raster) SetLineCap(c vector.LineCap) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pen.Cap = c
	r.dc.SetLineCap(ggCap(c))
}

func (r *Raster) SetLineJoin(j vector.LineJoin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pen.Join = j
	r.dc.SetLineJoin(ggJoin(j))
}

func (r *Raster) BeginPath() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dc.ClearPath()
	r.path.Reset()
}

func (r *Raster) MoveTo(p vector.Pt) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dc.MoveTo(p.X, p.Y)
	r.path.MoveTo(p.X, p.Y)
}

func (r *Raster) LineTo(p vector.Pt) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dc.LineTo(p.X, p.Y)
	r.path.LineTo(p.X, p.Y)
}

func (r *Raster) Stroke() {
	r.mu.Lock()
	if r.path.Empty() {
		r.mu.Unlock()
		return
	}
	r.dc.StrokePreserve()
	r.markDirty(r.path.Bounds().Inset(-(r.pen.Width + 2)))
	r.mu.Unlock()
	r.changed()
}

func (r *Raster) ClearRect(rect vector.Rect) {
	r.mu.Lock()
	area := image.Rect(int(rect.X), int(rect.Y), int(rect.X+rect.W+0.5), int(rect.Y+rect.H+0.5)).Intersect(r.img.Bounds())
	draw.Draw(r.img, area, image.Transparent, image.Point{}, draw.Src)
	r.markDirty(rect)
	r.mu.Unlock()
	r.changed()
}

func (r *Raster) Bounds() vector.Rect {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := r.img.Bounds()
	return vector.R(r.origin.X, r.origin.Y, float64(b.Dx()), float64(b.Dy()))
}

func (r *Raster) SetBackground(c color.Color) {
	r.mu.Lock()
	r.bg = c
	r.mu.Unlock()
	r.changed()
}

func (r *Raster) Resize(w, h int) {
	r.mu.Lock()
	r.reset(w, h)
	r.mu.Unlock()
	r.changed()
}

// Fit resizes the surface to w×h like Resize, but keeps the pixels that still
// fit and the path being built. A no-op when the size is unchanged.
func (r *Raster) Fit(w, h int) {
	w, h = max(w, 1), max(h, 1)
	r.mu.Lock()
	if b := r.img.Bounds(); b.Dx() == w && b.Dy() == h {
		r.mu.Unlock()
		return
	}
	old := r.img
	cmds := append([]vector.PathCmd(nil), r.path.Cmds...)
	r.reset(w, h)
	draw.Draw(r.img, old.Bounds(), old, image.Point{}, draw.Src)
	for _, c := range cmds {
		switch c.Op {
		case vector.MoveTo:
			r.dc.MoveTo(c.Pt.X, c.Pt.Y)
			r.path.MoveTo(c.Pt.X, c.Pt.Y)
		case vector.LineTo:
			r.dc.LineTo(c.Pt.X, c.Pt.Y)
			r.path.LineTo(c.Pt.X, c.Pt.Y)
		}
	}
	r.mu.Unlock()
	r.changed()
}

// SetOrigin records where the surface's top-left corner sits in window coordinates.
func (r *Raster) SetOrigin(p vector.Pt) {
	r.mu.Lock()
	r.origin = p
	r.mu.Unlock()
}

// Background returns the color last set with SetBackground.
func (r *Raster) Background() color.Color {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bg
}

// Flush brings dst up to date with the stroke layer and returns it. Only the
// area changed since the previous Flush is copied; a nil or differently sized
// dst is replaced by a full copy.
func (r *Raster) Flush(dst *image.RGBA) *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := r.img.Bounds()
	if dst == nil || dst.Bounds() != b {
		dst = image.NewRGBA(b)
		r.full = true
	}
	area := b
	if !r.full {
		area = pixels(r.dirty).Intersect(b)
	}
	if !area.Empty() {
		draw.Draw(dst, area, r.img, area.Min, draw.Src)
	}
	r.full = false
	r.dirty = vector.Rect{}
	return dst
}

func (r *Raster) markDirty(rect vector.Rect) {
	if r.dirty == (vector.Rect{}) {
		r.dirty = rect
		return
	}
	r.dirty = r.dirty.Union(rect)
}

func pixels(rect vector.Rect) image.Rectangle {
	lo, hi := rect.Min(), rect.Max()
	return image.Rect(int(math.Floor(lo.X)), int(math.Floor(lo.Y)), int(math.Ceil(hi.X)), int(math.Ceil(hi.Y)))
}

func (r *Raster) changed() {
	if r.OnChange != nil {
		r.OnChange()
	}
}

func ggCap(c vector.LineCap) gg.LineCap {
	switch c {
	case vector.CapRound:
		return gg.LineCapRound
	case vector.CapSquare:
		return gg.LineCapSquare
	default:
		return gg.LineCapButt
	}
}

func ggJoin(j vector.LineJoin) gg.LineJoin {
	switch j {
	case vector.JoinRound, vector.JoinMiter:
		// gg has no miter join; round is the closest match.
		return gg.LineJoinRound
	default:
		return gg.LineJoinBevel
	}
}
