//go:build fyne

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"sketchpad/internal/app"
	"sketchpad/internal/config"
	"sketchpad/internal/model"
	"sketchpad/internal/surface"
	"sketchpad/internal/vector"
	"sketchpad/internal/view"
)

// Slider range of the brush size control.
const (
	minBrushSize = 1
	maxBrushSize = 100
)

// toolbar implements view.Toolbar over a row of buttons. bar is the whole top
// strip; its height is what the drawing area gives up.
type toolbar struct {
	bar      *fyne.Container
	buttons  map[string]*widget.Button
	order    []string
	activate func(id string)
}

func newToolbar() *toolbar {
	t := &toolbar{buttons: map[string]*widget.Button{}}
	for _, tool := range []model.Tool{model.Brush, model.Eraser, model.Bucket, model.Cleaner} {
		id := tool.ID()
		label := map[model.Tool]string{model.Brush: "Brush", model.Eraser: "Eraser", model.Bucket: "Fill", model.Cleaner: "Clear"}[tool]
		b := widget.NewButton(label, func() {
			if t.activate != nil {
				t.activate(id)
			}
		})
		t.buttons[id] = b
		t.order = append(t.order, id)
	}
	return t
}

func (t *toolbar) OnActivate(fn func(id string)) { t.activate = fn }
func (t *toolbar) ButtonIDs() []string           { return t.order }

func (t *toolbar) SetActive(id string, active bool) {
	b, ok := t.buttons[id]
	if !ok {
		return
	}
	if active {
		b.Importance = widget.HighImportance
	} else {
		b.Importance = widget.MediumImportance
	}
	b.Refresh()
}

func (t *toolbar) Height() float64 {
	if t.bar == nil {
		return 0
	}
	return float64(t.bar.MinSize().Height)
}

// sizeSlider implements view.SizeControl. Programmatic updates do not echo
// back into the input handler.
type sizeSlider struct {
	s       *widget.Slider
	syncing bool
}

func newSizeSlider() *sizeSlider {
	s := widget.NewSlider(minBrushSize, maxBrushSize)
	s.Step = 1
	return &sizeSlider{s: s}
}

func (z *sizeSlider) OnInput(fn func(v float64)) {
	z.s.OnChanged = func(v float64) {
		if !z.syncing {
			fn(v)
		}
	}
}

func (z *sizeSlider) SetValue(v float64) {
	z.syncing = true
	z.s.SetValue(v)
	z.syncing = false
}

// colorInput implements view.ColorControl as a hex entry with a swatch.
type colorInput struct {
	entry  *widget.Entry
	swatch *canvas.Rectangle
}

func newColorInput(initial string) *colorInput {
	e := widget.NewEntry()
	e.SetText(initial)
	e.SetPlaceHolder("#rrggbb")
	sw := canvas.NewRectangle(color.Transparent)
	sw.SetMinSize(fyne.NewSize(24, 24))
	sw.CornerRadius = 4
	return &colorInput{entry: e, swatch: sw}
}

func (c *colorInput) OnInput(fn func(value string)) { c.entry.OnChanged = fn }

func (c *colorInput) SetSwatch(col color.NRGBA) {
	c.swatch.FillColor = col
	c.swatch.Refresh()
}

func (c *colorInput) object() fyne.CanvasObject {
	return container.NewHBox(container.NewStack(c.swatch), container.NewGridWrap(fyne.NewSize(96, c.entry.MinSize().Height), c.entry))
}

type sizeLabel struct{ l *widget.Label }

func (s sizeLabel) SetText(v string) { s.l.SetText(v) }

// drawingArea shows a surface.Raster over its background color and reports
// mouse events in window coordinates.
type drawingArea struct {
	widget.BaseWidget

	raster *surface.Raster
	bg     *canvas.Rectangle
	img    *canvas.Image
	frame  *image.RGBA

	press, move func(vector.Pt)
	release     func()
}

var (
	_ desktop.Mouseable = (*drawingArea)(nil)
	_ desktop.Hoverable = (*drawingArea)(nil)
	_ fyne.Draggable    = (*drawingArea)(nil)
)

func newDrawingArea(r *surface.Raster) *drawingArea {
	d := &drawingArea{
		raster: r,
		bg:     canvas.NewRectangle(color.Transparent),
		img:    canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1))),
	}
	// The raster follows the widget size, so stretching maps it 1:1 in
	// canvas units whatever the output scale.
	d.img.FillMode = canvas.ImageFillStretch
	d.img.ScaleMode = canvas.ImageScalePixels
	r.OnChange = d.sync
	d.ExtendBaseWidget(d)
	return d
}

// sync copies the raster state into the displayed objects.
func (d *drawingArea) sync() {
	d.bg.FillColor = d.raster.Background()
	d.frame = d.raster.Flush(d.frame)
	d.img.Image = d.frame
	d.bg.Refresh()
	d.img.Refresh()
}

// Resize keeps the raster the same size as the widget so pointer positions
// land on the pixels under the cursor.
func (d *drawingArea) Resize(size fyne.Size) {
	d.BaseWidget.Resize(size)
	d.fit()
}

func (d *drawingArea) fit() {
	s := d.Size()
	if s.Width <= 0 || s.Height <= 0 {
		return
	}
	d.raster.Fit(int(s.Width), int(s.Height))
}

func (d *drawingArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(d.bg, d.img))
}

func (d *drawingArea) OnPress(fn func(vector.Pt)) { d.press = fn }
func (d *drawingArea) OnMove(fn func(vector.Pt))  { d.move = fn }
func (d *drawingArea) OnRelease(fn func())        { d.release = fn }

func (d *drawingArea) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary || d.press == nil {
		return
	}
	d.place(&e.PointEvent)
	d.press(abs(&e.PointEvent))
}

func (d *drawingArea) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary || d.release == nil {
		return
	}
	d.release()
}

func (d *drawingArea) MouseIn(*desktop.MouseEvent) {}
func (d *drawingArea) MouseOut()                   {}

func (d *drawingArea) MouseMoved(e *desktop.MouseEvent) { d.moved(&e.PointEvent) }

// Dragged and MouseMoved both feed the stroke; drivers send one or the other
// while the button is held.
func (d *drawingArea) Dragged(e *fyne.DragEvent) { d.moved(&e.PointEvent) }

// moved forwards positions over the surface only; a drag that leaves the
// area resumes from wherever it comes back in.
func (d *drawingArea) moved(e *fyne.PointEvent) {
	if d.move == nil {
		return
	}
	d.place(e)
	p := abs(e)
	if !d.raster.Bounds().Contains(p) {
		return
	}
	d.move(p)
}

func (d *drawingArea) DragEnd() {
	if d.release != nil {
		d.release()
	}
}

// place records the area's window offset, derived from the event itself.
func (d *drawingArea) place(e *fyne.PointEvent) {
	d.raster.SetOrigin(vector.Pt{
		X: float64(e.AbsolutePosition.X - e.Position.X),
		Y: float64(e.AbsolutePosition.Y - e.Position.Y),
	})
}

func abs(e *fyne.PointEvent) vector.Pt {
	return vector.Pt{X: float64(e.AbsolutePosition.X), Y: float64(e.AbsolutePosition.Y)}
}

// shell is the widget tree of the main window.
type shell struct {
	toolbar    *toolbar
	slider     *sizeSlider
	readout    *widget.Label
	brushColor *colorInput
	bgColor    *colorInput
	area       *drawingArea
	content    fyne.CanvasObject
}

func newShell(c config.CanvasConfig, r *surface.Raster) *shell {
	s := &shell{
		toolbar:    newToolbar(),
		slider:     newSizeSlider(),
		readout:    widget.NewLabel(""),
		brushColor: newColorInput(c.BrushColor),
		bgColor:    newColorInput(c.BackgroundColor),
		area:       newDrawingArea(r),
	}
	tools := container.NewHBox()
	for _, id := range s.toolbar.order {
		tools.Add(s.toolbar.buttons[id])
	}
	size := container.NewBorder(nil, nil, widget.NewLabel("Size"), s.readout, s.slider.s)
	colors := container.NewHBox(
		widget.NewLabel("Brush"), s.brushColor.object(),
		widget.NewLabel("Background"), s.bgColor.object(),
	)
	s.toolbar.bar = container.NewBorder(nil, widget.NewSeparator(), tools, colors, size)
	s.content = container.NewBorder(s.toolbar.bar, nil, nil, nil, s.area)
	return s
}

// start wires a session over the shell. Setup sizes the surface from vp; the
// drawing area then resizes it to the space it actually got.
func (s *shell) start(c config.CanvasConfig, vp app.Viewport) (*app.Session, error) {
	sess, err := app.New(c, s.area.raster, s.controls(), vp)
	if err != nil {
		return nil, err
	}
	s.area.fit()
	s.toolbar.SetActive(sess.State.Tool().ID(), true)
	s.area.sync()
	return sess, nil
}

func (s *shell) controls() view.Controls {
	return view.Controls{
		Toolbar:    s.toolbar,
		Pointer:    s.area,
		BrushSize:  s.slider,
		SizeLabel:  sizeLabel{s.readout},
		BrushColor: s.brushColor,
		Background: s.bgColor,
	}
}
