package view

import (
	"fmt"
	"image/color"

	"sketchpad/internal/vector"
)

type fakeToolbar struct {
	ids      []string
	active   map[string]bool
	height   float64
	activate func(string)
}

func newFakeToolbar(h float64, ids ...string) *fakeToolbar {
	return &fakeToolbar{ids: ids, active: map[string]bool{}, height: h}
}

func (f *fakeToolbar) OnActivate(fn func(string))       { f.activate = fn }
func (f *fakeToolbar) ButtonIDs() []string              { return f.ids }
func (f *fakeToolbar) SetActive(id string, active bool) { f.active[id] = active }
func (f *fakeToolbar) Height() float64                  { return f.height }
func (f *fakeToolbar) click(id string)                  { f.activate(id) }

type fakeSlider struct {
	value float64
	input func(float64)
}

func (f *fakeSlider) OnInput(fn func(float64)) { f.input = fn }
func (f *fakeSlider) SetValue(v float64)       { f.value = v }

type fakeLabel struct{ text string }

func (f *fakeLabel) SetText(s string) { f.text = s }

type fakeColor struct {
	swatch color.NRGBA
	input  func(string)
}

func (f *fakeColor) OnInput(fn func(string)) { f.input = fn }
func (f *fakeColor) SetSwatch(c color.NRGBA) { f.swatch = c }

type fakePointer struct {
	press, move func(vector.Pt)
	release     func()
}

func (f *fakePointer) OnPress(fn func(vector.Pt)) { f.press = fn }
func (f *fakePointer) OnMove(fn func(vector.Pt))  { f.move = fn }
func (f *fakePointer) OnRelease(fn func())        { f.release = fn }

// recordingContext logs every call as a short string.
type recordingContext struct {
	bounds vector.Rect
	calls  []string
}

func (r *recordingContext) rec(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recordingContext) SetStrokeColor(c color.Color) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	r.rec("color %02x%02x%02x", n.R, n.G, n.B)
}
func (r *recordingContext) SetLineWidth(w float64)        { r.rec("width %v", w) }
func (r *recordingContext) SetLineCap(c vector.LineCap)   { r.rec("cap %d", c) }
func (r *recordingContext) SetLineJoin(j vector.LineJoin) { r.rec("join %d", j) }
func (r *recordingContext) BeginPath()                    { r.rec("begin") }
func (r *recordingContext) MoveTo(p vector.Pt)            { r.rec("move %v,%v", p.X, p.Y) }
func (r *recordingContext) LineTo(p vector.Pt)            { r.rec("line %v,%v", p.X, p.Y) }
func (r *recordingContext) Stroke()                       { r.rec("stroke") }
func (r *recordingContext) ClearRect(x vector.Rect)       { r.rec("clear %v,%v,%v,%v", x.X, x.Y, x.W, x.H) }
func (r *recordingContext) Bounds() vector.Rect           { return r.bounds }
func (r *recordingContext) SetBackground(c color.Color) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	r.rec("background %02x%02x%02x", n.R, n.G, n.B)
}
func (r *recordingContext) Resize(w, h int) {
	r.bounds.W, r.bounds.H = float64(w), float64(h)
	r.rec("resize %d,%d", w, h)
}

type fixture struct {
	toolbar *fakeToolbar
	slider  *fakeSlider
	label   *fakeLabel
	brush   *fakeColor
	bg      *fakeColor
	pointer *fakePointer
}

func newFixture() *fixture {
	return &fixture{
		toolbar: newFakeToolbar(48, "brush", "eraser", "bucket", "cleaner"),
		slider:  &fakeSlider{},
		label:   &fakeLabel{},
		brush:   &fakeColor{},
		bg:      &fakeColor{},
		pointer: &fakePointer{},
	}
}

func (f *fixture) controls() Controls {
	return Controls{
		Toolbar:    f.toolbar,
		Pointer:    f.pointer,
		BrushSize:  f.slider,
		SizeLabel:  f.label,
		BrushColor: f.brush,
		Background: f.bg,
	}
}
