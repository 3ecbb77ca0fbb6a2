package vector

import "testing"

func TestPathBounds(t *testing.T) {
	var p Path
	if !p.Empty() {
		t.Fatalf("zero path should be empty")
	}
	if b := p.Bounds(); b != (Rect{}) {
		t.Fatalf("empty bounds = %+v", b)
	}
	p.MoveTo(10, 20)
	p.LineTo(30, 40)
	p.LineTo(5, 35)
	if b := p.Bounds(); b != R(5, 20, 25, 20) {
		t.Fatalf("bounds = %+v", b)
	}
	p.Reset()
	if !p.Empty() {
		t.Fatalf("reset path not empty")
	}
}

func TestRectHelpers(t *testing.T) {
	r := R(10, 10, 20, 20)
	if !r.Contains(Pt{10, 30}) || r.Contains(Pt{31, 10}) {
		t.Fatalf("contains wrong for %+v", r)
	}
	if in := r.Inset(5); in != R(15, 15, 10, 10) {
		t.Fatalf("inset = %+v", in)
	}
	if u := r.Union(R(0, 0, 5, 5)); u != R(0, 0, 30, 30) {
		t.Fatalf("union = %+v", u)
	}
	if m := r.Max(); m != (Pt{30, 30}) {
		t.Fatalf("max = %+v", m)
	}
	if d := (Pt{25, 60}).Sub(Pt{5, 10}); d != (Pt{20, 50}) {
		t.Fatalf("sub = %+v", d)
	}
}
