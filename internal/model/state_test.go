package model

import "testing"

func TestNewDefaults(t *testing.T) {
	st := New()
	want := Snapshot{BrushSize: 10, BrushColor: "#000", BackgroundColor: "#f6f6f6", Tool: Brush}
	if got := st.Snapshot(); got != want {
		t.Fatalf("defaults = %+v, want %+v", got, want)
	}
}

func TestAccessorsWriteThrough(t *testing.T) {
	st := New()
	st.SetBrushSize(42)
	st.SetBrushColor("#ff0000")
	st.SetBackgroundColor("#00ff00")
	st.SetTool(Eraser)
	st.SetDrawing(true)
	want := Snapshot{BrushSize: 42, BrushColor: "#ff0000", BackgroundColor: "#00ff00", Tool: Eraser, Drawing: true}
	if got := st.Snapshot(); got != want {
		t.Fatalf("snapshot = %+v, want %+v", got, want)
	}
}

func TestParseTool(t *testing.T) {
	for _, tool := range []Tool{Brush, Eraser, Bucket, Cleaner} {
		got, err := ParseTool(tool.ID())
		if err != nil {
			t.Fatalf("ParseTool(%q): %v", tool.ID(), err)
		}
		if got != tool {
			t.Fatalf("ParseTool(%q) = %v", tool.ID(), got)
		}
	}
	for _, id := range []string{"", "Brush", "pencil", "clear"} {
		if _, err := ParseTool(id); err == nil {
			t.Fatalf("ParseTool(%q) should fail", id)
		}
	}
	if s := Tool(9).String(); s != "tool(9)" {
		t.Fatalf("unknown tool String() = %q", s)
	}
}
