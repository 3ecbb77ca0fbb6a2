package crash

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sketchpad/internal/model"
)

func useTempReports(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old := reportDir
	reportDir = func() string { return dir }
	t.Cleanup(func() { reportDir = old })
	return dir
}

func TestWriteReportIncludesState(t *testing.T) {
	dir := useTempReports(t)
	snap := model.New().Snapshot()
	path, err := writeReport("boom", []byte("stacktrace"), &snap)
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("report written to %s, want under %s", path, dir)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	s := string(b)
	for _, want := range []string{"Sketchpad Crash Report", "Panic: boom", "Tool: brush", "BrushSize: 10", "stacktrace"} {
		if !strings.Contains(s, want) {
			t.Fatalf("report missing %q:\n%s", want, s)
		}
	}
}

func TestRecoverExitsWithReport(t *testing.T) {
	dir := useTempReports(t)

	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w
	defer func() {
		_ = w.Close()
		os.Stderr = oldStderr
		_, _ = io.Copy(io.Discard, r)
	}()

	code := -1
	oldExit := exitFn
	exitFn = func(c int) { code = c }
	defer func() { exitFn = oldExit }()

	func() {
		defer Recover(func() model.Snapshot { panic("state unavailable") })
		panic("kaboom")
	}()

	if code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one report in %s, got %v (%v)", dir, entries, err)
	}
	b, _ := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if !strings.Contains(string(b), "Panic: kaboom") || strings.Contains(string(b), "Tool:") {
		t.Fatalf("unexpected report:\n%s", b)
	}
}

func TestRecoverWithoutPanicIsSilent(t *testing.T) {
	called := false
	oldExit := exitFn
	exitFn = func(int) { called = true }
	defer func() { exitFn = oldExit }()

	func() { defer Recover(nil) }()
	if called {
		t.Fatalf("exit called without a panic")
	}
}
