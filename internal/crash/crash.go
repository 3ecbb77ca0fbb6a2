/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic into a logged error, a crash report on disk and
// a non-zero exit.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	applog "sketchpad/internal/log"
	"sketchpad/internal/model"
	"sketchpad/internal/version"
)

// exitFn and reportDir are swapped in tests.
var (
	exitFn    = os.Exit
	reportDir = os.TempDir
)

// StateFunc reports the drawing state at the time of the crash; it may be nil.
type StateFunc func() model.Snapshot

// Recover must be deferred directly:
//
//	defer crash.Recover(ctl.State)
func Recover(state StateFunc) {
	r := recover()
	if r == nil {
		return
	}
	l := applog.WithComponent("crash")
	stack := debug.Stack()
	l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

	path, err := writeReport(r, stack, snapshot(state))
	if err != nil {
		l.Error("write crash report failed", slog.Any("err", err))
	}
	fmt.Fprintf(os.Stderr, "sketchpad crashed. Report: %s\nVersion: %s\nOS/Arch: %s/%s\n",
		path, version.String(), runtime.GOOS, runtime.GOARCH)
	exitFn(2)
}

// snapshot calls state, tolerating a second panic from a broken state source.
func snapshot(state StateFunc) (snap *model.Snapshot) {
	if state == nil {
		return nil
	}
	defer func() {
		if recover() != nil {
			snap = nil
		}
	}()
	s := state()
	return &s
}

func writeReport(panicVal any, stack []byte, snap *model.Snapshot) (string, error) {
	dir := reportDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("sketchpad-crash-%s.log", time.Now().Format("20060102-150405.000")))

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Sketchpad Crash Report\n")
	fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&buf, "Version: %s\n", version.String())
	fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if snap != nil {
		fmt.Fprintf(&buf, "Tool: %s\nBrushSize: %v\nBrushColor: %s\nBackground: %s\nDrawing: %v\n",
			snap.Tool, snap.BrushSize, snap.BrushColor, snap.BackgroundColor, snap.Drawing)
	}
	fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	fmt.Fprintf(&buf, "Stack:\n%s\n", stack)

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return path, err
	}
	return path, nil
}
