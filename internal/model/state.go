/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package model holds the drawing state of a sketchpad session.
package model

import "fmt"

// Defaults applied to a fresh session.
const (
	DefaultBrushSize       = 10.0
	DefaultBrushColor      = "#000"
	DefaultBackgroundColor = "#f6f6f6"
)

// Tool identifies the active toolbar mode.
type Tool uint8

const (
	Brush Tool = iota
	Eraser
	Bucket
	Cleaner
)

var toolIDs = [...]string{
	Brush:   "brush",
	Eraser:  "eraser",
	Bucket:  "bucket",
	Cleaner: "cleaner",
}

// ID returns the toolbar identifier of t.
func (t Tool) ID() string {
	if int(t) < len(toolIDs) {
		return toolIDs[t]
	}
	return fmt.Sprintf("tool(%d)", uint8(t))
}

func (t Tool) String() string { return t.ID() }

// ParseTool maps a toolbar identifier to a Tool.
func ParseTool(id string) (Tool, error) {
	for t, s := range toolIDs {
		if s == id {
			return Tool(t), nil
		}
	}
	return 0, fmt.Errorf("model: unknown tool %q", id)
}

// Snapshot is a value copy of the state, comparable with ==.
type Snapshot struct {
	BrushSize       float64
	BrushColor      string
	BackgroundColor string
	Tool            Tool
	Drawing         bool
}

// State stores the current drawing settings. It performs no validation;
// callers keep BrushSize positive.
type State struct {
	s Snapshot
}

// New returns a state initialized with the package defaults.
func New() *State {
	return &State{s: Snapshot{
		BrushSize:       DefaultBrushSize,
		BrushColor:      DefaultBrushColor,
		BackgroundColor: DefaultBackgroundColor,
		Tool:            Brush,
	}}
}

// NewFrom returns a state seeded from snap.
func NewFrom(snap Snapshot) *State { return &State{s: snap} }

func (st *State) BrushSize() float64          { return st.s.BrushSize }
func (st *State) SetBrushSize(v float64)      { st.s.BrushSize = v }
func (st *State) BrushColor() string          { return st.s.BrushColor }
func (st *State) SetBrushColor(c string)      { st.s.BrushColor = c }
func (st *State) BackgroundColor() string     { return st.s.BackgroundColor }
func (st *State) SetBackgroundColor(c string) { st.s.BackgroundColor = c }
func (st *State) Tool() Tool                  { return st.s.Tool }
func (st *State) SetTool(t Tool)              { st.s.Tool = t }
func (st *State) Drawing() bool               { return st.s.Drawing }
func (st *State) SetDrawing(v bool)           { st.s.Drawing = v }
func (st *State) Snapshot() Snapshot          { return st.s }
