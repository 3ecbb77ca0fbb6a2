/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// PathOp is a path command.
type PathOp uint8

const (
	MoveTo PathOp = iota
	LineTo
)

type PathCmd struct {
	Op PathOp
	Pt Pt
}

// Path is a polyline made of MoveTo/LineTo commands, the shape of one
// freehand stroke.
type Path struct{ Cmds []PathCmd }

func (p *Path) MoveTo(x, y float64) { p.Cmds = append(p.Cmds, PathCmd{Op: MoveTo, Pt: Pt{x, y}}) }
func (p *Path) LineTo(x, y float64) { p.Cmds = append(p.Cmds, PathCmd{Op: LineTo, Pt: Pt{x, y}}) }

// Reset drops all commands, keeping the backing array.
func (p *Path) Reset() { p.Cmds = p.Cmds[:0] }

// Empty reports whether the path has no commands.
func (p *Path) Empty() bool { return len(p.Cmds) == 0 }

// Bounds returns the bounding box of the path's points, not including stroke width.
func (p *Path) Bounds() Rect {
	if len(p.Cmds) == 0 {
		return Rect{}
	}
	lo, hi := p.Cmds[0].Pt, p.Cmds[0].Pt
	for _, c := range p.Cmds[1:] {
		lo.X, lo.Y = min(lo.X, c.Pt.X), min(lo.Y, c.Pt.Y)
		hi.X, hi.Y = max(hi.X, c.Pt.X), max(hi.Y, c.Pt.Y)
	}
	return Rect{X: lo.X, Y: lo.Y, W: hi.X - lo.X, H: hi.Y - lo.Y}
}
