/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package palette decodes and formats the color and size values shown by the
// toolbar controls.
package palette

import (
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// SwatchAlpha is the opacity of the preview swatch next to a color control.
const SwatchAlpha = 0.4

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// RGB is a decoded color without alpha.
type RGB struct{ R, G, B uint8 }

// ParseHex decodes "#rgb" or "#rrggbb" (any case). Short forms expand by
// doubling each digit. Anything else yields the zero RGB and false.
func ParseHex(s string) (RGB, bool) {
	if !hexColor.MatchString(s) {
		return RGB{}, false
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, false
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, true
}

// Hex returns the lower-case "#rrggbb" form.
func (c RGB) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// NRGBA returns c with the given opacity in [0,1].
func (c RGB) NRGBA(alpha float64) color.NRGBA {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(alpha*255 + 0.5)}
}

// Swatch returns the preview tint for a color control value. Malformed input
// yields a fully transparent color so the swatch simply shows nothing.
func Swatch(s string) color.NRGBA {
	c, ok := ParseHex(s)
	if !ok {
		return color.NRGBA{}
	}
	return c.NRGBA(SwatchAlpha)
}

// Resolve normalizes a configured color: hex values pass through ParseHex,
// otherwise the value is looked up as an SVG 1.1 color name ("black", "tomato").
func Resolve(s string) (string, error) {
	s = strings.TrimSpace(s)
	if c, ok := ParseHex(s); ok {
		return c.Hex(), nil
	}
	if named, ok := colornames.Map[strings.ToLower(s)]; ok {
		return RGB{R: named.R, G: named.G, B: named.B}.Hex(), nil
	}
	return "", fmt.Errorf("palette: %q is neither a hex color nor a known color name", s)
}

// FormatSize renders a brush size for the readout label, zero-padded below 10.
func FormatSize(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if v >= 0 && v < 10 {
		return "0" + s
	}
	return s
}
