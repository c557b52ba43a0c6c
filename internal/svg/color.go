// Package svg provides typed SVG figures (circle, polyline, text, rectangle)
// with attribute builders, and a Document that seals them into a rendered
// text stream. Ported from the builder-chain figures in the original
// BusManager's svg.h/svg_adders.cpp into a Go builder that yields an
// immutable figure once sealed, per the source's design notes.
package svg

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Color renders as either a CSS color name/hex string or an rgb()/rgba()
// function, matching the two wire shapes manager.h's ParseColor accepts.
type Color struct {
	raw       string // non-empty for a plain CSS string color
	r, g, b   int
	a         float64
	hasAlpha  bool
	isNone    bool
}

// None is the absence of a color. It renders as "none"; a text figure
// omits its stroke attributes entirely when its stroke is None.
var None = Color{isNone: true}

// NewNamedColor wraps a CSS color string ("red", "#ff0000", ...).
func NewNamedColor(name string) Color {
	return Color{raw: name}
}

// NewRGB builds an opaque rgb() color from 0-255 components.
func NewRGB(r, g, b int) Color {
	return Color{r: r, g: g, b: b}
}

// NewRGBA builds an rgba() color from 0-255 components and a 0-1 alpha.
func NewRGBA(r, g, b int, a float64) Color {
	return Color{r: r, g: g, b: b, a: a, hasAlpha: true}
}

// ParseColor decodes a render-settings color field: either a JSON string or
// a [r,g,b] / [r,g,b,a] array, matching manager.h's ParseColor.
func ParseColor(raw json.RawMessage) (Color, error) {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return NewNamedColor(asString), nil
	}

	var asArray []float64
	if err := json.Unmarshal(raw, &asArray); err != nil {
		return Color{}, fmt.Errorf("color must be a string or [r,g,b]/[r,g,b,a] array: %w", err)
	}
	switch len(asArray) {
	case 3:
		return NewRGB(int(asArray[0]), int(asArray[1]), int(asArray[2])), nil
	case 4:
		return Color{r: int(asArray[0]), g: int(asArray[1]), b: int(asArray[2]), a: asArray[3], hasAlpha: true}, nil
	default:
		return Color{}, fmt.Errorf("color array must have 3 or 4 elements, got %d", len(asArray))
	}
}

// String renders the color as an SVG-legal attribute value.
func (c Color) String() string {
	switch {
	case c.isNone:
		return "none"
	case c.raw != "":
		return c.raw
	case c.hasAlpha:
		return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.r, c.g, c.b, trimFloat(c.a))
	default:
		return fmt.Sprintf("rgb(%d,%d,%d)", c.r, c.g, c.b)
	}
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	return strings.TrimSuffix(s, ".0")
}
