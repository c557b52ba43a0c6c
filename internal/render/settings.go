package render

import "github.com/antigravity/transitql/internal/svg"

// Settings mirrors spec.md §3/§6's render_settings: canvas geometry, layer
// order, palette and font sizing. Grounded on manager.h's RenderSettings.
type Settings struct {
	Width, Height float64
	Padding       float64
	OuterMargin   float64

	LineWidth  float64
	StopRadius float64

	StopLabelFontSize int
	BusLabelFontSize  int
	StopLabelOffset   svg.Point
	BusLabelOffset    svg.Point

	UnderlayerColor svg.Color
	UnderlayerWidth float64

	ColorPalette []svg.Color

	// Layers is the draw order, a subset of
	// {"bus_lines","bus_labels","stop_points","stop_labels"} (spec.md §6).
	Layers []string
}

// paletteColor returns the palette color for a bus at ordinal index,
// cycling modulo the palette length (spec.md §4.5 bus_lines).
func (s Settings) paletteColor(ordinal int) svg.Color {
	if len(s.ColorPalette) == 0 {
		return svg.None
	}
	return s.ColorPalette[ordinal%len(s.ColorPalette)]
}
