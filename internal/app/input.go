// Package app wires the transit model, routing graph, layout and renderer
// into the batch ingest/dispatch pipeline described in spec.md §6-§7.
// JSON shapes are tagged variants decoded with encoding/json — the
// standard library's JSON package is what every repo in the retrieved
// corpus uses for this concern, so no third-party JSON library is pulled
// in here (see DESIGN.md).
package app

import (
	"encoding/json"
	"fmt"

	"github.com/antigravity/transitql/internal/render"
	"github.com/antigravity/transitql/internal/svg"
)

// Document is the full input document of spec.md §6.
type Document struct {
	RoutingSettings RoutingSettings   `json:"routing_settings"`
	RenderSettings  RawRenderSettings `json:"render_settings"`
	BaseRequests    []json.RawMessage `json:"base_requests"`
	StatRequests    []json.RawMessage `json:"stat_requests"`
}

// RoutingSettings is spec.md §6's {bus_wait_time, bus_velocity}.
type RoutingSettings struct {
	BusWaitTime int `json:"bus_wait_time"`
	BusVelocity int `json:"bus_velocity"`
}

// RawRenderSettings mirrors render_settings before color parsing; colors
// arrive as either a CSS string or an [r,g,b]/[r,g,b,a] array (spec.md §6),
// so they're decoded as json.RawMessage and resolved by ParseRenderSettings.
type RawRenderSettings struct {
	Width             float64           `json:"width"`
	Height            float64           `json:"height"`
	Padding           float64           `json:"padding"`
	StopRadius        float64           `json:"stop_radius"`
	LineWidth         float64           `json:"line_width"`
	OuterMargin       float64           `json:"outer_margin"`
	StopLabelFontSize int               `json:"stop_label_font_size"`
	StopLabelOffset   [2]float64        `json:"stop_label_offset"`
	UnderlayerColor   json.RawMessage   `json:"underlayer_color"`
	UnderlayerWidth   float64           `json:"underlayer_width"`
	ColorPalette      []json.RawMessage `json:"color_palette"`
	BusLabelFontSize  int               `json:"bus_label_font_size"`
	BusLabelOffset    [2]float64        `json:"bus_label_offset"`
	Layers            []string          `json:"layers"`
}

// ParseRenderSettings resolves every color field and produces the concrete
// render.Settings the renderer consumes.
func ParseRenderSettings(raw RawRenderSettings) (render.Settings, error) {
	underlayer, err := svg.ParseColor(raw.UnderlayerColor)
	if err != nil {
		return render.Settings{}, fmt.Errorf("underlayer_color: %w", err)
	}

	palette := make([]svg.Color, 0, len(raw.ColorPalette))
	for i, c := range raw.ColorPalette {
		parsed, err := svg.ParseColor(c)
		if err != nil {
			return render.Settings{}, fmt.Errorf("color_palette[%d]: %w", i, err)
		}
		palette = append(palette, parsed)
	}

	return render.Settings{
		Width:             raw.Width,
		Height:            raw.Height,
		Padding:           raw.Padding,
		OuterMargin:       raw.OuterMargin,
		LineWidth:         raw.LineWidth,
		StopRadius:        raw.StopRadius,
		StopLabelFontSize: raw.StopLabelFontSize,
		BusLabelFontSize:  raw.BusLabelFontSize,
		StopLabelOffset:   svg.Point{X: raw.StopLabelOffset[0], Y: raw.StopLabelOffset[1]},
		BusLabelOffset:    svg.Point{X: raw.BusLabelOffset[0], Y: raw.BusLabelOffset[1]},
		UnderlayerColor:   underlayer,
		UnderlayerWidth:   raw.UnderlayerWidth,
		ColorPalette:      palette,
		Layers:            raw.Layers,
	}, nil
}

// baseRequestEnvelope peeks at the discriminator field shared by every
// base_requests element.
type baseRequestEnvelope struct {
	Type string `json:"type"`
}

// StopRequest is a base_requests element of type "Stop" (spec.md §6).
type StopRequest struct {
	Name           string             `json:"name"`
	Latitude       float64            `json:"latitude"`
	Longitude      float64            `json:"longitude"`
	RoadDistances  map[string]float64 `json:"road_distances"`
}

// BusRequest is a base_requests element of type "Bus" (spec.md §6).
type BusRequest struct {
	Name        string   `json:"name"`
	Stops       []string `json:"stops"`
	IsRoundTrip bool     `json:"is_roundtrip"`
}

// ParseBaseRequests splits base_requests into Stop and Bus requests,
// preserving within-kind order (spec.md §6's normative "all Stop requests
// first, then all Bus requests" dictates cross-kind order; intra-kind
// order is preserved as input order).
func ParseBaseRequests(raw []json.RawMessage) (stops []StopRequest, buses []BusRequest, err error) {
	for i, r := range raw {
		var env baseRequestEnvelope
		if err := json.Unmarshal(r, &env); err != nil {
			return nil, nil, fmt.Errorf("base_requests[%d]: %w", i, err)
		}
		switch env.Type {
		case "Stop":
			var s StopRequest
			if err := json.Unmarshal(r, &s); err != nil {
				return nil, nil, fmt.Errorf("base_requests[%d]: %w", i, err)
			}
			stops = append(stops, s)
		case "Bus":
			var b BusRequest
			if err := json.Unmarshal(r, &b); err != nil {
				return nil, nil, fmt.Errorf("base_requests[%d]: %w", i, err)
			}
			buses = append(buses, b)
		default:
			return nil, nil, fmt.Errorf("base_requests[%d]: unknown type %q", i, env.Type)
		}
	}
	return stops, buses, nil
}

// StatRequest is a decoded stat_requests element, tagged by Type.
type StatRequest struct {
	Type string `json:"type"`
	ID   int    `json:"id"`
	Name string `json:"name"` // Bus/Stop query target
	From string `json:"from"` // Route query origin
	Stop string `json:"stop"` // Route query destination (spec.md §6)
}

// ParseStatRequests decodes stat_requests, preserving input order — the
// order responses must be emitted in (spec.md §6).
func ParseStatRequests(raw []json.RawMessage) ([]StatRequest, error) {
	out := make([]StatRequest, 0, len(raw))
	for i, r := range raw {
		var q StatRequest
		if err := json.Unmarshal(r, &q); err != nil {
			return nil, fmt.Errorf("stat_requests[%d]: %w", i, err)
		}
		switch q.Type {
		case "Bus", "Stop", "Route", "Map":
		default:
			return nil, fmt.Errorf("stat_requests[%d]: unknown type %q", i, q.Type)
		}
		out = append(out, q)
	}
	return out, nil
}
