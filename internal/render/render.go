// Package render composes layered SVG documents over a computed layout,
// both for the full map and for a single route overlay. Grounded on
// svg_adders.cpp's AddPolylinesToSvg/AddBusesNamesToSvg/AddStopCirclesToSvg/
// AddStopNamesToSvg/BuildMapSvgDocument dispatcher.
package render

import (
	"github.com/antigravity/transitql/internal/layout"
	"github.com/antigravity/transitql/internal/svg"
	"github.com/antigravity/transitql/internal/transit"
)

// Map renders the full network: every recognized layer in settings.Layers
// order, per spec.md §4.5.
func Map(model *transit.Model, lay layout.Layout, settings Settings) string {
	doc := svg.NewDocument(settings.Width, settings.Height)
	busNames := model.BusNames()
	stopNames := model.StopNames()

	for _, layerName := range settings.Layers {
		switch layerName {
		case "bus_lines":
			addBusLines(doc, model, lay, settings, busNames)
		case "bus_labels":
			addBusLabels(doc, model, lay, settings, busNames)
		case "stop_points":
			addStopPoints(doc, lay, settings, stopNames)
		case "stop_labels":
			addStopLabels(doc, lay, settings, stopNames)
		}
	}
	return doc.Render()
}

func pt(p layout.Point) svg.Point { return svg.Point{X: p.X, Y: p.Y} }

func addBusLines(doc *svg.Document, model *transit.Model, lay layout.Layout, settings Settings, busNames []string) {
	for ordinal, busName := range busNames {
		bus := model.Bus(busName)
		b := svg.Polyline().
			Stroke(settings.paletteColor(ordinal)).
			StrokeWidth(settings.LineWidth)
		for _, stopName := range bus.Stops {
			b.AddPoint(pt(lay[stopName]))
		}
		doc.Add(b.Build())
	}
}

func addBusLabelAt(doc *svg.Document, lay layout.Layout, settings Settings, stopName, busName string, color svg.Color) {
	p := pt(lay[stopName])
	doc.Add(svg.Text().
		Point(p).Offset(settings.BusLabelOffset).
		FontSize(settings.BusLabelFontSize).FontFamily("Verdana").FontWeight("bold").
		Data(busName).
		Fill(settings.UnderlayerColor).Stroke(settings.UnderlayerColor).StrokeWidth(settings.UnderlayerWidth).
		Build())
	doc.Add(svg.Text().
		Point(p).Offset(settings.BusLabelOffset).
		FontSize(settings.BusLabelFontSize).FontFamily("Verdana").FontWeight("bold").
		Data(busName).
		Fill(color).
		Build())
}

func addBusLabels(doc *svg.Document, model *transit.Model, lay layout.Layout, settings Settings, busNames []string) {
	for ordinal, busName := range busNames {
		bus := model.Bus(busName)
		color := settings.paletteColor(ordinal)
		first := bus.Stops[0]
		addBusLabelAt(doc, lay, settings, first, busName, color)
		if !bus.IsRoundTrip {
			if turn := bus.Turnaround(); turn != first {
				addBusLabelAt(doc, lay, settings, turn, busName, color)
			}
		}
	}
}

func addStopPoints(doc *svg.Document, lay layout.Layout, settings Settings, stopNames []string) {
	for _, stopName := range stopNames {
		doc.Add(svg.Circle().
			Center(pt(lay[stopName])).
			Radius(settings.StopRadius).
			Fill(svg.NewNamedColor("white")).
			Build())
	}
}

func addStopLabelAt(doc *svg.Document, lay layout.Layout, settings Settings, stopName string) {
	p := pt(lay[stopName])
	doc.Add(svg.Text().
		Point(p).Offset(settings.StopLabelOffset).
		FontSize(settings.StopLabelFontSize).FontFamily("Verdana").
		Data(stopName).
		Fill(settings.UnderlayerColor).Stroke(settings.UnderlayerColor).StrokeWidth(settings.UnderlayerWidth).
		Build())
	doc.Add(svg.Text().
		Point(p).Offset(settings.StopLabelOffset).
		FontSize(settings.StopLabelFontSize).FontFamily("Verdana").
		Data(stopName).
		Fill(svg.NewNamedColor("black")).
		Build())
}

func addStopLabels(doc *svg.Document, lay layout.Layout, settings Settings, stopNames []string) {
	for _, stopName := range stopNames {
		addStopLabelAt(doc, lay, settings, stopName)
	}
}
