package render

import (
	"github.com/antigravity/transitql/internal/layout"
	"github.com/antigravity/transitql/internal/routing"
	"github.com/antigravity/transitql/internal/svg"
	"github.com/antigravity/transitql/internal/transit"
)

// Route renders the route-overlay mode of spec.md §4.5: an opaque
// background, then, for each edge of the route in order, only the
// primitives touched by that edge's bus/stops. Grounded on
// svg_adders.cpp's Path* family (PathAddPolylinesToSvg,
// PathAddBusesNamesToSvg, PathAddStopCirclesToSvg, PathAddStopNamesToSvg).
func Route(model *transit.Model, lay layout.Layout, settings Settings, edges []routing.Edge) string {
	doc := svg.NewDocument(settings.Width, settings.Height)

	doc.Add(svg.Rect().
		Origin(svg.Point{X: -settings.OuterMargin, Y: -settings.OuterMargin}).
		Size(settings.Width+2*settings.OuterMargin, settings.Height+2*settings.OuterMargin).
		Fill(settings.UnderlayerColor).
		Build())

	ordinal := busOrdinals(model)

	for _, layerName := range settings.Layers {
		switch layerName {
		case "bus_lines":
			pathAddBusLines(doc, model, lay, settings, edges, ordinal)
		case "bus_labels":
			pathAddBusLabels(doc, model, lay, settings, edges, ordinal)
		case "stop_points":
			pathAddStopPoints(doc, model, lay, settings, edges)
		case "stop_labels":
			pathAddStopLabels(doc, lay, settings, edges)
		}
	}

	return doc.Render()
}

func busOrdinals(model *transit.Model) map[string]int {
	names := model.BusNames()
	out := make(map[string]int, len(names))
	for i, name := range names {
		out[name] = i
	}
	return out
}

// edgeStops reconstructs the contiguous stop subsequence, in from->to
// order, that a routing edge traverses along its bus's stored sequence —
// spec.md §4.5's "locate the unique position i ... or the reverse" rule.
func edgeStops(bus *transit.Bus, e routing.Edge) []string {
	seq := bus.Stops
	for i := 0; i+e.Span < len(seq); i++ {
		if seq[i] == e.FromStop && seq[i+e.Span] == e.ToStop {
			out := make([]string, e.Span+1)
			copy(out, seq[i:i+e.Span+1])
			return out
		}
	}
	for i := 0; i+e.Span < len(seq); i++ {
		if seq[i] == e.ToStop && seq[i+e.Span] == e.FromStop {
			sub := seq[i : i+e.Span+1]
			out := make([]string, len(sub))
			for k, s := range sub {
				out[len(sub)-1-k] = s
			}
			return out
		}
	}
	return []string{e.FromStop, e.ToStop}
}

func pathAddBusLines(doc *svg.Document, model *transit.Model, lay layout.Layout, settings Settings, edges []routing.Edge, ordinal map[string]int) {
	for _, e := range edges {
		bus := model.Bus(e.BusName)
		stops := edgeStops(bus, e)
		b := svg.Polyline().
			Stroke(settings.paletteColor(ordinal[e.BusName])).
			StrokeWidth(settings.LineWidth)
		for _, stopName := range stops {
			b.AddPoint(pt(lay[stopName]))
		}
		doc.Add(b.Build())
	}
}

// isGlobalBusLabelStop reports whether the full-map bus_labels layer would
// draw a label for bus at stopName (its first stop, or its turnaround stop
// for a non-round-trip line) — spec.md §4.5's "only for buses/stops where a
// label exists in the global layer".
func isGlobalBusLabelStop(bus *transit.Bus, stopName string) bool {
	if bus.Stops[0] == stopName {
		return true
	}
	return !bus.IsRoundTrip && bus.Turnaround() == stopName
}

func pathAddBusLabels(doc *svg.Document, model *transit.Model, lay layout.Layout, settings Settings, edges []routing.Edge, ordinal map[string]int) {
	for _, e := range edges {
		bus := model.Bus(e.BusName)
		color := settings.paletteColor(ordinal[e.BusName])
		for _, stopName := range []string{e.FromStop, e.ToStop} {
			if isGlobalBusLabelStop(bus, stopName) {
				addBusLabelAt(doc, lay, settings, stopName, e.BusName, color)
			}
		}
	}
}

func pathAddStopPoints(doc *svg.Document, model *transit.Model, lay layout.Layout, settings Settings, edges []routing.Edge) {
	for _, e := range edges {
		bus := model.Bus(e.BusName)
		for _, stopName := range edgeStops(bus, e) {
			doc.Add(svg.Circle().
				Center(pt(lay[stopName])).
				Radius(settings.StopRadius).
				Fill(svg.NewNamedColor("white")).
				Build())
		}
	}
}

// pathAddStopLabels draws labels only at the route's edge-granularity
// waypoints — the first edge's origin plus every edge's destination
// (spec.md §4.5), not every intermediate stop of a multi-span edge.
func pathAddStopLabels(doc *svg.Document, lay layout.Layout, settings Settings, edges []routing.Edge) {
	if len(edges) == 0 {
		return
	}
	addStopLabelAt(doc, lay, settings, edges[0].FromStop)
	for _, e := range edges {
		addStopLabelAt(doc, lay, settings, e.ToStop)
	}
}
