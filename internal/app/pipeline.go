package app

import (
	"fmt"

	"github.com/antigravity/transitql/internal/layout"
	"github.com/antigravity/transitql/internal/render"
	"github.com/antigravity/transitql/internal/routing"
	"github.com/antigravity/transitql/internal/svg"
	"github.com/antigravity/transitql/internal/transit"
)

// Core is the frozen, read-only state produced by Build: the transit
// model, the routing graph/router, the computed layout and the resolved
// render settings. Once Build returns, every field here is treated as
// read-only for the rest of the process (spec.md §5's query phase).
type Core struct {
	Model       *transit.Model
	Router      *routing.Router
	Layout      layout.Layout
	Settings    render.Settings
	WaitMinutes float64 // bus_wait_time, prepaid into every edge (spec.md §4.2)
}

// Build runs the full ingestion -> BuildRoutes -> layout pipeline in the
// normative order spec.md §6 requires: all Stop requests, then all Bus
// requests, then BuildRoutes. The map layout is computed eagerly here
// rather than lazily on first render, since a batch run always answers at
// least the requests it was given and the cost is identical either way.
func Build(doc Document) (*Core, error) {
	settings, err := ParseRenderSettings(doc.RenderSettings)
	if err != nil {
		return nil, fmt.Errorf("render_settings: %w", err)
	}

	stopReqs, busReqs, err := ParseBaseRequests(doc.BaseRequests)
	if err != nil {
		return nil, fmt.Errorf("base_requests: %w", err)
	}

	model := transit.NewModel()
	for _, s := range stopReqs {
		model.AddStop(s.Name, s.Latitude, s.Longitude, s.RoadDistances)
	}
	for _, b := range busReqs {
		if err := model.AddBus(b.Name, b.Stops, b.IsRoundTrip); err != nil {
			return nil, fmt.Errorf("base_requests: %w", err)
		}
	}

	velocity := transit.VelocityMetersPerMinute(doc.RoutingSettings.BusVelocity)
	graph := routing.BuildGraph(model, float64(doc.RoutingSettings.BusWaitTime), velocity)
	router := routing.NewRouter(graph)

	lay := layout.Compute(model, layout.Settings{
		Width:   settings.Width,
		Height:  settings.Height,
		Padding: settings.Padding,
	})

	return &Core{
		Model:       model,
		Router:      router,
		Layout:      lay,
		Settings:    settings,
		WaitMinutes: float64(doc.RoutingSettings.BusWaitTime),
	}, nil
}

// Answer dispatches stat_requests against the built Core in input order,
// producing one Response per query (spec.md §6).
func Answer(core *Core, queries []StatRequest) []Response {
	out := make([]Response, 0, len(queries))
	for _, q := range queries {
		switch q.Type {
		case "Bus":
			out = append(out, answerBus(core, q))
		case "Stop":
			out = append(out, answerStop(core, q))
		case "Route":
			out = append(out, answerRoute(core, q))
		case "Map":
			out = append(out, answerMap(core, q))
		}
	}
	return out
}

func answerBus(core *Core, q StatRequest) Response {
	bus := core.Model.Bus(q.Name)
	if bus == nil {
		return notFound(q.ID)
	}
	return Response{
		RequestID:       q.ID,
		StopCount:       len(bus.Stops),
		UniqueStopCount: bus.UniqueStopCount,
		RouteLength:     bus.RouteLength,
		Curvature:       bus.Curvature,
	}
}

func answerStop(core *Core, q StatRequest) Response {
	stop := core.Model.Stop(q.Name)
	if stop == nil {
		return notFound(q.ID)
	}
	return Response{RequestID: q.ID, Buses: stop.Buses()}
}

func answerRoute(core *Core, q StatRequest) Response {
	fromID, ok := core.Router.Graph().StopID(q.From)
	if !ok {
		return notFound(q.ID)
	}
	toID, ok := core.Router.Graph().StopID(q.Stop)
	if !ok {
		return notFound(q.ID)
	}

	routeID, weight, edgeCount, found := core.Router.BuildRoute(fromID, toID)
	if !found {
		return notFound(q.ID)
	}

	items := make([]RouteItem, 0, edgeCount*2)
	edges := make([]routing.Edge, 0, edgeCount)
	waitTime := core.WaitMinutes
	for i := 0; i < edgeCount; i++ {
		e, _ := core.Router.RouteEdge(routeID, i)
		items = append(items,
			RouteItem{Type: "Wait", StopName: e.FromStop, Time: waitTime},
			RouteItem{Type: "Bus", Bus: e.BusName, Time: e.Weight - waitTime, SpanCount: e.Span},
		)
		edges = append(edges, e)
	}

	mapSVG := render.Route(core.Model, core.Layout, core.Settings, edges)

	total := weight
	return Response{
		RequestID: q.ID,
		TotalTime: &total,
		Items:     items,
		Map:       svg.EscapeForJSON(mapSVG),
	}
}

func answerMap(core *Core, q StatRequest) Response {
	mapSVG := render.Map(core.Model, core.Layout, core.Settings)
	return Response{RequestID: q.ID, Map: svg.EscapeForJSON(mapSVG)}
}
