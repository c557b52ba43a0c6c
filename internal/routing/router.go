package routing

import (
	"math"

	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/dijkstra"
)

// weightScale converts exact float64 minute-weights into the int64 weights
// lvlath's core.Graph requires, for path *selection* only — every reported
// weight is recomputed from the exact float64 byPair table, never from
// the scaled integer distances lvlath returns. See SPEC_FULL.md §4.3.
const weightScale = 1e6

// Route is the materialized result of a build_route query: a total weight
// and an ordered sequence of edges, addressable by an opaque RouteID.
type Route struct {
	Weight float64
	Edges  []Edge
}

// RouteID is an opaque handle scoped to a Router (spec.md §4.3).
type RouteID int

// Router precomputes, lazily per source vertex, shortest paths over a
// Graph's edges using lvlath's Dijkstra, and caches materialized routes
// addressable by opaque RouteID so repeated route_edge calls are O(1).
type Router struct {
	graph   *Graph
	lv      *core.Graph
	byPair  map[string]Edge // "fromName\x00toName" -> winning edge, for O(1) traceback

	distCache map[int]map[string]int64  // source vertex id -> dist (by stop name)
	prevCache map[int]map[string]string // source vertex id -> predecessor (by stop name)

	routes   []Route
}

// NewRouter builds the lvlath-backed weighted directed graph from g's
// synthesized edges. This is spec.md §4.3's "precomputation runs once
// after ingestion" step, minus the per-source Dijkstra pass, which this
// implementation defers to first query (explicitly permitted by spec.md
// §4.3: "Dijkstra per source is acceptable").
func NewRouter(g *Graph) *Router {
	lv := core.NewGraph(core.WithDirected(true), core.WithWeighted())
	for _, name := range g.stopNames {
		_ = lv.AddVertex(name)
	}

	byPair := make(map[string]Edge, len(g.edges))
	for _, e := range g.edges {
		scaled := int64(math.Round(e.Weight * weightScale))
		_, _ = lv.AddEdge(e.FromStop, e.ToStop, scaled)
		byPair[e.FromStop+"\x00"+e.ToStop] = e
	}

	return &Router{
		graph:     g,
		lv:        lv,
		byPair:    byPair,
		distCache: make(map[int]map[string]int64),
		prevCache: make(map[int]map[string]string),
	}
}

// ensureSource runs Dijkstra from fromID's stop name if it has not already
// been computed, and caches the result for the router's lifetime.
func (r *Router) ensureSource(fromID int) {
	if _, ok := r.distCache[fromID]; ok {
		return
	}
	sourceName := r.graph.StopName(fromID)
	dist, prev, err := dijkstra.Dijkstra(r.lv, dijkstra.Source(sourceName), dijkstra.WithReturnPath())
	if err != nil {
		// No reachable vertices from an isolated source; cache empty maps
		// so BuildRoute reports "no path" instead of recomputing forever.
		r.distCache[fromID] = map[string]int64{}
		r.prevCache[fromID] = map[string]string{}
		return
	}
	r.distCache[fromID] = dist
	r.prevCache[fromID] = prev
}

// BuildRoute computes the minimum-time route from fromID to toID. The
// fourth return is false if no path exists (spec.md §4.3: "∅ if no path
// exists"), surfaced upstream as {"error_message": "not found"}.
func (r *Router) BuildRoute(fromID, toID int) (RouteID, float64, int, bool) {
	r.ensureSource(fromID)
	fromName := r.graph.StopName(fromID)
	toName := r.graph.StopName(toID)

	dist := r.distCache[fromID]
	prev := r.prevCache[fromID]

	if fromName == toName {
		id := r.store(Route{Weight: 0, Edges: nil})
		return id, 0, 0, true
	}

	scaledDist, ok := dist[toName]
	if !ok || scaledDist == math.MaxInt64 {
		return 0, 0, 0, false
	}

	// Walk the predecessor chain back to the source, collecting edges,
	// then reverse — each hop's exact weight comes from byPair, never from
	// the scaled int64 distance.
	var edges []Edge
	var totalWeight float64
	cur := toName
	for cur != fromName {
		p, ok := prev[cur]
		if !ok {
			return 0, 0, 0, false
		}
		edge, ok := r.byPair[p+"\x00"+cur]
		if !ok {
			return 0, 0, 0, false
		}
		edges = append(edges, edge)
		totalWeight += edge.Weight
		cur = p
	}
	// Reverse into from->to order.
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}

	id := r.store(Route{Weight: totalWeight, Edges: edges})
	return id, totalWeight, len(edges), true
}

func (r *Router) store(route Route) RouteID {
	r.routes = append(r.routes, route)
	return RouteID(len(r.routes) - 1)
}

// RouteEdge returns the i-th edge of the route materialized by RouteID, and
// whether the index is in range.
func (r *Router) RouteEdge(id RouteID, i int) (Edge, bool) {
	if int(id) < 0 || int(id) >= len(r.routes) {
		return Edge{}, false
	}
	edges := r.routes[id].Edges
	if i < 0 || i >= len(edges) {
		return Edge{}, false
	}
	return edges[i], true
}

// RouteEdgeCount reports how many edges the given route has.
func (r *Router) RouteEdgeCount(id RouteID) int {
	if int(id) < 0 || int(id) >= len(r.routes) {
		return 0
	}
	return len(r.routes[id].Edges)
}

// RouteWeight reports the total weight of a materialized route.
func (r *Router) RouteWeight(id RouteID) float64 {
	if int(id) < 0 || int(id) >= len(r.routes) {
		return 0
	}
	return r.routes[id].Weight
}

// ReleaseRoute drops a materialized route's storage. Supported but not
// required for correctness (spec.md §4.3); if it is never called, a
// route's storage is held for as long as the Router itself.
func (r *Router) ReleaseRoute(id RouteID) {
	if int(id) < 0 || int(id) >= len(r.routes) {
		return
	}
	r.routes[id] = Route{}
}

// Graph exposes the underlying routing graph for callers that need stop-ID
// translation (e.g. the ingest/dispatch shell resolving a Route request's
// stop names).
func (r *Router) Graph() *Graph { return r.graph }
