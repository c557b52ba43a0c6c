// Package routing builds the minimum-time routing graph from a frozen
// transit model and answers shortest-path queries against it. Stop-index
// assignment and edge synthesis are grounded on manager.h's BuildRoutes;
// the shortest-path computation itself is grounded on
// github.com/katalvlaran/lvlath's core.Graph + dijkstra.Dijkstra, the one
// real graph-algorithms dependency present in the retrieved corpus.
package routing

import (
	"sort"

	"github.com/antigravity/transitql/internal/transit"
)

// Edge is a single "ride without transferring" synthesized from a bus
// timetable, the unit spec.md §3 calls a routing-graph edge.
type Edge struct {
	From, To int     // dense vertex IDs
	FromStop, ToStop string
	Weight   float64 // minutes, wait time prepaid (spec.md §4.2)
	BusName  string
	Span     int // number of stops traversed
}

// Graph is the stop-indexed, edge-synthesized routing graph: vertex IDs
// assigned in stop-name lexicographic order (spec.md §4.2's determinism
// anchor), edges deduplicated per unordered stop pair by the
// (weight, bus_name, span) tie-break rule.
type Graph struct {
	stopNames []string          // index -> name, lexicographic
	stopID    map[string]int    // name -> index
	edges     []Edge            // final synthesized edges, stable order
}

// candidate is one (i,j) scan result competing for an unordered stop pair.
type candidate struct {
	fromStop, toStop string
	weight           float64
	busName          string
	span             int
}

// less implements the lexicographic tuple (weight, bus_name, span) tie
// break from spec.md §4.2: minimum tuple wins.
func (c candidate) less(o candidate) bool {
	if c.weight != o.weight {
		return c.weight < o.weight
	}
	if c.busName != o.busName {
		return c.busName < o.busName
	}
	return c.span < o.span
}

// BuildGraph assigns dense stop IDs and synthesizes routing-graph edges
// from every bus in model, per spec.md §4.2. waitTime is in minutes,
// velocityMetersPerMin is the converted bus speed (transit.VelocityMetersPerMinute).
func BuildGraph(model *transit.Model, waitTime float64, velocityMetersPerMin float64) *Graph {
	names := model.StopNames()
	stopID := make(map[string]int, len(names))
	for i, name := range names {
		stopID[name] = i
	}

	best := make(map[string]candidate) // unordered key -> winning candidate

	for _, busName := range model.BusNames() {
		bus := model.Bus(busName)
		seq := bus.Stops
		for i := 0; i < len(seq); i++ {
			var legDistance float64
			for j := i + 1; j < len(seq); j++ {
				from, to := seq[j-1], seq[j]
				meters, ok := model.Distance(from, to)
				if !ok {
					meters = geodesicFallback(model, from, to)
				}
				legDistance += meters

				cand := candidate{
					fromStop: seq[i],
					toStop:   seq[j],
					weight:   waitTime + legDistance/velocityMetersPerMin,
					busName:  busName,
					span:     j - i,
				}
				key := unorderedKey(cand.fromStop, cand.toStop)
				if existing, ok := best[key]; !ok || cand.less(existing) {
					best[key] = cand
				}
			}
		}
	}

	keys := make([]string, 0, len(best))
	for k := range best {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	edges := make([]Edge, 0, len(keys))
	for _, k := range keys {
		c := best[k]
		edges = append(edges, Edge{
			From:     stopID[c.fromStop],
			To:       stopID[c.toStop],
			FromStop: c.fromStop,
			ToStop:   c.toStop,
			Weight:   c.weight,
			BusName:  c.busName,
			Span:     c.span,
		})
	}

	return &Graph{stopNames: names, stopID: stopID, edges: edges}
}

func unorderedKey(a, b string) string {
	if a < b {
		return a + "\x00" + b
	}
	return b + "\x00" + a
}

func geodesicFallback(model *transit.Model, from, to string) float64 {
	a, b := model.Stop(from).Location, model.Stop(to).Location
	return transit.GeoDistance(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}

// StopID returns the dense vertex ID for a stop name and whether it exists.
func (g *Graph) StopID(name string) (int, bool) {
	id, ok := g.stopID[name]
	return id, ok
}

// StopName returns the stop name for a dense vertex ID.
func (g *Graph) StopName(id int) string {
	return g.stopNames[id]
}

// Edges returns every synthesized edge, in stable (unordered-key) order.
func (g *Graph) Edges() []Edge {
	return g.edges
}
