package routing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/antigravity/transitql/internal/transit"
)

func buildSimpleModel(t *testing.T) *transit.Model {
	t.Helper()
	m := transit.NewModel()
	m.AddStop("A", 0, 0, map[string]float64{"B": 6000})
	m.AddStop("B", 0, 0.05, nil)
	require.NoError(t, m.AddBus("1", []string{"A", "B"}, true))
	return m
}

func TestBuildGraphEdgeWeightLaw(t *testing.T) {
	m := buildSimpleModel(t)
	g := BuildGraph(m, 6, transit.VelocityMetersPerMinute(40))
	for _, e := range g.Edges() {
		require.GreaterOrEqual(t, e.Weight, 6.0)
	}
}

func TestRouterBuildRouteFindsDirectEdge(t *testing.T) {
	m := buildSimpleModel(t)
	g := BuildGraph(m, 6, transit.VelocityMetersPerMinute(40))
	r := NewRouter(g)

	fromID, _ := g.StopID("A")
	toID, _ := g.StopID("B")

	routeID, weight, count, found := r.BuildRoute(fromID, toID)
	require.True(t, found)
	require.Equal(t, 1, count)
	require.InDelta(t, 15.0, weight, 1e-9)

	edge, ok := r.RouteEdge(routeID, 0)
	require.True(t, ok)
	require.Equal(t, "1", edge.BusName)
	require.Equal(t, "A", edge.FromStop)
	require.Equal(t, "B", edge.ToStop)
}

func TestRouterNoPathBetweenDisjointComponents(t *testing.T) {
	m := transit.NewModel()
	m.AddStop("A", 0, 0, map[string]float64{"B": 100})
	m.AddStop("B", 0, 0.001, nil)
	m.AddStop("X", 5, 5, map[string]float64{"Y": 100})
	m.AddStop("Y", 5, 5.001, nil)
	require.NoError(t, m.AddBus("1", []string{"A", "B"}, true))
	require.NoError(t, m.AddBus("2", []string{"X", "Y"}, true))

	g := BuildGraph(m, 6, transit.VelocityMetersPerMinute(40))
	r := NewRouter(g)

	fromID, _ := g.StopID("A")
	toID, _ := g.StopID("X")
	_, _, _, found := r.BuildRoute(fromID, toID)
	require.False(t, found)
}

func TestTieBreakPrefersLexicographicBusName(t *testing.T) {
	m := transit.NewModel()
	m.AddStop("A", 0, 0, map[string]float64{"B": 100})
	m.AddStop("B", 0, 0.001, map[string]float64{"C": 100})
	m.AddStop("C", 0, 0.002, nil)
	require.NoError(t, m.AddBus("Z", []string{"A", "B", "C"}, true))
	require.NoError(t, m.AddBus("M", []string{"A", "B", "C"}, true))

	g := BuildGraph(m, 6, transit.VelocityMetersPerMinute(40))
	var directEdge *Edge
	for i := range g.edges {
		e := g.edges[i]
		if e.FromStop == "A" && e.ToStop == "C" {
			directEdge = &e
		}
	}
	require.NotNil(t, directEdge)
	require.Equal(t, "M", directEdge.BusName)
}
