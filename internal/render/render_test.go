package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/antigravity/transitql/internal/layout"
	"github.com/antigravity/transitql/internal/routing"
	"github.com/antigravity/transitql/internal/svg"
	"github.com/antigravity/transitql/internal/transit"
)

func simpleSettings() Settings {
	return Settings{
		Width: 200, Height: 200, Padding: 20, OuterMargin: 10,
		LineWidth: 14, StopRadius: 5,
		StopLabelFontSize: 18, BusLabelFontSize: 18,
		UnderlayerColor: svg.NewNamedColor("white"), UnderlayerWidth: 3,
		ColorPalette: []svg.Color{svg.NewNamedColor("green"), svg.NewRGB(255, 160, 0)},
		Layers:       []string{"bus_lines", "bus_labels", "stop_points", "stop_labels"},
	}
}

func simpleModel(t *testing.T) *transit.Model {
	t.Helper()
	m := transit.NewModel()
	m.AddStop("A", 0, 0, nil)
	m.AddStop("B", 0, 0.01, nil)
	require.NoError(t, m.AddBus("1", []string{"A", "B"}, true))
	return m
}

func TestMapRendersOnlyRequestedLayers(t *testing.T) {
	m := simpleModel(t)
	settings := simpleSettings()
	lay := layout.Compute(m, layout.Settings{Width: settings.Width, Height: settings.Height, Padding: settings.Padding})

	settings.Layers = []string{"stop_points"}
	out := Map(m, lay, settings)
	require.Contains(t, out, "<circle")
	require.NotContains(t, out, "<polyline")
	require.NotContains(t, out, ">1<")
}

func TestMapRendersAllFourLayers(t *testing.T) {
	m := simpleModel(t)
	settings := simpleSettings()
	lay := layout.Compute(m, layout.Settings{Width: settings.Width, Height: settings.Height, Padding: settings.Padding})

	out := Map(m, lay, settings)
	require.Contains(t, out, "<polyline")
	require.Contains(t, out, "<circle")
	require.True(t, strings.Count(out, "<text") > 0)
}

func TestRouteOverlayRestrictsToTraversedEdge(t *testing.T) {
	m := transit.NewModel()
	m.AddStop("A", 0, 0, nil)
	m.AddStop("B", 0, 0.01, nil)
	m.AddStop("C", 0, 0.02, nil)
	require.NoError(t, m.AddBus("1", []string{"A", "B", "C"}, true))

	settings := simpleSettings()
	lay := layout.Compute(m, layout.Settings{Width: settings.Width, Height: settings.Height, Padding: settings.Padding})

	edges := []routing.Edge{{FromStop: "A", ToStop: "B", BusName: "1", Span: 1}}
	out := Route(m, lay, settings, edges)

	require.Contains(t, out, "<rect")
	require.True(t, strings.Count(out, "<circle") == 2, "only the two stops on the traversed edge should render")
}

func TestRouteOverlayEmptyEdgesStillRendersBackground(t *testing.T) {
	m := simpleModel(t)
	settings := simpleSettings()
	lay := layout.Compute(m, layout.Settings{Width: settings.Width, Height: settings.Height, Padding: settings.Padding})

	out := Route(m, lay, settings, nil)
	require.Contains(t, out, "<rect")
	require.NotContains(t, out, "<circle")
}
