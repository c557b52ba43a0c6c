package app

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func baseDoc() Document {
	return Document{
		RoutingSettings: RoutingSettings{BusWaitTime: 6, BusVelocity: 40},
		RenderSettings: RawRenderSettings{
			Width: 200, Height: 200, Padding: 30,
			StopRadius: 5, LineWidth: 14, OuterMargin: 10,
			StopLabelFontSize: 20, BusLabelFontSize: 20,
			UnderlayerColor: json.RawMessage(`"white"`),
			UnderlayerWidth: 3,
			ColorPalette:    []json.RawMessage{json.RawMessage(`"green"`), json.RawMessage(`[255,160,0]`)},
			Layers:          []string{"bus_lines", "bus_labels", "stop_points", "stop_labels"},
		},
	}
}

func rawBaseRequests(t *testing.T, items ...string) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, len(items))
	for i, s := range items {
		out[i] = json.RawMessage(s)
	}
	return out
}

func TestScenario1_TwoStopBusNoDistance(t *testing.T) {
	doc := baseDoc()
	doc.BaseRequests = rawBaseRequests(t,
		`{"type":"Stop","name":"A","latitude":55.0,"longitude":37.0,"road_distances":{}}`,
		`{"type":"Stop","name":"B","latitude":55.01,"longitude":37.0,"road_distances":{}}`,
		`{"type":"Bus","name":"1","stops":["A","B"],"is_roundtrip":false}`,
	)
	core, err := Build(doc)
	require.NoError(t, err)

	resp := Answer(core, []StatRequest{{Type: "Bus", ID: 1, Name: "1"}})
	require.Len(t, resp, 1)
	require.Equal(t, 3, resp[0].StopCount)
	require.Equal(t, 2, resp[0].UniqueStopCount)
	require.InDelta(t, 1.0, resp[0].Curvature, 1e-9)
}

func TestScenario2_AsymmetricDistanceFallback(t *testing.T) {
	doc := baseDoc()
	doc.BaseRequests = rawBaseRequests(t,
		`{"type":"Stop","name":"A","latitude":55.0,"longitude":37.0,"road_distances":{"B":1000}}`,
		`{"type":"Stop","name":"B","latitude":55.01,"longitude":37.0,"road_distances":{}}`,
		`{"type":"Bus","name":"1","stops":["A","B","A"],"is_roundtrip":true}`,
	)
	core, err := Build(doc)
	require.NoError(t, err)

	bus := core.Model.Bus("1")
	require.Equal(t, 2000.0, bus.RouteLength)
}

func TestScenario3_RouteTieBreak(t *testing.T) {
	doc := baseDoc()
	doc.BaseRequests = rawBaseRequests(t,
		`{"type":"Stop","name":"A","latitude":0,"longitude":0,"road_distances":{"B":100}}`,
		`{"type":"Stop","name":"B","latitude":0,"longitude":0.001,"road_distances":{"C":100}}`,
		`{"type":"Stop","name":"C","latitude":0,"longitude":0.002,"road_distances":{}}`,
		`{"type":"Bus","name":"M","stops":["A","B","C"],"is_roundtrip":true}`,
		`{"type":"Bus","name":"Z","stops":["A","B","C"],"is_roundtrip":true}`,
	)
	core, err := Build(doc)
	require.NoError(t, err)

	resp := Answer(core, []StatRequest{{Type: "Route", ID: 1, From: "A", Stop: "C"}})
	require.Len(t, resp, 1)
	require.NotEmpty(t, resp[0].Items)
	require.Equal(t, "M", resp[0].Items[1].Bus)
}

func TestScenario4_WaitPrepaymentAccounting(t *testing.T) {
	doc := Document{
		RoutingSettings: RoutingSettings{BusWaitTime: 6, BusVelocity: 40},
		RenderSettings:  baseDoc().RenderSettings,
	}
	doc.BaseRequests = rawBaseRequests(t,
		`{"type":"Stop","name":"A","latitude":0,"longitude":0,"road_distances":{"B":6000}}`,
		`{"type":"Stop","name":"B","latitude":0,"longitude":0.05,"road_distances":{}}`,
		`{"type":"Bus","name":"1","stops":["A","B"],"is_roundtrip":true}`,
	)
	core, err := Build(doc)
	require.NoError(t, err)

	resp := Answer(core, []StatRequest{{Type: "Route", ID: 1, From: "A", Stop: "B"}})
	require.Len(t, resp, 1)
	require.NotNil(t, resp[0].TotalTime)
	require.InDelta(t, 15.0, *resp[0].TotalTime, 1e-9)
	require.Len(t, resp[0].Items, 2)
	require.Equal(t, "Wait", resp[0].Items[0].Type)
	require.Equal(t, 6.0, resp[0].Items[0].Time)
	require.Equal(t, "Bus", resp[0].Items[1].Type)
	require.InDelta(t, 9.0, resp[0].Items[1].Time, 1e-9)
	require.Equal(t, 1, resp[0].Items[1].SpanCount)
}

func TestScenario5_MapDeterminism(t *testing.T) {
	doc := baseDoc()
	doc.BaseRequests = rawBaseRequests(t,
		`{"type":"Stop","name":"A","latitude":0.000,"longitude":10.0,"road_distances":{}}`,
		`{"type":"Stop","name":"B","latitude":0.001,"longitude":10.0,"road_distances":{}}`,
		`{"type":"Stop","name":"C","latitude":0.002,"longitude":10.0,"road_distances":{}}`,
		`{"type":"Stop","name":"D","latitude":0.003,"longitude":10.0,"road_distances":{}}`,
		`{"type":"Bus","name":"1","stops":["A","B","C","D"],"is_roundtrip":false}`,
	)
	core, err := Build(doc)
	require.NoError(t, err)

	ys := map[float64]bool{}
	xs := map[float64]bool{}
	for _, name := range []string{"A", "B", "C", "D"} {
		p := core.Layout[name]
		require.False(t, ys[p.Y], "y coordinates must all differ")
		require.False(t, xs[p.X], "x coordinates must all differ")
		ys[p.Y] = true
		xs[p.X] = true
	}
}

func TestScenario6_UnreachablePair(t *testing.T) {
	doc := baseDoc()
	doc.BaseRequests = rawBaseRequests(t,
		`{"type":"Stop","name":"A","latitude":0,"longitude":0,"road_distances":{"B":100}}`,
		`{"type":"Stop","name":"B","latitude":0,"longitude":0.001,"road_distances":{}}`,
		`{"type":"Stop","name":"X","latitude":5,"longitude":5,"road_distances":{"Y":100}}`,
		`{"type":"Stop","name":"Y","latitude":5,"longitude":5.001,"road_distances":{}}`,
		`{"type":"Bus","name":"1","stops":["A","B"],"is_roundtrip":true}`,
		`{"type":"Bus","name":"2","stops":["X","Y"],"is_roundtrip":true}`,
	)
	core, err := Build(doc)
	require.NoError(t, err)

	resp := Answer(core, []StatRequest{
		{Type: "Route", ID: 1, From: "A", Stop: "X"},
		{Type: "Bus", ID: 2, Name: "1"},
	})
	require.Len(t, resp, 2)
	require.Equal(t, "not found", resp[0].ErrorMessage)
	require.Empty(t, resp[1].ErrorMessage)
}

func TestMapResponseEscapesQuotes(t *testing.T) {
	doc := baseDoc()
	doc.BaseRequests = rawBaseRequests(t,
		`{"type":"Stop","name":"A","latitude":0,"longitude":0,"road_distances":{}}`,
	)
	core, err := Build(doc)
	require.NoError(t, err)

	resp := Answer(core, []StatRequest{{Type: "Map", ID: 1}})
	require.Len(t, resp, 1)
	require.NotContains(t, strings.ReplaceAll(resp[0].Map, `\"`, ""), `"`)
	require.True(t, strings.Contains(resp[0].Map, `\"`))
}
