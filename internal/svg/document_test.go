package svg

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCircleRendersAttributes(t *testing.T) {
	doc := NewDocument(100, 100)
	doc.Add(Circle().Center(Point{X: 1, Y: 2}).Radius(5).Fill(NewNamedColor("white")).Build())

	out := doc.Render()
	require.Contains(t, out, `cx="1"`)
	require.Contains(t, out, `cy="2"`)
	require.Contains(t, out, `r="5"`)
	require.Contains(t, out, `fill="white"`)
}

func TestPolylinePointsOrder(t *testing.T) {
	p := Polyline().AddPoint(Point{X: 0, Y: 0}).AddPoint(Point{X: 1, Y: 1}).Stroke(NewRGB(1, 2, 3)).Build()
	doc := NewDocument(10, 10)
	doc.Add(p)
	require.Contains(t, doc.Render(), `points="0,0 1,1"`)
	require.Contains(t, doc.Render(), `stroke="rgb(1,2,3)"`)
}

func TestParseColorString(t *testing.T) {
	c, err := ParseColor(json.RawMessage(`"red"`))
	require.NoError(t, err)
	require.Equal(t, "red", c.String())
}

func TestParseColorRGB(t *testing.T) {
	c, err := ParseColor(json.RawMessage(`[255,0,12]`))
	require.NoError(t, err)
	require.Equal(t, "rgb(255,0,12)", c.String())
}

func TestParseColorRGBA(t *testing.T) {
	c, err := ParseColor(json.RawMessage(`[255,0,12,0.5]`))
	require.NoError(t, err)
	require.Equal(t, "rgba(255,0,12,0.5)", c.String())
}

func TestEscapeForJSON(t *testing.T) {
	got := EscapeForJSON(`<svg width="5">`)
	require.Equal(t, `<svg width=\"5\">`, got)
}
