package svg

import (
	"strconv"
	"strings"
)

// CircleBuilder seals into a Figure drawing a filled circle.
// Grounded on Svg::Circle's SetCenter/SetRadius/SetFillColor chain.
type CircleBuilder struct {
	center Point
	radius float64
	fill   Color
}

func Circle() *CircleBuilder { return &CircleBuilder{fill: None} }

func (b *CircleBuilder) Center(p Point) *CircleBuilder   { b.center = p; return b }
func (b *CircleBuilder) Radius(r float64) *CircleBuilder  { b.radius = r; return b }
func (b *CircleBuilder) Fill(c Color) *CircleBuilder      { b.fill = c; return b }

func (b *CircleBuilder) Build() Figure {
	return circleFigure{center: b.center, radius: b.radius, fill: b.fill}
}

type circleFigure struct {
	center Point
	radius float64
	fill   Color
}

func (c circleFigure) render(sb *strings.Builder) {
	sb.WriteString("<circle")
	writeAttr(sb, "cx", fmtNum(c.center.X))
	writeAttr(sb, "cy", fmtNum(c.center.Y))
	writeAttr(sb, "r", fmtNum(c.radius))
	writeAttr(sb, "fill", c.fill.String())
	sb.WriteString("/>")
}

// PolylineBuilder seals into a Figure drawing a connected stroke.
// Grounded on Svg::Polyline's AddPoint/SetStrokeColor/SetStrokeWidth chain.
type PolylineBuilder struct {
	points      []Point
	stroke      Color
	strokeWidth float64
	cap, join   string
}

func Polyline() *PolylineBuilder {
	return &PolylineBuilder{stroke: None, cap: CapRound, join: JoinRound}
}

func (b *PolylineBuilder) AddPoint(p Point) *PolylineBuilder       { b.points = append(b.points, p); return b }
func (b *PolylineBuilder) Stroke(c Color) *PolylineBuilder         { b.stroke = c; return b }
func (b *PolylineBuilder) StrokeWidth(w float64) *PolylineBuilder  { b.strokeWidth = w; return b }

func (b *PolylineBuilder) Build() Figure {
	pts := make([]Point, len(b.points))
	copy(pts, b.points)
	return polylineFigure{points: pts, stroke: b.stroke, strokeWidth: b.strokeWidth, cap: b.cap, join: b.join}
}

type polylineFigure struct {
	points      []Point
	stroke      Color
	strokeWidth float64
	cap, join   string
}

func (p polylineFigure) render(sb *strings.Builder) {
	sb.WriteString("<polyline")
	writeAttr(sb, "points", pointsAttr(p.points))
	writeAttr(sb, "fill", "none")
	writeAttr(sb, "stroke", p.stroke.String())
	writeAttr(sb, "stroke-width", fmtNum(p.strokeWidth))
	writeAttr(sb, "stroke-linecap", p.cap)
	writeAttr(sb, "stroke-linejoin", p.join)
	sb.WriteString("/>")
}

func pointsAttr(pts []Point) string {
	var sb strings.Builder
	for i, p := range pts {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(fmtNum(p.X))
		sb.WriteString(",")
		sb.WriteString(fmtNum(p.Y))
	}
	return sb.String()
}

// TextBuilder seals into a Figure drawing a text label.
// Grounded on Svg::Text's SetPoint/SetOffset/SetFontSize/SetFontFamily/
// SetFontWeight/SetData/SetFillColor/SetStrokeColor/SetStrokeWidth chain.
type TextBuilder struct {
	point       Point
	offset      Point
	fontSize    int
	fontFamily  string
	fontWeight  string
	data        string
	fill        Color
	stroke      Color
	strokeWidth float64
	cap, join   string
}

func Text() *TextBuilder {
	return &TextBuilder{fill: None, stroke: None, cap: CapRound, join: JoinRound}
}

func (b *TextBuilder) Point(p Point) *TextBuilder            { b.point = p; return b }
func (b *TextBuilder) Offset(p Point) *TextBuilder           { b.offset = p; return b }
func (b *TextBuilder) FontSize(s int) *TextBuilder            { b.fontSize = s; return b }
func (b *TextBuilder) FontFamily(f string) *TextBuilder       { b.fontFamily = f; return b }
func (b *TextBuilder) FontWeight(w string) *TextBuilder        { b.fontWeight = w; return b }
func (b *TextBuilder) Data(d string) *TextBuilder              { b.data = d; return b }
func (b *TextBuilder) Fill(c Color) *TextBuilder               { b.fill = c; return b }
func (b *TextBuilder) Stroke(c Color) *TextBuilder             { b.stroke = c; return b }
func (b *TextBuilder) StrokeWidth(w float64) *TextBuilder      { b.strokeWidth = w; return b }

func (b *TextBuilder) Build() Figure {
	t := *b
	return textFigure(t)
}

type textFigure TextBuilder

func (t textFigure) render(sb *strings.Builder) {
	sb.WriteString("<text")
	writeAttr(sb, "x", fmtNum(t.point.X+t.offset.X))
	writeAttr(sb, "y", fmtNum(t.point.Y+t.offset.Y))
	writeAttr(sb, "font-size", strconv.Itoa(t.fontSize))
	if t.fontFamily != "" {
		writeAttr(sb, "font-family", t.fontFamily)
	}
	if t.fontWeight != "" {
		writeAttr(sb, "font-weight", t.fontWeight)
	}
	writeAttr(sb, "fill", t.fill.String())
	if !t.stroke.isNone {
		writeAttr(sb, "stroke", t.stroke.String())
		writeAttr(sb, "stroke-width", fmtNum(t.strokeWidth))
		writeAttr(sb, "stroke-linecap", t.cap)
		writeAttr(sb, "stroke-linejoin", t.join)
	}
	sb.WriteString(">")
	sb.WriteString(escapeText(t.data))
	sb.WriteString("</text>")
}

// RectBuilder seals into a Figure drawing an opaque background rectangle,
// used by the route-overlay renderer (svg_adders.cpp AddOpaqueRectToSvg).
type RectBuilder struct {
	origin Point
	width, height float64
	fill   Color
}

func Rect() *RectBuilder { return &RectBuilder{fill: None} }

func (b *RectBuilder) Origin(p Point) *RectBuilder     { b.origin = p; return b }
func (b *RectBuilder) Size(w, h float64) *RectBuilder  { b.width, b.height = w, h; return b }
func (b *RectBuilder) Fill(c Color) *RectBuilder       { b.fill = c; return b }

func (b *RectBuilder) Build() Figure {
	return rectFigure{origin: b.origin, width: b.width, height: b.height, fill: b.fill}
}

type rectFigure struct {
	origin        Point
	width, height float64
	fill          Color
}

func (r rectFigure) render(sb *strings.Builder) {
	sb.WriteString("<rect")
	writeAttr(sb, "x", fmtNum(r.origin.X))
	writeAttr(sb, "y", fmtNum(r.origin.Y))
	writeAttr(sb, "width", fmtNum(r.width))
	writeAttr(sb, "height", fmtNum(r.height))
	writeAttr(sb, "fill", r.fill.String())
	sb.WriteString("/>")
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
