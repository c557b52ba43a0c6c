package svg

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is a 2-D pixel coordinate.
type Point struct {
	X, Y float64
}

// CapRound and JoinRound are the only cap/join values the renderer ever
// needs; the original always picks "round".
const (
	CapRound  = "round"
	JoinRound = "round"
)

// Figure is a sealed SVG primitive, ready to be appended to a Document.
// Figures are produced by builders (CircleBuilder, PolylineBuilder,
// TextBuilder) and are immutable once built.
type Figure interface {
	render(sb *strings.Builder)
}

// Document accumulates figures in draw order and renders them inside a
// fixed-size <svg> wrapper, mirroring Svg::Document::Render in svg.h.
type Document struct {
	width, height float64
	figures       []Figure
}

// NewDocument creates an empty document with the given pixel canvas size.
func NewDocument(width, height float64) *Document {
	return &Document{width: width, height: height}
}

// Add appends a sealed figure to the document's draw order.
func (d *Document) Add(f Figure) {
	d.figures = append(d.figures, f)
}

// Render produces the full SVG text stream.
func (d *Document) Render() string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" ?>`)
	sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="%s" height="%s">`,
		fmtNum(d.width), fmtNum(d.height)))
	for _, f := range d.figures {
		f.render(&sb)
	}
	sb.WriteString(`</svg>`)
	return sb.String()
}

// EscapeForJSON prefixes every literal '"' with a backslash, the exact and
// only escaping rule spec.md §6 mandates for embedding an SVG document into
// a JSON string field.
func EscapeForJSON(svgText string) string {
	return strings.ReplaceAll(svgText, `"`, `\"`)
}

func fmtNum(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func writeAttr(sb *strings.Builder, name, value string) {
	sb.WriteString(" ")
	sb.WriteString(name)
	sb.WriteString(`="`)
	sb.WriteString(value)
	sb.WriteString(`"`)
}
