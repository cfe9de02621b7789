package render

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/viktori/matteray/pkg/matrix"
)

// Output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// Options configures DOT output.
type Options struct {
	// Title is drawn above the table when non-empty.
	Title string

	// Highlight marks one cell. Cells outside the matrix are ignored.
	Highlight *matrix.Cell
}

const (
	headerColor    = "#e8e8e8"
	highlightColor = "#ffd866"
)

// ToDOT converts m to a Graphviz DOT graph with a single table node.
// Row and column indices are drawn as headers.
func ToDOT[E any](m *matrix.Matrix[E], opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph M {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=plaintext, fontname=\"Helvetica\", fontsize=14];\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  labelloc=\"t\";\n  label=%q;\n", opts.Title)
	}
	buf.WriteString("\n")

	buf.WriteString("  matrix [label=<\n")
	buf.WriteString("    <table border=\"0\" cellborder=\"1\" cellspacing=\"0\" cellpadding=\"6\">\n")

	buf.WriteString("      <tr><td bgcolor=\"" + headerColor + "\"></td>")
	for c := 0; c < m.Columns(); c++ {
		fmt.Fprintf(&buf, "<td bgcolor=\"%s\"><b>%d</b></td>", headerColor, c)
	}
	buf.WriteString("</tr>\n")

	for r := 0; r < m.Rows(); r++ {
		fmt.Fprintf(&buf, "      <tr><td bgcolor=\"%s\"><b>%d</b></td>", headerColor, r)
		for c := 0; c < m.Columns(); c++ {
			buf.WriteString(cellTag(m.At(r, c), r, c, opts.Highlight))
		}
		buf.WriteString("</tr>\n")
	}

	buf.WriteString("    </table>\n")
	buf.WriteString("  >];\n")
	buf.WriteString("}\n")
	return buf.String()
}

func cellTag(v any, r, c int, hl *matrix.Cell) string {
	text := html.EscapeString(fmt.Sprint(v))
	if text == "" {
		text = " "
	}
	attrs := []string{fmt.Sprintf("port=\"r%dc%d\"", r, c)}
	if hl != nil && hl.Row == r && hl.Column == c {
		attrs = append(attrs, "bgcolor=\""+highlightColor+"\"")
	}
	return "<td " + strings.Join(attrs, " ") + ">" + text + "</td>"
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// Render produces m in the given format ("dot" or "svg").
func Render[E any](ctx context.Context, m *matrix.Matrix[E], format string, opts Options) ([]byte, error) {
	dot := ToDOT(m, opts)
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return RenderSVG(ctx, dot)
	}
	return nil, fmt.Errorf("unsupported render format %q (want dot or svg)", format)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with a
// viewBox-only one so the image scales in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
