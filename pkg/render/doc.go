// Package render draws matrices as Graphviz tables.
//
// [ToDOT] produces a DOT graph with a single HTML-like table node, one cell
// per matrix element. [RenderSVG] lays it out with Graphviz (through the
// embedded go-graphviz runtime, no system install needed).
//
//	dot := render.ToDOT(m, render.Options{Title: "rotation"})
//	svg, err := render.RenderSVG(ctx, dot)
//
// A highlighted cell is filled so a TUI selection or an out-of-range index can
// be shown in context.
package render
