package cli

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	apperr "github.com/viktori/matteray/pkg/errors"
	"github.com/viktori/matteray/pkg/matrix"
	"github.com/viktori/matteray/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string // output file; the extension picks the format
	format    string // dot or svg, overrides the extension
	title     string // graph label (default: document name)
	highlight string // "row,column" of a cell to mark
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a matrix to SVG or Graphviz DOT",
		Example: `  matteray render m.json -o m.svg
  matteray render m.toml -o m.dot --highlight 1,2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: FILE with the format's extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg (default), dot")
	cmd.Flags().StringVar(&opts.title, "title", "", "title drawn above the table (default: document name)")
	cmd.Flags().StringVar(&opts.highlight, "highlight", "", "cell to highlight as ROW,COLUMN")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, path string, opts renderOpts) error {
	doc, err := readDocument(path)
	if err != nil {
		return err
	}

	format, err := renderFormat(opts)
	if err != nil {
		return err
	}
	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(path, filepath.Ext(path)) + "." + format
	}

	ropts := render.Options{Title: opts.title}
	if ropts.Title == "" {
		ropts.Title = doc.Name
	}
	if opts.highlight != "" {
		cell, err := parseCell(opts.highlight)
		if err != nil {
			return err
		}
		ropts.Highlight = cell
	}

	runner, closeCache := c.newRunner(cmd.Context())
	defer closeCache()

	spinner := newSpinner(cmd.Context(), "Rendering "+doc.Name+"...")
	spinner.Start()
	data, cached, err := runner.Render(cmd.Context(), doc.Matrix, format, ropts)
	spinner.Stop()
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return apperr.Wrap(apperr.ErrCodeInternal, err, "write %s", output)
	}
	c.Logger.Debug("render written", "path", output, "bytes", len(data), "cached", cached)

	printSuccess("Rendered %s", doc.Name)
	printFile(output)
	return nil
}

// renderFormat resolves the output format from --format or the output
// extension. SVG is the default.
func renderFormat(opts renderOpts) (string, error) {
	format := strings.ToLower(opts.format)
	if format == "" && opts.output != "" {
		format = strings.ToLower(strings.TrimPrefix(filepath.Ext(opts.output), "."))
	}
	switch format {
	case "":
		return render.FormatSVG, nil
	case render.FormatSVG, render.FormatDOT:
		return format, nil
	case "gv":
		return render.FormatDOT, nil
	}
	return "", apperr.New(apperr.ErrCodeInvalidFormat, "invalid render format: %s (must be 'svg' or 'dot')", format)
}

// parseCell parses "row,column".
func parseCell(s string) (*matrix.Cell, error) {
	r, c, ok := strings.Cut(s, ",")
	row, errR := strconv.Atoi(strings.TrimSpace(r))
	col, errC := strconv.Atoi(strings.TrimSpace(c))
	if !ok || errR != nil || errC != nil {
		return nil, apperr.New(apperr.ErrCodeInvalidArgument, "invalid cell %q (want ROW,COLUMN)", s)
	}
	return &matrix.Cell{Row: row, Column: col}, nil
}
