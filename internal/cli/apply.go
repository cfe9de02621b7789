package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/viktori/matteray/pkg/codec"
	apperr "github.com/viktori/matteray/pkg/errors"
	"github.com/viktori/matteray/pkg/matrix"
	"github.com/viktori/matteray/pkg/pipeline"
)

// applyOpts holds the command-line flags for the apply command.
type applyOpts struct {
	rotation string  // rotate: none, left, half, right
	axis     string  // mirror: rows, columns
	factor   float64 // scale
	index    int     // row, column
	rng      string  // submatrix: "r0:r1,c0:c1"
	output   string  // write the result to a .json or .toml file
	name     string  // document name for --output
}

// applyCommand creates the apply command.
func (c *CLI) applyCommand() *cobra.Command {
	var opts applyOpts

	cmd := &cobra.Command{
		Use:   "apply OP FILE...",
		Short: "Run an operation on one or two matrix files",
		Long: `Run a pipeline operation on matrices loaded from JSON or TOML files.

Binary operations (multiply, add, subtract, hadamard, dot) take two files,
all others take one. Use "matteray apply --help" to see the parameters.`,
		Example: `  matteray apply multiply a.json b.json
  matteray apply rotate m.toml --rotation right -o rotated.toml
  matteray apply submatrix m.json --range 0:2,1:3`,
		Args: cobra.MinimumNArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return pipeline.Operations(), cobra.ShellCompDirectiveNoFileComp
			}
			return []string{"json", "toml"}, cobra.ShellCompDirectiveFilterFileExt
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := opts.request(cmd, args[0])
			if err != nil {
				return err
			}
			for _, path := range args[1:] {
				doc, err := readDocument(path)
				if err != nil {
					return err
				}
				req.Operands = append(req.Operands, doc.Matrix.Slice2D())
				if opts.name == "" {
					opts.name = doc.Name
				}
			}
			return c.runApply(cmd, req, opts)
		},
	}

	cmd.Flags().StringVar(&opts.rotation, "rotation", "", "rotation for rotate: none, left, half, right")
	cmd.Flags().StringVar(&opts.axis, "axis", "", "axis for mirror: rows, columns")
	cmd.Flags().Float64Var(&opts.factor, "factor", 1, "factor for scale")
	cmd.Flags().IntVar(&opts.index, "index", 0, "index for row and column")
	cmd.Flags().StringVar(&opts.rng, "range", "", "half-open range for submatrix: FROM_ROW:TO_ROW,FROM_COL:TO_COL")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the result to a .json or .toml file")
	cmd.Flags().StringVar(&opts.name, "name", "", "document name for --output (default: first input name)")

	return cmd
}

// request builds a pipeline request from the flags the user actually set.
func (opts applyOpts) request(cmd *cobra.Command, op string) (pipeline.Request, error) {
	req := pipeline.Request{Op: op}
	flags := cmd.Flags()

	if flags.Changed("rotation") {
		req.Params.Rotation = opts.rotation
	}
	if flags.Changed("axis") {
		req.Params.Axis = opts.axis
	}
	if flags.Changed("factor") {
		factor := opts.factor
		req.Params.Factor = &factor
	}
	if flags.Changed("index") {
		index := opts.index
		req.Params.Index = &index
	}
	if flags.Changed("range") {
		rng, err := parseRange(opts.rng)
		if err != nil {
			return req, err
		}
		req.Params.Range = rng
	}
	if opts.output != "" {
		if err := apperr.ValidateDocumentPath(opts.output); err != nil {
			return req, err
		}
	}
	return req, nil
}

func (c *CLI) runApply(cmd *cobra.Command, req pipeline.Request, opts applyOpts) error {
	runner, closeCache := c.newRunner(cmd.Context())
	defer closeCache()

	prog := newProgress(c.Logger)
	res, err := runner.Run(cmd.Context(), req)
	if err != nil {
		return err
	}
	prog.done("applied " + req.Op)

	if res.Scalar != nil && opts.output == "" {
		fmt.Fprintln(cmd.OutOrStdout(), StyleNumber.Render(formatValue(*res.Scalar)))
		return nil
	}

	m, err := resultMatrix(res)
	if err != nil {
		return apperr.FromDomain(err)
	}

	if opts.output != "" {
		doc := codec.Document[float64]{Name: opts.name, Matrix: m}
		if err := codec.ExportFile(opts.output, doc); err != nil {
			return apperr.FromDomain(err)
		}
		printSuccess("Applied %s", req.Op)
		printFile(opts.output)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), matrixTable(m, nil))
	printShape(m.Rows(), m.Columns(), res.Cached)
	return nil
}

// resultMatrix returns the result as a matrix. Vectors become a single row
// and scalars a 1×1 matrix.
func resultMatrix(res *pipeline.Result) (*matrix.Matrix[float64], error) {
	switch {
	case res.Scalar != nil:
		return matrix.New([]float64{*res.Scalar})
	case res.Vector != nil:
		return matrix.New(res.Vector)
	}
	return matrix.New(res.Matrix...)
}

// parseRange parses "r0:r1,c0:c1".
func parseRange(s string) (*pipeline.Range, error) {
	invalid := apperr.New(apperr.ErrCodeInvalidArgument, "invalid range %q (want FROM_ROW:TO_ROW,FROM_COL:TO_COL)", s)

	rows, cols, ok := strings.Cut(s, ",")
	if !ok {
		return nil, invalid
	}
	fromRow, toRow, err := parseBounds(rows)
	if err != nil {
		return nil, invalid
	}
	fromCol, toCol, err := parseBounds(cols)
	if err != nil {
		return nil, invalid
	}
	return &pipeline.Range{FromRow: fromRow, ToRow: toRow, FromColumn: fromCol, ToColumn: toCol}, nil
}

func parseBounds(s string) (int, int, error) {
	from, to, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, 0, fmt.Errorf("missing colon in %q", s)
	}
	f, err := strconv.Atoi(strings.TrimSpace(from))
	if err != nil {
		return 0, 0, err
	}
	t, err := strconv.Atoi(strings.TrimSpace(to))
	if err != nil {
		return 0, 0, err
	}
	return f, t, nil
}
