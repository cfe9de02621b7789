// Package pipeline runs named numeric matrix operations with caching.
//
// The CLI and the HTTP API describe work the same way: an operation name,
// one or two operand matrices, and optional parameters. A [Runner] validates
// the [Request], looks the result up in the cache, computes it with packages
// array and matrix on a miss, and stores it for next time.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Run(ctx, pipeline.Request{
//	    Op:       pipeline.OpMultiply,
//	    Operands: [][][]float64{{{1, 2}, {3, 4}}, {{5, 6}, {7, 8}}},
//	})
//	// res.Matrix == [][]float64{{19, 22}, {43, 50}}
//
// Batches run concurrently with a bounded number of workers:
//
//	results, err := runner.RunBatch(ctx, reqs, 4)
package pipeline

import (
	"math"
	"sort"

	apperr "github.com/viktori/matteray/pkg/errors"
)

// Operation names.
const (
	OpMultiply   = "multiply"
	OpAdd        = "add"
	OpSubtract   = "subtract"
	OpHadamard   = "hadamard"
	OpScale      = "scale"
	OpRotate     = "rotate"
	OpMirror     = "mirror"
	OpTranspose  = "transpose"
	OpSubmatrix  = "submatrix"
	OpRow        = "row"
	OpColumn     = "column"
	OpSum        = "sum"
	OpMin        = "min"
	OpMax        = "max"
	OpDot        = "dot"
	OpSortRow    = "sort-row"
	OpReverseRow = "reverse-row"
)

// DefaultConcurrency is the batch worker count used when none is given.
const DefaultConcurrency = 4

// Request describes one operation.
type Request struct {
	Op       string        `json:"op"`
	Operands [][][]float64 `json:"operands"`
	Params   Params        `json:"params"`
}

// Params holds the optional arguments of an operation. Only the fields an
// operation reads are validated.
type Params struct {
	Rotation string   `json:"rotation,omitempty"`
	Axis     string   `json:"axis,omitempty"`
	Factor   *float64 `json:"factor,omitempty"`
	Index    *int     `json:"index,omitempty"`
	Range    *Range   `json:"range,omitempty"`
}

// Range selects rows [FromRow, ToRow) and columns [FromColumn, ToColumn).
type Range struct {
	FromRow    int `json:"from_row"`
	ToRow      int `json:"to_row"`
	FromColumn int `json:"from_column"`
	ToColumn   int `json:"to_column"`
}

// Result is the outcome of an operation. Exactly one of Matrix, Vector and
// Scalar is set; an empty matrix result is a non-nil empty slice.
type Result struct {
	Op     string      `json:"op"`
	Matrix [][]float64 `json:"matrix,omitempty"`
	Vector []float64   `json:"vector,omitempty"`
	Scalar *float64    `json:"scalar,omitempty"`
	Cached bool        `json:"cached"`
}

// MarshalJSON keeps empty matrix and vector results as [] so that the
// encoded result always names its kind.
func (r Result) MarshalJSON() ([]byte, error) {
	out := struct {
		Op     string       `json:"op"`
		Matrix *[][]float64 `json:"matrix,omitempty"`
		Vector *[]float64   `json:"vector,omitempty"`
		Scalar *float64     `json:"scalar,omitempty"`
		Cached bool         `json:"cached"`
	}{Op: r.Op, Scalar: r.Scalar, Cached: r.Cached}
	if r.Matrix != nil {
		out.Matrix = &r.Matrix
	}
	if r.Vector != nil {
		out.Vector = &r.Vector
	}
	return json.Marshal(out)
}

// IsFinite reports whether every value in r is neither infinite nor NaN.
// JSON has no encoding for the others.
func (r *Result) IsFinite() bool {
	for _, row := range r.Matrix {
		if !allFinite(row) {
			return false
		}
	}
	if !allFinite(r.Vector) {
		return false
	}
	return r.Scalar == nil || isFinite(*r.Scalar)
}

func allFinite(vs []float64) bool {
	for _, v := range vs {
		if !isFinite(v) {
			return false
		}
	}
	return true
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Operations returns the supported operation names in sorted order.
func Operations() []string {
	names := make([]string, 0, len(operations))
	for name := range operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsOperation reports whether name is a supported operation.
func IsOperation(name string) bool {
	_, ok := operations[name]
	return ok
}

// Validate checks the operation name and operand count. Shape and parameter
// errors are reported when the operation runs.
func (req Request) Validate() error {
	if err := apperr.ValidateOperationName(req.Op); err != nil {
		return err
	}
	op, ok := operations[req.Op]
	if !ok {
		return apperr.New(apperr.ErrCodeInvalidOperation, "unknown operation %q (supported: %v)", req.Op, Operations())
	}
	if len(req.Operands) != op.arity {
		return apperr.New(apperr.ErrCodeInvalidInput, "%s takes %d operand(s), got %d", req.Op, op.arity, len(req.Operands))
	}
	return nil
}

// cacheable strips fields that do not affect the result. Floats are keyed by
// their IEEE 754 bits so that infinities and NaN hash like any other value.
func (req Request) cacheable() any {
	operands := make([][][]uint64, len(req.Operands))
	for i, rows := range req.Operands {
		operands[i] = floatBits(rows)
	}
	params := req.Params
	var factor *uint64
	if params.Factor != nil {
		bits := math.Float64bits(*params.Factor)
		factor = &bits
		params.Factor = nil
	}
	return struct {
		Operands [][][]uint64 `json:"operands"`
		Params   Params       `json:"params"`
		Factor   *uint64      `json:"factor_bits,omitempty"`
	}{operands, params, factor}
}

func floatBits(rows [][]float64) [][]uint64 {
	out := make([][]uint64, len(rows))
	for r, row := range rows {
		out[r] = make([]uint64, len(row))
		for c, v := range row {
			out[r][c] = math.Float64bits(v)
		}
	}
	return out
}
