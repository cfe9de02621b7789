package pipeline

import (
	"fmt"

	"github.com/viktori/matteray/pkg/array"
	apperr "github.com/viktori/matteray/pkg/errors"
	"github.com/viktori/matteray/pkg/matrix"
)

type operation struct {
	arity int
	run   func(ms []*matrix.Matrix[float64], p Params) (*Result, error)
}

var operations = map[string]operation{
	OpMultiply: {2, func(ms []*matrix.Matrix[float64], _ Params) (*Result, error) {
		return matrixResult(matrix.MultiplyWithIdentity(ms[0], ms[1], mul, add, 0))
	}},
	OpAdd:      {2, elementwise(add)},
	OpSubtract: {2, elementwise(func(x, y float64) float64 { return x - y })},
	OpHadamard: {2, elementwise(mul)},
	OpScale: {1, func(ms []*matrix.Matrix[float64], p Params) (*Result, error) {
		if p.Factor == nil {
			return nil, missingParam(OpScale, "factor")
		}
		f := *p.Factor
		return matrixResult(matrix.Map(ms[0], func(v float64) float64 { return v * f }), nil)
	}},
	OpRotate: {1, func(ms []*matrix.Matrix[float64], p Params) (*Result, error) {
		if p.Rotation == "" {
			return nil, missingParam(OpRotate, "rotation")
		}
		rot, err := matrix.ParseRotation(p.Rotation)
		if err != nil {
			return nil, err
		}
		return matrixResult(matrix.Rotate(ms[0], rot))
	}},
	OpMirror: {1, func(ms []*matrix.Matrix[float64], p Params) (*Result, error) {
		if p.Axis == "" {
			return nil, missingParam(OpMirror, "axis")
		}
		axis, err := matrix.ParseAxis(p.Axis)
		if err != nil {
			return nil, err
		}
		return matrixResult(matrix.Mirror(ms[0], axis))
	}},
	OpTranspose: {1, func(ms []*matrix.Matrix[float64], _ Params) (*Result, error) {
		return matrixResult(matrix.Transpose(ms[0]), nil)
	}},
	OpSubmatrix: {1, func(ms []*matrix.Matrix[float64], p Params) (*Result, error) {
		if p.Range == nil {
			return nil, missingParam(OpSubmatrix, "range")
		}
		rg := p.Range
		return matrixResult(ms[0].SubMatrix(rg.FromRow, rg.ToRow, rg.FromColumn, rg.ToColumn))
	}},
	OpRow: {1, func(ms []*matrix.Matrix[float64], p Params) (*Result, error) {
		if p.Index == nil {
			return nil, missingParam(OpRow, "index")
		}
		return vectorResult(ms[0].Row(*p.Index))
	}},
	OpColumn: {1, func(ms []*matrix.Matrix[float64], p Params) (*Result, error) {
		if p.Index == nil {
			return nil, missingParam(OpColumn, "index")
		}
		return vectorResult(ms[0].Column(*p.Index))
	}},
	OpSum: {1, func(ms []*matrix.Matrix[float64], _ Params) (*Result, error) {
		return scalarResult(array.Reduce(flatten(ms[0]), add, 0)), nil
	}},
	OpMin: {1, fold(OpMin, func(x, y float64) float64 { return min(x, y) })},
	OpMax: {1, fold(OpMax, func(x, y float64) float64 { return max(x, y) })},
	OpDot: {2, func(ms []*matrix.Matrix[float64], _ Params) (*Result, error) {
		a, err := vectorOperand(ms[0], 0)
		if err != nil {
			return nil, err
		}
		b, err := vectorOperand(ms[1], 1)
		if err != nil {
			return nil, err
		}
		v, err := array.Dot(a, b, mul, add)
		if err != nil {
			return nil, err
		}
		return scalarResult(v), nil
	}},
	OpSortRow: {1, eachRow(array.Sorted[float64])},
	OpReverseRow: {1, eachRow(array.Reversed[float64])},
}

func add(x, y float64) float64 { return x + y }
func mul(x, y float64) float64 { return x * y }

func missingParam(op, name string) error {
	return apperr.New(apperr.ErrCodeInvalidInput, "%s requires the %q parameter", op, name)
}

// elementwise requires equal shapes, unlike matrix.Merge which truncates.
func elementwise(fn func(x, y float64) float64) func([]*matrix.Matrix[float64], Params) (*Result, error) {
	return func(ms []*matrix.Matrix[float64], _ Params) (*Result, error) {
		a, b := ms[0], ms[1]
		if a.Rows() != b.Rows() || a.Columns() != b.Columns() {
			return nil, fmt.Errorf("%w: %dx%d and %dx%d", matrix.ErrDimensionMismatch,
				a.Rows(), a.Columns(), b.Rows(), b.Columns())
		}
		return matrixResult(matrix.Merge(a, b, fn), nil)
	}
}

func fold(op string, fn func(x, y float64) float64) func([]*matrix.Matrix[float64], Params) (*Result, error) {
	return func(ms []*matrix.Matrix[float64], _ Params) (*Result, error) {
		v, ok := array.ReduceOK(flatten(ms[0]), fn)
		if !ok {
			return nil, fmt.Errorf("%w: %s of an empty matrix", matrix.ErrEmptyOperand, op)
		}
		return scalarResult(v), nil
	}
}

func eachRow(fn func(*array.Array[float64]) *array.Array[float64]) func([]*matrix.Matrix[float64], Params) (*Result, error) {
	return func(ms []*matrix.Matrix[float64], _ Params) (*Result, error) {
		m := ms[0]
		rows := make([]*array.Array[float64], m.Rows())
		for r := range rows {
			row, err := m.Row(r)
			if err != nil {
				return nil, err
			}
			rows[r] = fn(row)
		}
		return matrixResult(matrix.FromArrays(rows))
	}
}

func flatten(m *matrix.Matrix[float64]) *array.Array[float64] {
	return array.New(m.Slice()...)
}

// vectorOperand accepts a single row or a single column.
func vectorOperand(m *matrix.Matrix[float64], i int) (*array.Array[float64], error) {
	switch {
	case m.Rows() == 1:
		return m.Row(0)
	case m.Columns() == 1:
		return m.Column(0)
	case m.IsEmpty():
		return array.Empty[float64](), nil
	}
	return nil, fmt.Errorf("%w: operand %d is %dx%d, want a single row or column",
		matrix.ErrInvalidArgument, i, m.Rows(), m.Columns())
}

func matrixResult(m *matrix.Matrix[float64], err error) (*Result, error) {
	if err != nil {
		return nil, err
	}
	return &Result{Matrix: m.Slice2D()}, nil
}

func vectorResult(a *array.Array[float64], err error) (*Result, error) {
	if err != nil {
		return nil, err
	}
	return &Result{Vector: a.Slice()}, nil
}

func scalarResult(v float64) *Result {
	return &Result{Scalar: &v}
}
