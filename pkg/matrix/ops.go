package matrix

import (
	"fmt"

	"github.com/viktori/matteray/pkg/array"
)

// Map returns a new matrix of the same shape with fn applied to every element.
func Map[E, R any](m *Matrix[E], fn func(E) R) *Matrix[R] {
	return build(m.Rows(), m.Columns(), func(r, c int) R {
		return fn(m.data[r*m.columns+c])
	})
}

// Merge combines a and b cell by cell with fn. The result covers the
// overlapping region: min(rows) x min(columns).
func Merge[E1, E2, R any](a *Matrix[E1], b *Matrix[E2], fn func(E1, E2) R) *Matrix[R] {
	return build(min(a.Rows(), b.Rows()), min(a.Columns(), b.Columns()), func(r, c int) R {
		return fn(a.data[r*a.columns+c], b.data[r*b.columns+c])
	})
}

// Rotate returns m turned by rot. Left and right rotations swap the row and
// column counts.
func Rotate[E any](m *Matrix[E], rot Rotation) (*Matrix[E], error) {
	rows, columns := m.Rows(), m.Columns()
	at := func(r, c int) E { return m.data[r*columns+c] }

	switch rot {
	case RotateNone:
		return build(rows, columns, at), nil
	case RotateLeft:
		return build(columns, rows, func(r, c int) E { return at(c, columns-1-r) }), nil
	case RotateHalf:
		return build(rows, columns, func(r, c int) E { return at(rows-1-r, columns-1-c) }), nil
	case RotateRight:
		return build(columns, rows, func(r, c int) E { return at(rows-1-c, r) }), nil
	}
	return nil, fmt.Errorf("%w: unknown rotation %v", ErrInvalidArgument, rot)
}

// Mirror returns m reflected along axis. AxisRows reverses each row and
// AxisColumns reverses the order of the rows.
func Mirror[E any](m *Matrix[E], axis Axis) (*Matrix[E], error) {
	rows, columns := m.Rows(), m.Columns()
	at := func(r, c int) E { return m.data[r*columns+c] }

	switch axis {
	case AxisRows:
		return build(rows, columns, func(r, c int) E { return at(r, columns-1-c) }), nil
	case AxisColumns:
		return build(rows, columns, func(r, c int) E { return at(rows-1-r, c) }), nil
	}
	return nil, fmt.Errorf("%w: unknown axis %v", ErrInvalidArgument, axis)
}

// Transpose returns m with rows and columns swapped.
func Transpose[E any](m *Matrix[E]) *Matrix[E] {
	columns := m.Columns()
	return build(columns, m.Rows(), func(r, c int) E { return m.data[c*columns+r] })
}

// Multiply computes the matrix product of a and b using product for
// element multiplication and sum for accumulation.
//
// a.Columns() must equal b.Rows(), otherwise ErrDimensionMismatch is returned.
// Without an identity a zero inner dimension cannot produce a value, so a
// non-empty result over an empty inner dimension yields ErrEmptyOperand.
// Use [MultiplyWithIdentity] for that case.
func Multiply[E any](a, b *Matrix[E], product, sum func(x, y E) E) (*Matrix[E], error) {
	if err := checkMultiply(a, b); err != nil {
		return nil, err
	}
	if a.Columns() == 0 && a.Rows() > 0 || b.Rows() == 0 && b.Columns() > 0 {
		return nil, fmt.Errorf("%w: inner dimension is zero and no identity was provided", ErrEmptyOperand)
	}
	return multiply(a, b, func(row, col *array.Array[E]) (E, error) {
		return array.Dot(row, col, product, sum)
	})
}

// MultiplyWithIdentity is like [Multiply] but fills cells over an empty inner
// dimension with identity.
func MultiplyWithIdentity[E any](a, b *Matrix[E], product, sum func(x, y E) E, identity E) (*Matrix[E], error) {
	if err := checkMultiply(a, b); err != nil {
		return nil, err
	}
	return multiply(a, b, func(row, col *array.Array[E]) (E, error) {
		return array.DotWithIdentity(row, col, product, sum, identity)
	})
}

func checkMultiply[E any](a, b *Matrix[E]) error {
	if a.Columns() != b.Rows() {
		return fmt.Errorf("%w: column count of the left operand (%d) must equal row count of the right operand (%d)",
			ErrDimensionMismatch, a.Columns(), b.Rows())
	}
	return nil
}

func multiply[E any](a, b *Matrix[E], dot func(row, col *array.Array[E]) (E, error)) (*Matrix[E], error) {
	rows, columns := a.Rows(), b.Columns()
	aRows := make([]*array.Array[E], rows)
	for r := range aRows {
		aRows[r], _ = a.Row(r)
	}
	bCols := make([]*array.Array[E], columns)
	for c := range bCols {
		bCols[c], _ = b.Column(c)
	}

	data := make([]E, rows*columns)
	for r := 0; r < rows; r++ {
		for c := 0; c < columns; c++ {
			v, err := dot(aRows[r], bCols[c])
			if err != nil {
				return nil, fmt.Errorf("cell (%d, %d): %w", r, c, err)
			}
			data[r*columns+c] = v
		}
	}
	return &Matrix[E]{data: data, rows: rows, columns: columns}, nil
}
