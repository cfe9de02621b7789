package matrix

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/viktori/matteray/internal/nilness"
	"github.com/viktori/matteray/pkg/array"
)

var (
	// ErrIndexOutOfBounds is returned when a row or column index falls outside
	// the matrix.
	ErrIndexOutOfBounds = array.ErrIndexOutOfBounds

	// ErrInvalidRange is returned by [Matrix.SubMatrix] when a range is reversed.
	ErrInvalidRange = array.ErrInvalidRange

	// ErrNilElement is returned by the strict constructors for nil rows or elements.
	ErrNilElement = array.ErrNilElement

	// ErrDimensionMismatch is returned by [Multiply] when the inner dimensions differ.
	ErrDimensionMismatch = array.ErrDimensionMismatch

	// ErrEmptyOperand is returned by [Multiply] when an inner dimension is zero
	// and no identity is available.
	ErrEmptyOperand = array.ErrEmptyOperand

	// ErrRaggedRows is returned when rows have different lengths.
	ErrRaggedRows = errors.New("number of columns must be consistent across all rows")

	// ErrInvalidDimensions is returned by [Generate] for a negative row or column count.
	ErrInvalidDimensions = errors.New("illegal size")

	// ErrInvalidArgument is returned for unknown rotations or axes.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Cell addresses a single element of a matrix.
type Cell struct {
	Row    int
	Column int
}

// Matrix is an immutable rows x columns grid stored in row-major order.
//
// The zero value and a nil *Matrix are both 0 x 0 matrices.
type Matrix[E any] struct {
	data    []E
	rows    int
	columns int
}

// Empty returns a 0 x 0 matrix.
func Empty[E any]() *Matrix[E] {
	return &Matrix[E]{}
}

// New builds a matrix from a copy of rows. Every row must have the same
// length. Nil elements are permitted.
func New[E any](rows ...[]E) (*Matrix[E], error) {
	columns, err := consistentColumns(len(rows), func(r int) int { return len(rows[r]) })
	if err != nil {
		return nil, err
	}
	if columns == 0 {
		return Empty[E](), nil
	}
	data := make([]E, 0, len(rows)*columns)
	for _, row := range rows {
		data = append(data, row...)
	}
	return &Matrix[E]{data: data, rows: len(rows), columns: columns}, nil
}

// Of builds a matrix whose rows are the given arrays. Nil rows and nil
// elements are rejected with ErrNilElement.
func Of[E any](rows ...*array.Array[E]) (*Matrix[E], error) {
	for r, row := range rows {
		if row == nil {
			return nil, fmt.Errorf("%w: row %d", ErrNilElement, r)
		}
		if c := array.IndexFunc(row, nilness.IsNil[E]); c >= 0 {
			return nil, fmt.Errorf("%w at (%d, %d)", ErrNilElement, r, c)
		}
	}
	return FromArrays(rows)
}

// FromArrays builds a matrix whose rows are the given arrays. Nil rows are
// rejected; nil elements are permitted.
func FromArrays[E any](rows []*array.Array[E]) (*Matrix[E], error) {
	for r, row := range rows {
		if row == nil {
			return nil, fmt.Errorf("%w: row %d", ErrNilElement, r)
		}
	}
	columns, err := consistentColumns(len(rows), func(r int) int { return rows[r].Len() })
	if err != nil {
		return nil, err
	}
	if columns == 0 {
		return Empty[E](), nil
	}
	data := make([]E, 0, len(rows)*columns)
	for _, row := range rows {
		data = append(data, row.Slice()...)
	}
	return &Matrix[E]{data: data, rows: len(rows), columns: columns}, nil
}

// Generate builds a rows x columns matrix where cell (r, c) is fn(r, c).
// Negative dimensions yield ErrInvalidDimensions and nil values from fn yield
// ErrNilElement. A matrix with rows but no columns (or the reverse) keeps both
// counts.
func Generate[E any](rows, columns int, fn func(r, c int) E) (*Matrix[E], error) {
	if rows < 0 || columns < 0 {
		return nil, fmt.Errorf("%w: %d, %d", ErrInvalidDimensions, rows, columns)
	}
	m := build(rows, columns, fn)
	if i := nilness.Index(m.data); i >= 0 {
		return nil, fmt.Errorf("%w at (%d, %d)", ErrNilElement, i/columns, i%columns)
	}
	return m, nil
}

// Square builds an n x n matrix. See [Generate].
func Square[E any](n int, fn func(r, c int) E) (*Matrix[E], error) {
	return Generate(n, n, fn)
}

// Copy returns a matrix with the contents of m, rejecting nil elements.
// Since matrices are immutable, m itself is returned when it qualifies.
func Copy[E any](m *Matrix[E]) (*Matrix[E], error) {
	if m == nil {
		return Empty[E](), nil
	}
	if i := nilness.Index(m.data); i >= 0 {
		return nil, fmt.Errorf("%w at (%d, %d)", ErrNilElement, i/m.columns, i%m.columns)
	}
	return m, nil
}

// build fills a matrix without validation. Callers guarantee non-negative
// dimensions.
func build[E any](rows, columns int, fn func(r, c int) E) *Matrix[E] {
	data := make([]E, rows*columns)
	for r := 0; r < rows; r++ {
		for c := 0; c < columns; c++ {
			data[r*columns+c] = fn(r, c)
		}
	}
	return &Matrix[E]{data: data, rows: rows, columns: columns}
}

// consistentColumns returns the shared row length, or ErrRaggedRows.
// A matrix whose first row is empty has zero columns and is treated as 0 x 0.
func consistentColumns(rows int, rowLen func(r int) int) (int, error) {
	columns := 0
	for r := 0; r < rows; r++ {
		n := rowLen(r)
		if r == 0 {
			columns = n
		} else if n != columns {
			return 0, fmt.Errorf("%w: row %d has %d columns, want %d", ErrRaggedRows, r, n, columns)
		}
	}
	return columns, nil
}

// Rows returns the number of rows.
func (m *Matrix[E]) Rows() int {
	if m == nil {
		return 0
	}
	return m.rows
}

// Columns returns the number of columns.
func (m *Matrix[E]) Columns() int {
	if m == nil {
		return 0
	}
	return m.columns
}

// Size returns the number of elements, rows * columns.
func (m *Matrix[E]) Size() int {
	return m.Rows() * m.Columns()
}

// IsEmpty reports whether the matrix holds no elements.
func (m *Matrix[E]) IsEmpty() bool {
	return m.Size() == 0
}

// IsSquare reports whether the row and column counts are equal.
func (m *Matrix[E]) IsSquare() bool {
	return m.Rows() == m.Columns()
}

// Get returns the element at (r, c), or ErrIndexOutOfBounds.
func (m *Matrix[E]) Get(r, c int) (E, error) {
	if r < 0 || r >= m.Rows() || c < 0 || c >= m.Columns() {
		var zero E
		return zero, fmt.Errorf("%w: (%d, %d) in %dx%d matrix", ErrIndexOutOfBounds, r, c, m.Rows(), m.Columns())
	}
	return m.data[r*m.columns+c], nil
}

// At returns the element at (r, c) and panics if either index is out of range.
func (m *Matrix[E]) At(r, c int) E {
	if r < 0 || r >= m.Rows() || c < 0 || c >= m.Columns() {
		panic(fmt.Sprintf("matrix: index (%d, %d) out of range [%d, %d)", r, c, m.Rows(), m.Columns()))
	}
	return m.data[r*m.columns+c]
}

// Row returns a copy of row r.
func (m *Matrix[E]) Row(r int) (*array.Array[E], error) {
	if r < 0 || r >= m.Rows() {
		return nil, fmt.Errorf("%w: row %d, rows %d", ErrIndexOutOfBounds, r, m.Rows())
	}
	return array.New(m.data[r*m.columns : (r+1)*m.columns]...), nil
}

// Column returns a copy of column c.
func (m *Matrix[E]) Column(c int) (*array.Array[E], error) {
	if c < 0 || c >= m.Columns() {
		return nil, fmt.Errorf("%w: column %d, columns %d", ErrIndexOutOfBounds, c, m.Columns())
	}
	col := make([]E, m.rows)
	for r := range col {
		col[r] = m.data[r*m.columns+c]
	}
	return array.New(col...), nil
}

// SubMatrix returns the rows [fromRow, toRow) and columns [fromColumn, toColumn)
// as a new matrix. The full range returns the receiver.
func (m *Matrix[E]) SubMatrix(fromRow, toRow, fromColumn, toColumn int) (*Matrix[E], error) {
	if fromRow == 0 && toRow == m.Rows() && fromColumn == 0 && toColumn == m.Columns() {
		if m == nil {
			return Empty[E](), nil
		}
		return m, nil
	}
	if err := checkRange("row", fromRow, toRow, m.Rows()); err != nil {
		return nil, err
	}
	if err := checkRange("column", fromColumn, toColumn, m.Columns()); err != nil {
		return nil, err
	}
	return build(toRow-fromRow, toColumn-fromColumn, func(r, c int) E {
		return m.data[(fromRow+r)*m.columns+fromColumn+c]
	}), nil
}

func checkRange(axis string, from, to, size int) error {
	if from < 0 {
		return fmt.Errorf("%w: from %s = %d", ErrIndexOutOfBounds, axis, from)
	}
	if to > size {
		return fmt.Errorf("%w: to %s = %d", ErrIndexOutOfBounds, axis, to)
	}
	if from > to {
		return fmt.Errorf("%w: from %s(%d) > to %s(%d)", ErrInvalidRange, axis, from, axis, to)
	}
	return nil
}

// Slice returns the elements flattened in row-major order.
func (m *Matrix[E]) Slice() []E {
	out := make([]E, m.Size())
	if m != nil {
		copy(out, m.data)
	}
	return out
}

// Slice2D returns a deep copy of the rows.
func (m *Matrix[E]) Slice2D() [][]E {
	out := make([][]E, m.Rows())
	for r := range out {
		row := make([]E, m.columns)
		copy(row, m.data[r*m.columns:(r+1)*m.columns])
		out[r] = row
	}
	return out
}

// Values returns an iterator over the elements in row-major order.
func (m *Matrix[E]) Values() iter.Seq[E] {
	return func(yield func(E) bool) {
		for i := 0; i < m.Size(); i++ {
			if !yield(m.data[i]) {
				return
			}
		}
	}
}

// All returns an iterator over cells and their elements in row-major order.
func (m *Matrix[E]) All() iter.Seq2[Cell, E] {
	return func(yield func(Cell, E) bool) {
		for i := 0; i < m.Size(); i++ {
			if !yield(Cell{Row: i / m.columns, Column: i % m.columns}, m.data[i]) {
				return
			}
		}
	}
}

// String formats the matrix as "[[a, b], [c, d]]".
func (m *Matrix[E]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for r := 0; r < m.Rows(); r++ {
		if r > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('[')
		for c := 0; c < m.columns; c++ {
			if c > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%v", m.data[r*m.columns+c])
		}
		b.WriteByte(']')
	}
	b.WriteByte(']')
	return b.String()
}

// Equal reports whether a and b have the same shape and equal elements.
func Equal[E comparable](a, b *Matrix[E]) bool {
	return EqualFunc(a, b, func(x, y E) bool { return x == y })
}

// EqualFunc is like [Equal] but compares elements with eq.
func EqualFunc[E1, E2 any](a *Matrix[E1], b *Matrix[E2], eq func(E1, E2) bool) bool {
	if a.Rows() != b.Rows() || a.Columns() != b.Columns() {
		return false
	}
	for i := 0; i < a.Size(); i++ {
		if !eq(a.data[i], b.data[i]) {
			return false
		}
	}
	return true
}

// Contains reports whether v is present anywhere in m.
func Contains[E comparable](m *Matrix[E], v E) bool {
	for e := range m.Values() {
		if e == v {
			return true
		}
	}
	return false
}

// ContainsAll reports whether every value in vs is present in m.
func ContainsAll[E comparable](m *Matrix[E], vs ...E) bool {
	for _, v := range vs {
		if !Contains(m, v) {
			return false
		}
	}
	return true
}
