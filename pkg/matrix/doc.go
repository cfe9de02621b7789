// Package matrix provides an immutable, rectangular matrix type built on
// [github.com/viktori/matteray/pkg/array].
//
// # Overview
//
// A [Matrix] has a fixed number of rows and columns, and every row has the
// same number of columns. Construction validates that shape: ragged input is
// rejected with [ErrRaggedRows]. Like arrays, matrices copy their input and
// never expose internal storage, so they are safe to share between goroutines.
//
//	m, _ := matrix.Of(array.New(1, 2, 3), array.New(4, 5, 6))
//	m.Rows()    // 2
//	m.Columns() // 3
//	v, _ := m.Get(1, 2) // 6
//
// # Shapes
//
// Input with no rows, or whose rows are all empty, produces a 0 x 0 matrix.
// [Generate] keeps the dimensions it is given, so a 3 x 0 matrix is possible
// and reports Rows() == 3 and Size() == 0.
//
// # Transformations
//
// [Map], [Merge], [Rotate], [Mirror], [Multiply] and [MultiplyWithIdentity]
// build new matrices and leave their inputs untouched. Multiplication is
// generic: callers supply the product and sum functions, so the same code
// works for integers, floats, or any semiring-like element type.
//
// # Errors
//
// Index and range errors share their sentinels with package array, so
// errors.Is(err, array.ErrIndexOutOfBounds) works for both.
package matrix
