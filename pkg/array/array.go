package array

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/viktori/matteray/internal/nilness"
)

var (
	// ErrIndexOutOfBounds is returned when an index or range endpoint falls
	// outside the array.
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrInvalidRange is returned by [Array.SubArray] when from > to.
	ErrInvalidRange = errors.New("invalid range")

	// ErrInvalidLength is returned by [Generate] for a negative length.
	ErrInvalidLength = errors.New("illegal length")

	// ErrNilElement is returned by the strict constructors when an element is nil.
	ErrNilElement = errors.New("nil element")

	// ErrDimensionMismatch is returned by [Dot] when the operands differ in length.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrEmptyOperand is returned by [Dot] when both operands are empty and no
	// identity is available.
	ErrEmptyOperand = errors.New("empty operand")
)

// Array is an immutable, ordered sequence of fixed length.
//
// The zero value and a nil *Array are both empty arrays.
type Array[E any] struct {
	elems []E
}

// Empty returns an array with no elements.
func Empty[E any]() *Array[E] {
	return &Array[E]{}
}

// New returns an array holding a copy of elems. Nil elements are permitted.
func New[E any](elems ...E) *Array[E] {
	return wrap(clone(elems))
}

// Of returns an array holding a copy of elems.
// It returns ErrNilElement if any element is nil.
func Of[E any](elems ...E) (*Array[E], error) {
	if i := nilness.Index(elems); i >= 0 {
		return nil, fmt.Errorf("%w at index %d", ErrNilElement, i)
	}
	return wrap(clone(elems)), nil
}

// Generate returns an array of the given length where element i is fn(i).
// A negative length yields ErrInvalidLength, and a nil value from fn yields
// ErrNilElement.
func Generate[E any](length int, fn func(i int) E) (*Array[E], error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}
	elems := make([]E, length)
	for i := range elems {
		v := fn(i)
		if nilness.IsNil(v) {
			return nil, fmt.Errorf("%w at index %d", ErrNilElement, i)
		}
		elems[i] = v
	}
	return wrap(elems), nil
}

// Collect drains seq into a new array, rejecting nil elements.
func Collect[E any](seq iter.Seq[E]) (*Array[E], error) {
	var elems []E
	for v := range seq {
		if nilness.IsNil(v) {
			return nil, fmt.Errorf("%w at index %d", ErrNilElement, len(elems))
		}
		elems = append(elems, v)
	}
	return wrap(elems), nil
}

// wrap takes ownership of elems without copying.
func wrap[E any](elems []E) *Array[E] {
	if len(elems) == 0 {
		return &Array[E]{}
	}
	return &Array[E]{elems: elems}
}

func clone[E any](s []E) []E {
	if len(s) == 0 {
		return nil
	}
	out := make([]E, len(s))
	copy(out, s)
	return out
}

// Len returns the number of elements.
func (a *Array[E]) Len() int {
	if a == nil {
		return 0
	}
	return len(a.elems)
}

// IsEmpty reports whether the array has no elements.
func (a *Array[E]) IsEmpty() bool {
	return a.Len() == 0
}

// Get returns the element at index i, or ErrIndexOutOfBounds.
func (a *Array[E]) Get(i int) (E, error) {
	if i < 0 || i >= a.Len() {
		var zero E
		return zero, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfBounds, i, a.Len())
	}
	return a.elems[i], nil
}

// At returns the element at index i and panics if i is out of range.
func (a *Array[E]) At(i int) E {
	return a.elems[i]
}

// SubArray returns the elements in [from, to) as a new array.
// Asking for the full range returns the receiver, which is safe because
// arrays are immutable.
func (a *Array[E]) SubArray(from, to int) (*Array[E], error) {
	n := a.Len()
	if from == 0 && to == n {
		if a == nil {
			return Empty[E](), nil
		}
		return a, nil
	}
	if err := checkRange(from, to, n); err != nil {
		return nil, err
	}
	return wrap(clone(a.elems[from:to])), nil
}

func checkRange(from, to, size int) error {
	if from < 0 {
		return fmt.Errorf("%w: from = %d", ErrIndexOutOfBounds, from)
	}
	if to > size {
		return fmt.Errorf("%w: to = %d", ErrIndexOutOfBounds, to)
	}
	if from > to {
		return fmt.Errorf("%w: from(%d) > to(%d)", ErrInvalidRange, from, to)
	}
	return nil
}

// Slice returns a copy of the elements.
func (a *Array[E]) Slice() []E {
	if a == nil {
		return []E{}
	}
	out := make([]E, len(a.elems))
	copy(out, a.elems)
	return out
}

// All returns an iterator over index-element pairs in order.
func (a *Array[E]) All() iter.Seq2[int, E] {
	return func(yield func(int, E) bool) {
		for i := 0; i < a.Len(); i++ {
			if !yield(i, a.elems[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements in order.
func (a *Array[E]) Values() iter.Seq[E] {
	return func(yield func(E) bool) {
		for i := 0; i < a.Len(); i++ {
			if !yield(a.elems[i]) {
				return
			}
		}
	}
}

// String formats the array as "[e0, e1, ...]".
func (a *Array[E]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < a.Len(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v", a.elems[i])
	}
	b.WriteByte(']')
	return b.String()
}
