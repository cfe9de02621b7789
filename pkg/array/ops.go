package array

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/viktori/matteray/internal/nilness"
)

// Map returns a new array with fn applied to every element of a.
func Map[E, R any](a *Array[E], fn func(E) R) *Array[R] {
	out := make([]R, a.Len())
	for i := range out {
		out[i] = fn(a.elems[i])
	}
	return wrap(out)
}

// Merge combines a and b element by element with fn. The result is as long as
// the shorter operand.
func Merge[E1, E2, R any](a *Array[E1], b *Array[E2], fn func(E1, E2) R) *Array[R] {
	out := make([]R, min(a.Len(), b.Len()))
	for i := range out {
		out[i] = fn(a.elems[i], b.elems[i])
	}
	return wrap(out)
}

// Sorted returns a new array with the elements of a in ascending order.
func Sorted[E cmp.Ordered](a *Array[E]) *Array[E] {
	out := a.Slice()
	slices.Sort(out)
	return wrap(out)
}

// SortedFunc returns a new array with the elements of a ordered by compare.
// The sort is stable.
func SortedFunc[E any](a *Array[E], compare func(x, y E) int) *Array[E] {
	out := a.Slice()
	slices.SortStableFunc(out, compare)
	return wrap(out)
}

// Reversed returns a new array with the elements of a in reverse order.
func Reversed[E any](a *Array[E]) *Array[E] {
	out := a.Slice()
	slices.Reverse(out)
	return wrap(out)
}

// Reduce folds the non-nil elements of a from left to right with fn.
// The first non-nil element seeds the fold; identity is returned only when
// there is nothing to fold.
func Reduce[E any](a *Array[E], fn func(acc, next E) E, identity E) E {
	if v, ok := ReduceOK(a, fn); ok {
		return v
	}
	return identity
}

// ReduceOK is like [Reduce] without an identity. The boolean is false when a
// holds no non-nil elements.
func ReduceOK[E any](a *Array[E], fn func(acc, next E) E) (E, bool) {
	var acc E
	seeded := false
	for i := 0; i < a.Len(); i++ {
		v := a.elems[i]
		if nilness.IsNil(v) {
			continue
		}
		if !seeded {
			acc, seeded = v, true
			continue
		}
		acc = fn(acc, v)
	}
	return acc, seeded
}

// Dot computes the generalized dot product of a and b: the products of
// corresponding elements folded with sum.
// Operands of different length yield ErrDimensionMismatch; two empty operands
// yield ErrEmptyOperand since there is no identity to return.
func Dot[E any](a, b *Array[E], product, sum func(x, y E) E) (E, error) {
	var zero E
	if err := checkDotOperands(a, b); err != nil {
		return zero, err
	}
	if a.Len() == 0 {
		return zero, fmt.Errorf("%w: dot product of empty arrays requires an identity", ErrEmptyOperand)
	}
	return dot(a, b, product, sum), nil
}

// DotWithIdentity is like [Dot] but returns identity for empty operands.
func DotWithIdentity[E any](a, b *Array[E], product, sum func(x, y E) E, identity E) (E, error) {
	if err := checkDotOperands(a, b); err != nil {
		var zero E
		return zero, err
	}
	if a.Len() == 0 {
		return identity, nil
	}
	return dot(a, b, product, sum), nil
}

func checkDotOperands[E any](a, b *Array[E]) error {
	if a.Len() != b.Len() {
		return fmt.Errorf("%w: lengths %d and %d", ErrDimensionMismatch, a.Len(), b.Len())
	}
	return nil
}

func dot[E any](a, b *Array[E], product, sum func(x, y E) E) E {
	acc := product(a.elems[0], b.elems[0])
	for i := 1; i < a.Len(); i++ {
		acc = sum(acc, product(a.elems[i], b.elems[i]))
	}
	return acc
}
