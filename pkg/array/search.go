package array

// Index returns the index of the first element equal to v, or -1.
func Index[E comparable](a *Array[E], v E) int {
	return IndexFunc(a, func(e E) bool { return e == v })
}

// LastIndex returns the index of the last element equal to v, or -1.
func LastIndex[E comparable](a *Array[E], v E) int {
	return LastIndexFunc(a, func(e E) bool { return e == v })
}

// IndexFunc returns the index of the first element satisfying f, or -1.
func IndexFunc[E any](a *Array[E], f func(E) bool) int {
	for i := 0; i < a.Len(); i++ {
		if f(a.elems[i]) {
			return i
		}
	}
	return -1
}

// LastIndexFunc returns the index of the last element satisfying f, or -1.
func LastIndexFunc[E any](a *Array[E], f func(E) bool) int {
	for i := a.Len() - 1; i >= 0; i-- {
		if f(a.elems[i]) {
			return i
		}
	}
	return -1
}

// Contains reports whether v is present in a.
func Contains[E comparable](a *Array[E], v E) bool {
	return Index(a, v) >= 0
}

// ContainsAll reports whether every value in vs is present in a.
// An empty vs is always contained.
func ContainsAll[E comparable](a *Array[E], vs ...E) bool {
	for _, v := range vs {
		if !Contains(a, v) {
			return false
		}
	}
	return true
}

// Equal reports whether a and b have the same length and equal elements in
// the same order.
func Equal[E comparable](a, b *Array[E]) bool {
	return EqualFunc(a, b, func(x, y E) bool { return x == y })
}

// EqualFunc is like [Equal] but compares elements with eq.
func EqualFunc[E1, E2 any](a *Array[E1], b *Array[E2], eq func(E1, E2) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if !eq(a.elems[i], b.elems[i]) {
			return false
		}
	}
	return true
}
