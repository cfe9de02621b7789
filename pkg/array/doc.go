// Package array provides an immutable, fixed-length array type.
//
// # Overview
//
// An [Array] owns its elements: every constructor copies the input, and every
// accessor that hands out a slice returns a fresh copy. Once built, an Array
// never changes, so it can be shared freely between goroutines.
//
// Out-of-range access is reported as an error instead of a runtime panic:
//
//	a, _ := array.Of("x", "y", "z")
//	v, err := a.Get(1)   // "y", nil
//	_, err = a.Get(3)    // wraps ErrIndexOutOfBounds
//
// [Array.At] is the panicking counterpart for loops that already respect
// [Array.Len].
//
// # Nil Elements
//
// [Of], [Generate] and [Collect] reject nil elements (nil pointers, maps,
// slices, funcs, interfaces) with [ErrNilElement]. [New] accepts them. Value
// types such as int or string are never nil.
//
// A nil *Array is valid and behaves as an empty array.
//
// # Utilities
//
// The package-level functions mirror the standard library's slices package
// where they overlap ([Index], [Contains], [Equal]) and add functional helpers:
// [Map], [Merge], [Sorted], [SortedFunc], [Reversed], [Reduce], [ReduceOK],
// [Dot] and [DotWithIdentity]. They never modify their inputs.
package array
