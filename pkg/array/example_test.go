package array_test

import (
	"errors"
	"fmt"

	"github.com/viktori/matteray/pkg/array"
)

func ExampleOf() {
	a, _ := array.Of("x", "y", "z")

	v, _ := a.Get(1)
	fmt.Println(v)

	_, err := a.Get(3)
	fmt.Println(errors.Is(err, array.ErrIndexOutOfBounds))
	// Output:
	// y
	// true
}

func ExampleGenerate() {
	squares, _ := array.Generate(5, func(i int) int { return i * i })
	fmt.Println(squares)
	// Output:
	// [0, 1, 4, 9, 16]
}

func ExampleReduce() {
	a := array.New(5, 12, 103)
	fmt.Println(array.Reduce(a, func(x, y int) int { return x + y }, 0))
	fmt.Println(array.Reduce(array.New[int](), func(x, y int) int { return x + y }, 0))
	// Output:
	// 120
	// 0
}

func ExampleDot() {
	v1 := array.New(1, 2, 3, 4, 5)
	v2 := array.New(2, 4, 6, 8, 10)
	mul := func(x, y int) int { return x * y }
	add := func(x, y int) int { return x + y }

	d, _ := array.Dot(v1, v2, mul, add)
	fmt.Println(d)
	// Output:
	// 110
}
