package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNew[E any](t *testing.T, rows ...[]E) *Matrix[E] {
	t.Helper()
	m, err := New(rows...)
	require.NoError(t, err)
	return m
}

func TestRotate(t *testing.T) {
	square := [][]rune{{'1', '2', '3'}, {'4', '5', '6'}, {'7', '8', '9'}}
	wide := [][]rune{{'a', 'b', 'c', 'd'}, {'e', 'f', 'g', 'h'}, {'i', 'j', 'k', 'l'}}

	tests := []struct {
		name string
		src  [][]rune
		rot  Rotation
		want [][]rune
	}{
		{"square_none", square, RotateNone, square},
		{"square_left", square, RotateLeft, [][]rune{{'3', '6', '9'}, {'2', '5', '8'}, {'1', '4', '7'}}},
		{"square_half", square, RotateHalf, [][]rune{{'9', '8', '7'}, {'6', '5', '4'}, {'3', '2', '1'}}},
		{"square_right", square, RotateRight, [][]rune{{'7', '4', '1'}, {'8', '5', '2'}, {'9', '6', '3'}}},
		{"wide_left", wide, RotateLeft, [][]rune{{'d', 'h', 'l'}, {'c', 'g', 'k'}, {'b', 'f', 'j'}, {'a', 'e', 'i'}}},
		{"wide_half", wide, RotateHalf, [][]rune{{'l', 'k', 'j', 'i'}, {'h', 'g', 'f', 'e'}, {'d', 'c', 'b', 'a'}}},
		{"wide_right", wide, RotateRight, [][]rune{{'i', 'e', 'a'}, {'j', 'f', 'b'}, {'k', 'g', 'c'}, {'l', 'h', 'd'}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Rotate(mustNew(t, tt.src...), tt.rot)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Slice2D())
		})
	}

	_, err := Rotate(mustNew(t, square...), Rotation(9))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRotate_FullTurn(t *testing.T) {
	src := mustNew(t, []int{1, 2, 3, 4}, []int{5, 6, 7, 8})
	m := src
	for range 4 {
		var err error
		m, err = Rotate(m, RotateRight)
		require.NoError(t, err)
	}
	assert.True(t, Equal(src, m))
}

func TestMirror(t *testing.T) {
	src := mustNew(t, []rune{'1', '2', '3'}, []rune{'4', '5', '6'}, []rune{'7', '8', '9'})

	rows, err := Mirror(src, AxisRows)
	require.NoError(t, err)
	assert.Equal(t, [][]rune{{'3', '2', '1'}, {'6', '5', '4'}, {'9', '8', '7'}}, rows.Slice2D())

	cols, err := Mirror(src, AxisColumns)
	require.NoError(t, err)
	assert.Equal(t, [][]rune{{'7', '8', '9'}, {'4', '5', '6'}, {'1', '2', '3'}}, cols.Slice2D())

	_, err = Mirror(src, Axis(5))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTranspose(t *testing.T) {
	m := mustNew(t, []int{1, 2, 3}, []int{4, 5, 6})
	assert.Equal(t, [][]int{{1, 4}, {2, 5}, {3, 6}}, Transpose(m).Slice2D())
	assert.True(t, Transpose(Empty[int]()).IsEmpty())
}

func TestMap(t *testing.T) {
	m := mustNew(t, []int{1, 2}, []int{3, 4})
	got := Map(m, func(v int) string { return string(rune('a' + v - 1)) })
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, got.Slice2D())
	assert.Equal(t, [][]int{{1, 2}, {3, 4}}, m.Slice2D())
}

func TestMerge(t *testing.T) {
	a := mustNew(t, []int{1, 2, 3}, []int{4, 5, 6}, []int{7, 8, 9})
	b := mustNew(t, []int{10, 20}, []int{30, 40}, []int{50, 60}, []int{70, 80})

	got := Merge(a, b, func(x, y int) int { return x + y })
	assert.Equal(t, 3, got.Rows())
	assert.Equal(t, 2, got.Columns())
	assert.Equal(t, [][]int{{11, 22}, {34, 45}, {57, 68}}, got.Slice2D())

	assert.True(t, Merge(a, Empty[int](), func(x, y int) int { return x + y }).IsEmpty())
}

func TestMultiply(t *testing.T) {
	product := func(x, y int) int { return x * y }
	sum := func(x, y int) int { return x + y }

	a := mustNew(t, []int{1, 2, 3}, []int{4, 5, 6})
	b := mustNew(t, []int{7, 8}, []int{9, 10}, []int{11, 12})

	got, err := Multiply(a, b, product, sum)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{58, 64}, {139, 154}}, got.Slice2D())

	_, err = Multiply(a, a, product, sum)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	empty, err := Multiply(Empty[int](), Empty[int](), product, sum)
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())
}

func TestMultiply_EmptyInner(t *testing.T) {
	product := func(x, y int) int { return x * y }
	sum := func(x, y int) int { return x + y }

	a, err := Generate(2, 0, func(r, c int) int { return 0 })
	require.NoError(t, err)
	b, err := Generate(0, 3, func(r, c int) int { return 0 })
	require.NoError(t, err)

	_, err = Multiply(a, b, product, sum)
	assert.ErrorIs(t, err, ErrEmptyOperand)

	got, err := MultiplyWithIdentity(a, b, product, sum, 0)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 0, 0}, {0, 0, 0}}, got.Slice2D())
}

func TestParseOrientation(t *testing.T) {
	for _, rot := range []Rotation{RotateNone, RotateLeft, RotateHalf, RotateRight} {
		got, err := ParseRotation(rot.String())
		require.NoError(t, err)
		assert.Equal(t, rot, got)
	}
	got, err := ParseRotation(" LEFT ")
	require.NoError(t, err)
	assert.Equal(t, RotateLeft, got)
	_, err = ParseRotation("sideways")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	axis, err := ParseAxis("Columns")
	require.NoError(t, err)
	assert.Equal(t, AxisColumns, axis)
	_, err = ParseAxis("diagonal")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, "Rotation(7)", Rotation(7).String())
}
