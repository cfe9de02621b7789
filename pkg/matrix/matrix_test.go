package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viktori/matteray/pkg/array"
)

func ptr[E any](v E) *E { return &v }

func mustOf[E any](t *testing.T, rows ...*array.Array[E]) *Matrix[E] {
	t.Helper()
	m, err := Of(rows...)
	require.NoError(t, err)
	return m
}

func TestOf_Shapes(t *testing.T) {
	tests := []struct {
		name        string
		rows        []*array.Array[rune]
		wantRows    int
		wantColumns int
	}{
		{name: "no_rows", rows: nil, wantRows: 0, wantColumns: 0},
		{name: "empty_rows", rows: []*array.Array[rune]{array.New[rune](), array.New[rune](), array.New[rune]()}, wantRows: 0, wantColumns: 0},
		{name: "one_row_three_columns", rows: []*array.Array[rune]{array.New('a', 'b', 'c')}, wantRows: 1, wantColumns: 3},
		{name: "two_by_two", rows: []*array.Array[rune]{array.New('a', 'b'), array.New('c', 'd')}, wantRows: 2, wantColumns: 2},
		{name: "five_by_one", rows: []*array.Array[rune]{array.New('a'), array.New('b'), array.New('c'), array.New('d'), array.New('e')}, wantRows: 5, wantColumns: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Of(tt.rows...)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRows, m.Rows())
			assert.Equal(t, tt.wantColumns, m.Columns())
			assert.Equal(t, tt.wantRows*tt.wantColumns, m.Size())
		})
	}
}

func TestOf_Elements(t *testing.T) {
	m := mustOf(t, array.New('a', 'b'), array.New('c', 'd'), array.New('e', 'f'))

	want := [][]rune{{'a', 'b'}, {'c', 'd'}, {'e', 'f'}}
	for r, row := range want {
		for c, v := range row {
			got, err := m.Get(r, c)
			require.NoError(t, err)
			assert.Equal(t, v, got)
		}
	}
}

func TestOf_Rejects(t *testing.T) {
	_, err := Of(array.New('a', 'b'), nil)
	assert.ErrorIs(t, err, ErrNilElement)

	_, err = Of[*rune](array.New[*rune](ptr('a'), ptr('b')), array.New[*rune](nil, ptr('d')))
	assert.ErrorIs(t, err, ErrNilElement)

	_, err = Of(array.New('a', 'b'), array.New('c'))
	assert.ErrorIs(t, err, ErrRaggedRows)

	_, err = Of(array.New('a', 'b'), array.New('c', 'd', 'e'), array.New('f'))
	assert.ErrorIs(t, err, ErrRaggedRows)
}

func TestNew(t *testing.T) {
	m, err := New([]string{"a", "b", "c"}, []string{"d", "e", "f"})
	require.NoError(t, err)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Columns())

	_, err = New([]string{"a", "b", "c"}, []string{"d", "e"})
	assert.ErrorIs(t, err, ErrRaggedRows)

	_, err = New([]string{}, []string{"a"})
	assert.ErrorIs(t, err, ErrRaggedRows)

	empty, err := New[string]()
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())

	withNil, err := New([]*string{nil, ptr("b")})
	require.NoError(t, err)
	v, err := withNil.Get(0, 0)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestNew_CopiesInput(t *testing.T) {
	src := [][]int{{1, 2}, {3, 4}}
	m, err := New(src...)
	require.NoError(t, err)
	src[0][0] = 99
	assert.Equal(t, 1, m.At(0, 0))

	out := m.Slice2D()
	out[1][1] = 99
	assert.Equal(t, 4, m.At(1, 1))
}

func TestGenerate(t *testing.T) {
	pow10 := func(c int) int {
		n := 1
		for range c {
			n *= 10
		}
		return n
	}

	m, err := Generate(4, 3, func(r, c int) int { return (r + 1) * pow10(c) })
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 10, 100}, {2, 20, 200}, {3, 30, 300}, {4, 40, 400}}, m.Slice2D())

	sq, err := Square(3, func(r, c int) int { return (r + 1) * pow10(c) })
	require.NoError(t, err)
	assert.True(t, sq.IsSquare())
	assert.Equal(t, 9, sq.Size())
	assert.Equal(t, 300, sq.At(2, 2))

	_, err = Generate(4, 3, func(r, c int) *int {
		if r%2 == 0 && c%2 == 0 {
			return nil
		}
		return ptr(r * c)
	})
	assert.ErrorIs(t, err, ErrNilElement)

	_, err = Square(-1, func(r, c int) int { return 0 })
	assert.ErrorIs(t, err, ErrInvalidDimensions)
	_, err = Generate(2, -1, func(r, c int) int { return 0 })
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestGenerate_KeepsZeroColumnShape(t *testing.T) {
	m, err := Generate(3, 0, func(r, c int) int { return 0 })
	require.NoError(t, err)
	assert.Equal(t, 3, m.Rows())
	assert.Equal(t, 0, m.Columns())
	assert.Equal(t, 0, m.Size())
	assert.True(t, m.IsEmpty())
	assert.Equal(t, "[[], [], []]", m.String())

	_, err = m.Get(0, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
}

func TestCopy(t *testing.T) {
	src := mustOf(t, array.New('a', 'b', 'c'), array.New('d', 'e', 'f'))
	cp, err := Copy(src)
	require.NoError(t, err)
	assert.True(t, Equal(src, cp))

	withNil, err := New([]*rune{nil, ptr('b')}, []*rune{ptr('c'), nil})
	require.NoError(t, err)
	_, err = Copy(withNil)
	assert.ErrorIs(t, err, ErrNilElement)
}

func TestGet_OutOfBounds(t *testing.T) {
	m := mustOf(t, array.New("a", "b", "c"), array.New("d", "e", "f"))

	for _, idx := range [][2]int{{-1, 0}, {2, 0}, {0, -1}, {0, 3}} {
		_, err := m.Get(idx[0], idx[1])
		assert.ErrorIs(t, err, ErrIndexOutOfBounds, "index %v", idx)
	}
	assert.Panics(t, func() { m.At(2, 0) })
}

func TestRowAndColumn(t *testing.T) {
	m := mustOf(t, array.New("a", "b", "c", "d"), array.New("e", "f", "g", "h"))

	row, err := m.Row(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"e", "f", "g", "h"}, row.Slice())

	col, err := m.Column(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "g"}, col.Slice())

	_, err = m.Row(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
	_, err = m.Row(2)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
	_, err = m.Column(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
	_, err = m.Column(4)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
}

func TestSubMatrix(t *testing.T) {
	m := mustOf(t, array.New(1, 2, 3, 4), array.New(5, 6, 7, 8), array.New(9, 10, 11, 12))

	sub, err := m.SubMatrix(1, 3, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{6, 7}, {10, 11}}, sub.Slice2D())

	same, err := m.SubMatrix(0, 3, 0, 4)
	require.NoError(t, err)
	assert.Same(t, m, same)

	_, err = m.SubMatrix(0, 4, 0, 4)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
	_, err = m.SubMatrix(-1, 3, 0, 4)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
	_, err = m.SubMatrix(0, 3, 0, 5)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
	_, err = m.SubMatrix(2, 1, 0, 4)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestIteration(t *testing.T) {
	m := mustOf(t, array.New("a", "b"), array.New("c", "d"))

	var vals []string
	for v := range m.Values() {
		vals = append(vals, v)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, vals)
	assert.Equal(t, vals, m.Slice())

	var cells []Cell
	for cell := range m.All() {
		cells = append(cells, cell)
	}
	assert.Equal(t, []Cell{{0, 0}, {0, 1}, {1, 0}, {1, 1}}, cells)
}

func TestString(t *testing.T) {
	assert.Equal(t, "[]", Empty[int]().String())
	assert.Equal(t, "[[a, b], [c, d]]", mustOf(t, array.New("a", "b"), array.New("c", "d")).String())
}

func TestEqualAndContains(t *testing.T) {
	a := mustOf(t, array.New(1, 2), array.New(3, 4))
	b := mustOf(t, array.New(1, 2), array.New(3, 4))
	c := mustOf(t, array.New(1, 2, 3, 4))

	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
	assert.True(t, Equal(Empty[int](), nil))
	assert.True(t, Contains(a, 4))
	assert.False(t, Contains(a, 5))
	assert.True(t, ContainsAll(a, 1, 4))
	assert.False(t, ContainsAll(a, 1, 5))
}

func TestNilMatrix(t *testing.T) {
	var m *Matrix[int]
	assert.Equal(t, 0, m.Rows())
	assert.Equal(t, 0, m.Columns())
	assert.True(t, m.IsEmpty())
	assert.True(t, m.IsSquare())
	assert.Equal(t, []int{}, m.Slice())
	assert.Equal(t, "[]", m.String())
}
