package pipeline

import (
	"context"
	"io"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viktori/matteray/pkg/cache"
	apperr "github.com/viktori/matteray/pkg/errors"
	"github.com/viktori/matteray/pkg/observability"
)

func ptr[T any](v T) *T { return &v }

func quietRunner(t *testing.T, c cache.Cache) *Runner {
	t.Helper()
	return NewRunner(c, nil, log.New(io.Discard))
}

var square = [][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}

func TestRun_Operations(t *testing.T) {
	tests := []struct {
		name       string
		req        Request
		wantMatrix [][]float64
		wantVector []float64
		wantScalar *float64
	}{
		{
			name:       "multiply",
			req:        Request{Op: OpMultiply, Operands: [][][]float64{{{1, 2}, {3, 4}}, {{5, 6}, {7, 8}}}},
			wantMatrix: [][]float64{{19, 22}, {43, 50}},
		},
		{
			name:       "add",
			req:        Request{Op: OpAdd, Operands: [][][]float64{{{1, 2}}, {{10, 20}}}},
			wantMatrix: [][]float64{{11, 22}},
		},
		{
			name:       "subtract",
			req:        Request{Op: OpSubtract, Operands: [][][]float64{{{1, 2}}, {{10, 20}}}},
			wantMatrix: [][]float64{{-9, -18}},
		},
		{
			name:       "hadamard",
			req:        Request{Op: OpHadamard, Operands: [][][]float64{{{1, 2}}, {{10, 20}}}},
			wantMatrix: [][]float64{{10, 40}},
		},
		{
			name:       "scale",
			req:        Request{Op: OpScale, Operands: [][][]float64{{{1, 2}}}, Params: Params{Factor: ptr(0.5)}},
			wantMatrix: [][]float64{{0.5, 1}},
		},
		{
			name:       "rotate left",
			req:        Request{Op: OpRotate, Operands: [][][]float64{square}, Params: Params{Rotation: "left"}},
			wantMatrix: [][]float64{{3, 6, 9}, {2, 5, 8}, {1, 4, 7}},
		},
		{
			name:       "mirror columns",
			req:        Request{Op: OpMirror, Operands: [][][]float64{square}, Params: Params{Axis: "columns"}},
			wantMatrix: [][]float64{{7, 8, 9}, {4, 5, 6}, {1, 2, 3}},
		},
		{
			name:       "transpose",
			req:        Request{Op: OpTranspose, Operands: [][][]float64{{{1, 2, 3}}}},
			wantMatrix: [][]float64{{1}, {2}, {3}},
		},
		{
			name:       "submatrix",
			req:        Request{Op: OpSubmatrix, Operands: [][][]float64{square}, Params: Params{Range: &Range{1, 3, 0, 2}}},
			wantMatrix: [][]float64{{4, 5}, {7, 8}},
		},
		{
			name:       "row",
			req:        Request{Op: OpRow, Operands: [][][]float64{square}, Params: Params{Index: ptr(1)}},
			wantVector: []float64{4, 5, 6},
		},
		{
			name:       "column",
			req:        Request{Op: OpColumn, Operands: [][][]float64{square}, Params: Params{Index: ptr(2)}},
			wantVector: []float64{3, 6, 9},
		},
		{
			name:       "sum",
			req:        Request{Op: OpSum, Operands: [][][]float64{square}},
			wantScalar: ptr(45.0),
		},
		{
			name:       "sum of empty",
			req:        Request{Op: OpSum, Operands: [][][]float64{{}}},
			wantScalar: ptr(0.0),
		},
		{
			name:       "min",
			req:        Request{Op: OpMin, Operands: [][][]float64{{{3, -1}, {2, 8}}}},
			wantScalar: ptr(-1.0),
		},
		{
			name:       "max",
			req:        Request{Op: OpMax, Operands: [][][]float64{{{3, -1}, {2, 8}}}},
			wantScalar: ptr(8.0),
		},
		{
			name:       "dot row and column",
			req:        Request{Op: OpDot, Operands: [][][]float64{{{1, 2, 3}}, {{4}, {5}, {6}}}},
			wantScalar: ptr(32.0),
		},
		{
			name:       "sort-row",
			req:        Request{Op: OpSortRow, Operands: [][][]float64{{{3, 1, 2}, {9, 7, 8}}}},
			wantMatrix: [][]float64{{1, 2, 3}, {7, 8, 9}},
		},
		{
			name:       "reverse-row",
			req:        Request{Op: OpReverseRow, Operands: [][][]float64{{{3, 1, 2}}}},
			wantMatrix: [][]float64{{2, 1, 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := quietRunner(t, nil).Run(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.req.Op, res.Op)
			assert.Equal(t, tt.wantMatrix, res.Matrix)
			assert.Equal(t, tt.wantVector, res.Vector)
			assert.Equal(t, tt.wantScalar, res.Scalar)
			assert.False(t, res.Cached)
		})
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		code apperr.Code
	}{
		{"unknown op", Request{Op: "invert", Operands: [][][]float64{square}}, apperr.ErrCodeInvalidOperation},
		{"malformed op", Request{Op: "Sort Row"}, apperr.ErrCodeInvalidOperation},
		{"operand count", Request{Op: OpAdd, Operands: [][][]float64{square}}, apperr.ErrCodeInvalidInput},
		{"missing factor", Request{Op: OpScale, Operands: [][][]float64{square}}, apperr.ErrCodeInvalidInput},
		{"bad rotation", Request{Op: OpRotate, Operands: [][][]float64{square}, Params: Params{Rotation: "sideways"}}, apperr.ErrCodeInvalidArgument},
		{"ragged operand", Request{Op: OpSum, Operands: [][][]float64{{{1, 2}, {3}}}}, apperr.ErrCodeRaggedRows},
		{"shape mismatch", Request{Op: OpAdd, Operands: [][][]float64{{{1, 2}}, {{1}}}}, apperr.ErrCodeDimensionMismatch},
		{"multiply mismatch", Request{Op: OpMultiply, Operands: [][][]float64{{{1, 2}}, {{1, 2}}}}, apperr.ErrCodeDimensionMismatch},
		{"row out of range", Request{Op: OpRow, Operands: [][][]float64{square}, Params: Params{Index: ptr(3)}}, apperr.ErrCodeIndexOutOfBounds},
		{"reversed range", Request{Op: OpSubmatrix, Operands: [][][]float64{square}, Params: Params{Range: &Range{2, 1, 0, 1}}}, apperr.ErrCodeIndexOutOfBounds},
		{"min of empty", Request{Op: OpMin, Operands: [][][]float64{{}}}, apperr.ErrCodeEmptyOperand},
		{"dot of matrix", Request{Op: OpDot, Operands: [][][]float64{square, square}}, apperr.ErrCodeInvalidArgument},
		{"dot of empty", Request{Op: OpDot, Operands: [][][]float64{{}, {}}}, apperr.ErrCodeEmptyOperand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := quietRunner(t, nil).Run(context.Background(), tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.code, apperr.GetCode(err), "error: %v", err)
		})
	}
}

func TestRun_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := quietRunner(t, nil).Run(ctx, Request{Op: OpSum, Operands: [][][]float64{square}})
	assert.Equal(t, apperr.ErrCodeCanceled, apperr.GetCode(err))
}

type countingCacheHooks struct {
	observability.NoopCacheHooks
	mu                sync.Mutex
	hits, misses, set int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits++
}

func (h *countingCacheHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.misses++
}

func (h *countingCacheHooks) OnCacheSet(context.Context, string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.set++
}

func TestRun_Caches(t *testing.T) {
	hooks := &countingCacheHooks{}
	observability.SetCacheHooks(hooks)
	t.Cleanup(observability.Reset)

	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := quietRunner(t, fc)
	r.TTL = time.Hour

	req := Request{Op: OpRotate, Operands: [][][]float64{square}, Params: Params{Rotation: "right"}}
	first, err := r.Run(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := r.Run(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Matrix, second.Matrix)

	other := req
	other.Params.Rotation = "left"
	third, err := r.Run(context.Background(), other)
	require.NoError(t, err)
	assert.False(t, third.Cached)

	assert.Equal(t, 1, hooks.hits)
	assert.Equal(t, 2, hooks.misses)
	assert.Equal(t, 2, hooks.set)
}

func TestRun_CachesNonFiniteOperands(t *testing.T) {
	inf, nan := math.Inf(1), math.NaN()
	tests := []struct {
		name   string
		first  Request
		second Request
		want   [][]float64
		wantV  []float64
	}{
		{
			name:   "row with inf",
			first:  Request{Op: OpRow, Operands: [][][]float64{{{1, 2}, {inf, 3}}}, Params: Params{Index: ptr(0)}},
			second: Request{Op: OpRow, Operands: [][][]float64{{{5, 6}, {inf, 1}}}, Params: Params{Index: ptr(0)}},
			wantV:  []float64{5, 6},
		},
		{
			name:   "submatrix with nan",
			first:  Request{Op: OpSubmatrix, Operands: [][][]float64{{{nan, 2}, {3, 4}}}, Params: Params{Range: &Range{1, 2, 0, 2}}},
			second: Request{Op: OpSubmatrix, Operands: [][][]float64{{{nan, 2}, {7, 8}}}, Params: Params{Range: &Range{1, 2, 0, 2}}},
			want:   [][]float64{{7, 8}},
		},
		{
			name:   "scale by inf and by one",
			first:  Request{Op: OpScale, Operands: [][][]float64{{{0}}}, Params: Params{Factor: ptr(inf)}},
			second: Request{Op: OpScale, Operands: [][][]float64{{{0}}}, Params: Params{Factor: ptr(1.0)}},
			want:   [][]float64{{0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc, err := cache.NewFileCache(t.TempDir())
			require.NoError(t, err)
			r := quietRunner(t, fc)

			_, err = r.Run(context.Background(), tt.first)
			require.NoError(t, err)

			got, err := r.Run(context.Background(), tt.second)
			require.NoError(t, err)
			assert.False(t, got.Cached, "different operands must not share a cache entry")
			if tt.want != nil {
				assert.Equal(t, tt.want, got.Matrix)
			}
			if tt.wantV != nil {
				assert.Equal(t, tt.wantV, got.Vector)
			}

			again, err := r.Run(context.Background(), tt.second)
			require.NoError(t, err)
			assert.True(t, again.Cached)
		})
	}
}

func TestRun_NonFiniteResultNotCached(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := quietRunner(t, fc)

	req := Request{Op: OpScale, Operands: [][][]float64{{{10}}}, Params: Params{Factor: ptr(1e308)}}
	for range 2 {
		res, err := r.Run(context.Background(), req)
		require.NoError(t, err)
		assert.False(t, res.Cached)
		assert.True(t, math.IsInf(res.Matrix[0][0], 1))
		assert.False(t, res.IsFinite())
	}
}

func TestRun_KeyFailureRunsUncached(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := quietRunner(t, fc)
	r.Keyer = failingKeyer{}

	req := Request{Op: OpSum, Operands: [][][]float64{square}}
	for range 2 {
		res, err := r.Run(context.Background(), req)
		require.NoError(t, err)
		assert.False(t, res.Cached)
		assert.Equal(t, 45.0, *res.Scalar)
	}
}

func TestResult_IsFinite(t *testing.T) {
	assert.True(t, (&Result{Matrix: [][]float64{{1, 2}}}).IsFinite())
	assert.True(t, (&Result{Matrix: [][]float64{}}).IsFinite())
	assert.False(t, (&Result{Matrix: [][]float64{{1, math.NaN()}}}).IsFinite())
	assert.False(t, (&Result{Vector: []float64{math.Inf(-1)}}).IsFinite())
	assert.False(t, (&Result{Scalar: ptr(math.Inf(1))}).IsFinite())
	assert.True(t, (&Result{Scalar: ptr(0.0)}).IsFinite())
}

func TestResult_JSONNamesKind(t *testing.T) {
	res, err := quietRunner(t, nil).Run(context.Background(), Request{Op: OpTranspose, Operands: [][][]float64{{{}}}})
	require.NoError(t, err)
	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"op":"transpose","matrix":[],"cached":false}`, string(data))

	data, err = json.Marshal(Result{Op: OpSum, Scalar: ptr(3.0)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"op":"sum","scalar":3,"cached":false}`, string(data))

	var back Result
	require.NoError(t, json.Unmarshal([]byte(`{"op":"transpose","matrix":[],"cached":true}`), &back))
	assert.NotNil(t, back.Matrix)
	assert.Empty(t, back.Matrix)
}

func TestRunBatch(t *testing.T) {
	r := quietRunner(t, nil)
	reqs := []Request{
		{Op: OpSum, Operands: [][][]float64{square}},
		{Op: OpTranspose, Operands: [][][]float64{{{1, 2}}}},
		{Op: OpMax, Operands: [][][]float64{square}},
		{Op: OpRow, Operands: [][][]float64{square}, Params: Params{Index: ptr(0)}},
	}

	results, err := r.RunBatch(context.Background(), reqs, 2)
	require.NoError(t, err)
	require.Len(t, results, len(reqs))
	assert.Equal(t, 45.0, *results[0].Scalar)
	assert.Equal(t, [][]float64{{1}, {2}}, results[1].Matrix)
	assert.Equal(t, 9.0, *results[2].Scalar)
	assert.Equal(t, []float64{1, 2, 3}, results[3].Vector)
}

func TestRunBatch_Error(t *testing.T) {
	r := quietRunner(t, nil)
	reqs := []Request{
		{Op: OpSum, Operands: [][][]float64{square}},
		{Op: OpAdd, Operands: [][][]float64{{{1}}, {{1, 2}}}},
	}

	_, err := r.RunBatch(context.Background(), reqs, 0)
	require.Error(t, err)
	assert.Equal(t, apperr.ErrCodeDimensionMismatch, apperr.GetCode(err))
	assert.Contains(t, err.Error(), "request 1 (add)")
}

func TestOperations(t *testing.T) {
	ops := Operations()
	assert.Len(t, ops, 17)
	assert.IsIncreasing(t, ops)
	assert.True(t, IsOperation(OpSortRow))
	assert.False(t, IsOperation("invert"))
}
