package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/sync/errgroup"

	"github.com/viktori/matteray/pkg/cache"
	apperr "github.com/viktori/matteray/pkg/errors"
	"github.com/viktori/matteray/pkg/matrix"
	"github.com/viktori/matteray/pkg/observability"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// keyTypeOperation labels operation entries in cache hooks.
const keyTypeOperation = "op"

// Runner executes requests with caching.
// Both CLI and API use it so that cache keys and error mapping stay in one place.
//
// The Runner holds no per-request state; multiple goroutines can share one.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is applied to stored results. Zero keeps them until evicted.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Run validates and executes req. Errors carry an apperr code.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.FromDomain(err)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hooks := observability.Operation()
	hooks.OnOperationStart(ctx, req.Op, len(req.Operands))
	start := time.Now()

	res, err := r.run(ctx, req)
	duration := time.Since(start)
	hooks.OnOperationComplete(ctx, req.Op, duration, err)

	if err != nil {
		r.Logger.Debug("operation failed", "op", req.Op, "err", err)
		return nil, apperr.FromDomain(err)
	}
	r.Logger.Debug("operation complete", "op", req.Op, "cached", res.Cached, "duration", duration)
	return res, nil
}

func (r *Runner) run(ctx context.Context, req Request) (*Result, error) {
	key, err := r.Keyer.OperationKey(req.Op, req.cacheable())
	if err != nil {
		r.Logger.Warn("cache key failed, running uncached", "op", req.Op, "err", err)
		return compute(req)
	}

	if data, hit, err := r.Cache.Get(ctx, key); err != nil {
		r.Logger.Warn("cache read failed", "op", req.Op, "err", err)
	} else if hit {
		var cached Result
		if err := json.Unmarshal(data, &cached); err == nil {
			observability.Cache().OnCacheHit(ctx, keyTypeOperation)
			cached.Cached = true
			return &cached, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, keyTypeOperation)

	res, err := compute(req)
	if err != nil {
		return nil, err
	}

	// non-finite results have no JSON form and are not stored
	data, err := json.Marshal(res)
	if err != nil {
		r.Logger.Debug("result not cached", "op", req.Op, "err", err)
		return res, nil
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "op", req.Op, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, keyTypeOperation, len(data))
	}
	return res, nil
}

func compute(req Request) (*Result, error) {
	operands := make([]*matrix.Matrix[float64], len(req.Operands))
	for i, rows := range req.Operands {
		m, err := matrix.New(rows...)
		if err != nil {
			return nil, fmt.Errorf("operand %d: %w", i, err)
		}
		operands[i] = m
	}

	res, err := operations[req.Op].run(operands, req.Params)
	if err != nil {
		return nil, err
	}
	res.Op = req.Op
	return res, nil
}

// RunBatch runs reqs with at most concurrency workers and returns results in
// request order. The first failure cancels the remaining requests.
func (r *Runner) RunBatch(ctx context.Context, reqs []Request, concurrency int) ([]*Result, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	batchID := uuid.NewString()
	logger := r.Logger.With("batch", batchID)
	logger.Debug("batch started", "size", len(reqs), "concurrency", concurrency)
	start := time.Now()

	results := make([]*Result, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, req := range reqs {
		g.Go(func() error {
			res, err := r.Run(gctx, req)
			if err != nil {
				return apperr.Wrap(apperr.GetCode(err), err, "request %d (%s)", i, req.Op)
			}
			results[i] = res
			return nil
		})
	}
	err := g.Wait()

	duration := time.Since(start)
	observability.Operation().OnBatch(ctx, len(reqs), duration, err)
	if err != nil {
		logger.Debug("batch failed", "err", err)
		return nil, err
	}
	logger.Debug("batch complete", "duration", duration)
	return results, nil
}
