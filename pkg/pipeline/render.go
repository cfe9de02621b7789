package pipeline

import (
	"context"
	"fmt"

	"github.com/viktori/matteray/pkg/cache"
	apperr "github.com/viktori/matteray/pkg/errors"
	"github.com/viktori/matteray/pkg/matrix"
	"github.com/viktori/matteray/pkg/observability"
	"github.com/viktori/matteray/pkg/render"
)

// keyTypeRender labels render entries in cache hooks.
const keyTypeRender = "render"

// Render produces m as DOT or SVG and caches the artifact. The second return
// value reports a cache hit.
func (r *Runner) Render(ctx context.Context, m *matrix.Matrix[float64], format string, opts render.Options) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, apperr.FromDomain(err)
	}
	if format != render.FormatDOT && format != render.FormatSVG {
		return nil, false, apperr.New(apperr.ErrCodeInvalidFormat, "unsupported render format %q (want dot or svg)", format)
	}

	key, err := r.renderKey(m, format, opts)
	if err != nil {
		r.Logger.Warn("cache key failed, rendering uncached", "render", format, "err", err)
		data, err := render.Render(ctx, m, format, opts)
		if err != nil {
			return nil, false, apperr.Wrap(apperr.ErrCodeInternal, err, "render %s", format)
		}
		return data, false, nil
	}

	if data, hit, err := r.Cache.Get(ctx, key); err != nil {
		r.Logger.Warn("cache read failed", "render", format, "err", err)
	} else if hit {
		observability.Cache().OnCacheHit(ctx, keyTypeRender)
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, keyTypeRender)

	data, err := render.Render(ctx, m, format, opts)
	if err != nil {
		return nil, false, apperr.Wrap(apperr.ErrCodeInternal, err, "render %s", format)
	}

	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "render", format, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, keyTypeRender, len(data))
	}
	return data, false, nil
}

// renderKey hashes the matrix by the bits of its values, so NaN and
// infinities key like any other cell.
func (r *Runner) renderKey(m *matrix.Matrix[float64], format string, opts render.Options) (string, error) {
	payload, err := json.Marshal(floatBits(m.Slice2D()))
	if err != nil {
		return "", err
	}
	keyOpts := cache.RenderKeyOpts{Format: format, Title: opts.Title}
	if opts.Highlight != nil {
		keyOpts.Highlight = fmt.Sprintf("%d,%d", opts.Highlight.Row, opts.Highlight.Column)
	}
	return r.Keyer.RenderKey(cache.Hash(payload), keyOpts)
}
