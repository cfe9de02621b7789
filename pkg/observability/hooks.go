// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about matrix operations, cache lookups, and API requests.
//
// The package uses a simple hooks pattern:
//   - Hook interfaces per event category
//   - No-op default implementations
//   - A global registry that main fills in at startup
//
// # Usage
//
//	func main() {
//	    observability.SetOperationHooks(&myOperationHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Operation().OnOperationStart(ctx, "multiply", 2)
//	// ... compute ...
//	observability.Operation().OnOperationComplete(ctx, "multiply", duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Operation Hooks
// =============================================================================

// OperationHooks receives events from the operation pipeline.
type OperationHooks interface {
	// OnOperationStart records the start of an operation over n operands.
	OnOperationStart(ctx context.Context, op string, operands int)

	// OnOperationComplete records the outcome of an operation.
	OnOperationComplete(ctx context.Context, op string, duration time.Duration, err error)

	// OnBatch records a completed batch of requests.
	OnBatch(ctx context.Context, size int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the API server.
type HTTPHooks interface {
	// OnRequest records an incoming request before it is handled. The route
	// is the request path since no pattern has been matched yet.
	OnRequest(ctx context.Context, method, route, requestID string)

	// OnResponse records the response written for a request. The route is the
	// matched pattern, such as "/v1/ops/{op}".
	OnResponse(ctx context.Context, method, route, requestID string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopOperationHooks is a no-op implementation of OperationHooks.
type NoopOperationHooks struct{}

func (NoopOperationHooks) OnOperationStart(context.Context, string, int)                      {}
func (NoopOperationHooks) OnOperationComplete(context.Context, string, time.Duration, error) {}
func (NoopOperationHooks) OnBatch(context.Context, int, time.Duration, error)                 {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string) {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	operationHooks OperationHooks = NoopOperationHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	httpHooks      HTTPHooks      = NoopHTTPHooks{}
	hooksMu        sync.RWMutex
)

// SetOperationHooks registers custom operation hooks.
// This should be called once at application startup.
func SetOperationHooks(h OperationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		operationHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Operation returns the registered operation hooks.
func Operation() OperationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return operationHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	operationHooks = NoopOperationHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
