package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	o := NoopOperationHooks{}
	o.OnOperationStart(ctx, "multiply", 2)
	o.OnOperationComplete(ctx, "multiply", time.Millisecond, nil)
	o.OnBatch(ctx, 3, time.Millisecond, errors.New("boom"))

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "op")
	c.OnCacheMiss(ctx, "op")
	c.OnCacheSet(ctx, "render", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/v1/ops/{op}", "req-1")
	h.OnResponse(ctx, "POST", "/v1/ops/{op}", "req-1", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Operation().(NoopOperationHooks); !ok {
		t.Error("Operation() should return NoopOperationHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customOperation := &testOperationHooks{}
	SetOperationHooks(customOperation)
	if Operation() != customOperation {
		t.Error("SetOperationHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Operation().(NoopOperationHooks); !ok {
		t.Error("Reset() should restore NoopOperationHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testOperationHooks{}
	SetOperationHooks(custom)
	SetOperationHooks(nil)

	if Operation() != custom {
		t.Error("SetOperationHooks(nil) should be ignored")
	}

	Reset()
}

type testOperationHooks struct{ NoopOperationHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
