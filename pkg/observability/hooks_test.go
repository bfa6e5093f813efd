package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Transform hooks
	tr := NoopTransformHooks{}
	tr.OnTransformStart(3)
	tr.OnActionComplete(1, "append", time.Millisecond, nil)
	tr.OnActionComplete(2, "set-attr", time.Millisecond, errors.New("boom"))
	tr.OnTransformComplete(3, 0, time.Second, errors.New("boom"))

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "merge")
	c.OnCacheMiss(ctx, "merge")
	c.OnCacheSet(ctx, "merge", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/v1/transform")
	h.OnResponse(ctx, "POST", "/v1/transform", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Transform().(NoopTransformHooks); !ok {
		t.Error("Transform() should return NoopTransformHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customTransform := &testTransformHooks{}
	SetTransformHooks(customTransform)
	if Transform() != customTransform {
		t.Error("SetTransformHooks should set custom hooks")
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

	// Reset and verify
	Reset()
	if _, ok := Transform().(NoopTransformHooks); !ok {
		t.Error("Reset() should restore NoopTransformHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testTransformHooks{}
	SetTransformHooks(custom)

	// Setting nil should be ignored
	SetTransformHooks(nil)

	if Transform() != custom {
		t.Error("SetTransformHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testTransformHooks struct{ NoopTransformHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
