package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Compose hooks
	c := NoopComposeHooks{}
	c.OnFilterStart(ctx, "task-1", 2)
	c.OnFilterComplete(ctx, "task-1", 12, time.Millisecond)
	c.OnComposeStart(ctx, "kanban", 100)
	c.OnComposeComplete(ctx, "kanban", time.Millisecond, nil)

	// Cache hooks
	ch := NoopCacheHooks{}
	ch.OnCacheHit(ctx, "compose")
	ch.OnCacheMiss(ctx, "snapshot")
	ch.OnCacheSet(ctx, "render", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/api/compose")
	h.OnResponse(ctx, "POST", "/api/compose", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Compose().(NoopComposeHooks); !ok {
		t.Error("Compose() should return NoopComposeHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customCompose := &testComposeHooks{}
	SetComposeHooks(customCompose)
	if Compose() != customCompose {
		t.Error("SetComposeHooks should set custom hooks")
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
	if _, ok := Compose().(NoopComposeHooks); !ok {
		t.Error("Reset() should restore NoopComposeHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testComposeHooks{}
	SetComposeHooks(custom)

	// Setting nil should be ignored
	SetComposeHooks(nil)

	if Compose() != custom {
		t.Error("SetComposeHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testComposeHooks struct{ NoopComposeHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
