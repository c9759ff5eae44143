package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	s := NoopSolveHooks{}
	s.OnSolveStart(ctx)
	s.OnSolveComplete(ctx, SolveEvent{Status: "success", Components: 4}, time.Millisecond, nil)
	s.OnValidate(ctx, []string{"separation"})

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "result")
	c.OnCacheMiss(ctx, "result")
	c.OnCacheSet(ctx, "result", 1024)

	h := NoopServerHooks{}
	h.OnRequest(ctx, "POST", "/v1/solve")
	h.OnResponse(ctx, "POST", "/v1/solve", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Solve().(NoopSolveHooks); !ok {
		t.Error("Solve() should return NoopSolveHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Server() should return NoopServerHooks by default")
	}

	customSolve := &testSolveHooks{}
	SetSolveHooks(customSolve)
	if Solve() != customSolve {
		t.Error("SetSolveHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customServer := &testServerHooks{}
	SetServerHooks(customServer)
	if Server() != customServer {
		t.Error("SetServerHooks should set custom hooks")
	}

	Reset()
	if _, ok := Solve().(NoopSolveHooks); !ok {
		t.Error("Reset() should restore NoopSolveHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testSolveHooks{}
	SetSolveHooks(custom)
	SetSolveHooks(nil)

	if Solve() != custom {
		t.Error("SetSolveHooks(nil) should be ignored")
	}
}

type testSolveHooks struct{ NoopSolveHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testServerHooks struct{ NoopServerHooks }
