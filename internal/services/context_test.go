package services

import (
	"context"
	"testing"
)

func TestContextAnnotations(t *testing.T) {
	ctx := context.Background()

	if _, ok := SessionIDFromContext(ctx); ok {
		t.Fatal("unexpected session id on empty context")
	}

	ctx = WithSessionID(ctx, "a1b2c3d4")
	ctx = WithStage(ctx, "extract")
	ctx = WithRequestID(ctx, "req-1")

	if id, ok := SessionIDFromContext(ctx); !ok || id != "a1b2c3d4" {
		t.Fatalf("session id round trip failed: %q %v", id, ok)
	}
	if stage, ok := StageFromContext(ctx); !ok || stage != "extract" {
		t.Fatalf("stage round trip failed: %q %v", stage, ok)
	}
	if id, ok := RequestIDFromContext(ctx); !ok || id != "req-1" {
		t.Fatalf("request id round trip failed: %q %v", id, ok)
	}
}

func TestEmptyValuesLeaveContextUntouched(t *testing.T) {
	ctx := context.Background()
	if WithSessionID(ctx, "") != ctx {
		t.Fatal("empty session id should return original context")
	}
	if WithStage(ctx, "") != ctx {
		t.Fatal("empty stage should return original context")
	}
	if WithRequestID(ctx, "") != ctx {
		t.Fatal("empty request id should return original context")
	}
}
