package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestFromContext_RoundTrip(t *testing.T) {
	log := zap.NewNop()
	ctx := ContextWithLogger(context.Background(), log)

	if got := FromContext(ctx); got != log {
		t.Fatalf("expected the stored logger back, got %v", got)
	}
}

func TestFromContext_Empty(t *testing.T) {
	if got := FromContext(context.Background()); got != nil {
		t.Fatalf("expected nil for a bare context, got %v", got)
	}
}
