package audit

import (
	"context"
	"testing"
)

func TestLogEventRequiresName(t *testing.T) {
	if err := LogEvent(context.Background(), "   ", nil); err == nil {
		t.Fatalf("blank event name must be rejected")
	}
	if err := LogEvent(context.Background(), "orders.created", map[string]any{"order_id": 1}); err != nil {
		t.Fatalf("LogEvent: %v", err)
	}
}

func TestWithRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	if got := requestIDFromContext(ctx); got != "req-1" {
		t.Fatalf("request id = %q", got)
	}
	if requestIDFromContext(WithRequestID(context.Background(), "  ")) != "" {
		t.Fatalf("blank request id must not be attached")
	}
}
