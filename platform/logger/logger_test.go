package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	return entry
}

func TestWithContext_AddsRequestAndTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("production", &buf)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, TraceIDKey, "trace-1")
	log.WithContext(ctx).BatchEvent("batch.submitted", "b-1", 3)

	entry := decodeLine(t, &buf)
	if entry["request_id"] != "req-1" || entry["trace_id"] != "trace-1" {
		t.Fatalf("expected ids in entry: %v", entry)
	}
	if entry["msg"] != "batch_event" || entry["batch_id"] != "b-1" || entry["count"] != float64(3) {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestParseRejected_OnlyInDevelopment(t *testing.T) {
	var prod bytes.Buffer
	NewWithWriter("production", &prod).ParseRejected("XX", "invalid_region", "invalid region")
	if prod.Len() != 0 {
		t.Fatalf("expected no debug output in production, got %q", prod.String())
	}

	var dev bytes.Buffer
	NewWithWriter("development", &dev).ParseRejected("XX", "invalid_region", "invalid region")
	if !strings.Contains(dev.String(), "parse_rejected") || !strings.Contains(dev.String(), "kind=invalid_region") {
		t.Fatalf("unexpected development output: %q", dev.String())
	}
}
