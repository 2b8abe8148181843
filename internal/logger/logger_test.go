package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer

	cfg := Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "test-service",
		Version:     "1.0.0",
		Environment: "test",
	}

	InitWithWriter(cfg, &buf)
	Info("test message", "key", "value")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}

	if entry["service"] != "test-service" {
		t.Errorf("Expected service=test-service, got %v", entry["service"])
	}
	if entry["key"] != "value" {
		t.Errorf("Expected key=value, got %v", entry["key"])
	}
}

func TestDebugFilteredAtInfoLevel(t *testing.T) {
	var buf bytes.Buffer

	InitWithWriter(Config{Level: "info", Format: "text", ServiceName: "test"}, &buf)
	Debug("should not appear")

	if buf.Len() != 0 {
		t.Errorf("Expected debug log to be filtered, got %q", buf.String())
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()

	if _, ok := RequestIDFromContext(ctx); ok {
		t.Error("Expected no request ID on fresh context")
	}

	id := GenerateRequestID()
	ctx = WithRequestID(ctx, id)

	got, ok := RequestIDFromContext(ctx)
	if !ok || got != id {
		t.Errorf("Expected request ID %q, got %q (ok=%v)", id, got, ok)
	}
}

func TestConfigLevelParsing(t *testing.T) {
	cases := map[string]string{
		"debug":   "DEBUG",
		"info":    "INFO",
		"warning": "WARN",
		"error":   "ERROR",
		"bogus":   "INFO",
	}
	for in, want := range cases {
		c := Config{Level: in}
		if got := c.LogLevel().String(); got != want {
			t.Errorf("Level %q: expected %s, got %s", in, want, got)
		}
	}
}
