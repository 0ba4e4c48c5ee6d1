package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestSetup_JSONIncludesServiceAndVersion(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("attendance-be", "1.2.3", "json", &buf)

	logger.Info("hello", "user_id", "u1")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "attendance-be", record["service"])
	assert.Equal(t, "1.2.3", record["version"])
	assert.Equal(t, "u1", record["user_id"])
	assert.NotContains(t, record, "trace_id")
}

func TestSetup_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("attendance-be", "dev", "text", &buf)

	logger.Warn("careful")

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "service=attendance-be")
}

func TestSetup_AddsTraceContext(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("attendance-be", "dev", "json", &buf)

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	logger.InfoContext(ctx, "traced")

	assert.Contains(t, buf.String(), `"trace_id":"4bf92f3577b34da6a3ce929d0e0e4736"`)
	assert.Contains(t, buf.String(), `"span_id":"00f067aa0ba902b7"`)
}

func TestSetup_DebugFiltered(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("attendance-be", "dev", "json", &buf)

	logger.Debug("noise")

	assert.Empty(t, buf.String())
}
