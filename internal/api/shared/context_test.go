package shared

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx), "no trace ID before SetTraceID")

	ctx = SetTraceID(ctx)
	traceID := GetTraceID(ctx)
	assert.Len(t, traceID, TraceIDLength*2, "hex-encoded trace ID")

	other := GetTraceID(SetTraceID(context.Background()))
	assert.NotEqual(t, traceID, other, "trace IDs are unique per request")
}
