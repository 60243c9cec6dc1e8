package contextutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-42")

	assert.Equal(t, "req-42", GetRequestID(ctx))
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestGetLoggerFallbacks(t *testing.T) {
	stored := zap.NewNop()
	ctx := WithLogger(context.Background(), stored)
	assert.Same(t, stored, GetLogger(ctx, nil))

	fallback := zap.NewNop()
	assert.Same(t, fallback, GetLogger(context.Background(), fallback))

	assert.NotNil(t, GetLogger(context.Background(), nil))
}
