package contextkeys

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextKeys_AreDistinct(t *testing.T) {
	ctx := context.Background()
	ctx = context.WithValue(ctx, RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, CollectionKey, "users")
	ctx = context.WithValue(ctx, OperationKey, "find")

	assert.Equal(t, "req-1", ctx.Value(RequestIDKey))
	assert.Equal(t, "users", ctx.Value(CollectionKey))
	assert.Equal(t, "find", ctx.Value(OperationKey))
}

func TestContextKey_DoesNotCollideWithString(t *testing.T) {
	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	assert.Nil(t, ctx.Value("requestID"))
}

func TestContextKey_String(t *testing.T) {
	assert.Contains(t, RequestIDKey.String(), "mongo-gateway")
}
