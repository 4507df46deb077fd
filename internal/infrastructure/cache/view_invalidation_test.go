package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewRedisViewInvalidatorWithClient_Defaults(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()

	invalidator := NewRedisViewInvalidatorWithClient(client)

	assert.Equal(t, DefaultViewChannel, invalidator.channel)
	assert.NotNil(t, invalidator.logger)
	assert.False(t, invalidator.ownsClient)
}

func TestNewRedisViewInvalidatorWithClient_Options(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()

	logger := zap.NewNop()
	invalidator := NewRedisViewInvalidatorWithClient(client,
		WithViewChannel("custom:channel"),
		WithViewLogger(logger),
	)

	assert.Equal(t, "custom:channel", invalidator.channel)
	assert.Same(t, logger, invalidator.logger)
}

func TestRedisViewInvalidator_InvalidateAccountViews_BestEffort(t *testing.T) {
	// Points at a closed port: every Redis call fails. The invalidator must
	// log warnings and return without error.
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
		PoolSize:    1,
	})
	defer client.Close()

	core, logs := observer.New(zap.WarnLevel)
	invalidator := NewRedisViewInvalidatorWithClient(client,
		WithViewLogger(zap.New(core)),
	)

	invalidator.InvalidateAccountViews(context.Background(), "org-123")

	entries := logs.All()
	require.NotEmpty(t, entries)
	for _, entry := range entries {
		assert.Equal(t, "org-123", entry.ContextMap()["org_id"])
	}
}

func TestRedisViewInvalidator_CloseDoesNotCloseBorrowedClient(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()

	invalidator := NewRedisViewInvalidatorWithClient(client)
	require.NoError(t, invalidator.Close())

	// The borrowed client is still usable by its owner after Close.
	assert.NotPanics(t, func() {
		client.Options()
	})
}

func TestViewInvalidationMessage_RoundTrip(t *testing.T) {
	msg := ViewInvalidationMessage{OrgID: "org-456", Timestamp: 1700000000}

	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"org_id":"org-456","timestamp":1700000000}`, string(data))

	var decoded ViewInvalidationMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, msg, decoded)
}

func TestNoopViewInvalidator(t *testing.T) {
	invalidator := NewNoopViewInvalidator()
	assert.NotPanics(t, func() {
		invalidator.InvalidateAccountViews(context.Background(), "org-789")
	})
}
