package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/motodms/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// DefaultViewChannel is the Pub/Sub channel dashboards subscribe to.
	DefaultViewChannel = "motodms:views:invalidate"

	viewKeyPrefix      = "motodms:views:"
	invalidateTimeout  = 2 * time.Second
	connectPingTimeout = 5 * time.Second
)

// ViewInvalidationMessage tells read-model subscribers which organization's
// cached financing views are stale.
type ViewInvalidationMessage struct {
	OrgID     string `json:"org_id"`
	Timestamp int64  `json:"timestamp"`
}

// RedisViewInvalidator invalidates cached account views in Redis and notifies
// subscribers over Pub/Sub. All operations are best-effort: a Redis outage
// must never fail a payment or an account creation, so errors are logged and
// swallowed.
type RedisViewInvalidator struct {
	client     *redis.Client
	ownsClient bool
	channel    string
	logger     *zap.Logger
}

// RedisViewInvalidatorOption is a functional option for configuring the invalidator
type RedisViewInvalidatorOption func(*RedisViewInvalidator)

// WithViewChannel sets the Pub/Sub channel name
func WithViewChannel(channel string) RedisViewInvalidatorOption {
	return func(i *RedisViewInvalidator) {
		i.channel = channel
	}
}

// WithViewLogger sets the logger for the invalidator
func WithViewLogger(logger *zap.Logger) RedisViewInvalidatorOption {
	return func(i *RedisViewInvalidator) {
		i.logger = logger
	}
}

// NewRedisViewInvalidator creates an invalidator with its own Redis connection
func NewRedisViewInvalidator(cfg config.RedisConfig, opts ...RedisViewInvalidatorOption) (*RedisViewInvalidator, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectPingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	invalidator := &RedisViewInvalidator{
		client:     client,
		ownsClient: true,
		channel:    DefaultViewChannel,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(invalidator)
	}
	return invalidator, nil
}

// NewRedisViewInvalidatorWithClient creates an invalidator with an existing client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisViewInvalidatorWithClient(client *redis.Client, opts ...RedisViewInvalidatorOption) *RedisViewInvalidator {
	invalidator := &RedisViewInvalidator{
		client:     client,
		ownsClient: false,
		channel:    DefaultViewChannel,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(invalidator)
	}
	return invalidator
}

// InvalidateAccountViews drops the organization's cached account views and
// publishes an invalidation notice.
func (i *RedisViewInvalidator) InvalidateAccountViews(ctx context.Context, orgID string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), invalidateTimeout)
	defer cancel()

	if err := i.deleteViewKeys(ctx, orgID); err != nil {
		i.logger.Warn("Failed to delete cached account views",
			zap.String("org_id", orgID),
			zap.Error(err))
	}

	msg := ViewInvalidationMessage{OrgID: orgID, Timestamp: time.Now().UnixNano()}
	data, err := json.Marshal(msg)
	if err != nil {
		i.logger.Error("Failed to marshal view invalidation message", zap.Error(err))
		return
	}
	if err := i.client.Publish(ctx, i.channel, data).Err(); err != nil {
		i.logger.Warn("Failed to publish view invalidation message",
			zap.String("org_id", orgID),
			zap.String("channel", i.channel),
			zap.Error(err))
		return
	}

	i.logger.Debug("Account views invalidated", zap.String("org_id", orgID))
}

// deleteViewKeys removes all cached view entries for one organization
func (i *RedisViewInvalidator) deleteViewKeys(ctx context.Context, orgID string) error {
	pattern := viewKeyPrefix + orgID + ":*"
	iter := i.client.Scan(ctx, 0, pattern, 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return i.client.Del(ctx, keys...).Err()
}

// Subscribe listens for invalidation notices and invokes the callback for
// each one. It blocks until the context is cancelled.
func (i *RedisViewInvalidator) Subscribe(ctx context.Context, callback func(msg ViewInvalidationMessage)) error {
	pubsub := i.client.Subscribe(ctx, i.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}

	i.logger.Info("Subscribed to view invalidation channel", zap.String("channel", i.channel))

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var invalidation ViewInvalidationMessage
			if err := json.Unmarshal([]byte(msg.Payload), &invalidation); err != nil {
				i.logger.Error("Failed to unmarshal view invalidation message",
					zap.String("payload", msg.Payload),
					zap.Error(err))
				continue
			}
			callback(invalidation)
		}
	}
}

// Close releases the Redis connection if this invalidator owns it
func (i *RedisViewInvalidator) Close() error {
	if i.ownsClient {
		return i.client.Close()
	}
	return nil
}
