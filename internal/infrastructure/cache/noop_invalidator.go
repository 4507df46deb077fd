package cache

import "context"

// NoopViewInvalidator satisfies the view invalidation port without a cache
// backend. Used in development and in tests when Redis is not configured.
type NoopViewInvalidator struct{}

// NewNoopViewInvalidator creates a no-op invalidator
func NewNoopViewInvalidator() *NoopViewInvalidator {
	return &NoopViewInvalidator{}
}

// InvalidateAccountViews does nothing
func (n *NoopViewInvalidator) InvalidateAccountViews(_ context.Context, _ string) {}
