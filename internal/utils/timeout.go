package utils

import (
	"context"
	"time"
)

const DefaultUpstreamTimeout = 10 * time.Second

// WithUpstreamTimeout bounds a backend call to DefaultUpstreamTimeout unless
// ctx already expires sooner. Session-change refreshes run on a background
// context and rely on this bound.
func WithUpstreamTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) <= DefaultUpstreamTimeout {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, DefaultUpstreamTimeout)
}
