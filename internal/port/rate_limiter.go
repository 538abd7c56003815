package port

import "context"

// RateLimiter admits or rejects a request attributed to key.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
