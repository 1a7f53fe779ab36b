package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginThrottle limits login attempts per email over a fixed window.
// The counter key expires with the window, so state cleans itself up.
type LoginThrottle struct {
	client redis.UniversalClient
	prefix string
	limit  int
	window time.Duration
}

// ThrottleOptions configures a LoginThrottle.
type ThrottleOptions struct {
	Limit  int
	Window time.Duration
}

// NewLoginThrottle creates a login throttle. Non-positive options fall back
// to 10 attempts per 15 minutes.
func NewLoginThrottle(client redis.UniversalClient, opts ThrottleOptions) *LoginThrottle {
	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}
	window := opts.Window
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginThrottle{client: client, prefix: "login-attempts:", limit: limit, window: window}
}

// Allow records an attempt for the email and reports whether it is within
// the limit. The first attempt in a window starts the expiry clock.
func (t *LoginThrottle) Allow(ctx context.Context, email string) (bool, error) {
	key := t.prefix + strings.ToLower(strings.TrimSpace(email))

	count, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis incr: %w", err)
	}
	if count == 1 {
		if expErr := t.client.Expire(ctx, key, t.window).Err(); expErr != nil {
			return false, fmt.Errorf("redis expire: %w", expErr)
		}
	}
	return count <= int64(t.limit), nil
}

// Reset clears the attempt counter, used after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, email string) error {
	key := t.prefix + strings.ToLower(strings.TrimSpace(email))
	return t.client.Del(ctx, key).Err()
}
