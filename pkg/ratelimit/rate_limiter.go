package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config contains rate limiter configuration
type Config struct {
	Enabled         bool
	WindowDuration  time.Duration
	PublicRequests  int
	BookingRequests int
	AdminRequests   int
}

// RateLimiter implements a fixed-window counter backed by Redis
type RateLimiter struct {
	redis  *redis.Client
	config *Config
}

// Result describes the outcome of a rate limit check
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter(redisClient *redis.Client, config *Config) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		config: config,
	}
}

// Allow checks whether the client identified by key may make another request
// in the given group within the current window.
func (rl *RateLimiter) Allow(ctx context.Context, key, group string) (*Result, error) {
	limit := rl.limitFor(group)
	window := rl.config.WindowDuration
	windowStart := time.Now().Truncate(window)
	redisKey := fmt.Sprintf("ratelimit:%s:%s:%d", group, key, windowStart.Unix())

	pipe := rl.redis.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		// Redis trouble must not take booking traffic down with it.
		return &Result{Allowed: true, Limit: limit, Remaining: limit}, err
	}

	count := int(incr.Val())
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}

	return &Result{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   windowStart.Add(window),
	}, nil
}

func (rl *RateLimiter) limitFor(group string) int {
	switch group {
	case GroupBooking:
		return rl.config.BookingRequests
	case GroupAdmin:
		return rl.config.AdminRequests
	default:
		return rl.config.PublicRequests
	}
}
