package errorlog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/alem-hub/campus-registrar/pkg/circuitbreaker"
	"github.com/alem-hub/campus-registrar/pkg/retry"
)

// ListPusher is the part of the Redis client the sink needs.
// *redis.Client satisfies it.
type ListPusher interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// RedisSink pushes entry lines onto a Redis list. Appends are rate limited,
// retried with backoff and guarded by a circuit breaker.
type RedisSink struct {
	client  ListPusher
	key     string
	limiter *rate.Limiter
	retrier *retry.Retrier
	breaker *circuitbreaker.CircuitBreaker
}

// RedisOption configures a RedisSink.
type RedisOption func(*RedisSink)

// WithRedisRetrier replaces the default backoff policy.
func WithRedisRetrier(r *retry.Retrier) RedisOption {
	return func(s *RedisSink) { s.retrier = r }
}

// WithRedisBreaker replaces the default circuit breaker.
func WithRedisBreaker(cb *circuitbreaker.CircuitBreaker) RedisOption {
	return func(s *RedisSink) { s.breaker = cb }
}

// NewRedisSink returns a sink pushing onto key at most perSecond times a
// second. A non-positive perSecond disables the limit.
func NewRedisSink(client ListPusher, key string, perSecond float64, opts ...RedisOption) *RedisSink {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}

	s := &RedisSink{
		client:  client,
		key:     key,
		limiter: rate.NewLimiter(limit, 1),
		retrier: retry.RemoteSinkRetrier(nil),
		breaker: circuitbreaker.RemoteSinkBreaker("redis-error-log", nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisSink) Name() string { return "redis" }

// Append RPUSHes the entry line.
func (s *RedisSink) Append(ctx context.Context, e Entry) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	line := e.Line()
	return s.breaker.Execute(ctx, func(ctx context.Context) error {
		return s.retrier.Do(ctx, func(ctx context.Context) error {
			err := s.client.RPush(ctx, s.key, line).Err()
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return retry.Permanent(err)
			}
			return err
		})
	})
}

// Interval returns the minimum spacing between appends.
func (s *RedisSink) Interval() time.Duration {
	if s.limiter.Limit() == rate.Inf {
		return 0
	}
	return time.Duration(float64(time.Second) / float64(s.limiter.Limit()))
}
