package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/campuschain/access-layer/internal/adapter"
	"github.com/campuschain/access-layer/internal/logger"
)

// Config holds the per-actor write rate limit
type Config struct {
	RequestsPerMinute int
	Burst             int

	// RedisKeyPrefix namespaces the limiter keys in Redis
	RedisKeyPrefix string
}

// Result is the outcome of one limit check
type Result struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Limiter answers whether an actor may perform another sponsored write.
// Limits are enforced in Redis so they hold across API replicas; when
// Redis is unreachable the limiter falls back to per-process token
// buckets rather than failing open.
//
//go:generate mockgen -source=limiter.go -destination=../mocks/ratelimit.go -package=mocks -mock_names=Limiter=MockLimiter
type Limiter interface {
	// Allow checks and consumes one request slot for the actor
	Allow(ctx context.Context, actor string) (Result, error)

	// Close gracefully shuts down the limiter
	Close() error
}

type limiter struct {
	config             Config
	redis              adapter.RedisClient
	distributedLimiter adapter.RedisRateLimiter
	clock              adapter.Clock

	mu     sync.Mutex
	local  map[string]*rate.Limiter
	closed atomic.Bool

	closeOnce      sync.Once
	redisAvailable atomic.Bool
}

// NewLimiter creates a Limiter backed by Redis
func NewLimiter(cfg Config, rc adapter.RedisClient, clock adapter.Clock) (Limiter, error) {
	if cfg.RequestsPerMinute <= 0 {
		return nil, fmt.Errorf("requests_per_minute must be positive")
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.RequestsPerMinute
	}
	if cfg.RedisKeyPrefix == "" {
		cfg.RedisKeyPrefix = "campus:access:limiter:"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisAvailable := true
	if err := rc.Ping(ctx).Err(); err != nil {
		redisAvailable = false
		logger.Warn("Redis unavailable, rate limiting falls back to local buckets", zap.Error(err))
	}

	l := &limiter{
		config:             cfg,
		redis:              rc,
		distributedLimiter: rc.NewRateLimiter(),
		clock:              clock,
		local:              make(map[string]*rate.Limiter),
	}
	l.redisAvailable.Store(redisAvailable)

	go l.monitorRedisHealth()

	logger.Info("Rate limiter initialized",
		zap.Int("requests_per_minute", cfg.RequestsPerMinute),
		zap.Int("burst", cfg.Burst),
		zap.Bool("redis_available", redisAvailable),
	)

	return l, nil
}

// Allow checks and consumes one request slot for the actor
func (l *limiter) Allow(ctx context.Context, actor string) (Result, error) {
	if l.closed.Load() {
		return Result{}, fmt.Errorf("limiter is closed")
	}

	if l.redisAvailable.Load() {
		res, err := l.distributedLimiter.Allow(ctx, l.config.RedisKeyPrefix+actor,
			redis_rate.Limit{
				Rate:   l.config.RequestsPerMinute,
				Burst:  l.config.Burst,
				Period: time.Minute,
			})
		if err != nil {
			if ctx.Err() != nil {
				return Result{}, ctx.Err()
			}
			// Redis error, mark unavailable and fall through to local
			l.redisAvailable.Store(false)
			logger.Warn("Redis rate limiter error, falling back to local",
				zap.String("actor", actor),
				zap.Error(err),
			)
		} else {
			if res.Allowed == 0 {
				logger.Debug("Write rate limit exceeded",
					zap.String("actor", actor),
					zap.Duration("retry_after", res.RetryAfter),
				)
				return Result{Allowed: false, RetryAfter: res.RetryAfter}, nil
			}
			return Result{Allowed: true}, nil
		}
	}

	bucket := l.localBucket(actor)
	if !bucket.Allow() {
		return Result{Allowed: false, RetryAfter: time.Minute / time.Duration(l.config.RequestsPerMinute)}, nil
	}
	return Result{Allowed: true}, nil
}

// localBucket returns the per-process token bucket for an actor
func (l *limiter) localBucket(actor string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	bucket, ok := l.local[actor]
	if !ok {
		perSecond := float64(l.config.RequestsPerMinute) / 60.0
		bucket = rate.NewLimiter(rate.Limit(perSecond), l.config.Burst)
		l.local[actor] = bucket
	}
	return bucket
}

// monitorRedisHealth periodically checks Redis health and updates availability status
func (l *limiter) monitorRedisHealth() {
	for {
		if l.closed.Load() {
			return
		}

		<-l.clock.After(10 * time.Second)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := l.redis.Ping(ctx).Err()
		cancel()

		redisAvailable := err == nil
		wasAvailable := l.redisAvailable.Load()
		l.redisAvailable.Store(redisAvailable)

		if !wasAvailable && redisAvailable {
			logger.Info("Redis connection restored")
		}
	}
}

// Close gracefully shuts down the limiter
func (l *limiter) Close() error {
	var err error
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		if closeErr := l.redis.Close(); closeErr != nil {
			logger.Warn("Error closing Redis connection", zap.Error(closeErr))
			err = closeErr
		}
	})
	return err
}
