// Package lock serialises conversions of the same source document across API instances.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/sangkips/ledger-api/internal/config"
)

const retryInterval = 100 * time.Millisecond

type obtainer interface {
	Obtain(ctx context.Context, key string, ttl time.Duration, opt *redislock.Options) (*redislock.Lock, error)
}

// RedisLocker holds short-lived Redis locks keyed by source document
type RedisLocker struct {
	client obtainer
	ttl    time.Duration
	wait   time.Duration
}

// NewRedisClient connects to Redis and pings it a few times before giving up
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	log := config.GetLogger()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: 100,
	})

	var err error
	for attempt := 1; attempt <= 5; attempt++ {
		if err = rdb.Ping(ctx).Err(); err == nil {
			log.WithField("addr", cfg.Address).Infof("connected to redis (attempt=%d)", attempt)
			return rdb, nil
		}
		sleep := time.Second * time.Duration(1<<attempt)
		log.WithField("addr", cfg.Address).Warnf("failed to connect redis (attempt=%d): %v; retrying in %s", attempt, err, sleep)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(sleep):
		}
	}
	_ = rdb.Close()
	return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Address, err)
}

// NewRedisLocker creates a locker on top of an open Redis client
func NewRedisLocker(rdb *redis.Client, ttl, wait time.Duration) *RedisLocker {
	return &RedisLocker{
		client: redislock.New(rdb),
		ttl:    ttl,
		wait:   wait,
	}
}

// Acquire obtains the lock for key, retrying for up to the configured wait.
// When the lock stays busy past the wait the caller proceeds without it and the
// database row lock and conditional link write decide the outcome.
func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	retries := int(l.wait / retryInterval)
	opts := &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(retryInterval), retries),
	}

	lk, err := l.client.Obtain(ctx, "lock:"+key, l.ttl, opts)
	if errors.Is(err, redislock.ErrNotObtained) {
		config.GetLogger().WithField("key", key).Warn("lock still busy after wait, falling back to database guards")
		return func() {}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("obtain lock %s: %w", key, err)
	}

	return func() {
		if err := lk.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			config.LogError(config.GetLogger(), "lock", "Acquire", "release", key, err)
		}
	}, nil
}

// NoopLocker is used when Redis is disabled; the database guards still apply
type NoopLocker struct{}

// Acquire always succeeds immediately
func (NoopLocker) Acquire(ctx context.Context, key string) (func(), error) {
	return func() {}, nil
}
