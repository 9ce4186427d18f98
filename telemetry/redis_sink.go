package telemetry

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RedisSink publishes events to a Redis pub/sub channel, rate-limited
// so a busy simulation run can't flood a slow subscriber. Client
// construction grounded on edirooss-zmux-server's redis.NewClient
// (DialTimeout/ReadTimeout/WriteTimeout, PoolSize, zap.Named logging);
// the limiter is grounded on KhryptorGraphics-OllamaMax's per-route
// rate.NewLimiter usage.
type RedisSink struct {
	client  *redis.Client
	channel string
	limiter *rate.Limiter
	log     *zap.Logger
}

// NewRedisSink dials addr and returns a sink publishing to channel, at
// most eventsPerSecond events per second (bursts of the same size).
func NewRedisSink(addr, channel string, eventsPerSecond int, log *zap.Logger) *RedisSink {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     4,
		MinIdleConns: 1,
		MaxRetries:   2,
	})

	return &RedisSink{
		client:  client,
		channel: channel,
		limiter: rate.NewLimiter(rate.Limit(eventsPerSecond), eventsPerSecond),
		log:     log.Named("telemetry.redis"),
	}
}

// Ping verifies connectivity, grounded on the same repo's Ping method.
func (s *RedisSink) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := s.client.Ping(ctx).Err()
	s.log.Debug("ping", zap.Duration("latency", time.Since(start)), zap.Error(err))
	return err
}

// Publish drops the event without waiting when the limiter denies it.
// Otherwise it publishes synchronously, blocking the caller for at most
// a one-second timeout, and logs and drops the event if the publish
// fails; telemetry is best-effort.
func (s *RedisSink) Publish(ev Event) {
	if !s.limiter.Allow() {
		s.log.Warn("telemetry event dropped: rate limited")
		return
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		s.log.Warn("telemetry event dropped: marshal failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.client.Publish(ctx, s.channel, payload).Err(); err != nil {
		s.log.Warn("telemetry event dropped: publish failed", zap.Error(err))
	}
}

// Close releases the underlying Redis connection pool.
func (s *RedisSink) Close() error {
	return s.client.Close()
}
