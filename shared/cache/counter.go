package cache

//go:generate go run go.uber.org/mock/mockgen -source=./counter.go -destination=./mocks/counter_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotel/infras/otel"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNoBackend = errors.New("counter has no redis client")

// Counter keeps fixed-window counters.
type Counter interface {
	// Incr adds one to key and returns the new value. The window of windowSecs starts with the
	// first increment and is not extended by later ones.
	Incr(ctx context.Context, key string, windowSecs int) (int64, error)
}

type redisCounter struct {
	client *redis.Client
	otel   otel.Otel
}

func NewCounter(client *redis.Client, ot otel.Otel) Counter {
	if client == nil {
		return noopCounter{}
	}

	return &redisCounter{
		client: client,
		otel:   ot,
	}
}

// Incr implements Counter.
func (counter *redisCounter) Incr(ctx context.Context, key string, windowSecs int) (count int64, err error) {
	ctx, scope := counter.otel.NewScope(ctx, otelScopeName, otelScopeName+".Incr")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	count, err = counter.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter: %w", err)
	}

	if count == 1 {
		if err = counter.client.Expire(ctx, key, time.Second*time.Duration(windowSecs)).Err(); err != nil {
			return 0, fmt.Errorf("failed to open counter window: %w", err)
		}
	}

	return count, nil
}

type noopCounter struct{}

func (noopCounter) Incr(context.Context, string, int) (int64, error) { return 0, ErrNoBackend }
