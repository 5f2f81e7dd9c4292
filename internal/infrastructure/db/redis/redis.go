// Package redis backs the optional question-view cache on the quiz read
// path. The cache is best effort: every fault degrades to a provider fetch,
// so the client is tuned to fail fast rather than stall a request.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	pingTimeout = 5 * time.Second
	// A slow cache must lose to the question service, not delay it.
	dialTimeout = 2 * time.Second
	ioTimeout   = 500 * time.Millisecond
)

// Config selects the cache instance. DB isolates the question-view keys
// from anything else sharing the server.
type Config struct {
	Addr string
	DB   int
}

// Connect builds the cache client and validates connectivity with a ping.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		DB:           cfg.DB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  ioTimeout,
		WriteTimeout: ioTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
