package redis

import (
	"context"
	"errors"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
)

// Connect opens a client and pings it with exponential backoff until it
// answers, the attempts run out or cfg.ConnectTimeout elapses.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, ErrEmptyConnectionURL
	}
	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisConnString, err)
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	client := redis.NewClient(opts)
	ping := func() error {
		return client.Ping(ctx).Err()
	}
	if err := backoff.Retry(ping, backoff.WithContext(newBackoff(cfg), ctx)); err != nil {
		_ = client.Close()
		return nil, errors.Join(ErrRedisNotReady, err)
	}
	return client, nil
}

func newBackoff(cfg Config) backoff.BackOff {
	ebo := backoff.NewExponentialBackOff()
	if cfg.RetryInterval > 0 {
		ebo.InitialInterval = cfg.RetryInterval
	}
	ebo.MaxElapsedTime = 0 // bounded by the context and attempt count
	ebo.Reset()
	if cfg.RetryAttempts > 0 {
		// The first ping is not a retry.
		return backoff.WithMaxRetries(ebo, uint64(cfg.RetryAttempts-1))
	}
	return ebo
}
