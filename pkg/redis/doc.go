// Package redis connects to Redis with go-redis, retrying the initial ping
// with exponential backoff, and exposes a readiness probe for health checks.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//	if cfg.Enabled() {
//	    client, err := redis.Connect(ctx, cfg)
//	    ...
//	}
package redis
