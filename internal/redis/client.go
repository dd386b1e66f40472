// Package redis wraps the go-redis client so repositories depend on a small
// interface that tests can back with miniredis.
package redis

import (
	"crypto/tls"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options configures Redis client behavior
type Options struct {
	DB              int
	Password        string
	PoolSize        int
	MinIdleConns    int
	ConnMaxIdleTime time.Duration
	DialTimeout     time.Duration
	MaxRetries      int
	UseTLS          bool
}

// NewClient creates a Redis client for a single instance. The connection is
// established lazily on first use.
func NewClient(endpoint string, opts *Options) (Client, error) {
	if endpoint == "" {
		return nil, errors.New("redis: endpoint is required")
	}

	if opts == nil {
		opts = &Options{}
	}

	redisOpts := &redis.Options{
		Addr:            endpoint,
		DB:              opts.DB,
		Password:        opts.Password,
		MinIdleConns:    opts.MinIdleConns,
		PoolSize:        opts.PoolSize,
		ConnMaxIdleTime: opts.ConnMaxIdleTime,
		DialTimeout:     opts.DialTimeout,
		MaxRetries:      opts.MaxRetries,
	}

	if opts.UseTLS {
		redisOpts.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	return redis.NewClient(redisOpts), nil
}
