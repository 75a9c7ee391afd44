// Package db provides the redis connection used for batch storage.
// This is part of the platform layer and contains no business logic.
package db

import (
	"context"
	"crypto/tls"
	"errors"
	"time"

	"phonenumber_backend/platform/config"

	"github.com/redis/go-redis/v9"
)

var (
	ErrEmptyRedisURL     = errors.New("redis url not configured")
	ErrHealthcheckFailed = errors.New("redis healthcheck failed")
)

// ParseOptions parses a redis:// or rediss:// URL. tlsInsecure disables
// certificate verification, and forces TLS on when the URL did not ask for it.
func ParseOptions(redisURL string, tlsInsecure bool) (*redis.Options, error) {
	if redisURL == "" {
		return nil, ErrEmptyRedisURL
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if tlsInsecure {
			clone.InsecureSkipVerify = true
		}
		opt.TLSConfig = clone
	} else if tlsInsecure {
		opt.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return opt, nil
}

// NewRedis connects to redis and pings it before returning.
func NewRedis(ctx context.Context, cfg config.SchedulerConfig) (*redis.Client, error) {
	opt, err := ParseOptions(cfg.GetRedisURL(), cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// Healthcheck returns a check that pings client.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
