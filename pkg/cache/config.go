package cache

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	// URL is a redis:// or rediss:// connection string. When set it wins over
	// Addr, Password and DB.
	URL        string
	Addr       string
	Password   string
	DB         int
	Prefix     string
	DefaultTTL time.Duration
	// PingTimeout bounds the connectivity check in Init.
	PingTimeout time.Duration
}

func (c Config) options() (*redis.Options, error) {
	if c.URL != "" {
		opts, err := redis.ParseURL(c.URL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return opts, nil
	}
	addr := c.Addr
	if addr == "" {
		addr = "127.0.0.1:6379"
	}
	return &redis.Options{
		Addr:     addr,
		Password: c.Password,
		DB:       c.DB,
	}, nil
}
