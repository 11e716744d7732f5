package session

import (
	"fmt"
	"io"

	"github.com/redis/go-redis/v9"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenStore builds the token store named by cfg.Store. redisClient is only
// used for the redis store. The returned closer releases the store's resources.
func OpenStore(cfg config.SessionConfig, redisClient *redis.Client) (TokenStore, io.Closer, error) {
	switch cfg.Store {
	case "", "sqlite":
		store, err := OpenSQLiteTokenStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	case "redis":
		if redisClient == nil {
			return nil, nil, fmt.Errorf("session store %q needs a redis client", cfg.Store)
		}
		return NewRedisTokenStore(redisClient, cfg.KeyPrefix), nopCloser{}, nil
	case "memory":
		return NewMemoryTokenStore(), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.Store)
	}
}
