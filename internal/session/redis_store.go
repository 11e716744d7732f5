package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	accessTokenKey  = "access_token"
	refreshTokenKey = "refresh_token"
)

// RedisTokenStore keeps the token pair in two fixed keys under a terminal prefix.
// Both keys are written and deleted in one MULTI/EXEC transaction.
type RedisTokenStore struct {
	client *redis.Client
	prefix string
}

func NewRedisTokenStore(client *redis.Client, prefix string) *RedisTokenStore {
	return &RedisTokenStore{client: client, prefix: prefix}
}

func (r *RedisTokenStore) Load(ctx context.Context) (Tokens, error) {
	vals, err := r.client.MGet(ctx, r.key(accessTokenKey), r.key(refreshTokenKey)).Result()
	if err != nil {
		return Tokens{}, fmt.Errorf("redis load tokens failed: %w", err)
	}

	var tokens Tokens
	if s, ok := vals[0].(string); ok {
		tokens.Access = s
	}
	if s, ok := vals[1].(string); ok {
		tokens.Refresh = s
	}
	return tokens, nil
}

func (r *RedisTokenStore) Save(ctx context.Context, tokens Tokens) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.key(accessTokenKey), tokens.Access, 0)
		pipe.Set(ctx, r.key(refreshTokenKey), tokens.Refresh, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save tokens failed: %w", err)
	}
	return nil
}

func (r *RedisTokenStore) Clear(ctx context.Context) error {
	err := r.client.Del(ctx, r.key(accessTokenKey), r.key(refreshTokenKey)).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("redis clear tokens failed: %w", err)
	}
	return nil
}

func (r *RedisTokenStore) key(name string) string {
	return r.prefix + name
}
