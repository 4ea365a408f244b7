package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "paydesk:"

// RedisStore keeps values as plain redis strings under a key prefix, for
// setups where several client processes share one session.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to addr and checks the server answers.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s unavailable: %w", addr, err)
	}
	return NewRedisStoreWithClient(client, defaultRedisPrefix), nil
}

func NewRedisStoreWithClient(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (r *RedisStore) name(key Key) string {
	return r.prefix + string(key)
}

func (r *RedisStore) Get(ctx context.Context, key Key) (string, bool, error) {
	if err := checkKey(key); err != nil {
		return "", false, err
	}
	v, err := r.client.Get(ctx, r.name(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return v, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key Key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.name(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

// SetMany writes all values in one MULTI/EXEC block.
func (r *RedisStore) SetMany(ctx context.Context, values map[Key]string) error {
	if err := checkKeys(values); err != nil {
		return err
	}
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range values {
			pipe.Set(ctx, r.name(k), v, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set kv batch: %w", err)
	}
	return nil
}

func (r *RedisStore) Remove(ctx context.Context, key Key) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := r.client.Del(ctx, r.name(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete kv[%s]: %w", key, err)
	}
	return nil
}

// List reads the canonical key set with a single MGET.
func (r *RedisStore) List(ctx context.Context) (map[Key]string, error) {
	keys := AllKeys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = r.name(k)
	}

	vals, err := r.client.MGet(ctx, names...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list kv: %w", err)
	}

	result := make(map[Key]string)
	for i, v := range vals {
		if s, ok := v.(string); ok {
			result[keys[i]] = s
		}
	}
	return result, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
