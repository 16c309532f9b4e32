// database/redis.go
package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trya20205-hub/SpinNRewardsbackend/models"
)

const userKeyPrefix = "user:"

// RedisStore persists each user record as a JSON value under user:<id>.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore parses the URL, connects and pings with a short timeout.
func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func (rs *RedisStore) Get(ctx context.Context, id string) (*models.User, error) {
	val, err := rs.client.Get(ctx, userKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}

	var u models.User
	if err := json.Unmarshal([]byte(val), &u); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", id, err)
	}
	return &u, nil
}

func (rs *RedisStore) Put(ctx context.Context, id string, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user %s: %w", id, err)
	}
	if err := rs.client.Set(ctx, userKeyPrefix+id, data, 0).Err(); err != nil {
		return fmt.Errorf("set user %s: %w", id, err)
	}
	return nil
}

func (rs *RedisStore) All(ctx context.Context) (map[string]*models.User, error) {
	out := make(map[string]*models.User)

	iter := rs.client.Scan(ctx, 0, userKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		id := strings.TrimPrefix(key, userKeyPrefix)

		val, err := rs.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get user %s: %w", id, err)
		}
		var u models.User
		if err := json.Unmarshal([]byte(val), &u); err != nil {
			return nil, fmt.Errorf("decode user %s: %w", id, err)
		}
		out[id] = &u
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan users: %w", err)
	}
	return out, nil
}

func (rs *RedisStore) Count(ctx context.Context) (int64, error) {
	var n int64
	iter := rs.client.Scan(ctx, 0, userKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		n++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("scan users: %w", err)
	}
	return n, nil
}

func (rs *RedisStore) Close(ctx context.Context) error {
	return rs.client.Close()
}
