package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"finbot/domain"
)

// UserRepositoryRedis stores user records as JSON values in redis.
type UserRepositoryRedis struct {
	client *redis.Client
}

func NewUserRepositoryRedis(client *redis.Client) *UserRepositoryRedis {
	return &UserRepositoryRedis{client: client}
}

func userKey(userID string) string { return "user:" + userID }

func (r *UserRepositoryRedis) Load(ctx context.Context, userID string) (*domain.UserRecord, error) {
	raw, err := r.client.Get(ctx, userKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", userID, err)
	}

	var rec domain.UserRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", userID, err)
	}
	return &rec, nil
}

func (r *UserRepositoryRedis) Save(ctx context.Context, userID string, rec *domain.UserRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode user %s: %w", userID, err)
	}
	if err := r.client.Set(ctx, userKey(userID), raw, 0).Err(); err != nil {
		return fmt.Errorf("save user %s: %w", userID, err)
	}
	return nil
}
