package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"finbot/domain"
)

// EntitlementRepositoryRedis stores grants as JSON values that expire with
// the entitlement itself, so redis evicts lapsed grants on its own.
type EntitlementRepositoryRedis struct {
	client *redis.Client
}

func NewEntitlementRepositoryRedis(client *redis.Client) *EntitlementRepositoryRedis {
	return &EntitlementRepositoryRedis{client: client}
}

func entitlementKey(userID string) string { return "premium:" + userID }

func (r *EntitlementRepositoryRedis) Set(ctx context.Context, ent domain.Entitlement) error {
	raw, err := json.Marshal(ent)
	if err != nil {
		return fmt.Errorf("encode entitlement %s: %w", ent.UserID, err)
	}

	ttl := time.Until(ent.ExpiresAt)
	if ttl <= 0 {
		return r.client.Del(ctx, entitlementKey(ent.UserID)).Err()
	}
	if err := r.client.Set(ctx, entitlementKey(ent.UserID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("save entitlement %s: %w", ent.UserID, err)
	}
	return nil
}

func (r *EntitlementRepositoryRedis) Get(ctx context.Context, userID string) (domain.Entitlement, bool, error) {
	raw, err := r.client.Get(ctx, entitlementKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Entitlement{}, false, nil
	}
	if err != nil {
		return domain.Entitlement{}, false, fmt.Errorf("load entitlement %s: %w", userID, err)
	}

	var ent domain.Entitlement
	if err := json.Unmarshal([]byte(raw), &ent); err != nil {
		return domain.Entitlement{}, false, fmt.Errorf("decode entitlement %s: %w", userID, err)
	}
	return ent, true, nil
}
