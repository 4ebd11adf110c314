package redisx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/auth"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/moderation"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/entity"
)

var _ auth.IdentityCache = (*IdentityCache)(nil)
var _ moderation.IdentityInvalidator = (*IdentityCache)(nil)

// keyIdentity snapshot {id, role, status}: identity:{account_id}
const keyIdentity = "identity:%s"

// New crea el cliente Redis del cache de identidad.
func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

// IdentityCache cache Redis del snapshot de identidad. La política es
// determinista por snapshot, así que el cache vale mientras las transiciones
// de moderación lo invaliden.
type IdentityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewIdentityCache construye el cache con su TTL.
func NewIdentityCache(rdb *redis.Client, ttl time.Duration) *IdentityCache {
	return &IdentityCache{rdb: rdb, ttl: ttl}
}

type snapshot struct {
	ID     string `json:"id"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// Get devuelve el snapshot cacheado, o nil, nil en cache miss.
func (c *IdentityCache) Get(ctx context.Context, accountID string) (*entity.Identity, error) {
	raw, err := c.rdb.Get(ctx, fmt.Sprintf(keyIdentity, accountID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get identity: %w", err)
	}
	var s snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("unmarshal identity: %w", err)
	}
	return &entity.Identity{
		ID:     s.ID,
		Role:   entity.Role(s.Role),
		Status: entity.ModerationStatus(s.Status),
	}, nil
}

// Set guarda el snapshot con TTL.
func (c *IdentityCache) Set(ctx context.Context, id entity.Identity) error {
	raw, err := json.Marshal(snapshot{ID: id.ID, Role: string(id.Role), Status: string(id.Status)})
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, fmt.Sprintf(keyIdentity, id.ID), raw, c.ttl).Err()
}

// Invalidate borra el snapshot; se llama en cada transición de moderación
// sobre la cuenta.
func (c *IdentityCache) Invalidate(ctx context.Context, accountID string) error {
	return c.rdb.Del(ctx, fmt.Sprintf(keyIdentity, accountID)).Err()
}
