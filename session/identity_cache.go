package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdentityCache keeps resolved identities in redis so the auth middleware
// skips the user lookup on most requests. Entries expire on their own; a
// user delete would simply fall back to find-or-create.
type IdentityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewIdentityCache(rdb *redis.Client, ttl time.Duration) *IdentityCache {
	return &IdentityCache{rdb: rdb, ttl: ttl}
}

// Identity is the cached snapshot of a staff user.
type Identity struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
}

func key(email string) string { return fmt.Sprintf("auth:ident:%s", email) }

func (c *IdentityCache) Get(ctx context.Context, email string) (*Identity, error) {
	b, err := c.rdb.Get(ctx, key(email)).Bytes()
	if err != nil {
		return nil, err
	}
	var id Identity
	if err := json.Unmarshal(b, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

func (c *IdentityCache) Put(ctx context.Context, id Identity) error {
	b, _ := json.Marshal(id)
	return c.rdb.Set(ctx, key(id.Email), b, c.ttl).Err()
}

func (c *IdentityCache) Delete(ctx context.Context, email string) error {
	return c.rdb.Del(ctx, key(email)).Err()
}
