package waitlist

import (
	"context"
	"time"

	"github.com/akeren/waitlist-api/pkg/constants"
)

// MembershipCache remembers emails already on the list so repeat submissions
// are answered without touching the store.
type MembershipCache interface {
	IsMember(ctx context.Context, email string) (bool, error)
	Remember(ctx context.Context, email string) error
}

// KeyValueCache is the subset of the application cache used here.
type KeyValueCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

type kvMembershipCache struct {
	kv  KeyValueCache
	ttl time.Duration
}

// NewMembershipCache returns nil when kv is nil so callers can pass an
// unconfigured cache straight through.
func NewMembershipCache(kv KeyValueCache, ttl time.Duration) MembershipCache {
	if kv == nil {
		return nil
	}
	return &kvMembershipCache{kv: kv, ttl: ttl}
}

// The store compares emails byte for byte, so the key does too.
func membershipKey(email string) string {
	return constants.MembershipKeyPrefix + email
}

func (c *kvMembershipCache) IsMember(ctx context.Context, email string) (bool, error) {
	v, err := c.kv.Get(ctx, membershipKey(email))
	if err != nil {
		return false, err
	}
	return v != "", nil
}

func (c *kvMembershipCache) Remember(ctx context.Context, email string) error {
	return c.kv.Set(ctx, membershipKey(email), "1", c.ttl)
}
