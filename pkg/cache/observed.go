package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/folio/pkg/observability"
)

// Observed reports hits, misses and writes of c to the registered cache
// hooks. The key type passed to the hooks is the key's kind, such as "doc"
// or "artifact".
func Observed(c Cache) Cache {
	if c == nil {
		return nil
	}
	if _, ok := c.(*observed); ok {
		return c
	}
	return &observed{Cache: c}
}

type observed struct {
	Cache
}

func (o *observed) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := o.Cache.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, KeyKind(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, KeyKind(key))
		}
	}
	return data, hit, err
}

func (o *observed) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := o.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, KeyKind(key), len(data))
	}
	return err
}

// Clear forwards to the wrapped cache when it is a Clearer.
func (o *observed) Clear(ctx context.Context) (int, error) {
	if cl, ok := o.Cache.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return 0, nil
}

// KeyKind returns the kind segment of a key, the one before its hash.
func KeyKind(key string) string {
	parts := strings.Split(key, ":")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-2]
}
