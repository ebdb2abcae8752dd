package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Resolver is the redirect resolution a ResolveCache memoizes.
type Resolver interface {
	Resolve(ctx context.Context, code, clientIP string, today time.Time) (string, error)
}

// ResolveCache memoizes successful resolutions by short code for a
// fixed TTL. A hit returns the stored target without touching the
// resolver, so click counters and IP aggregates are deliberately not
// updated for cached requests. Entries expire only by elapsed time;
// there is no invalidation on write.
type ResolveCache struct {
	next  Resolver
	store *gocache.Cache
}

func New(next Resolver, ttl time.Duration) *ResolveCache {
	return &ResolveCache{
		next:  next,
		store: gocache.New(ttl, 10*time.Minute),
	}
}

func (rc *ResolveCache) Resolve(ctx context.Context, code, clientIP string, today time.Time) (string, error) {
	if v, ok := rc.store.Get(code); ok {
		return v.(string), nil
	}

	target, err := rc.next.Resolve(ctx, code, clientIP, today)
	if err != nil {
		// Failures, including unknown codes, are never cached.
		return "", err
	}

	rc.store.SetDefault(code, target)
	return target, nil
}

// Reset drops every memoized entry.
func (rc *ResolveCache) Reset() {
	rc.store.Flush()
}
