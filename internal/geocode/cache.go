package geocode

import (
	"context"
	"log"
	"strings"

	"github.com/i474232898/destination-intel/internal/store"
)

// CachingResolver serves repeated names from a bounded TTL cache. Only successful
// resolutions are stored, so a NotFound is retried on the next request.
type CachingResolver struct {
	next  Resolver
	cache *store.MemoryCache[Result]
}

// NewCachingResolver wraps next with cache.
func NewCachingResolver(next Resolver, cache *store.MemoryCache[Result]) *CachingResolver {
	return &CachingResolver{next: next, cache: cache}
}

func (c *CachingResolver) Name() string {
	return c.next.Name()
}

func (c *CachingResolver) Resolve(ctx context.Context, name string) (Result, error) {
	// The key outlives the request; name may alias a reused buffer.
	key := strings.Clone(strings.ToLower(Normalize(name)))
	if key == "" {
		return Result{}, ErrEmptyName
	}

	if res, err := c.cache.Get(key); err == nil {
		log.Printf("DEBUG: geocode cache hit for %q", key)
		return res, nil
	}

	res, err := c.next.Resolve(ctx, name)
	if err != nil {
		return Result{}, err
	}
	c.cache.Put(key, res)
	return res, nil
}
