package depset

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/albertocavalcante/go-depset/coordinate"
)

// BOMResolver fetches the version pins published in a bill of materials.
// Implementations own the I/O and must be safe for concurrent use.
type BOMResolver interface {
	ResolveBOM(ctx context.Context, bom coordinate.Coordinate) (VersionProvider, error)
}

// BOMResolverFunc adapts a function to [BOMResolver].
type BOMResolverFunc func(ctx context.Context, bom coordinate.Coordinate) (VersionProvider, error)

// ResolveBOM calls f.
func (f BOMResolverFunc) ResolveBOM(ctx context.Context, bom coordinate.Coordinate) (VersionProvider, error) {
	return f(ctx, bom)
}

// StaticBOMResolver serves BOMs from memory, keyed by "group:name:version".
type StaticBOMResolver map[string]VersionProvider

// ResolveBOM returns the pins registered for the BOM's module and version.
func (r StaticBOMResolver) ResolveBOM(_ context.Context, bom coordinate.Coordinate) (VersionProvider, error) {
	key := bomKey(bom)
	vp, ok := r[key]
	if !ok {
		return VersionProvider{}, fmt.Errorf("bom %s not found", key)
	}
	return vp, nil
}

func bomKey(bom coordinate.Coordinate) string {
	return bom.ModuleID().String() + ":" + bom.Version().String()
}

// CachingBOMResolver memoizes another resolver in a bounded LRU cache.
// Failed lookups are not cached.
type CachingBOMResolver struct {
	next   BOMResolver
	cache  *lru.Cache[string, VersionProvider]
	hits   atomic.Int64
	misses atomic.Int64
}

// NewCachingBOMResolver wraps next with a cache holding up to size BOMs.
func NewCachingBOMResolver(next BOMResolver, size int) (*CachingBOMResolver, error) {
	if next == nil {
		return nil, errors.New("caching bom resolver: nil resolver")
	}
	cache, err := lru.New[string, VersionProvider](size)
	if err != nil {
		return nil, fmt.Errorf("caching bom resolver: %w", err)
	}
	return &CachingBOMResolver{next: next, cache: cache}, nil
}

// ResolveBOM returns the cached pins or asks the wrapped resolver.
func (r *CachingBOMResolver) ResolveBOM(ctx context.Context, bom coordinate.Coordinate) (VersionProvider, error) {
	key := bomKey(bom)
	if vp, ok := r.cache.Get(key); ok {
		r.hits.Add(1)
		return vp, nil
	}
	r.misses.Add(1)
	vp, err := r.next.ResolveBOM(ctx, bom)
	if err != nil {
		return VersionProvider{}, err
	}
	r.cache.Add(key, vp)
	return vp, nil
}

// Stats returns the number of cache hits and misses so far.
func (r *CachingBOMResolver) Stats() (hits, misses int64) {
	return r.hits.Load(), r.misses.Load()
}

// Purge empties the cache.
func (r *CachingBOMResolver) Purge() {
	r.cache.Purge()
}
