// Package loader batch-resolves project and version records, consulting an
// LRU cache before falling back to the primary store.
package loader

import (
	"context"

	"github.com/forgelode/indexer/internal/cache"
	"github.com/forgelode/indexer/internal/model"
)

// ProjectSource batch-fetches hydrated project records from the primary
// store.
type ProjectSource interface {
	ProjectsByIDs(ctx context.Context, ids []int64) (map[int64]model.ProjectRecord, error)
}

// VersionSource batch-fetches hydrated version records from the primary
// store.
type VersionSource interface {
	VersionsByIDs(ctx context.Context, ids []int64) (map[int64]model.VersionRecord, error)
}

// Source is the combined store dependency of the Loader.
type Source interface {
	ProjectSource
	VersionSource
}

// Loader resolves records cache-then-store. Any requested id may
// legitimately fail to resolve (e.g. concurrent deletion); unmatched ids are
// simply absent from the output mapping.
type Loader struct {
	source   Source
	projects *cache.Records[int64, model.ProjectRecord]
	versions *cache.Records[int64, model.VersionRecord]
}

// New creates a Loader over the given store and caches.
func New(
	source Source,
	projects *cache.Records[int64, model.ProjectRecord],
	versions *cache.Records[int64, model.VersionRecord],
) *Loader {
	return &Loader{source: source, projects: projects, versions: versions}
}

// Projects resolves the given project ids.
func (l *Loader) Projects(ctx context.Context, ids []int64) (map[int64]model.ProjectRecord, error) {
	return resolve(ctx, ids, l.projects, l.source.ProjectsByIDs)
}

// Versions resolves the given version ids.
func (l *Loader) Versions(ctx context.Context, ids []int64) (map[int64]model.VersionRecord, error) {
	return resolve(ctx, ids, l.versions, l.source.VersionsByIDs)
}

// resolve looks each id up in the cache, fetches the misses from the store
// in one batch, and backfills the cache with the fetched records.
func resolve[V any](
	ctx context.Context,
	ids []int64,
	c *cache.Records[int64, V],
	fetch func(context.Context, []int64) (map[int64]V, error),
) (map[int64]V, error) {
	out := make(map[int64]V, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	var misses []int64

	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if v, ok := c.Get(id); ok {
			out[id] = v
		} else {
			misses = append(misses, id)
		}
	}

	if len(misses) == 0 {
		return out, nil
	}

	fetched, err := fetch(ctx, misses)
	if err != nil {
		return nil, err
	}
	for id, v := range fetched {
		c.Add(id, v)
		out[id] = v
	}
	return out, nil
}
