package source

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/AbdelazizMoustafa10m/Gantry/internal/logging"
)

// DefaultCacheMaxBytes is the cache budget used when none is configured.
const DefaultCacheMaxBytes int64 = 16 << 20

// CachedSource wraps a Source with an in-process TTL cache keyed by project
// ID. Failed loads are never cached. Callers always receive a private copy
// of the cached dataset.
type CachedSource struct {
	next Source
	ttl  time.Duration
	c    *ristretto.Cache[string, *Dataset]
}

// NewCachedSource creates a CachedSource in front of next. maxBytes bounds the
// approximate memory held by cached datasets.
func NewCachedSource(next Source, ttl time.Duration, maxBytes int64) (*CachedSource, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultCacheMaxBytes
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, *Dataset]{
		NumCounters: max(maxBytes/100*10, 1000),
		MaxCost:     maxBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &CachedSource{next: next, ttl: ttl, c: c}, nil
}

// Load implements Source.
func (s *CachedSource) Load(ctx context.Context, projectID string) (*Dataset, error) {
	logger := logging.New("cache")

	if ds, ok := s.c.Get(projectID); ok {
		logger.Debug("cache hit", "project", projectID)
		return ds.Clone(), nil
	}

	ds, err := s.next.Load(ctx, projectID)
	if err != nil {
		return nil, err
	}

	stored := ds.Clone()
	s.c.SetWithTTL(projectID, stored, datasetCost(stored), s.ttl)
	s.c.Wait()
	logger.Debug("cache fill", "project", projectID, "tasks", len(stored.Tasks))
	return ds, nil
}

// Invalidate drops any cached dataset for projectID so the next Load goes to
// the wrapped source.
func (s *CachedSource) Invalidate(projectID string) {
	s.c.Del(projectID)
}

// Close releases cache resources.
func (s *CachedSource) Close() {
	s.c.Close()
}

// datasetCost estimates the in-memory size of ds in bytes.
func datasetCost(ds *Dataset) int64 {
	cost := int64(128 + len(ds.Project.Name) + len(ds.Project.Description))
	for _, t := range ds.Tasks {
		cost += int64(96 + len(t.ID) + len(t.Name) + len(t.StartDate) + len(t.EndDate) + len(t.Status))
	}
	return cost
}
