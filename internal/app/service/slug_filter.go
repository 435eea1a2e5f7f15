package service

import (
	"context"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/reddaiahsirigireddy/shortt/internal/app/repository"
)

const (
	filterCapacity = 1_000_000
	filterFPRate   = 0.01
)

// SlugFilter is an in-process bloom filter fronting the link store on the
// resolution path. A negative answer means the slug was never created, so
// the handler can 404 without a store round trip. Positive answers still hit
// the store. The filter assumes a single process writes links; it is seeded
// from the store at boot and updated on every successful create.
type SlugFilter struct {
	mu     sync.RWMutex
	filter *bloom.BloomFilter
}

// NewSlugFilter returns an empty filter sized for the expected keyspace.
func NewSlugFilter() *SlugFilter {
	return &SlugFilter{
		filter: bloom.NewWithEstimates(filterCapacity, filterFPRate),
	}
}

// Seed walks the store's existing slugs into the filter. Returns how many
// slugs were loaded.
func (f *SlugFilter) Seed(ctx context.Context, store repository.LinkStore) (int, error) {
	slugs, err := store.Slugs(ctx)
	if err != nil {
		return 0, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, slug := range slugs {
		f.filter.AddString(slug)
	}
	return len(slugs), nil
}

// Add records a newly created slug.
func (f *SlugFilter) Add(slug string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filter.AddString(slug)
}

// MightContain reports whether the slug could exist. False is definitive.
func (f *SlugFilter) MightContain(slug string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.filter.TestString(slug)
}
