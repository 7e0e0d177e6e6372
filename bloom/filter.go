// Package bloom provides probabilistic set membership for deduplication
// during traversal.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter keyed by string identifiers (URLs, repository
// paths). False positives are possible; false negatives are not.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected items with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a key in the filter.
func (f *Filter) Add(key string) {
	f.f.AddString(key)
}

// Test reports whether the key might be in the filter.
func (f *Filter) Test(key string) bool {
	return f.f.TestString(key)
}

// TestAndAdd tests the key and records it in one call.
// Returns true if the key might have been present already.
func (f *Filter) TestAndAdd(key string) bool {
	return f.f.TestAndAddString(key)
}

// EstimatedCount returns the approximate number of recorded keys.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
