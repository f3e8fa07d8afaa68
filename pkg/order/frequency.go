package order

import (
	"cmp"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/mesh-intelligence/polycore/pkg/types"
)

// KeyCount is one entry of a FrequencyMap.
type KeyCount[K comparable] struct {
	Key   K
	Count int
}

// FrequencyMap counts occurrences of keys. Every key present has a count of
// at least one. Keys are remembered in first-seen order. The zero value is an
// empty map ready to use.
type FrequencyMap[K comparable] struct {
	counts map[K]int
	keys   []K
}

// NewFrequencyMap returns an empty map.
func NewFrequencyMap[K comparable]() *FrequencyMap[K] {
	return &FrequencyMap[K]{counts: make(map[K]int)}
}

// Aggregate counts every key of keys.
func Aggregate[K comparable](keys []K) *FrequencyMap[K] {
	return AggregateSeq(slices.Values(keys))
}

// AggregateSeq counts every key yielded by seq.
func AggregateSeq[K comparable](seq iter.Seq[K]) *FrequencyMap[K] {
	m := NewFrequencyMap[K]()
	for k := range seq {
		m.Add(k)
	}
	return m
}

// FromCounts rebuilds a map from entries. A non-positive count yields
// types.ErrInvalidCount; repeated keys accumulate.
func FromCounts[K comparable](entries ...KeyCount[K]) (*FrequencyMap[K], error) {
	m := NewFrequencyMap[K]()
	for _, e := range entries {
		if err := m.AddN(e.Key, e.Count); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Add inserts k with count one, or increments its count, in a single step.
// It returns the new count.
func (m *FrequencyMap[K]) Add(k K) int {
	n, _ := m.add(k, 1)
	return n
}

// AddN adds n occurrences of k. n must be positive.
func (m *FrequencyMap[K]) AddN(k K, n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %v has count %d", types.ErrInvalidCount, k, n)
	}
	m.add(k, n)
	return nil
}

func (m *FrequencyMap[K]) add(k K, n int) (int, bool) {
	if m.counts == nil {
		m.counts = make(map[K]int)
	}
	cur, ok := m.counts[k]
	if !ok {
		m.keys = append(m.keys, k)
	}
	m.counts[k] = cur + n
	return cur + n, !ok
}

// Count returns the count of k, zero when absent.
func (m *FrequencyMap[K]) Count(k K) int {
	return m.counts[k]
}

// Get returns the count of k, or types.ErrKeyAbsent.
func (m *FrequencyMap[K]) Get(k K) (int, error) {
	n, ok := m.counts[k]
	if !ok {
		return 0, fmt.Errorf("%w: %v", types.ErrKeyAbsent, k)
	}
	return n, nil
}

// Len returns the number of distinct keys.
func (m *FrequencyMap[K]) Len() int {
	return len(m.keys)
}

// Total returns the sum of all counts.
func (m *FrequencyMap[K]) Total() int {
	total := 0
	for _, n := range m.counts {
		total += n
	}
	return total
}

// Keys returns the keys in first-seen order.
func (m *FrequencyMap[K]) Keys() []K {
	return slices.Clone(m.keys)
}

// All iterates keys and counts in first-seen order.
func (m *FrequencyMap[K]) All() iter.Seq2[K, int] {
	return func(yield func(K, int) bool) {
		for _, k := range m.keys {
			if !yield(k, m.counts[k]) {
				return
			}
		}
	}
}

// Entries returns the entries in first-seen order.
func (m *FrequencyMap[K]) Entries() []KeyCount[K] {
	out := make([]KeyCount[K], 0, len(m.keys))
	for k, n := range m.All() {
		out = append(out, KeyCount[K]{Key: k, Count: n})
	}
	return out
}

// Ranked returns the entries by descending count. Equal counts keep
// first-seen order.
func (m *FrequencyMap[K]) Ranked() []KeyCount[K] {
	return SortFunc(m.Entries(), func(a, b KeyCount[K]) int {
		return cmp.Compare(b.Count, a.Count)
	}, Stable)
}

// Merge adds every count of other into m. Keys new to m are appended in
// other's first-seen order.
func (m *FrequencyMap[K]) Merge(other *FrequencyMap[K]) {
	for k, n := range other.All() {
		m.add(k, n)
	}
}

// Equal reports whether both maps hold the same counts. Key order is ignored.
func (m *FrequencyMap[K]) Equal(other *FrequencyMap[K]) bool {
	return maps.Equal(m.counts, other.counts)
}

// Snapshot returns a copy of the counts.
func (m *FrequencyMap[K]) Snapshot() map[K]int {
	out := make(map[K]int, len(m.counts))
	maps.Copy(out, m.counts)
	return out
}

// Clone returns an independent copy.
func (m *FrequencyMap[K]) Clone() *FrequencyMap[K] {
	c := NewFrequencyMap[K]()
	c.Merge(m)
	return c
}
