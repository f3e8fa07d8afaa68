package order

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// cancelCheckEvery is how many keys a worker counts between context checks.
const cancelCheckEvery = 1024

// SyncFrequencyMap is a FrequencyMap safe for concurrent writers. The
// look-up-or-insert step runs under one lock, so two writers of the same key
// never both insert.
type SyncFrequencyMap[K comparable] struct {
	mu sync.Mutex
	m  FrequencyMap[K]
}

// Add inserts or increments k and returns the new count.
func (s *SyncFrequencyMap[K]) Add(k K) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Add(k)
}

// Merge adds every count of other under a single lock.
func (s *SyncFrequencyMap[K]) Merge(other *FrequencyMap[K]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m.Merge(other)
}

// Count returns the count of k, zero when absent.
func (s *SyncFrequencyMap[K]) Count(k K) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Count(k)
}

// Snapshot returns an independent copy of the current counts.
func (s *SyncFrequencyMap[K]) Snapshot() *FrequencyMap[K] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Clone()
}

// AggregateParallel counts the keys of every chunk using at most workers
// goroutines (no limit when workers < 1). Each chunk is counted privately and
// the partial maps are merged in chunk order, so the result, key order
// included, equals Aggregate over the concatenated chunks. Cancelling ctx
// stops the workers and returns ctx's error.
func AggregateParallel[K comparable](ctx context.Context, chunks [][]K, workers int) (*FrequencyMap[K], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	partials := make([]*FrequencyMap[K], len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, chunk := range chunks {
		g.Go(func() error {
			m := NewFrequencyMap[K]()
			for j, k := range chunk {
				if j%cancelCheckEvery == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				m.Add(k)
			}
			partials[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := NewFrequencyMap[K]()
	for _, p := range partials {
		out.Merge(p)
	}
	return out, nil
}
