package order

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSyncFrequencyMapConcurrentWriters(t *testing.T) {
	var s SyncFrequencyMap[string]
	const writers, perWriter = 8, 500

	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWriter {
				s.Add("shared")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, writers*perWriter, s.Count("shared"))
	snap := s.Snapshot()
	assert.Equal(t, 1, snap.Len())

	s.Merge(Aggregate([]string{"shared", "other"}))
	assert.Equal(t, writers*perWriter+1, s.Count("shared"))
	assert.Equal(t, 1, s.Count("other"))
}

func TestAggregateParallelMatchesSequential(t *testing.T) {
	var chunks [][]string
	var all []string
	for i := range 10 {
		var chunk []string
		for j := range 300 {
			chunk = append(chunk, fmt.Sprintf("k%d", (i*j)%17))
		}
		chunks = append(chunks, chunk)
		all = append(all, chunk...)
	}

	for _, workers := range []int{0, 1, 3} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			got, err := AggregateParallel(context.Background(), chunks, workers)
			require.NoError(t, err)

			want := Aggregate(all)
			assert.True(t, want.Equal(got))
			assert.Equal(t, want.Keys(), got.Keys())
		})
	}
}

func TestAggregateParallelCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := AggregateParallel(ctx, [][]int{{1, 2}, {3}}, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAggregateParallelEmpty(t *testing.T) {
	got, err := AggregateParallel[string](context.Background(), nil, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
}
