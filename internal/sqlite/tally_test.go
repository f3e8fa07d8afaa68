package sqlite

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/polycore/pkg/order"
	"github.com/mesh-intelligence/polycore/pkg/types"
)

func TestSaveAndLoadTally(t *testing.T) {
	b, _ := attachTemp(t)

	m := order.Aggregate(strings.Fields("hello world wonderful world"))
	id, err := b.SaveTally("greeting", m)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := b.LoadTally(id)
	require.NoError(t, err)
	assert.Equal(t, "greeting", got.Name)
	assert.Equal(t, id, got.TallyID)
	assert.False(t, got.CreatedAt.IsZero())
	assert.True(t, m.Equal(got.Counts))
	assert.Equal(t, []string{"hello", "world", "wonderful"}, got.Counts.Keys())
}

func TestSaveTallyRejectsEmptyName(t *testing.T) {
	b, _ := attachTemp(t)
	_, err := b.SaveTally("  ", order.Aggregate([]string{"a"}))
	assert.ErrorIs(t, err, types.ErrInvalidName)
}

func TestLoadTallyAbsent(t *testing.T) {
	b, _ := attachTemp(t)
	_, err := b.LoadTally("missing")
	assert.ErrorIs(t, err, types.ErrKeyAbsent)
}

func TestIncrement(t *testing.T) {
	b, _ := attachTemp(t)
	id, err := b.SaveTally("words", order.Aggregate([]string{"a"}))
	require.NoError(t, err)

	n, err := b.Increment(id, "a", 2)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = b.Increment(id, "b", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = b.Increment(id, "a", 0)
	assert.ErrorIs(t, err, types.ErrInvalidCount)
	_, err = b.Increment("missing", "a", 1)
	assert.ErrorIs(t, err, types.ErrKeyAbsent)

	got, err := b.LoadTally(id)
	require.NoError(t, err)
	assert.Equal(t, []order.KeyCount[string]{{Key: "a", Count: 3}, {Key: "b", Count: 1}}, got.Counts.Entries())
}

func TestIncrementConcurrent(t *testing.T) {
	b, _ := attachTemp(t)
	id, err := b.SaveTally("hits", order.NewFrequencyMap[string]())
	require.NoError(t, err)

	const writers, perWriter = 4, 25
	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWriter {
				_, err := b.Increment(id, "page", 1)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	got, err := b.LoadTally(id)
	require.NoError(t, err)
	assert.Equal(t, writers*perWriter, got.Counts.Count("page"))
	assert.Equal(t, 1, got.Counts.Len())
}

func TestListAndDeleteTallies(t *testing.T) {
	b, _ := attachTemp(t)

	first, err := b.SaveTally("first", order.Aggregate([]string{"a", "a", "b"}))
	require.NoError(t, err)
	second, err := b.SaveTally("second", order.NewFrequencyMap[string]())
	require.NoError(t, err)

	list, err := b.ListTallies()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first, list[0].TallyID)
	assert.Equal(t, 2, list[0].Keys)
	assert.Equal(t, 3, list[0].Total)
	assert.Equal(t, second, list[1].TallyID)
	assert.Equal(t, 0, list[1].Total)

	require.NoError(t, b.DeleteTally(first))
	assert.ErrorIs(t, b.DeleteTally(first), types.ErrKeyAbsent)

	list, err = b.ListTallies()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "second", list[0].Name)
}
