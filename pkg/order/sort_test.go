package order

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/polycore/pkg/types"
)

type person struct {
	Name string
	Age  uint32
}

func TestSortNatural(t *testing.T) {
	in := []int{1, 3, 4, 12, 10}
	for _, st := range []Stability{Stable, Unstable} {
		t.Run(st.String(), func(t *testing.T) {
			got := Sort(in, st)
			assert.Equal(t, []int{1, 3, 4, 10, 12}, got)
		})
	}
	assert.Equal(t, []int{1, 3, 4, 12, 10}, in, "input is not modified")
	assert.Equal(t, []string{"al", "john", "zoe"}, Sort([]string{"zoe", "al", "john"}, Stable))
}

func TestSortIdempotent(t *testing.T) {
	sorted := []int{1, 3, 4, 10, 12}
	assert.Equal(t, sorted, Sort(sorted, Unstable))
	assert.True(t, IsSorted(Sort(sorted, Stable), func(a, b int) int { return a - b }))
	assert.Empty(t, Sort([]int{}, Stable))
}

func TestSortPartialFloats(t *testing.T) {
	in := []float32{1.0, 5.6, 10.3, 2.0, 15.0}
	got, err := SortPartial(in, FloatOrder[float32], nil, Unstable)
	require.NoError(t, err)
	assert.Equal(t, []float32{1.0, 2.0, 5.6, 10.3, 15.0}, got)
}

func TestSortPartialIncomparable(t *testing.T) {
	nan := math.NaN()
	in := []float64{3, nan, 1}

	_, err := SortPartial(in, FloatOrder[float64], nil, Stable)
	assert.ErrorIs(t, err, types.ErrIncomparableValues)

	last, err := SortPartial(in, FloatOrder[float64], NaNLast[float64](), Stable)
	require.NoError(t, err)
	require.Len(t, last, 3)
	assert.Equal(t, []float64{1, 3}, last[:2])
	assert.True(t, math.IsNaN(last[2]))

	first, err := SortPartial(in, FloatOrder[float64], NaNFirst[float64](), Unstable)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(first[0]))
	assert.Equal(t, []float64{1, 3}, first[1:])
}

func TestNaNPolicy(t *testing.T) {
	tests := []struct {
		policy  string
		wantNil bool
		wantErr error
	}{
		{policy: "", wantNil: true},
		{policy: types.NaNPolicyError, wantNil: true},
		{policy: types.NaNPolicyLast},
		{policy: types.NaNPolicyFirst},
		{policy: "skip", wantNil: true, wantErr: types.ErrNaNPolicyUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.policy, func(t *testing.T) {
			fb, err := NaNPolicy[float64](tt.policy)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantNil, fb == nil)
		})
	}
}

func TestSortByKey(t *testing.T) {
	people := []person{{"Zoe", 25}, {"Al", 60}, {"John", 1}}
	got := SortByKey(people, func(p person) uint32 { return p.Age }, Unstable)

	want := []person{{"John", 1}, {"Zoe", 25}, {"Al", 60}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SortByKey mismatch (-want +got):\n%s", diff)
	}
}

func TestSortStableKeepsTies(t *testing.T) {
	people := []person{{"b", 2}, {"a", 1}, {"c", 2}, {"d", 1}}
	got := SortByKey(people, func(p person) uint32 { return p.Age }, Stable)
	assert.Equal(t, []person{{"a", 1}, {"d", 1}, {"b", 2}, {"c", 2}}, got)
}

func TestParseStability(t *testing.T) {
	st, err := ParseStability("")
	require.NoError(t, err)
	assert.Equal(t, Stable, st)

	st, err = ParseStability(types.StabilityUnstable)
	require.NoError(t, err)
	assert.Equal(t, Unstable, st)

	_, err = ParseStability("quick")
	assert.ErrorIs(t, err, types.ErrStabilityUnknown)
}

func TestLargest(t *testing.T) {
	got, err := Largest([]int{34, 50, 25, 100, 65})
	require.NoError(t, err)
	assert.Equal(t, 100, got)

	_, err = Largest([]string{})
	assert.ErrorIs(t, err, types.ErrEmptySequence)
}

func TestLargestPartial(t *testing.T) {
	got, err := LargestPartial([]float64{1.5, 9.25, 3}, FloatOrder[float64], nil)
	require.NoError(t, err)
	assert.Equal(t, 9.25, got)

	_, err = LargestPartial([]float64{1, math.NaN()}, FloatOrder[float64], nil)
	assert.ErrorIs(t, err, types.ErrIncomparableValues)

	got, err = LargestPartial([]float64{1, math.NaN(), 4}, FloatOrder[float64], NaNFirst[float64]())
	require.NoError(t, err)
	assert.Equal(t, 4.0, got)

	_, err = LargestPartial(nil, FloatOrder[float64], nil)
	assert.ErrorIs(t, err, types.ErrEmptySequence)
}
