package order

import (
	"cmp"
	"fmt"
	"slices"

	"golang.org/x/exp/constraints"

	"github.com/mesh-intelligence/polycore/pkg/types"
)

// Total is the set of types with a natural total order.
type Total interface {
	constraints.Integer | ~string
}

// Stability selects how equal elements are treated.
type Stability int

const (
	// Stable keeps equal elements in input order.
	Stable Stability = iota
	// Unstable gives no guarantee about equal elements.
	Unstable
)

// String returns the config name of the stability.
func (s Stability) String() string {
	if s == Unstable {
		return types.StabilityUnstable
	}
	return types.StabilityStable
}

// ParseStability maps a config value to a Stability. The empty string is
// Stable.
func ParseStability(s string) (Stability, error) {
	switch s {
	case "", types.StabilityStable:
		return Stable, nil
	case types.StabilityUnstable:
		return Unstable, nil
	default:
		return Stable, fmt.Errorf("%w: %q", types.ErrStabilityUnknown, s)
	}
}

// Sort returns a copy of s in non-decreasing natural order.
func Sort[T Total](s []T, st Stability) []T {
	return SortFunc(s, cmp.Compare[T], st)
}

// SortFunc returns a copy of s ordered by compare, which must be a total
// order.
func SortFunc[T any](s []T, compare func(a, b T) int, st Stability) []T {
	out := slices.Clone(s)
	if st == Unstable {
		slices.SortFunc(out, compare)
	} else {
		slices.SortStableFunc(out, compare)
	}
	return out
}

// SortByKey orders records by a key the caller extracts. The records
// themselves are never inspected.
func SortByKey[T any, K Total](s []T, key func(T) K, st Stability) []T {
	return SortFunc(s, func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}, st)
}

// IsSorted reports whether s is non-decreasing under compare.
func IsSorted[T any](s []T, compare func(a, b T) int) bool {
	return slices.IsSortedFunc(s, compare)
}

// Largest returns the maximum of s, or types.ErrEmptySequence.
func Largest[T Total](s []T) (T, error) {
	if len(s) == 0 {
		var zero T
		return zero, types.ErrEmptySequence
	}
	return slices.Max(s), nil
}
