package order

import (
	"cmp"
	"fmt"
	"math"

	"golang.org/x/exp/constraints"

	"github.com/mesh-intelligence/polycore/pkg/types"
)

// PartialOrder compares a and b. ok is false when the pair is incomparable.
type PartialOrder[T any] func(a, b T) (c int, ok bool)

// Fallback orders a pair the PartialOrder could not. Together they must form
// a consistent total order.
type Fallback[T any] func(a, b T) int

// FloatOrder is the partial order of floating point values: NaN compares
// with nothing, itself included.
func FloatOrder[F constraints.Float](a, b F) (int, bool) {
	if isNaN(a) || isNaN(b) {
		return 0, false
	}
	return cmp.Compare(a, b), true
}

// NaNLast places NaN after every number.
func NaNLast[F constraints.Float]() Fallback[F] {
	return func(a, b F) int {
		return nanRank(a) - nanRank(b)
	}
}

// NaNFirst places NaN before every number.
func NaNFirst[F constraints.Float]() Fallback[F] {
	return func(a, b F) int {
		return nanRank(b) - nanRank(a)
	}
}

// NaNPolicy maps a types.NaNPolicy* value to a fallback. NaNPolicyError and
// the empty string return a nil Fallback.
func NaNPolicy[F constraints.Float](policy string) (Fallback[F], error) {
	switch policy {
	case "", types.NaNPolicyError:
		return nil, nil
	case types.NaNPolicyLast:
		return NaNLast[F](), nil
	case types.NaNPolicyFirst:
		return NaNFirst[F](), nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrNaNPolicyUnknown, policy)
	}
}

// SortPartial returns a copy of s ordered by order. Incomparable pairs are
// resolved by fallback; with a nil fallback the first incomparable pair
// aborts the sort with types.ErrIncomparableValues.
func SortPartial[T any](s []T, order PartialOrder[T], fallback Fallback[T], st Stability) ([]T, error) {
	var incomparable error
	out := SortFunc(s, func(a, b T) int {
		if c, ok := order(a, b); ok {
			return c
		}
		if fallback != nil {
			return fallback(a, b)
		}
		if incomparable == nil {
			incomparable = fmt.Errorf("%w: %v and %v", types.ErrIncomparableValues, a, b)
		}
		return 0
	}, st)
	if incomparable != nil {
		return nil, incomparable
	}
	return out, nil
}

// LargestPartial returns the maximum of s under order, resolving
// incomparable pairs with fallback. Ties keep the earlier element.
func LargestPartial[T any](s []T, order PartialOrder[T], fallback Fallback[T]) (T, error) {
	var zero T
	if len(s) == 0 {
		return zero, types.ErrEmptySequence
	}
	largest := s[0]
	for _, item := range s[1:] {
		c, ok := order(item, largest)
		if !ok {
			if fallback == nil {
				return zero, fmt.Errorf("%w: %v and %v", types.ErrIncomparableValues, item, largest)
			}
			c = fallback(item, largest)
		}
		if c > 0 {
			largest = item
		}
	}
	return largest, nil
}

func isNaN[F constraints.Float](f F) bool {
	return math.IsNaN(float64(f))
}

func nanRank[F constraints.Float](f F) int {
	if isNaN(f) {
		return 1
	}
	return 0
}
