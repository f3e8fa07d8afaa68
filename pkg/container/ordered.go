package container

import (
	"cmp"
	"fmt"
)

// OrderedPair holds two values of one type. Construction has no bound;
// CmpDisplay requires an ordered element type.
type OrderedPair[T any] struct {
	x, y T
}

// NewOrderedPair returns the pair (x, y).
func NewOrderedPair[T any](x, y T) OrderedPair[T] {
	return OrderedPair[T]{x: x, y: y}
}

// Values returns both members.
func (p OrderedPair[T]) Values() (T, T) {
	return p.x, p.y
}

// CmpDisplay names the larger member. Ties favor x.
func CmpDisplay[T cmp.Ordered](p OrderedPair[T]) string {
	if p.x >= p.y {
		return fmt.Sprintf("largest is x = %v", p.x)
	}
	return fmt.Sprintf("largest is y = %v", p.y)
}
