package container

import "fmt"

// Pair holds two values whose types may differ.
type Pair[T, U any] struct {
	X T
	Y U
}

// String formats the pair as {x: X, y: Y}.
func (p Pair[T, U]) String() string {
	return fmt.Sprintf("{x: %v, y: %v}", p.X, p.Y)
}

// Mixup combines two pairs of possibly different parameterizations, keeping
// p's X and other's Y. The rule is asymmetric; it is a convention, not a law
// that generalizes to other combinations.
func Mixup[T, U, V, W any](p Pair[T, U], other Pair[V, W]) Pair[T, W] {
	return Pair[T, W]{X: p.X, Y: other.Y}
}
