package container

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Point holds two coordinates of the same type.
type Point[T any] struct {
	x, y T
}

// NewPoint returns the point (x, y).
func NewPoint[T any](x, y T) Point[T] {
	return Point[T]{x: x, y: y}
}

// X returns the first coordinate.
func (p Point[T]) X() T {
	return p.x
}

// Y returns the second coordinate.
func (p Point[T]) Y() T {
	return p.y
}

// DistanceFromOrigin is only available for floating point points.
func DistanceFromOrigin[F constraints.Float](p Point[F]) F {
	return F(math.Sqrt(float64(p.x*p.x + p.y*p.y)))
}
