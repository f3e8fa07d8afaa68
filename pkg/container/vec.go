package container

import "golang.org/x/exp/constraints"

// Number is any integer or floating point type.
type Number interface {
	constraints.Integer | constraints.Float
}

// Adder is implemented by types closed under addition.
type Adder[T any] interface {
	Add(other T) T
}

// Vec is a two-component vector over a numeric type.
type Vec[T Number] struct {
	X, Y T
}

// Add returns the component-wise sum.
func (v Vec[T]) Add(other Vec[T]) Vec[T] {
	return Vec[T]{X: v.X + other.X, Y: v.Y + other.Y}
}

// Add sums two numbers of the same type.
func Add[T Number](a, b T) T {
	return a + b
}

// Sum adds two values through their Adder implementation.
func Sum[T Adder[T]](a, b T) T {
	return a.Add(b)
}
