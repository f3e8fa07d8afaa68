package dispatch

// Variant2 is a closed variant holding exactly one of two cases. The zero
// value is the first case holding the zero A.
type Variant2[A, B any] struct {
	second bool
	a      A
	b      B
}

// First builds the first case.
func First[A, B any](a A) Variant2[A, B] {
	return Variant2[A, B]{a: a}
}

// Second builds the second case.
func Second[A, B any](b B) Variant2[A, B] {
	return Variant2[A, B]{second: true, b: b}
}

// IsFirst reports whether v holds the first case.
func (v Variant2[A, B]) IsFirst() bool {
	return !v.second
}

// Match2 handles both cases of v.
func Match2[A, B, R any](v Variant2[A, B], onFirst func(A) R, onSecond func(B) R) R {
	if v.second {
		return onSecond(v.b)
	}
	return onFirst(v.a)
}
