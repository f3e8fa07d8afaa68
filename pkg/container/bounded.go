package container

import (
	"fmt"
	"slices"

	"github.com/mesh-intelligence/polycore/pkg/capability"
	"github.com/mesh-intelligence/polycore/pkg/types"
)

// Bounded is a container of T values whose element type has been bound to a
// runtime contract. Construction fails before any value is stored when the
// binding is incomplete.
type Bounded[T, R any] struct {
	table  *capability.Table[T, R]
	values []T
}

// NewBounded binds typeName to contract with impl and stores values.
// An incomplete impl yields types.ErrCapabilityMissing.
func NewBounded[T, R any](contract *capability.Contract[T, R], typeName string, impl capability.Impl[T, R], values ...T) (*Bounded[T, R], error) {
	table, err := contract.Implement(typeName, impl)
	if err != nil {
		return nil, fmt.Errorf("bound %s: %w", contract.Name(), err)
	}
	return &Bounded[T, R]{table: table, values: slices.Clone(values)}, nil
}

// Apply invokes op on every value in order.
func (b *Bounded[T, R]) Apply(op string) ([]R, error) {
	fn, ok := b.table.Func(op)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no operation %q", types.ErrKeyAbsent, b.table.Contract().Name(), op)
	}
	out := make([]R, len(b.values))
	for i, v := range b.values {
		out[i] = fn(v)
	}
	return out, nil
}

// Push appends a value.
func (b *Bounded[T, R]) Push(v T) {
	b.values = append(b.values, v)
}

// Values returns a copy of the stored values.
func (b *Bounded[T, R]) Values() []T {
	return slices.Clone(b.values)
}

// Len returns the number of stored values.
func (b *Bounded[T, R]) Len() int {
	return len(b.values)
}

// Table returns the behavior table the container was bound with.
func (b *Bounded[T, R]) Table() *capability.Table[T, R] {
	return b.table
}
