package capability

import (
	"fmt"
	"slices"

	"github.com/mesh-intelligence/polycore/pkg/types"
)

// Op is one operation of a runtime contract. A nil Default marks the
// operation as required.
type Op[T, R any] struct {
	Name    string
	Default func(T) R
}

// Required reports whether the operation has no default.
func (o Op[T, R]) Required() bool {
	return o.Default == nil
}

// Contract is an immutable, named set of operations over T returning R.
type Contract[T, R any] struct {
	name  string
	ops   []Op[T, R]
	index map[string]int
}

// Define declares a contract. The name must be non-empty and operation names
// unique; otherwise it returns types.ErrInvalidContract.
func Define[T, R any](name string, ops ...Op[T, R]) (*Contract[T, R], error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty contract name", types.ErrInvalidContract)
	}
	c := &Contract[T, R]{
		name:  name,
		ops:   make([]Op[T, R], 0, len(ops)),
		index: make(map[string]int, len(ops)),
	}
	for _, op := range ops {
		if op.Name == "" {
			return nil, fmt.Errorf("%w: %s has an unnamed operation", types.ErrInvalidContract, name)
		}
		if _, dup := c.index[op.Name]; dup {
			return nil, fmt.Errorf("%w: %s declares %q twice", types.ErrInvalidContract, name, op.Name)
		}
		c.index[op.Name] = len(c.ops)
		c.ops = append(c.ops, op)
	}
	return c, nil
}

// Name returns the contract name.
func (c *Contract[T, R]) Name() string {
	return c.name
}

// Ops returns the operation names in declaration order.
func (c *Contract[T, R]) Ops() []string {
	names := make([]string, len(c.ops))
	for i, op := range c.ops {
		names[i] = op.Name
	}
	return names
}

// Required returns the names of operations without a default.
func (c *Contract[T, R]) Required() []string {
	var names []string
	for _, op := range c.ops {
		if op.Required() {
			names = append(names, op.Name)
		}
	}
	return names
}

// Declares reports whether the contract has an operation with the given name.
func (c *Contract[T, R]) Declares(op string) bool {
	_, ok := c.index[op]
	return ok
}

// Impl maps operation names to a concrete type's implementations.
type Impl[T, R any] map[string]func(T) R

// Implement binds typeName to the contract. Defaults fill any operation impl
// leaves out; a required operation left out yields
// types.ErrCapabilityMissing. An implementation for an operation the contract
// does not declare yields types.ErrInvalidContract.
func (c *Contract[T, R]) Implement(typeName string, impl Impl[T, R]) (*Table[T, R], error) {
	for name := range impl {
		if !c.Declares(name) {
			return nil, fmt.Errorf("%w: %s implements %q, which %s does not declare",
				types.ErrInvalidContract, typeName, name, c.name)
		}
	}

	t := &Table[T, R]{
		contract:   c,
		typeName:   typeName,
		fns:        make(map[string]func(T) R, len(c.ops)),
		overridden: make(map[string]bool, len(impl)),
	}
	var missing []string
	for _, op := range c.ops {
		if fn := impl[op.Name]; fn != nil {
			t.fns[op.Name] = fn
			t.overridden[op.Name] = true
			continue
		}
		if op.Default == nil {
			missing = append(missing, op.Name)
			continue
		}
		t.fns[op.Name] = op.Default
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s does not implement %v of %s",
			types.ErrCapabilityMissing, typeName, missing, c.name)
	}
	return t, nil
}

// Compose returns a contract requiring every operation of a and b, the
// structural bound "a + b". An operation both declare appears once, in a's
// position. It is required if either side requires it, and keeps the one
// default otherwise. Two defaults for the same operation conflict and yield
// types.ErrInvalidContract, unless a and b are the same contract.
func Compose[T, R any](name string, a, b *Contract[T, R]) (*Contract[T, R], error) {
	if a == b {
		return Define(name, a.ops...)
	}
	ops := slices.Clone(a.ops)
	for _, op := range b.ops {
		i, shared := a.index[op.Name]
		if !shared {
			ops = append(ops, op)
			continue
		}
		if !ops[i].Required() && !op.Required() {
			return nil, fmt.Errorf("compose %s + %s: %w: conflicting defaults for %q",
				a.name, b.name, types.ErrInvalidContract, op.Name)
		}
		ops[i].Default = nil
	}
	composed, err := Define(name, ops...)
	if err != nil {
		return nil, fmt.Errorf("compose %s + %s: %w", a.name, b.name, err)
	}
	return composed, nil
}

// Table is the behavior table of one type bound to one contract. It is
// immutable after Implement returns.
type Table[T, R any] struct {
	contract   *Contract[T, R]
	typeName   string
	fns        map[string]func(T) R
	overridden map[string]bool
}

// Call invokes op on v. An operation the contract does not declare yields
// types.ErrKeyAbsent.
func (t *Table[T, R]) Call(op string, v T) (R, error) {
	fn, ok := t.fns[op]
	if !ok {
		var zero R
		return zero, fmt.Errorf("%w: %s has no operation %q", types.ErrKeyAbsent, t.contract.name, op)
	}
	return fn(v), nil
}

// Func returns the resolved implementation of op.
func (t *Table[T, R]) Func(op string) (func(T) R, bool) {
	fn, ok := t.fns[op]
	return fn, ok
}

// Overridden reports whether op came from the type rather than a default.
func (t *Table[T, R]) Overridden(op string) bool {
	return t.overridden[op]
}

// TypeName returns the name the table was bound under.
func (t *Table[T, R]) TypeName() string {
	return t.typeName
}

// Contract returns the contract the table implements.
func (t *Table[T, R]) Contract() *Contract[T, R] {
	return t.contract
}
