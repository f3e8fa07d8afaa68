package dispatch

import (
	"fmt"
	"iter"
	"reflect"
	"slices"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/polycore/pkg/capability"
	"github.com/mesh-intelligence/polycore/pkg/types"
)

// Source yields capability objects in insertion order.
type Source[C any] interface {
	All() iter.Seq2[string, C]
}

// Collection holds capability objects: values known only by the capability C.
// The collection owns its entries; an entry's lifetime ends when it is
// removed. A Collection is not safe for concurrent use; share a Frozen
// snapshot instead.
type Collection[C any] struct {
	order []string
	items map[string]C
}

var _ Source[capability.Describer] = (*Collection[capability.Describer])(nil)

// NewCollection returns an empty collection.
func NewCollection[C any]() *Collection[C] {
	return &Collection[C]{items: make(map[string]C)}
}

// Append stores v and returns its handle. A nil interface value satisfies no
// capability and yields types.ErrCapabilityMissing.
func (c *Collection[C]) Append(v C) (string, error) {
	if any(v) == nil {
		return "", fmt.Errorf("%w: nil %s", types.ErrCapabilityMissing, reflect.TypeFor[C]())
	}
	id := newHandle()
	c.order = append(c.order, id)
	c.items[id] = v
	return id, nil
}

// AppendAny checks that v satisfies C before storing it.
func (c *Collection[C]) AppendAny(v any) (string, error) {
	cv, err := capability.Require[C](v)
	if err != nil {
		return "", err
	}
	return c.Append(cv)
}

// Get returns the object stored under id, or types.ErrKeyAbsent.
func (c *Collection[C]) Get(id string) (C, error) {
	v, ok := c.items[id]
	if !ok {
		var zero C
		return zero, fmt.Errorf("%w: object %s", types.ErrKeyAbsent, id)
	}
	return v, nil
}

// Remove drops the object stored under id, or returns types.ErrKeyAbsent.
func (c *Collection[C]) Remove(id string) error {
	if _, ok := c.items[id]; !ok {
		return fmt.Errorf("%w: object %s", types.ErrKeyAbsent, id)
	}
	delete(c.items, id)
	c.order = slices.DeleteFunc(c.order, func(s string) bool { return s == id })
	return nil
}

// Len returns the number of stored objects.
func (c *Collection[C]) Len() int {
	return len(c.order)
}

// All iterates handles and objects in insertion order.
func (c *Collection[C]) All() iter.Seq2[string, C] {
	return func(yield func(string, C) bool) {
		for _, id := range c.order {
			if !yield(id, c.items[id]) {
				return
			}
		}
	}
}

// Each calls fn for every object in insertion order.
func (c *Collection[C]) Each(fn func(id string, v C)) {
	for id, v := range c.All() {
		fn(id, v)
	}
}

// Freeze returns an immutable snapshot of the collection.
func (c *Collection[C]) Freeze() *Frozen[C] {
	objs := make([]Object[C], 0, len(c.order))
	for id, v := range c.All() {
		objs = append(objs, Object[C]{ID: id, Value: v})
	}
	return &Frozen[C]{objects: objs}
}

// Object pairs a capability object with its handle.
type Object[C any] struct {
	ID    string
	Value C
}

// Frozen is an immutable snapshot of a Collection. It may be read from
// several goroutines, provided the objects themselves are not mutated.
type Frozen[C any] struct {
	objects []Object[C]
}

var _ Source[capability.Describer] = (*Frozen[capability.Describer])(nil)

// Len returns the number of objects.
func (f *Frozen[C]) Len() int {
	return len(f.objects)
}

// At returns the i-th object in insertion order.
func (f *Frozen[C]) At(i int) Object[C] {
	return f.objects[i]
}

// All iterates handles and objects in insertion order.
func (f *Frozen[C]) All() iter.Seq2[string, C] {
	return func(yield func(string, C) bool) {
		for _, o := range f.objects {
			if !yield(o.ID, o.Value) {
				return
			}
		}
	}
}

// Invoke calls fn on every object of src in insertion order.
func Invoke[C, R any](src Source[C], fn func(C) R) []R {
	var out []R
	for _, v := range src.All() {
		out = append(out, fn(v))
	}
	return out
}

// newHandle generates a UUID v7 handle, falling back to v4.
func newHandle() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
