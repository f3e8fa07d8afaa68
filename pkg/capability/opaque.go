package capability

import (
	"fmt"
	"reflect"

	"github.com/mesh-intelligence/polycore/pkg/types"
)

// Opaque pins a contract-typed return to a single concrete type. Go lets a
// function declared to return an interface yield different concrete types on
// different paths; Opaque rejects that with types.ErrAmbiguousOpaqueReturn.
//
// When the concrete type can be named, returning it directly is the
// compile-time equivalent and needs no Opaque.
type Opaque[C any] struct {
	concrete reflect.Type
}

// Returns commits to the concrete type shared by every branch value. It fails
// if the branches disagree, if any branch is nil, or if there are none.
func Returns[C any](branches ...C) (*Opaque[C], error) {
	if len(branches) == 0 {
		return nil, fmt.Errorf("%w: no branches for %s", types.ErrAmbiguousOpaqueReturn, reflect.TypeFor[C]())
	}
	o := &Opaque[C]{}
	for _, b := range branches {
		if err := o.check(b); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Return passes v through if its concrete type matches the committed one.
// An Opaque with no committed type commits to v's type.
func (o *Opaque[C]) Return(v C) (C, error) {
	if err := o.check(v); err != nil {
		var zero C
		return zero, err
	}
	return v, nil
}

// Concrete returns the committed concrete type, or nil before the first value.
func (o *Opaque[C]) Concrete() reflect.Type {
	return o.concrete
}

func (o *Opaque[C]) check(v C) error {
	rt := reflect.TypeOf(v)
	if rt == nil {
		return fmt.Errorf("%w: nil has no concrete type", types.ErrAmbiguousOpaqueReturn)
	}
	if o.concrete == nil {
		o.concrete = rt
		return nil
	}
	if o.concrete != rt {
		return fmt.Errorf("%w: %s committed to %s, got %s",
			types.ErrAmbiguousOpaqueReturn, reflect.TypeFor[C](), o.concrete, rt)
	}
	return nil
}
