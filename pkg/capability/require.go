package capability

import (
	"fmt"
	"reflect"

	"github.com/mesh-intelligence/polycore/pkg/types"
)

// Require checks at construction time that v satisfies C, normally an
// interface type. It returns types.ErrCapabilityMissing otherwise.
func Require[C any](v any) (C, error) {
	c, ok := v.(C)
	if !ok {
		var zero C
		return zero, fmt.Errorf("%w: %T does not satisfy %s",
			types.ErrCapabilityMissing, v, reflect.TypeFor[C]())
	}
	return c, nil
}
