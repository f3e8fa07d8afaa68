// Package container provides generic containers whose operations depend on
// the capabilities of their type parameters.
//
// Operations that need a narrower bound than the container itself, or extra
// type parameters of their own, are free functions: DistanceFromOrigin exists
// only for floating point points, Mixup introduces two type parameters beyond
// the pair's own, and CmpDisplay needs an ordered element type. The compiler
// selects these by the concrete instantiation; nothing is looked up at run
// time.
//
// Bounded is the runtime counterpart: a container that refuses construction
// unless its element type is bound to a capability.Contract.
package container
