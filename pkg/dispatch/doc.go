// Package dispatch invokes capability operations by one of two explicit
// strategies.
//
// Static dispatch uses generic functions bounded by capability interfaces
// (Notify, NotifyBoth, Pairwise, DescribeAll). The concrete type is known at
// the call site and the compiler instantiates the function for it.
//
// Dynamic dispatch stores values known only by a capability in a Collection.
// Each element is an interface value: one boxed value plus the method table
// captured when it was stored, so every call costs one indirect jump. New
// concrete types can be added without touching the collection.
//
// When the set of shapes is fixed and known, Variant2 is the closed
// alternative: a value is one of two named cases and Match2 handles both.
package dispatch
