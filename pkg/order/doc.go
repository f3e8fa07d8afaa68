// Package order sorts sequences under total or partial orders and folds
// sequences of keys into frequency maps.
//
// Sort and SortByKey accept only totally ordered element types (integers and
// strings). Floating point values are partially ordered: NaN compares with
// nothing. They go through SortPartial, where the caller either supplies a
// Fallback that resolves every incomparable pair or receives
// types.ErrIncomparableValues. Incomparable pairs are never skipped.
//
// A FrequencyMap counts keys with an insert-or-increment step. It is owned by
// one goroutine; SyncFrequencyMap and AggregateParallel cover concurrent use.
package order
