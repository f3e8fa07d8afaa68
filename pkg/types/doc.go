// Package types defines the configuration and the standard error values
// shared by the polycore packages.
//
// Structural errors (ErrCapabilityMissing, ErrAmbiguousOpaqueReturn) are
// reported when a contract, container or collection is constructed, before
// any data is processed. Data-dependent errors (ErrIncomparableValues,
// ErrKeyAbsent) are returned to the immediate caller.
package types
