package types

import "errors"

// Capability errors.
var (
	ErrCapabilityMissing     = errors.New("capability missing")
	ErrAmbiguousOpaqueReturn = errors.New("ambiguous opaque return")
	ErrInvalidContract       = errors.New("invalid contract")
)

// Ordering and aggregation errors.
var (
	ErrIncomparableValues = errors.New("incomparable values")
	ErrEmptySequence      = errors.New("empty sequence")
	ErrKeyAbsent          = errors.New("key absent")
	ErrInvalidCount       = errors.New("count must be positive")
)

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrInvalidName     = errors.New("invalid name")
)
