package persistence

import "errors"

// Sentinel errors for programmatic handling. Callers can use errors.Is to
// distinguish fatal configuration mistakes (ErrReservedSuffix,
// ErrBrokenTransform, ErrInvalidThreshold) from load-time corruption
// (ErrDataCorrupted) and lifecycle misuse (ErrNotReady, ErrFailedState).
var (
	ErrReservedSuffix   = errors.New("datafile name ends with the reserved temp suffix")
	ErrBrokenTransform  = errors.New("encode/decode transforms are not exact inverses")
	ErrInvalidThreshold = errors.New("corrupt alert threshold must be within [0, 1]")
	ErrDataCorrupted    = errors.New("datafile corruption ratio exceeds threshold")
	ErrMissingID        = errors.New("document has no string _id")
	ErrNotReady         = errors.New("persistence has not completed a load")
	ErrFailedState      = errors.New("persistence is in failed state")
)
