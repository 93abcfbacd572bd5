package domain

import "errors"

// Storage error kinds. Backend adapters translate engine-native failures
// into one of these at the boundary; callers match with errors.Is.
var (
	// ErrNotFound indicates a lookup by id or key found nothing, or an
	// update was attempted on an entity that was never stored.
	ErrNotFound = errors.New("record not found")
	// ErrInsertFailed indicates a write rejected by the backend, e.g. a
	// constraint violation or connectivity loss.
	ErrInsertFailed = errors.New("insert failed")
	// ErrInvalidTransaction indicates a persisted or supplied transaction
	// row does not correspond to any valid variant.
	ErrInvalidTransaction = errors.New("invalid transaction record")
	// ErrInvalidCurrency indicates a currency code could not be parsed.
	ErrInvalidCurrency = errors.New("invalid currency code")
)
