package portfolio

import "errors"

var (
	// ErrInvalidDocument signals a document that violates a structural invariant.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrIndexOutOfRange signals a collection index outside the slice bounds.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrStoreUnavailable signals a persistence failure; the in-memory state
	// the caller holds remains the only copy of the attempted change.
	ErrStoreUnavailable = errors.New("store unavailable")
)
