package objects

import "errors"

// Failure kinds reported by the object database. Every error returned by this
// package wraps exactly one of them; match with errors.Is.
var (
	ErrInvalidIdentifier = errors.New("invalid object identifier")
	ErrObjectNotFound    = errors.New("object not found")
	ErrCorruptObject     = errors.New("corrupt object")
	ErrMalformedHeader   = errors.New("malformed object header")
	ErrMalformedEntry    = errors.New("malformed tree entry")
	ErrTruncatedEntry    = errors.New("truncated tree entry")
	ErrReadError         = errors.New("failed to read file")
	ErrTypeMismatch      = errors.New("object type mismatch")
)
