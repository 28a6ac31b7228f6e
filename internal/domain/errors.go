package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Repositories and services wrap these so handlers can map them to envelope codes.
var (
	ErrNotFound        = errors.New("not found")
	ErrBadRequest      = errors.New("bad request")
	ErrMalformedRecord = errors.New("malformed record")
	ErrDuplicateID     = errors.New("more than one item found for id")
)

// StoreError reports a failed round trip to the backing store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *StoreError) Unwrap() error { return e.Err }
