package domain

import "errors"

var (
	// ErrSourceUnavailable marks a transport-level failure reaching an upstream.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrMalformedResponse marks an upstream response that does not match the
	// expected schema.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrEmptyResult marks a well-formed upstream response with no usable rows.
	ErrEmptyResult = errors.New("empty result")

	// ErrMalformedReport marks a tabular report whose header line cannot be
	// located. Callers treat this as a total source failure, never a partial one.
	ErrMalformedReport = errors.New("malformed report")

	// ErrWriteConflict marks an optimistic-concurrency failure writing the
	// persisted forecast cache entry.
	ErrWriteConflict = errors.New("cache write conflict")

	// ErrNotFound marks a missing blob in the persistence layer.
	ErrNotFound = errors.New("not found")
)
