package domain

import "errors"

var (
	// ErrCatalogUnavailable signals an empty catalog store (load failed or zero rows).
	ErrCatalogUnavailable = errors.New("no products available")
	// ErrMalformedQuery signals an unparsable facet value or seed product payload.
	ErrMalformedQuery = errors.New("malformed query")
	// ErrInternalFilter signals an unexpected failure during stage evaluation.
	ErrInternalFilter = errors.New("internal filter error")
	// ErrSessionNotFound signals a missing conversation session.
	ErrSessionNotFound = errors.New("session not found")
)
