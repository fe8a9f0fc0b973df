package domain

import "errors"

var (
	// ErrNotFound signals a missing movie record.
	ErrNotFound = errors.New("movie not found")
	// ErrStoreUnavailable signals a store connectivity failure.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrModelUnavailable signals a provider that could not be initialized.
	ErrModelUnavailable = errors.New("model unavailable")
	// ErrInvalidBatch signals a malformed ingestion batch.
	ErrInvalidBatch = errors.New("invalid batch")
	// ErrProviderError signals an embedding or LLM provider failure at request time.
	ErrProviderError = errors.New("model provider error")
)
