package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are missing or empty
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrProductNotFound is returned when a product has no baseline catalog entry
	ErrProductNotFound = errors.New("product not found in baseline catalog")

	// ErrInvalidData is returned when a catalog row fails type coercion
	ErrInvalidData = errors.New("malformed catalog data")

	// ErrInsightAPIFailure is returned when the generative backend is unreachable or erroring
	ErrInsightAPIFailure = errors.New("insight backend request failed")

	// ErrPartialInsight is returned when the backend reply is missing one or
	// more expected labels; the partial insight is surfaced alongside it
	ErrPartialInsight = errors.New("insight reply missing expected labels")

	// ErrCacheMiss is returned when an insight is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
