package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrMissingAPIKey indicates no catalog API key is configured
	ErrMissingAPIKey = errors.New("API key not configured")

	// ErrCatalogUnavailable indicates the catalog API is unreachable
	ErrCatalogUnavailable = errors.New("catalog service is unreachable")

	// ErrAuthFailed indicates the catalog API rejected the key
	ErrAuthFailed = errors.New("catalog API key was rejected")

	// ErrUnexpectedStatus indicates a non-success catalog response
	ErrUnexpectedStatus = errors.New("unexpected catalog response")
)
