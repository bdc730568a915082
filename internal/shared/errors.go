package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Catalog errors
	ErrCatalogUnavailable = fmt.Errorf("catalog unavailable")
	ErrNotFound           = fmt.Errorf("not found")

	// Admin errors
	ErrForbidden = fmt.Errorf("forbidden")

	// Remote search errors; always recovered by the resolver
	ErrRemoteSearch       = fmt.Errorf("remote search failed")
	ErrRateLimited        = fmt.Errorf("remote search rate limited")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
