package errors

import "errors"

// Domain errors
var (
	// Scan request errors
	ErrInvalidDomain   = errors.New("invalid domain")
	ErrNoCategories    = errors.New("no scan categories selected")
	ErrUnknownCategory = errors.New("unknown scan category")

	// Backend errors
	ErrBackendNotConfigured = errors.New("scanner backend not configured")
	ErrBackendUnavailable   = errors.New("scanner backend unavailable")

	// Report errors
	ErrRenderFailure = errors.New("report rendering failed")
	ErrUnknownFormat = errors.New("unknown report format")
	ErrEmptyResult   = errors.New("scan result is empty")
)
