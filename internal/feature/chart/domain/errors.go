// Package domain defines domain-level errors for the chart feature.
package domain

import "errors"

// Domain errors for chart requests. All four are terminal for the
// request: none triggers an internal retry, and the transport layer maps
// each to its HTTP status via errors.Is.
var (
	// ErrProviderConfig indicates that the quote provider credential is
	// missing. Surfaced per-request as a server configuration failure.
	ErrProviderConfig = errors.New("quote provider credential is not configured")

	// ErrProviderResponse indicates a failed provider call or a payload
	// that does not match the expected time-series structure.
	ErrProviderResponse = errors.New("quote provider returned an unexpected response")

	// ErrNoData indicates a structurally valid but empty series for the
	// requested parameters.
	ErrNoData = errors.New("no market data for the requested parameters")

	// ErrInvalidParameter indicates a caller-supplied parameter that
	// failed validation before any network call was made.
	ErrInvalidParameter = errors.New("invalid request parameter")
)
