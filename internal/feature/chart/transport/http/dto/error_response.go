// Package dto defines the HTTP response bodies for the chart feature.
package dto

// ErrorResponse is the JSON body returned for failed chart requests.
// No partial image is ever returned on failure.
type ErrorResponse struct {
	Error string `json:"error"`
}
