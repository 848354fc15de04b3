// Package http provides construction of outbound HTTP clients.
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient creates an HTTP client configured for external API calls.
//
// http.DefaultClient has no timeout, so outbound calls always go through
// a custom client. The transport is set explicitly for connection
// stability and resource management:
//   - Proxy honors the usual environment variables (HTTP_PROXY etc.)
//   - Dialer.Timeout bounds TCP connection establishment
//   - MaxIdleConns / IdleConnTimeout keep reusable connections in check
//   - Client.Timeout bounds the whole request, supplied by the caller
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
