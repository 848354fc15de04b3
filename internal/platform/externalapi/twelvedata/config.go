// Package twelvedata provides a client for the Twelve Data market API.
package twelvedata

import (
	"os"
	"time"
)

// DefaultBaseURL is the production Twelve Data endpoint.
const DefaultBaseURL = "https://api.twelvedata.com"

// Config holds configuration for the Twelve Data API client.
type Config struct {
	APIKey  string        // API key for authentication
	BaseURL string        // Base URL for the API
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads Twelve Data configuration from environment variables.
// A missing TWELVE_KEY is not fatal here; the fetcher surfaces it
// per-request as a configuration error.
func LoadConfig() Config {
	baseURL := os.Getenv("TWELVE_DATA_BASE_URL")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return Config{
		APIKey:  os.Getenv("TWELVE_KEY"),
		BaseURL: baseURL,
		Timeout: 30 * time.Second,
	}
}
