// Package backend provides the client for the remote WealthWise REST API.
package backend

import (
	"os"
	"strings"
	"time"
)

// Config holds configuration for the backend API client.
type Config struct {
	BaseURL string        // Base URL for the API (e.g., "https://wealthwise-investment-backend.onrender.com")
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads backend configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("WEALTHWISE_API_URL")
	if base == "" {
		base = "http://localhost:5005"
	}
	return Config{
		BaseURL: strings.TrimRight(base, "/"),
		Timeout: 10 * time.Second,
	}
}
