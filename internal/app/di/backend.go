// Package di provides dependency injection factories for creating application components.
package di

import (
	"wealthwise_gateway/internal/platform/backend"
	infrahttp "wealthwise_gateway/internal/platform/http"
)

// NewBackendClient creates a fully configured backend API client. tokens
// supplies the bearer token once a session is active.
func NewBackendClient(tokens backend.TokenSource) *backend.Client {
	cfg := backend.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return backend.NewClient(cfg, httpClient, tokens)
}
