// Package auctionapi is the JSON-over-HTTP adapter to the remote auction
// backend. It implements the backend contract consumed by the auction
// session and the tournament app, translating HTTP failures into the
// store error taxonomy so callers can tell validation, conflict and
// transport failures apart.
package auctionapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jaganpon/auction/go/clients"
	"github.com/jaganpon/auction/go/internal/store"
)

type Client struct {
	*clients.BaseClient
}

// NewClient creates a backend client. The bearer token is passed
// explicitly rather than read from ambient state; pass an empty string
// for anonymous access.
func NewClient(baseURL, bearerToken string) *Client {
	client := &Client{
		BaseClient: clients.NewBaseClient(baseURL),
	}

	client.SetHeader("Content-Type", "application/json")
	if bearerToken != "" {
		client.SetHeader(AuthorizationHeader, "Bearer "+bearerToken)
	}

	return client
}

// mapError translates a transport-level failure into the store taxonomy,
// keeping the backend's own message intact.
func mapError(err error) error {
	var apiErr *clients.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	detail := strings.ToLower(apiErr.Detail)
	switch {
	case apiErr.StatusCode == 404:
		return fmt.Errorf("%s: %w", apiErr.Detail, store.ErrNotFound)
	case apiErr.StatusCode == 409 || strings.Contains(detail, "already assigned"):
		return fmt.Errorf("%s: %w", apiErr.Detail, store.ErrPlayerAlreadyAssigned)
	case strings.Contains(detail, "budget"):
		return fmt.Errorf("%s: %w", apiErr.Detail, store.ErrInsufficientBudget)
	case apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
		return fmt.Errorf("%s: %w", apiErr.Detail, store.ErrInvalidRequest)
	default:
		return fmt.Errorf("%w: %s", store.ErrUnavailable, apiErr.Detail)
	}
}
