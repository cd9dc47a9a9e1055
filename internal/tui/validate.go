// ABOUTME: HTTP connection validation for a posts API.
// ABOUTME: Tests reachability by fetching a single post through the remote client.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/2389-research/postboard/internal/storage"
)

// ValidateConnection tests the API connection with a one-post probe.
// The context allows cancellation when the user quits during validation.
func ValidateConnection(ctx context.Context, apiURL string) error {
	client := storage.NewRemoteClient(apiURL, storage.WithTimeout(10*time.Second))
	if err := client.Ping(ctx); err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	return nil
}
