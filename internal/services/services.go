// package services defines interface SearchProvider for remote song search
package services

import (
	"context"

	"github.com/desertthunder/songsite/internal/models"
)

// SearchProvider finds songs on a remote service.
type SearchProvider interface {
	// Search returns the provider's hits for query, best match first.
	// Implementations honour ctx cancellation and deadlines.
	Search(ctx context.Context, query string) ([]models.Video, error)

	// Name returns the name of the service (e.g., "YouTube")
	Name() string
}
