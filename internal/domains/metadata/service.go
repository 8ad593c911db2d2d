package metadata

import "context"

type Service interface {
	// GetOrFetch returns the snapshot for a URL, creating it through the
	// Fetcher on first sight.
	GetOrFetch(ctx context.Context, url string) (*PageMetadata, error)

	// GetImage loads a stored page image for serving.
	GetImage(ctx context.Context, imageID int64) (*MetadataImage, error)
}
