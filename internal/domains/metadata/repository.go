package metadata

import "context"

type Repository interface {
	FindByURL(ctx context.Context, url string) (*PageMetadata, error)
	Create(ctx context.Context, m *PageMetadata) error
	GetImage(ctx context.Context, imageID int64) (*MetadataImage, error)
}
