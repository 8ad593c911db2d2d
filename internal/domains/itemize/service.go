package itemize

import "context"

type Service interface {
	// List returns an owner's itemizes visible to the viewer (empty
	// viewer means anonymous). A non-empty query keeps only itemizes
	// whose name contains it, case-insensitively.
	List(ctx context.Context, ownerUsername, viewerUsername, query string) ([]ItemizeDTO, error)

	// Create makes a new itemize for the owner, deriving the slug from
	// the name.
	Create(ctx context.Context, ownerUsername string, req CreateItemizeRequest) (*ItemizeDTO, error)

	// Get returns one itemize by slug, applying the same visibility
	// rule as List. A non-empty query keeps only links whose resolved
	// title, site name, or URL contains it.
	Get(ctx context.Context, ownerUsername, viewerUsername, slug, query string) (*ItemizeDTO, error)

	// Update applies a partial settings update; a renamed itemize gets
	// a freshly derived slug.
	Update(ctx context.Context, ownerUsername, slug string, req UpdateItemizeRequest) (*ItemizeDTO, error)

	// AddLink resolves metadata for the URL and appends a link.
	AddLink(ctx context.Context, ownerUsername, slug string, req CreateLinkRequest) (*LinkDTO, error)

	// UpdateLink applies an override patch to a link.
	UpdateLink(ctx context.Context, ownerUsername, slug string, linkID int64, req UpdateLinkRequest) (*LinkDTO, error)

	// DeleteLink removes a link from an itemize.
	DeleteLink(ctx context.Context, ownerUsername, slug string, linkID int64) error
}
