package itemize

import (
	"context"

	"github.com/google/uuid"

	"itemize/internal/shared/patch"
)

// ItemizeChanges carries the fields of a partial itemize update. Nil
// pointers are left untouched; Description distinguishes "unchanged"
// from "clear".
type ItemizeChanges struct {
	Name        *string
	Slug        *string
	Description patch.Optional[string]
	Public      *bool
}

// OverrideChanges carries the fields of an override patch. Unset slots
// are left untouched, null slots are written as SQL NULL.
type OverrideChanges struct {
	Title       patch.Optional[string]
	Description patch.Optional[string]
	SiteName    patch.Optional[string]
	Price       patch.Optional[string]
	Currency    patch.Optional[string]
	ImageURL    patch.Optional[string]
}

type Repository interface {
	// Create inserts a new itemize and fills its ID. A slug collision
	// for the same owner yields ErrItemizeExists.
	Create(ctx context.Context, it *Itemize) error

	// ListByUser returns a user's itemizes with links loaded, newest
	// first. With publicOnly, private itemizes are skipped.
	ListByUser(ctx context.Context, userID uuid.UUID, publicOnly bool) ([]Itemize, error)

	// GetBySlug loads one itemize with its links, or ErrItemizeNotFound.
	GetBySlug(ctx context.Context, userID uuid.UUID, slug string) (*Itemize, error)

	// Update applies a partial update. Slug collisions yield
	// ErrItemizeExists.
	Update(ctx context.Context, itemizeID int64, ch ItemizeChanges) error

	// AddLink inserts a link referencing an existing metadata snapshot
	// and returns it fully loaded.
	AddLink(ctx context.Context, itemizeID int64, url string, pageMetadataID int64) (*Link, error)

	// GetLink loads one link of an itemize, or ErrLinkNotFound.
	GetLink(ctx context.Context, itemizeID, linkID int64) (*Link, error)

	// DeleteLink removes a link, or ErrLinkNotFound.
	DeleteLink(ctx context.Context, itemizeID, linkID int64) error

	// UpsertOverride applies an override patch to a link, creating the
	// override record on first edit.
	UpsertOverride(ctx context.Context, linkID int64, ch OverrideChanges) error
}
