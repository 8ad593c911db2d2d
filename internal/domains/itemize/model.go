package itemize

import (
	"time"

	"github.com/google/uuid"

	"itemize/internal/domains/metadata"
	"itemize/internal/domains/user"
)

// Itemize is a named, shareable collection of links owned by one user.
// The slug is derived from the name and unique per owner.
type Itemize struct {
	ID          int64
	UserID      uuid.UUID
	Name        string
	Slug        string
	Description *string
	Public      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Owner *user.User
	Links []Link
}

// Link is one entry of an itemize: a URL plus the scraped metadata
// snapshot and, when the owner has edited any field, an override record.
type Link struct {
	ID        int64
	ItemizeID int64
	URL       string
	CreatedAt time.Time

	PageMetadata *metadata.PageMetadata
	Override     *metadata.PageMetadataOverride
}
