package metadata

import "fmt"

// MetadataImage is a persisted copy of a scraped page image. The raw
// bytes live in the database so links keep their thumbnails after the
// source page changes.
type MetadataImage struct {
	ID             int64
	Mime           *string
	Data           []byte
	SourceImageURL *string
}

// PageMetadata is the scraped snapshot for a URL. One row per URL;
// immutable from the client's point of view - only the scraper writes it.
type PageMetadata struct {
	ID          int64
	URL         string
	Title       *string
	Description *string
	SiteName    *string
	Price       *string
	Currency    *string
	ImageURL    *string
	ImageID     *int64
	Image       *MetadataImage
}

// PageMetadataOverride holds per-field user replacements for a link's
// scraped metadata. A nil field means "no override - use the base value".
// The row is created lazily on a link's first edit.
type PageMetadataOverride struct {
	ID          int64
	Title       *string
	Description *string
	SiteName    *string
	Price       *string
	Currency    *string
	ImageURL    *string
}

// ImagePath is the serving path for a stored image, relative to the
// public server URL.
func ImagePath(imageID int64) string {
	return fmt.Sprintf("/metadata/images/%d", imageID)
}
