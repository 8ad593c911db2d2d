// Package client is the programmatic core behind every user surface:
// wire types, effective-metadata resolution, dirty-field tracking,
// minimal patch construction, and a synchronizer that owns the local
// copy of a collection.
package client

// User is the public profile shape returned by the API.
type User struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// MetadataImage is the stored page image reference of a snapshot.
type MetadataImage struct {
	URL            string  `json:"url"`
	SourceImageURL *string `json:"source_image_url"`
}

// PageMetadata is the scraped snapshot for a link's URL. Read-only;
// edits go to the override instead.
type PageMetadata struct {
	URL         string         `json:"url"`
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	SiteName    *string        `json:"site_name"`
	Price       *string        `json:"price"`
	Currency    *string        `json:"currency"`
	ImageURL    *string        `json:"image_url"`
	Image       *MetadataImage `json:"image"`
}

// PageMetadataOverride carries per-field user replacements. A nil field
// means "no override"; an empty string is a deliberate blank.
type PageMetadataOverride struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	SiteName    *string `json:"site_name"`
	Price       *string `json:"price"`
	Currency    *string `json:"currency"`
	ImageURL    *string `json:"image_url"`
}

// Link is one entry of an itemize.
type Link struct {
	ID           int64                 `json:"id"`
	URL          string                `json:"url"`
	PageMetadata *PageMetadata         `json:"page_metadata"`
	Override     *PageMetadataOverride `json:"page_metadata_override"`
}

// Itemize is a named collection of links.
type Itemize struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	Public      bool    `json:"public"`
	User        *User   `json:"user"`
	Links       []Link  `json:"links"`
}

type itemizeResponse struct {
	Itemize Itemize `json:"itemize"`
}

type itemizesResponse struct {
	Itemizes []Itemize `json:"itemizes"`
}

type linkResponse struct {
	Link Link `json:"link"`
}

// SignupResult is what a successful signup returns: a fresh credential
// plus the created profile.
type SignupResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
