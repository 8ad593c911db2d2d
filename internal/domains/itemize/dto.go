package itemize

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"itemize/internal/domains/metadata"
	"itemize/internal/domains/user"
	"itemize/internal/shared/patch"
)

var linkURLRe = regexp.MustCompile(`^https?://`)

type LinkDTO struct {
	ID           int64                             `json:"id"`
	URL          string                            `json:"url"`
	PageMetadata *metadata.PageMetadataDTO         `json:"page_metadata"`
	Override     *metadata.PageMetadataOverrideDTO `json:"page_metadata_override"`
}

type ItemizeDTO struct {
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	Description *string       `json:"description"`
	Public      bool          `json:"public"`
	User        *user.UserDTO `json:"user"`
	Links       []LinkDTO     `json:"links"`
}

func (l *Link) ToDTO(serverURL string) LinkDTO {
	dto := LinkDTO{ID: l.ID, URL: l.URL}
	if l.PageMetadata != nil {
		md := l.PageMetadata.ToDTO(serverURL)
		dto.PageMetadata = &md
	}
	if l.Override != nil {
		ov := l.Override.ToDTO()
		dto.Override = &ov
	}
	return dto
}

func (i *Itemize) ToDTO(serverURL string) ItemizeDTO {
	dto := ItemizeDTO{
		Name:        i.Name,
		Slug:        i.Slug,
		Description: i.Description,
		Public:      i.Public,
		Links:       make([]LinkDTO, 0, len(i.Links)),
	}
	if i.Owner != nil {
		u := i.Owner.ToDTO()
		dto.User = &u
	}
	for idx := range i.Links {
		dto.Links = append(dto.Links, i.Links[idx].ToDTO(serverURL))
	}
	return dto
}

type CreateItemizeRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Public      bool    `json:"public"`
}

func (r CreateItemizeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
	)
}

// UpdateItemizeRequest is a partial update: absent fields are left
// unchanged, an explicit null clears the field. Name and Public are
// not nullable.
type UpdateItemizeRequest struct {
	Name        patch.Optional[string] `json:"name"`
	Description patch.Optional[string] `json:"description"`
	Public      patch.Optional[bool]   `json:"public"`
}

func (r UpdateItemizeRequest) Validate() error {
	if r.Name.Set {
		if r.Name.Null || r.Name.Value == "" {
			return ValidationError("Name cannot be empty!")
		}
		if len(r.Name.Value) > 255 {
			return ValidationError("Name is too long!")
		}
	}
	if r.Public.Set && r.Public.Null {
		return ValidationError("Public cannot be null!")
	}
	return nil
}

type CreateLinkRequest struct {
	URL string `json:"url"`
}

func (r CreateLinkRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.URL, validation.Required,
			validation.Match(linkURLRe).Error("URL must start with http:// or https://")),
	)
}

// UpdateLinkRequest patches the metadata override of a link. Every
// field is nullable; null restores the scraped value.
type UpdateLinkRequest struct {
	Title       patch.Optional[string] `json:"title"`
	Description patch.Optional[string] `json:"description"`
	SiteName    patch.Optional[string] `json:"site_name"`
	Price       patch.Optional[string] `json:"price"`
	Currency    patch.Optional[string] `json:"currency"`
	ImageURL    patch.Optional[string] `json:"image_url"`
}

func (r UpdateLinkRequest) Validate() error {
	if r.Price.Set && !r.Price.Null {
		if _, err := decimal.NewFromString(r.Price.Value); err != nil {
			return ValidationError("Price must be a decimal number!")
		}
	}
	if r.Currency.Set && !r.Currency.Null && len(r.Currency.Value) != 3 {
		return ValidationError("Currency must be a 3-letter code!")
	}
	return nil
}

// Empty reports whether the patch carries no fields at all.
func (r UpdateLinkRequest) Empty() bool {
	return !r.Title.Set && !r.Description.Set && !r.SiteName.Set &&
		!r.Price.Set && !r.Currency.Set && !r.ImageURL.Set
}

type ItemizeResponse struct {
	Itemize ItemizeDTO `json:"itemize"`
}

type ItemizesResponse struct {
	Itemizes []ItemizeDTO `json:"itemizes"`
}

type LinkResponse struct {
	Link LinkDTO `json:"link"`
}
