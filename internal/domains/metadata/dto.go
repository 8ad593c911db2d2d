package metadata

// Wire representations. These mirror what link cards render from:
// the scraped base and the optional user override, side by side.

type MetadataImageDTO struct {
	URL            string  `json:"url"`
	SourceImageURL *string `json:"source_image_url"`
}

type PageMetadataDTO struct {
	URL         string            `json:"url"`
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	SiteName    *string           `json:"site_name"`
	Price       *string           `json:"price"`
	Currency    *string           `json:"currency"`
	ImageURL    *string           `json:"image_url"`
	Image       *MetadataImageDTO `json:"image"`
}

type PageMetadataOverrideDTO struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	SiteName    *string `json:"site_name"`
	Price       *string `json:"price"`
	Currency    *string `json:"currency"`
	ImageURL    *string `json:"image_url"`
}

// ToDTO renders the metadata row, deriving the image serving URL from
// the public server URL when a stored image exists.
func (m *PageMetadata) ToDTO(serverURL string) PageMetadataDTO {
	dto := PageMetadataDTO{
		URL:         m.URL,
		Title:       m.Title,
		Description: m.Description,
		SiteName:    m.SiteName,
		Price:       m.Price,
		Currency:    m.Currency,
		ImageURL:    m.ImageURL,
	}
	if m.ImageID != nil {
		img := &MetadataImageDTO{URL: serverURL + ImagePath(*m.ImageID)}
		if m.Image != nil {
			img.SourceImageURL = m.Image.SourceImageURL
		}
		dto.Image = img
	}
	return dto
}

func (o *PageMetadataOverride) ToDTO() PageMetadataOverrideDTO {
	return PageMetadataOverrideDTO{
		Title:       o.Title,
		Description: o.Description,
		SiteName:    o.SiteName,
		Price:       o.Price,
		Currency:    o.Currency,
		ImageURL:    o.ImageURL,
	}
}
