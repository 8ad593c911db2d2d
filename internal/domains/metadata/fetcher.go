package metadata

import "context"

// Fetcher produces the scraped snapshot for a URL. The scraping and
// enrichment pipeline behind it is an external collaborator; the server
// only depends on this seam.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*PageMetadata, error)
}

// ProvisionalFetcher records the URL and nothing else. Links added
// through it render from their URL until a real scraper fills in the
// snapshot; clients refresh after adding a link for exactly this reason.
type ProvisionalFetcher struct{}

func (ProvisionalFetcher) Fetch(_ context.Context, url string) (*PageMetadata, error) {
	return &PageMetadata{URL: url}, nil
}
