package client

import (
	"context"
	"sync"
)

// Synchronizer owns the local copy of one user's collections: the list
// of itemizes and, when addressed to a slug, one itemize with its
// links. Reads and refreshes replace the local state wholesale with
// server-confirmed state; nothing is ever merged or mutated in place,
// and a failed call leaves the previous state untouched.
//
// Mutations are serialized: a second mutation while one is in flight
// fails fast with ErrMutationInFlight. Fetches are not serialized, but
// responses that arrive after a newer fetch was issued are discarded
// instead of overwriting fresher state.
type Synchronizer struct {
	client *Client
	owner  string

	mu       sync.Mutex
	slug     string
	current  *Itemize
	itemizes []Itemize
	mutating bool

	issued  uint64 // fetch sequence numbers handed out
	applied uint64 // newest sequence whose response was installed
}

// NewSynchronizer addresses a synchronizer at one owner. Slug may be
// empty for list-only use and is re-addressed automatically when a
// rename moves the itemize.
func NewSynchronizer(c *Client, owner, slug string) *Synchronizer {
	return &Synchronizer{client: c, owner: owner, slug: slug}
}

// Slug returns the slug currently addressed, which changes after a
// rename.
func (s *Synchronizer) Slug() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slug
}

// Current returns the last installed itemize state, or nil before the
// first successful fetch.
func (s *Synchronizer) Current() *Itemize {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Itemizes returns the last installed list state.
func (s *Synchronizer) Itemizes() []Itemize {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemizes
}

// Fetch loads the addressed itemize, filtered by query, and replaces
// local state with the result. Rapid successive fetches may complete
// out of order; a response superseded by a newer issue is returned to
// its caller but not installed.
func (s *Synchronizer) Fetch(ctx context.Context, query string) (*Itemize, error) {
	s.mu.Lock()
	s.issued++
	seq := s.issued
	owner, slug := s.owner, s.slug
	s.mu.Unlock()

	it, err := s.client.GetItemize(ctx, owner, slug, query)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if seq > s.applied {
		s.applied = seq
		s.current = it
	}
	s.mu.Unlock()
	return it, nil
}

// FetchList loads the owner's itemizes, filtered by query, with the
// same replace-and-discard-stale behavior as Fetch.
func (s *Synchronizer) FetchList(ctx context.Context, query string) ([]Itemize, error) {
	s.mu.Lock()
	s.issued++
	seq := s.issued
	owner := s.owner
	s.mu.Unlock()

	items, err := s.client.ListItemizes(ctx, owner, query)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if seq > s.applied {
		s.applied = seq
		s.itemizes = items
	}
	s.mu.Unlock()
	return items, nil
}

// AddLink validates and submits a new URL, then refreshes so the local
// copy picks up the scraped metadata. The immediate response may be
// provisional; only the refresh is authoritative.
func (s *Synchronizer) AddLink(ctx context.Context, linkURL string) (*Link, error) {
	release, err := s.beginMutation()
	if err != nil {
		return nil, err
	}
	defer release()

	link, err := s.client.AddLink(ctx, s.owner, s.Slug(), linkURL)
	if err != nil {
		return nil, err
	}
	if err := s.refresh(ctx); err != nil {
		return link, &RefreshError{Err: err}
	}
	return link, nil
}

// UpdateLink applies a reducer-built patch to a link's override and
// refreshes.
func (s *Synchronizer) UpdateLink(ctx context.Context, linkID int64, p LinkPatch) (*Link, error) {
	release, err := s.beginMutation()
	if err != nil {
		return nil, err
	}
	defer release()

	link, err := s.client.UpdateLink(ctx, s.owner, s.Slug(), linkID, p)
	if err != nil {
		return nil, err
	}
	if err := s.refresh(ctx); err != nil {
		return link, &RefreshError{Err: err}
	}
	return link, nil
}

// DeleteLink removes a link and refreshes. A failed delete leaves the
// local collection unchanged.
func (s *Synchronizer) DeleteLink(ctx context.Context, linkID int64) error {
	release, err := s.beginMutation()
	if err != nil {
		return err
	}
	defer release()

	if err := s.client.DeleteLink(ctx, s.owner, s.Slug(), linkID); err != nil {
		return err
	}
	if err := s.refresh(ctx); err != nil {
		return &RefreshError{Err: err}
	}
	return nil
}

// UpdateSettings applies a settings patch. When the server derives a
// new slug from a renamed itemize, the synchronizer re-addresses itself
// before refreshing; the old slug stops resolving.
func (s *Synchronizer) UpdateSettings(ctx context.Context, p ItemizePatch) (*Itemize, error) {
	release, err := s.beginMutation()
	if err != nil {
		return nil, err
	}
	defer release()

	it, err := s.client.UpdateItemize(ctx, s.owner, s.Slug(), p)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.slug = it.Slug
	s.mu.Unlock()

	if err := s.refresh(ctx); err != nil {
		return it, &RefreshError{Err: err}
	}
	return it, nil
}

func (s *Synchronizer) beginMutation() (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mutating {
		return nil, ErrMutationInFlight
	}
	s.mutating = true
	return func() {
		s.mu.Lock()
		s.mutating = false
		s.mu.Unlock()
	}, nil
}

// refresh reloads the addressed itemize unfiltered after a successful
// mutation.
func (s *Synchronizer) refresh(ctx context.Context) error {
	_, err := s.Fetch(ctx, "")
	return err
}
