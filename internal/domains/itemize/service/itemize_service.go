package service

import (
	"context"
	"strings"

	"itemize/internal/domains/itemize"
	"itemize/internal/domains/metadata"
	"itemize/internal/domains/user"
	"itemize/internal/shared/utils"
)

type itemizeService struct {
	repo      itemize.Repository
	users     user.Repository
	metadata  metadata.Service
	serverURL string
}

// NewItemizeService builds the collection service. serverURL is the
// public base URL used to render stored image links.
func NewItemizeService(repo itemize.Repository, users user.Repository, md metadata.Service, serverURL string) itemize.Service {
	return &itemizeService{
		repo:      repo,
		users:     users,
		metadata:  md,
		serverURL: serverURL,
	}
}

func (s *itemizeService) List(ctx context.Context, ownerUsername, viewerUsername, query string) ([]itemize.ItemizeDTO, error) {
	owner, err := s.users.FindByUsername(ctx, ownerUsername)
	if err != nil {
		return nil, err
	}

	publicOnly := viewerUsername != owner.Username
	items, err := s.repo.ListByUser(ctx, owner.ID, publicOnly)
	if err != nil {
		return nil, err
	}

	dtos := make([]itemize.ItemizeDTO, 0, len(items))
	for i := range items {
		if query != "" && !itemizeMatches(&items[i], owner.Username, query) {
			continue
		}
		items[i].Owner = owner
		dtos = append(dtos, items[i].ToDTO(s.serverURL))
	}
	return dtos, nil
}

func (s *itemizeService) Create(ctx context.Context, ownerUsername string, req itemize.CreateItemizeRequest) (*itemize.ItemizeDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	owner, err := s.users.FindByUsername(ctx, ownerUsername)
	if err != nil {
		return nil, err
	}
	slug := utils.Slugify(req.Name)
	if slug == "" {
		return nil, itemize.ErrInvalidName
	}

	it := &itemize.Itemize{
		UserID:      owner.ID,
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Public:      req.Public,
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	it.Owner = owner
	dto := it.ToDTO(s.serverURL)
	return &dto, nil
}

func (s *itemizeService) Get(ctx context.Context, ownerUsername, viewerUsername, slug, query string) (*itemize.ItemizeDTO, error) {
	owner, err := s.users.FindByUsername(ctx, ownerUsername)
	if err != nil {
		return nil, err
	}
	it, err := s.repo.GetBySlug(ctx, owner.ID, slug)
	if err != nil {
		return nil, err
	}
	// Private itemizes are indistinguishable from missing ones for
	// anyone but the owner.
	if !it.Public && viewerUsername != owner.Username {
		return nil, itemize.ErrItemizeNotFound
	}

	if query != "" {
		filtered := make([]itemize.Link, 0, len(it.Links))
		for _, l := range it.Links {
			if linkMatches(&l, query) {
				filtered = append(filtered, l)
			}
		}
		it.Links = filtered
	}

	it.Owner = owner
	dto := it.ToDTO(s.serverURL)
	return &dto, nil
}

func (s *itemizeService) Update(ctx context.Context, ownerUsername, slug string, req itemize.UpdateItemizeRequest) (*itemize.ItemizeDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	owner, err := s.users.FindByUsername(ctx, ownerUsername)
	if err != nil {
		return nil, err
	}
	it, err := s.repo.GetBySlug(ctx, owner.ID, slug)
	if err != nil {
		return nil, err
	}

	ch := itemize.ItemizeChanges{Description: req.Description}
	newSlug := it.Slug
	if req.Name.Set && req.Name.Value != it.Name {
		name := req.Name.Value
		derived := utils.Slugify(name)
		if derived == "" {
			return nil, itemize.ErrInvalidName
		}
		ch.Name = &name
		ch.Slug = &derived
		newSlug = derived
	}
	if req.Public.Set {
		public := req.Public.Value
		ch.Public = &public
	}

	if err := s.repo.Update(ctx, it.ID, ch); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetBySlug(ctx, owner.ID, newSlug)
	if err != nil {
		return nil, err
	}
	updated.Owner = owner
	dto := updated.ToDTO(s.serverURL)
	return &dto, nil
}

func (s *itemizeService) AddLink(ctx context.Context, ownerUsername, slug string, req itemize.CreateLinkRequest) (*itemize.LinkDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	it, err := s.ownedItemize(ctx, ownerUsername, slug)
	if err != nil {
		return nil, err
	}

	md, err := s.metadata.GetOrFetch(ctx, req.URL)
	if err != nil {
		return nil, err
	}
	link, err := s.repo.AddLink(ctx, it.ID, req.URL, md.ID)
	if err != nil {
		return nil, err
	}
	dto := link.ToDTO(s.serverURL)
	return &dto, nil
}

func (s *itemizeService) UpdateLink(ctx context.Context, ownerUsername, slug string, linkID int64, req itemize.UpdateLinkRequest) (*itemize.LinkDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	it, err := s.ownedItemize(ctx, ownerUsername, slug)
	if err != nil {
		return nil, err
	}
	link, err := s.repo.GetLink(ctx, it.ID, linkID)
	if err != nil {
		return nil, err
	}
	if req.Empty() {
		dto := link.ToDTO(s.serverURL)
		return &dto, nil
	}

	ch := itemize.OverrideChanges{
		Title:       req.Title,
		Description: req.Description,
		SiteName:    req.SiteName,
		Price:       req.Price,
		Currency:    req.Currency,
		ImageURL:    req.ImageURL,
	}
	if err := s.repo.UpsertOverride(ctx, link.ID, ch); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetLink(ctx, it.ID, linkID)
	if err != nil {
		return nil, err
	}
	dto := updated.ToDTO(s.serverURL)
	return &dto, nil
}

func (s *itemizeService) DeleteLink(ctx context.Context, ownerUsername, slug string, linkID int64) error {
	it, err := s.ownedItemize(ctx, ownerUsername, slug)
	if err != nil {
		return err
	}
	return s.repo.DeleteLink(ctx, it.ID, linkID)
}

func (s *itemizeService) ownedItemize(ctx context.Context, ownerUsername, slug string) (*itemize.Itemize, error) {
	owner, err := s.users.FindByUsername(ctx, ownerUsername)
	if err != nil {
		return nil, err
	}
	return s.repo.GetBySlug(ctx, owner.ID, slug)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func itemizeMatches(it *itemize.Itemize, ownerUsername, query string) bool {
	if containsFold(it.Name, query) || containsFold(ownerUsername, query) {
		return true
	}
	return it.Description != nil && containsFold(*it.Description, query)
}

// linkMatches checks the link against a search query using the values a
// card actually shows: the override field when present, the scraped
// value otherwise, plus the raw URL.
func linkMatches(l *itemize.Link, query string) bool {
	base := l.PageMetadata
	var ovTitle, ovDesc, ovSite *string
	if l.Override != nil {
		ovTitle = l.Override.Title
		ovDesc = l.Override.Description
		ovSite = l.Override.SiteName
	}
	if t := activeValue(base.Title, ovTitle); t != nil && containsFold(*t, query) {
		return true
	}
	if d := activeValue(base.Description, ovDesc); d != nil && containsFold(*d, query) {
		return true
	}
	if sn := activeValue(base.SiteName, ovSite); sn != nil && containsFold(*sn, query) {
		return true
	}
	return containsFold(l.URL, query)
}

// activeValue returns the override when one is present, even an empty
// string, so user edits always win.
func activeValue(base, override *string) *string {
	if override != nil {
		return override
	}
	return base
}
