package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itemize/internal/domains/itemize"
	"itemize/internal/domains/metadata"
	"itemize/internal/domains/user"
	"itemize/internal/shared/patch"
)

type fakeUsers struct {
	byName map[string]*user.User
}

func (f *fakeUsers) Create(ctx context.Context, u *user.User) error { return nil }

func (f *fakeUsers) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	if u, ok := f.byName[username]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUsers) FindByUsernameOrEmail(ctx context.Context, identifier string) (*user.User, error) {
	return f.FindByUsername(ctx, identifier)
}

func (f *fakeUsers) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, ok := f.byName[username]
	return ok, nil
}

func (f *fakeUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

type fakeRepo struct {
	nextID   int64
	itemizes map[int64]*itemize.Itemize
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{itemizes: map[int64]*itemize.Itemize{}}
}

func (f *fakeRepo) Create(ctx context.Context, it *itemize.Itemize) error {
	for _, existing := range f.itemizes {
		if existing.UserID == it.UserID && existing.Slug == it.Slug {
			return itemize.ErrItemizeExists
		}
	}
	f.nextID++
	it.ID = f.nextID
	it.Links = []itemize.Link{}
	cp := *it
	f.itemizes[it.ID] = &cp
	return nil
}

func (f *fakeRepo) ListByUser(ctx context.Context, userID uuid.UUID, publicOnly bool) ([]itemize.Itemize, error) {
	var out []itemize.Itemize
	for _, it := range f.itemizes {
		if it.UserID != userID || (publicOnly && !it.Public) {
			continue
		}
		out = append(out, *it)
	}
	return out, nil
}

func (f *fakeRepo) GetBySlug(ctx context.Context, userID uuid.UUID, slug string) (*itemize.Itemize, error) {
	for _, it := range f.itemizes {
		if it.UserID == userID && it.Slug == slug {
			cp := *it
			cp.Links = append([]itemize.Link{}, it.Links...)
			return &cp, nil
		}
	}
	return nil, itemize.ErrItemizeNotFound
}

func (f *fakeRepo) Update(ctx context.Context, itemizeID int64, ch itemize.ItemizeChanges) error {
	it, ok := f.itemizes[itemizeID]
	if !ok {
		return itemize.ErrItemizeNotFound
	}
	if ch.Slug != nil {
		for _, other := range f.itemizes {
			if other.ID != itemizeID && other.UserID == it.UserID && other.Slug == *ch.Slug {
				return itemize.ErrItemizeExists
			}
		}
		it.Slug = *ch.Slug
	}
	if ch.Name != nil {
		it.Name = *ch.Name
	}
	if ch.Description.Set {
		it.Description = ch.Description.Ptr()
	}
	if ch.Public != nil {
		it.Public = *ch.Public
	}
	return nil
}

func (f *fakeRepo) AddLink(ctx context.Context, itemizeID int64, url string, pageMetadataID int64) (*itemize.Link, error) {
	it := f.itemizes[itemizeID]
	f.nextID++
	l := itemize.Link{
		ID:           f.nextID,
		ItemizeID:    itemizeID,
		URL:          url,
		PageMetadata: &metadata.PageMetadata{ID: pageMetadataID, URL: url},
	}
	it.Links = append(it.Links, l)
	return &l, nil
}

func (f *fakeRepo) GetLink(ctx context.Context, itemizeID, linkID int64) (*itemize.Link, error) {
	it, ok := f.itemizes[itemizeID]
	if !ok {
		return nil, itemize.ErrLinkNotFound
	}
	for i := range it.Links {
		if it.Links[i].ID == linkID {
			cp := it.Links[i]
			return &cp, nil
		}
	}
	return nil, itemize.ErrLinkNotFound
}

func (f *fakeRepo) DeleteLink(ctx context.Context, itemizeID, linkID int64) error {
	it, ok := f.itemizes[itemizeID]
	if !ok {
		return itemize.ErrLinkNotFound
	}
	for i := range it.Links {
		if it.Links[i].ID == linkID {
			it.Links = append(it.Links[:i], it.Links[i+1:]...)
			return nil
		}
	}
	return itemize.ErrLinkNotFound
}

func (f *fakeRepo) UpsertOverride(ctx context.Context, linkID int64, ch itemize.OverrideChanges) error {
	for _, it := range f.itemizes {
		for i := range it.Links {
			if it.Links[i].ID != linkID {
				continue
			}
			ov := it.Links[i].Override
			if ov == nil {
				ov = &metadata.PageMetadataOverride{}
				it.Links[i].Override = ov
			}
			if ch.Title.Set {
				ov.Title = ch.Title.Ptr()
			}
			if ch.Description.Set {
				ov.Description = ch.Description.Ptr()
			}
			if ch.SiteName.Set {
				ov.SiteName = ch.SiteName.Ptr()
			}
			if ch.Price.Set {
				ov.Price = ch.Price.Ptr()
			}
			if ch.Currency.Set {
				ov.Currency = ch.Currency.Ptr()
			}
			if ch.ImageURL.Set {
				ov.ImageURL = ch.ImageURL.Ptr()
			}
			return nil
		}
	}
	return itemize.ErrLinkNotFound
}

type fakeMetadata struct{}

func (fakeMetadata) GetOrFetch(ctx context.Context, url string) (*metadata.PageMetadata, error) {
	return &metadata.PageMetadata{ID: 1, URL: url}, nil
}

func (fakeMetadata) GetImage(ctx context.Context, imageID int64) (*metadata.MetadataImage, error) {
	return nil, metadata.ErrImageNotFound
}

func newTestService(t *testing.T) (itemize.Service, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	users := &fakeUsers{byName: map[string]*user.User{
		"alice": {ID: uuid.New(), Username: "alice"},
	}}
	return NewItemizeService(repo, users, fakeMetadata{}, "http://localhost:8080"), repo
}

func TestCreateDerivesSlug(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	dto, err := svc.Create(ctx, "alice", itemize.CreateItemizeRequest{Name: "My List"})
	require.NoError(t, err)
	assert.Equal(t, "my-list", dto.Slug)
	assert.Equal(t, "My List", dto.Name)
	require.NotNil(t, dto.User)
	assert.Equal(t, "alice", dto.User.Username)

	_, err = svc.Create(ctx, "alice", itemize.CreateItemizeRequest{Name: "My  List"})
	assert.ErrorIs(t, err, itemize.ErrItemizeExists, "same derived slug per owner conflicts")
}

func TestGetHidesPrivateFromNonOwners(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", itemize.CreateItemizeRequest{Name: "Secret"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, "alice", "", "secret", "")
	assert.ErrorIs(t, err, itemize.ErrItemizeNotFound, "anonymous viewers see nothing")

	_, err = svc.Get(ctx, "alice", "mallory", "secret", "")
	assert.ErrorIs(t, err, itemize.ErrItemizeNotFound, "other users see nothing")

	dto, err := svc.Get(ctx, "alice", "alice", "secret", "")
	require.NoError(t, err)
	assert.Equal(t, "Secret", dto.Name)
}

func TestUpdateRenameRecomputesSlug(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", itemize.CreateItemizeRequest{Name: "My List"})
	require.NoError(t, err)

	req := itemize.UpdateItemizeRequest{Name: patch.Value("Other List")}
	dto, err := svc.Update(ctx, "alice", "my-list", req)
	require.NoError(t, err)
	assert.Equal(t, "other-list", dto.Slug)
	assert.Equal(t, "Other List", dto.Name)

	// The old address is gone.
	_, err = svc.Get(ctx, "alice", "alice", "my-list", "")
	assert.ErrorIs(t, err, itemize.ErrItemizeNotFound)
}

func TestUpdateEmptyPatchIsNoOp(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", itemize.CreateItemizeRequest{Name: "My List", Public: true})
	require.NoError(t, err)

	dto, err := svc.Update(ctx, "alice", "my-list", itemize.UpdateItemizeRequest{})
	require.NoError(t, err)
	assert.Equal(t, *created, *dto)
}

func TestUpdateClearsDescriptionOnNull(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	desc := "things I want"
	_, err := svc.Create(ctx, "alice", itemize.CreateItemizeRequest{Name: "My List", Description: &desc})
	require.NoError(t, err)

	req := itemize.UpdateItemizeRequest{Description: patch.Null[string]()}
	dto, err := svc.Update(ctx, "alice", "my-list", req)
	require.NoError(t, err)
	assert.Nil(t, dto.Description)
	assert.Equal(t, "My List", dto.Name, "untouched fields keep their values")
}

func TestUpdateLinkLazyOverrideAndClear(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", itemize.CreateItemizeRequest{Name: "My List"})
	require.NoError(t, err)
	link, err := svc.AddLink(ctx, "alice", "my-list", itemize.CreateLinkRequest{URL: "https://example.com/x"})
	require.NoError(t, err)
	assert.Nil(t, link.Override, "no override until the first edit")

	var req itemize.UpdateLinkRequest
	req.Title = patch.Value("My Title")
	updated, err := svc.UpdateLink(ctx, "alice", "my-list", link.ID, req)
	require.NoError(t, err)
	require.NotNil(t, updated.Override)
	require.NotNil(t, updated.Override.Title)
	assert.Equal(t, "My Title", *updated.Override.Title)

	// Null restores the scraped value; other override fields survive.
	req = itemize.UpdateLinkRequest{Title: patch.Null[string](), Price: patch.Value("12.50")}
	updated, err = svc.UpdateLink(ctx, "alice", "my-list", link.ID, req)
	require.NoError(t, err)
	assert.Nil(t, updated.Override.Title)
	require.NotNil(t, updated.Override.Price)
	assert.Equal(t, "12.50", *updated.Override.Price)
}

func TestUpdateLinkEmptyPatchTouchesNothing(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", itemize.CreateItemizeRequest{Name: "My List"})
	require.NoError(t, err)
	link, err := svc.AddLink(ctx, "alice", "my-list", itemize.CreateLinkRequest{URL: "https://example.com/x"})
	require.NoError(t, err)

	updated, err := svc.UpdateLink(ctx, "alice", "my-list", link.ID, itemize.UpdateLinkRequest{})
	require.NoError(t, err)
	assert.Nil(t, updated.Override, "an empty patch must not create an override record")
}

func TestGetQueryFiltersResolvedValues(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", itemize.CreateItemizeRequest{Name: "My List", Public: true})
	require.NoError(t, err)
	link, err := svc.AddLink(ctx, "alice", "my-list", itemize.CreateLinkRequest{URL: "https://shop.example/boots"})
	require.NoError(t, err)

	// Give the base metadata a title, then blank it with an override.
	for _, it := range repo.itemizes {
		for i := range it.Links {
			title := "Winter Boots"
			it.Links[i].PageMetadata.Title = &title
		}
	}

	dto, err := svc.Get(ctx, "alice", "", created.Slug, "winter")
	require.NoError(t, err)
	assert.Len(t, dto.Links, 1, "base title matches while no override exists")

	var req itemize.UpdateLinkRequest
	req.Title = patch.Value("")
	_, err = svc.UpdateLink(ctx, "alice", "my-list", link.ID, req)
	require.NoError(t, err)

	dto, err = svc.Get(ctx, "alice", "", created.Slug, "winter")
	require.NoError(t, err)
	assert.Empty(t, dto.Links, "a blanked title no longer matches its base value")

	dto, err = svc.Get(ctx, "alice", "", created.Slug, "boots")
	require.NoError(t, err)
	assert.Len(t, dto.Links, 1, "the raw URL still matches")
}

func TestListVisibilityAndFilter(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", itemize.CreateItemizeRequest{Name: "Public Stuff", Public: true})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "alice", itemize.CreateItemizeRequest{Name: "Private Stuff"})
	require.NoError(t, err)

	anon, err := svc.List(ctx, "alice", "", "")
	require.NoError(t, err)
	assert.Len(t, anon, 1)

	own, err := svc.List(ctx, "alice", "alice", "")
	require.NoError(t, err)
	assert.Len(t, own, 2)

	filtered, err := svc.List(ctx, "alice", "alice", "private")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Private Stuff", filtered[0].Name)
}

func TestUnknownOwner(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.List(context.Background(), "nobody", "", "")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
