package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itemize/internal/domains/itemize"
	"itemize/internal/domains/metadata"
)

type stubService struct {
	lastUpdate    *itemize.UpdateItemizeRequest
	lastLinkPatch *itemize.UpdateLinkRequest
	updateErr     error
	deleteErr     error
	addLinkErr    error
}

func (s *stubService) List(ctx context.Context, owner, viewer, query string) ([]itemize.ItemizeDTO, error) {
	return []itemize.ItemizeDTO{}, nil
}

func (s *stubService) Create(ctx context.Context, owner string, req itemize.CreateItemizeRequest) (*itemize.ItemizeDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &itemize.ItemizeDTO{Name: req.Name, Slug: "stub"}, nil
}

func (s *stubService) Get(ctx context.Context, owner, viewer, slug, query string) (*itemize.ItemizeDTO, error) {
	return &itemize.ItemizeDTO{Slug: slug, Links: []itemize.LinkDTO{}}, nil
}

func (s *stubService) Update(ctx context.Context, owner, slug string, req itemize.UpdateItemizeRequest) (*itemize.ItemizeDTO, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	s.lastUpdate = &req
	return &itemize.ItemizeDTO{Slug: slug, Links: []itemize.LinkDTO{}}, nil
}

func (s *stubService) AddLink(ctx context.Context, owner, slug string, req itemize.CreateLinkRequest) (*itemize.LinkDTO, error) {
	if s.addLinkErr != nil {
		return nil, s.addLinkErr
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &itemize.LinkDTO{ID: 1, URL: req.URL}, nil
}

func (s *stubService) UpdateLink(ctx context.Context, owner, slug string, linkID int64, req itemize.UpdateLinkRequest) (*itemize.LinkDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	s.lastLinkPatch = &req
	return &itemize.LinkDTO{ID: linkID}, nil
}

func (s *stubService) DeleteLink(ctx context.Context, owner, slug string, linkID int64) error {
	return s.deleteErr
}

func newTestRouter(svc itemize.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewItemizeHandler(svc)
	r := gin.New()
	grp := r.Group("/itemize/:username")
	grp.GET("", h.List)
	grp.POST("", h.Create)
	grp.GET("/:slug", h.Get)
	grp.PATCH("/:slug", h.Update)
	grp.POST("/:slug", h.AddLink)
	grp.PATCH("/:slug/:id", h.UpdateLink)
	grp.DELETE("/:slug/:id", h.DeleteLink)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func detailOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Detail
}

func TestUpdateDecodesThreeStates(t *testing.T) {
	svc := &stubService{}
	r := newTestRouter(svc)

	w := doRequest(r, http.MethodPatch, "/itemize/alice/my-list", `{"description":null,"public":true}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	req := svc.lastUpdate
	require.NotNil(t, req)
	assert.False(t, req.Name.Set, "absent key stays unset")
	assert.True(t, req.Description.Set)
	assert.True(t, req.Description.Null)
	assert.True(t, req.Public.Set)
	assert.True(t, req.Public.Value)
}

func TestUpdateRejectsNullName(t *testing.T) {
	r := newTestRouter(&stubService{})

	w := doRequest(r, http.MethodPatch, "/itemize/alice/my-list", `{"name":null}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Name cannot be empty!", detailOf(t, w))
}

func TestUpdateLinkPatchPassesOnlyProvidedKeys(t *testing.T) {
	svc := &stubService{}
	r := newTestRouter(svc)

	w := doRequest(r, http.MethodPatch, "/itemize/alice/my-list/7", `{"title":"","price":"12.50"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	p := svc.lastLinkPatch
	require.NotNil(t, p)
	assert.True(t, p.Title.Set)
	assert.False(t, p.Title.Null)
	assert.Equal(t, "", p.Title.Value, "empty string is a value, not a clear")
	assert.True(t, p.Price.Set)
	assert.Equal(t, "12.50", p.Price.Value)
	assert.False(t, p.Description.Set)
	assert.False(t, p.Currency.Set)
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		detail string
	}{
		{"not found", itemize.ErrItemizeNotFound, http.StatusNotFound, "Itemize not found!"},
		{"conflict", itemize.ErrItemizeExists, http.StatusConflict, "Itemize with this name already exists!"},
		{"invalid name", itemize.ErrInvalidName, http.StatusBadRequest, "Name must contain letters or digits!"},
		{"internal", errors.New("pool exploded"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&stubService{updateErr: tc.err})
			w := doRequest(r, http.MethodPatch, "/itemize/alice/my-list", `{}`)
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.detail, detailOf(t, w))
		})
	}
}

func TestAddLinkUnprocessableMetadata(t *testing.T) {
	r := newTestRouter(&stubService{addLinkErr: metadata.ErrUnprocessable})
	w := doRequest(r, http.MethodPost, "/itemize/alice/my-list", `{"url":"https://example.com"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "Could not get metadata for url!", detailOf(t, w))
}

func TestDeleteLink(t *testing.T) {
	r := newTestRouter(&stubService{})
	w := doRequest(r, http.MethodDelete, "/itemize/alice/my-list/3", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	r = newTestRouter(&stubService{deleteErr: itemize.ErrLinkNotFound})
	w = doRequest(r, http.MethodDelete, "/itemize/alice/my-list/3", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Link not found!", detailOf(t, w))

	w = doRequest(r, http.MethodDelete, "/itemize/alice/my-list/not-a-number", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
