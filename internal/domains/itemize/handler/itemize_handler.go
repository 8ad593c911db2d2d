package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"itemize/internal/domains/itemize"
	"itemize/internal/domains/metadata"
	"itemize/internal/domains/user"
	"itemize/internal/shared/middleware"
	"itemize/internal/shared/response"
)

type ItemizeHandler struct {
	svc itemize.Service
}

func NewItemizeHandler(svc itemize.Service) *ItemizeHandler {
	return &ItemizeHandler{svc: svc}
}

// List returns a user's itemizes visible to the caller.
// GET /itemize/:username
func (h *ItemizeHandler) List(c *gin.Context) {
	dtos, err := h.svc.List(c.Request.Context(),
		c.Param("username"), c.GetString(middleware.ContextUsername), c.Query("query"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemize.ItemizesResponse{Itemizes: dtos})
}

// Create makes a new itemize for the authenticated owner.
// POST /itemize/:username
func (h *ItemizeHandler) Create(c *gin.Context) {
	var req itemize.CreateItemizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	dto, err := h.svc.Create(c.Request.Context(), c.Param("username"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemize.ItemizeResponse{Itemize: *dto})
}

// Get returns one itemize by slug.
// GET /itemize/:username/:slug
func (h *ItemizeHandler) Get(c *gin.Context) {
	dto, err := h.svc.Get(c.Request.Context(),
		c.Param("username"), c.GetString(middleware.ContextUsername), c.Param("slug"), c.Query("query"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemize.ItemizeResponse{Itemize: *dto})
}

// Update applies a partial settings update. Renaming moves the itemize
// to a new slug, returned in the body.
// PATCH /itemize/:username/:slug
func (h *ItemizeHandler) Update(c *gin.Context) {
	var req itemize.UpdateItemizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	dto, err := h.svc.Update(c.Request.Context(), c.Param("username"), c.Param("slug"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemize.ItemizeResponse{Itemize: *dto})
}

// AddLink appends a link to an itemize, scraping metadata on the way.
// POST /itemize/:username/:slug
func (h *ItemizeHandler) AddLink(c *gin.Context) {
	var req itemize.CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	dto, err := h.svc.AddLink(c.Request.Context(), c.Param("username"), c.Param("slug"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemize.LinkResponse{Link: *dto})
}

// UpdateLink patches a link's metadata override.
// PATCH /itemize/:username/:slug/:id
func (h *ItemizeHandler) UpdateLink(c *gin.Context) {
	linkID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid link ID")
		return
	}
	var req itemize.UpdateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	dto, err := h.svc.UpdateLink(c.Request.Context(), c.Param("username"), c.Param("slug"), linkID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemize.LinkResponse{Link: *dto})
}

// DeleteLink removes a link from an itemize.
// DELETE /itemize/:username/:slug/:id
func (h *ItemizeHandler) DeleteLink(c *gin.Context) {
	linkID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid link ID")
		return
	}
	if err := h.svc.DeleteLink(c.Request.Context(), c.Param("username"), c.Param("slug"), linkID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondError(c *gin.Context, err error) {
	var (
		verrs validation.Errors
		ve    itemize.ValidationError
	)
	switch {
	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, itemize.ErrItemizeNotFound),
		errors.Is(err, itemize.ErrLinkNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, itemize.ErrItemizeExists):
		response.Conflict(c, err.Error())
	case errors.Is(err, itemize.ErrInvalidName):
		response.BadRequest(c, err.Error())
	case errors.Is(err, metadata.ErrUnprocessable):
		response.Error(c, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &verrs), errors.As(err, &ve):
		response.BadRequest(c, err.Error())
	default:
		response.InternalServerError(c, "Internal server error")
	}
}
