package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"itemize/internal/domains/metadata"
	"itemize/internal/shared/response"
)

type ImageHandler struct {
	svc metadata.Service
}

func NewImageHandler(svc metadata.Service) *ImageHandler {
	return &ImageHandler{svc: svc}
}

// GetImage serves a stored page image.
// GET /metadata/images/:id
func (h *ImageHandler) GetImage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid image ID")
		return
	}

	img, err := h.svc.GetImage(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, metadata.ErrImageNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalServerError(c, err.Error())
		return
	}
	if img.Data == nil {
		response.NotFound(c, metadata.ErrImageNotFound.Error())
		return
	}

	mime := "application/octet-stream"
	if img.Mime != nil {
		mime = *img.Mime
	}
	c.Data(http.StatusOK, mime, img.Data)
}
