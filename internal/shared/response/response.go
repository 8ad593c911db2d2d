package response

import (
	"github.com/gin-gonic/gin"
)

// Detail is the error body contract: every failure carries a human-readable
// detail string that clients surface verbatim.
type Detail struct {
	Detail string `json:"detail"`
}

func Error(c *gin.Context, statusCode int, detail string) {
	c.JSON(statusCode, Detail{Detail: detail})
}

// Common error responses
func BadRequest(c *gin.Context, detail string) {
	Error(c, 400, detail)
}

func Unauthorized(c *gin.Context, detail string) {
	Error(c, 401, detail)
}

func Forbidden(c *gin.Context, detail string) {
	Error(c, 403, detail)
}

func NotFound(c *gin.Context, detail string) {
	Error(c, 404, detail)
}

func Conflict(c *gin.Context, detail string) {
	Error(c, 409, detail)
}

func InternalServerError(c *gin.Context, detail string) {
	Error(c, 500, detail)
}
