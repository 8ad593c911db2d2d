package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"itemize/internal/domains/user"
	"itemize/internal/shared/response"
)

type UserHandler struct {
	svc user.Service
}

func NewUserHandler(svc user.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

// Check reports whether a username or email is taken.
// GET /users/check/:identifier
// A 409 means "exists"; any other status means "does not exist".
func (h *UserHandler) Check(c *gin.Context) {
	identifier := c.Param("identifier")

	exists, err := h.svc.IdentifierExists(c.Request.Context(), identifier)
	if err != nil {
		if errors.Is(err, user.ErrInvalidUsername) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalServerError(c, err.Error())
		return
	}

	if exists {
		if user.IsEmail(identifier) {
			response.Conflict(c, "Email already exists!")
		} else {
			response.Conflict(c, "Username already exists!")
		}
		return
	}

	c.Status(http.StatusOK)
}

// Signup creates an account and returns it together with a bearer token.
// POST /users
func (h *UserHandler) Signup(c *gin.Context) {
	var req user.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.svc.Signup(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, user.ErrUserExists) {
			response.Conflict(c, err.Error())
			return
		}
		// Validation errors read fine as-is.
		response.BadRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Login authenticates with form-encoded credentials (OAuth2 password style).
// POST /users/login
func (h *UserHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		response.BadRequest(c, "username and password are required")
		return
	}

	token, err := h.svc.Login(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			response.Unauthorized(c, err.Error())
			return
		}
		response.InternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, user.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
