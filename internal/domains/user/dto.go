package user

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var (
	UsernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	EmailRe    = regexp.MustCompile(`^\S+@\S+\.\S+$`)
)

// IsEmail classifies an identifier as an email address by shape.
func IsEmail(identifier string) bool {
	return EmailRe.MatchString(identifier)
}

// SignupRequest creates an account.
type SignupRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Match(UsernameRe).Error("username must be 3-20 characters of letters, numbers, and underscores"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be 8-128 characters"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
		),
		validation.Field(&r.FirstName, validation.Length(0, 100)),
		validation.Field(&r.LastName, validation.Length(0, 100)),
	)
}

// UserDTO - public user representation (safe to expose)
type UserDTO struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (u *User) ToDTO() UserDTO {
	return UserDTO{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// SignupResponse returns the fresh account plus a bearer token so the
// client is logged in immediately after signup.
type SignupResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// TokenResponse is the login success body.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
