package user

import "errors"

// Repository-level errors
var (
	ErrUserNotFound = errors.New("User not found!")
	ErrUserExists   = errors.New("Username or Email already in use!")
)

// Service-level errors
var (
	ErrInvalidUsername    = errors.New("Invalid username!")
	ErrInvalidCredentials = errors.New("Username, email, or password may be incorrect!")
)
