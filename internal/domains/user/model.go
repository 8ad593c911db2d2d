package user

import (
	"time"

	"github.com/google/uuid"
)

// User is an account. Identity fields (username, email) are immutable
// after signup.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
