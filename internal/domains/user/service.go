package user

import "context"

type Service interface {
	// Signup creates an account and logs it in.
	Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error)

	// Login authenticates by username or email and returns a bearer token.
	Login(ctx context.Context, usernameOrEmail, password string) (string, error)

	// IdentifierExists reports whether a username or email is taken.
	// The identifier is classified as an email by shape; anything else is
	// validated as a username first.
	IdentifierExists(ctx context.Context, identifier string) (bool, error)
}
