package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"itemize/internal/domains/user"
	"itemize/pkg/jwt"
)

type userService struct {
	repo user.Repository
	jwt  *jwt.Manager
}

func NewUserService(repo user.Repository, jwtManager *jwt.Manager) user.Service {
	return &userService{
		repo: repo,
		jwt:  jwtManager,
	}
}

func (s *userService) Signup(ctx context.Context, req user.SignupRequest) (*user.SignupResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// bcrypt cost 12 balances security and login latency.
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	newUser := &user.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(passwordHash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The unique constraint decides conflicts; no pre-check race.
	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateAccessToken(newUser.ID, newUser.Username, newUser.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &user.SignupResponse{
		Token: token,
		User:  newUser.ToDTO(),
	}, nil
}

func (s *userService) Login(ctx context.Context, usernameOrEmail, password string) (string, error) {
	u, err := s.repo.FindByUsernameOrEmail(ctx, usernameOrEmail)
	if err != nil {
		// Do not reveal whether the account exists.
		return "", user.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", user.ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateAccessToken(u.ID, u.Username, u.Email)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return token, nil
}

func (s *userService) IdentifierExists(ctx context.Context, identifier string) (bool, error) {
	if user.IsEmail(identifier) {
		return s.repo.ExistsByEmail(ctx, identifier)
	}

	if !user.UsernameRe.MatchString(identifier) {
		return false, user.ErrInvalidUsername
	}
	return s.repo.ExistsByUsername(ctx, identifier)
}
