package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/kanso-history/internal/core/domain"
)

type AuthService struct {
	repo   domain.UserRepository
	tokens *TokenService
}

func NewAuthService(repo domain.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		repo:   repo,
		tokens: tokens,
	}
}

type Credentials struct {
	Email    string
	Password string
}

func (s *AuthService) Register(ctx context.Context, input Credentials) (*domain.User, error) {
	user, err := domain.NewUser(uuid.NewString(), input.Email)
	if err != nil {
		return nil, err
	}

	if err := user.SetPassword(input.Password); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("auth service: failed to create user: %w", err)
	}

	return user, nil
}

// Login checks the credentials and returns a signed token for the user.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, input Credentials) (string, error) {
	user, err := s.repo.GetByEmail(ctx, domain.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("auth service: failed to load user: %w", err)
	}

	if err := user.CheckPassword(input.Password); err != nil {
		return "", err
	}

	return s.tokens.GenerateToken(user.ID)
}
