package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"stayhub/internal/ids"
	"stayhub/internal/models"
	"stayhub/internal/repository"
	"stayhub/internal/security"
)

var (
	ErrEmailTaken = errors.New("email already registered")
	// ErrUnknownEmail and ErrWrongPassword are distinct because the login
	// contract answers them with different statuses.
	ErrUnknownEmail  = errors.New("no account for email")
	ErrWrongPassword = errors.New("password mismatch")
	ErrUserNotFound  = errors.New("user not found")
)

// UserStore is the credential store surface the auth service needs.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
}

type AuthService struct {
	users  UserStore
	tokens *security.TokenService
	log    zerolog.Logger
}

func NewAuthService(users UserStore, tokens *security.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		log:    log,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (models.User, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" || input.Name == "" {
		return models.User{}, fmt.Errorf("%w: name, email and password required", ErrValidation)
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           ids.New(),
		Name:         input.Name,
		Email:        email,
		PasswordHash: passwordHash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

type LoginResult struct {
	User  models.User
	Token string
}

// Login checks the credentials and issues a session token. The stored hash
// is never compared as a raw string.
func (s *AuthService) Login(ctx context.Context, email string, password string) (LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return LoginResult{}, ErrUnknownEmail
		}
		return LoginResult{}, err
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return LoginResult{}, ErrWrongPassword
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{User: user, Token: token}, nil
}

// Profile re-fetches the identity behind the claims so the response carries
// fresh fields rather than whatever the token embedded.
func (s *AuthService) Profile(ctx context.Context, userID string) (models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
