package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"careerprep/internal/auth"
	"careerprep/internal/domain"
	"careerprep/internal/shared"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UsersRepo is the persistence surface the auth service needs.
type UsersRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService implements the session gateway: sign-up, sign-in, sign-out
// and current-session lookup, with errors classified for the UI.
type AuthService struct {
	repo                UsersRepo
	jwtSecret           []byte
	tokenValidity       time.Duration
	requireConfirmation bool
}

func NewAuthService(repo UsersRepo, jwtSecret []byte, tokenValidity time.Duration, requireConfirmation bool) *AuthService {
	return &AuthService{
		repo:                repo,
		jwtSecret:           jwtSecret,
		tokenValidity:       tokenValidity,
		requireConfirmation: requireConfirmation,
	}
}

// SignUp registers an account and, unless email confirmation is required,
// signs the new user straight in.
func (s *AuthService) SignUp(ctx context.Context, email, password, displayName string) (*domain.Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	displayName = strings.TrimSpace(displayName)

	if len(displayName) < 2 {
		return nil, fmt.Errorf("%w: full name must be at least 2 characters", shared.ErrInvalidInput)
	}
	if !emailRe.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email address", shared.ErrInvalidInput)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", shared.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		ID:             uuid.New(),
		Email:          email,
		DisplayName:    displayName,
		PasswordHash:   string(hash),
		EmailConfirmed: !s.requireConfirmation,
		CreatedAt:      time.Now(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyRegistered) {
			return nil, shared.ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	if !user.EmailConfirmed {
		return nil, shared.ErrUnconfirmedEmail
	}
	return s.newSession(user)
}

// SignIn authenticates by email and password.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", shared.ErrInvalidInput)
	}
	if !emailRe.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email address", shared.ErrInvalidInput)
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if !user.EmailConfirmed {
		return nil, shared.ErrUnconfirmedEmail
	}
	return s.newSession(user)
}

// SignOut ends a session. Tokens are stateless, so this always succeeds;
// the client discards the token.
func (s *AuthService) SignOut(ctx context.Context) error {
	return nil
}

// CurrentSession resolves a bearer token back into a session, or
// shared.ErrInvalidToken when there is none.
func (s *AuthService) CurrentSession(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, shared.ErrInvalidToken
	}
	userID, expiresAt, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, shared.ErrInvalidToken
	}
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidToken
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	return &domain.Session{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Token:       token,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *AuthService) newSession(user *domain.User) (*domain.Session, error) {
	token, expiresAt, err := auth.GenerateToken(user.ID.String(), s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}
	return &domain.Session{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Token:       token,
		ExpiresAt:   expiresAt,
	}, nil
}
