package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is a throwaway bcrypt hash compared against when the email
// is unknown, keeping login timing uniform.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Service handles registration, login, and profile updates.
type Service struct {
	users  Repository
	jwt    *JWTService
	logger zerolog.Logger
}

// NewService creates a new auth service.
func NewService(users Repository, jwt *JWTService, logger zerolog.Logger) *Service {
	return &Service{
		users:  users,
		jwt:    jwt,
		logger: logger.With().Str("component", "auth").Logger(),
	}
}

// RegisterInput is the payload for Register.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	City     string `json:"city"`
}

// Validate checks required fields.
func (in RegisterInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if !strings.Contains(in.Email, "@") {
		return fmt.Errorf("a valid email is required")
	}
	if len(in.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

// Register creates a new citizen account and returns a session.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Role:         RoleCitizen,
		City:         strings.TrimSpace(in.City),
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user registered")
	return s.newSession(user)
}

// Login authenticates an email and password pair.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Burn a comparison so missing users take as long as bad
		// passwords.
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return s.newSession(user)
}

// GetUser returns the user with the given ID.
func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateProfileInput is the payload for UpdateProfile. Nil fields are
// left unchanged.
type UpdateProfileInput struct {
	Name *string `json:"name,omitempty"`
	City *string `json:"city,omitempty"`
}

// UpdateProfile applies profile changes and returns the updated user.
func (s *Service) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("name cannot be empty")
		}
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.City != nil {
		user.City = strings.TrimSpace(*in.City)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ValidateToken parses a bearer token into its claims.
func (s *Service) ValidateToken(token string) (*Claims, error) {
	return s.jwt.Validate(token)
}

func (s *Service) newSession(user *User) (*Session, error) {
	token, expiresAt, err := s.jwt.Generate(user)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}
