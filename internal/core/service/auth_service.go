package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/quizmesh/quiz-platform/internal/auth/token"
	"github.com/quizmesh/quiz-platform/internal/core/domain"
	"github.com/quizmesh/quiz-platform/internal/core/ports"
	"github.com/quizmesh/quiz-platform/internal/metrics"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// AuthService issues access/refresh token pairs and owns credential checks.
// Tokens are never persisted; verification is fully stateless.
type AuthService struct {
	repo       ports.UserRepository
	codec      *token.Codec
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, codec *token.Codec, accessTTL, refreshTTL time.Duration, log zerolog.Logger) *AuthService {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= accessTTL {
		refreshTTL = defaultRefreshTTL
	}
	return &AuthService{
		repo:       repo,
		codec:      codec,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		log:        log,
	}
}

// Register creates a user account and issues a fresh token pair. Duplicate
// username or email surfaces as domain.ErrUserExists from the store.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.TokenPair, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	if username == "" || email == "" || input.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Str("role", created.Role).Msg("user registered")
	return s.issuePair(created, "register")
}

// Login checks credentials and issues a new token pair. The error never
// reveals whether the username was unknown or the password wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.TokenPair, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	s.log.Info().Str("username", user.Username).Msg("user logged in")
	return s.issuePair(user, "login")
}

// Refresh mints a new access token for the subject of a valid refresh token.
// The refresh token itself is echoed back unrotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	claims, err := s.codec.Decode(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.FindByUsername(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}

	access, err := s.codec.Encode(user.Username, user.Role, s.accessTTL)
	if err != nil {
		return nil, err
	}
	metrics.TokensIssuedTotal.WithLabelValues("access", "refresh").Inc()

	return &ports.TokenPair{
		AccessToken:  access,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTTL.Seconds()),
		User:         summarize(user),
	}, nil
}

// Validate reports whether a token is valid for a known user. It never
// returns an error: every failure is captured in the result message.
func (s *AuthService) Validate(ctx context.Context, tokenString string) ports.TokenValidation {
	claims, err := s.codec.Decode(tokenString)
	if err != nil {
		return ports.TokenValidation{Valid: false, Message: "token validation failed: " + err.Error()}
	}

	user, err := s.repo.FindByUsername(ctx, claims.Subject)
	if err != nil {
		return ports.TokenValidation{Valid: false, Message: "token validation failed: " + domain.ErrUserNotFound.Error()}
	}

	return ports.TokenValidation{
		Valid:    true,
		Username: user.Username,
		Role:     claims.Role,
		Message:  "token is valid",
	}
}

func (s *AuthService) issuePair(user *domain.User, flow string) (*ports.TokenPair, error) {
	access, err := s.codec.Encode(user.Username, user.Role, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.codec.Encode(user.Username, user.Role, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	metrics.TokensIssuedTotal.WithLabelValues("access", flow).Inc()
	metrics.TokensIssuedTotal.WithLabelValues("refresh", flow).Inc()

	return &ports.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTTL.Seconds()),
		User:         summarize(user),
	}, nil
}

func summarize(u *domain.User) *ports.UserSummary {
	return &ports.UserSummary{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}
