package ports

import (
	"context"

	"github.com/quizmesh/quiz-platform/internal/core/domain"
)

// UserRepository defines persistence for user accounts. Username and email
// uniqueness is the store's responsibility (unique indexes), not the
// caller's.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// RegisterInput carries registration data. Password is plaintext at this
// boundary only and is never stored.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	// Role defaults to USER when empty.
	Role string
}

// UserSummary is the view of a user returned alongside issued tokens.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// TokenPair is returned on registration, login and refresh.
type TokenPair struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	TokenType    string       `json:"tokenType"`
	ExpiresIn    int64        `json:"expiresIn"`
	User         *UserSummary `json:"userInfo,omitempty"`
}

// TokenValidation is the result of validating an arbitrary token. It is
// always populated; decode failures are reported via Valid=false rather than
// an error.
type TokenValidation struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	Message  string `json:"message"`
}

// AuthService issues and validates identity tokens.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*TokenPair, error)
	Login(ctx context.Context, username, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Validate(ctx context.Context, token string) TokenValidation
}
