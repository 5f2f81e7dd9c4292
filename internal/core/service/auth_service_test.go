package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/quizmesh/quiz-platform/internal/auth/token"
	"github.com/quizmesh/quiz-platform/internal/core/domain"
	"github.com/quizmesh/quiz-platform/internal/core/ports"
)

// stubUserRepo enforces uniqueness under a single lock, mirroring the
// store-level guarantee the real repository gets from unique indexes.
type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}

	clone := *user
	clone.ID = user.Username
	r.users[clone.Username] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func newTestAuthService(repo ports.UserRepository) (*AuthService, *token.Codec) {
	codec := token.NewCodec("secret")
	return NewAuthService(repo, codec, 15*time.Minute, time.Hour, zerolog.Nop()), codec
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, codec := newTestAuthService(newStubUserRepo())

	pair, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "pass123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if pair.TokenType != "Bearer" {
		t.Fatalf("unexpected token type %q", pair.TokenType)
	}
	if pair.User == nil || pair.User.Role != domain.RoleUser {
		t.Fatalf("expected default role USER, got %+v", pair.User)
	}

	claims, err := codec.Decode(pair.AccessToken)
	if err != nil {
		t.Fatalf("decode access token: %v", err)
	}
	if claims.Subject != "alice" || claims.Role != domain.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := codec.Decode(pair.RefreshToken); err != nil {
		t.Fatalf("decode refresh token: %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _ := newTestAuthService(newStubUserRepo())

	input := ports.RegisterInput{Username: "bob", Email: "bob@example.com", Password: "pass"}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _ := newTestAuthService(newStubUserRepo())

	cases := []ports.RegisterInput{
		{Username: "", Email: "a@b.com", Password: "p"},
		{Username: "a", Email: "", Password: "p"},
		{Username: "a", Email: "a@b.com", Password: ""},
		{Username: "a", Email: "a@b.com", Password: "p", Role: "ROOT"},
	}
	for _, in := range cases {
		if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("input %+v: expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestAuthService_Register_Concurrent(t *testing.T) {
	svc, _ := newTestAuthService(newStubUserRepo())

	const attempts = 8
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Register(context.Background(), ports.RegisterInput{
				Username: "carol",
				Email:    "carol@example.com",
				Password: "pass",
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, domain.ErrUserExists) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly one successful register, got %d", succeeded)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, codec := newTestAuthService(repo)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "dave", Email: "dave@example.com", Password: "s3cret", Role: domain.RoleAdmin,
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	pair, err := svc.Login(context.Background(), "dave", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := codec.Decode(pair.AccessToken)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims.Subject != "dave" || claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	stored := repo.users["dave"]
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret")) != nil {
		t.Fatalf("stored hash does not match password")
	}
}

func TestAuthService_Login_DoesNotLeakFailureKind(t *testing.T) {
	svc, _ := newTestAuthService(newStubUserRepo())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "erin", Email: "erin@example.com", Password: "right",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, unknownErr := svc.Login(context.Background(), "nobody", "whatever")
	_, wrongErr := svc.Login(context.Background(), "erin", "wrong")

	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) || !errors.Is(wrongErr, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v and %v", unknownErr, wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("error messages differ: %q vs %q", unknownErr, wrongErr)
	}
}

func TestAuthService_Refresh(t *testing.T) {
	svc, codec := newTestAuthService(newStubUserRepo())

	reg, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "frank", Email: "frank@example.com", Password: "pass",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	pair, err := svc.Refresh(context.Background(), reg.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if pair.RefreshToken != reg.RefreshToken {
		t.Fatalf("refresh token should be echoed back unrotated")
	}

	claims, err := codec.Decode(pair.AccessToken)
	if err != nil {
		t.Fatalf("decode new access token: %v", err)
	}
	if claims.Subject != "frank" || claims.Role != domain.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Refresh_Failures(t *testing.T) {
	svc, codec := newTestAuthService(newStubUserRepo())

	if _, err := svc.Refresh(context.Background(), "garbage"); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}

	// Valid token for a subject that was never registered.
	ghost, err := codec.Encode("ghost", domain.RoleUser, time.Hour)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := svc.Refresh(context.Background(), ghost); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Validate(t *testing.T) {
	svc, codec := newTestAuthService(newStubUserRepo())

	reg, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "grace", Email: "grace@example.com", Password: "pass", Role: domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	res := svc.Validate(context.Background(), reg.AccessToken)
	if !res.Valid || res.Username != "grace" || res.Role != domain.RoleAdmin {
		t.Fatalf("unexpected validation result: %+v", res)
	}

	if res := svc.Validate(context.Background(), "not-a-token"); res.Valid || res.Message == "" {
		t.Fatalf("expected invalid result with message, got %+v", res)
	}

	expired, err := codec.Encode("grace", domain.RoleAdmin, -time.Minute)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if res := svc.Validate(context.Background(), expired); res.Valid {
		t.Fatalf("expected invalid result for expired token, got %+v", res)
	}
}
