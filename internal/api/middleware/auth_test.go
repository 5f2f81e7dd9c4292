package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/quizmesh/quiz-platform/internal/auth/token"
	"github.com/quizmesh/quiz-platform/internal/core/domain"
)

func runVerifier(t *testing.T, codec *token.Codec, authHeader string) (AuthResult, bool, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/question/allQuestions", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	handlerRan := false
	err := Verifier(codec)(func(c echo.Context) error {
		handlerRan = true
		return nil
	})(c)
	return GetAuthResult(c), handlerRan, err
}

func TestVerifier_ValidToken(t *testing.T) {
	codec := token.NewCodec("verifier-secret")
	tkn, err := codec.Encode("alice", domain.RoleAdmin, time.Minute)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	res, ran, err := runVerifier(t, codec, "Bearer "+tkn)
	if err != nil {
		t.Fatalf("verifier: %v", err)
	}
	if !ran {
		t.Fatalf("handler should run after successful verification")
	}
	if !res.Authenticated || res.Principal.Username != "alice" || res.Principal.Role != domain.RoleAdmin {
		t.Fatalf("unexpected auth result: %+v", res)
	}
}

func TestVerifier_NoHeaderPassesThrough(t *testing.T) {
	codec := token.NewCodec("verifier-secret")

	for _, header := range []string{"", "Basic dXNlcjpwYXNz", "Bearer"} {
		res, ran, err := runVerifier(t, codec, header)
		if err != nil {
			t.Fatalf("header %q: verifier: %v", header, err)
		}
		if !ran {
			t.Fatalf("header %q: handler should run unauthenticated", header)
		}
		if res.Authenticated {
			t.Fatalf("header %q: request must not be authenticated", header)
		}
	}
}

func TestVerifier_RejectsBadTokens(t *testing.T) {
	codec := token.NewCodec("verifier-secret")
	other := token.NewCodec("different-secret")

	forged, err := other.Encode("mallory", domain.RoleAdmin, time.Minute)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	expired, err := codec.Encode("alice", domain.RoleUser, -time.Minute)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	cases := []struct {
		name    string
		header  string
		message string
	}{
		{"forged signature", "Bearer " + forged, "invalid token signature"},
		{"expired", "Bearer " + expired, "token expired"},
		{"garbage", "Bearer not.a.token", "authentication failed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, ran, err := runVerifier(t, codec, tc.header)
			if ran {
				t.Fatalf("handler must not run on rejected token")
			}
			if res.Authenticated {
				t.Fatalf("rejected token must not produce a principal")
			}
			httpErr, ok := err.(*echo.HTTPError)
			if !ok || httpErr.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %v", err)
			}
			if httpErr.Message != tc.message {
				t.Fatalf("expected message %q, got %v", tc.message, httpErr.Message)
			}
		})
	}
}

func TestVerifier_KeepsExistingResult(t *testing.T) {
	codec := token.NewCodec("verifier-secret")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	c := e.NewContext(req, httptest.NewRecorder())

	seeded := AuthResult{Authenticated: true, Principal: domain.Principal{Username: "bob", Role: domain.RoleUser}}
	c.Set("auth_result", seeded)

	err := Verifier(codec)(func(c echo.Context) error { return nil })(c)
	if err != nil {
		t.Fatalf("verifier: %v", err)
	}
	if got := GetAuthResult(c); got != seeded {
		t.Fatalf("existing result was replaced: %+v", got)
	}
}
