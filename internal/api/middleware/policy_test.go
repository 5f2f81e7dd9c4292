package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/quizmesh/quiz-platform/internal/core/domain"
)

func asUser(role string) AuthResult {
	return AuthResult{Authenticated: true, Principal: domain.Principal{Username: "u", Role: role}}
}

func TestPolicy_Evaluate(t *testing.T) {
	policy := NewPolicy(
		Rule{Method: http.MethodGet, Pattern: "/health", Public: true},
		Rule{Method: http.MethodGet, Pattern: "/question/generate", Public: true},
		Rule{Method: http.MethodPost, Pattern: "/question/addQuestion", Roles: []string{domain.RoleAdmin}},
		Rule{Method: http.MethodDelete, Pattern: "/question/*", Roles: []string{domain.RoleAdmin}},
		Rule{Method: http.MethodGet, Pattern: "/question/*", Roles: []string{domain.RoleUser, domain.RoleAdmin}},
	)

	cases := []struct {
		name   string
		method string
		path   string
		auth   AuthResult
		want   Decision
	}{
		{"public no principal", http.MethodGet, "/health", AuthResult{}, Allowed},
		{"public with principal", http.MethodGet, "/question/generate", asUser(domain.RoleUser), Allowed},
		{"admin write as admin", http.MethodPost, "/question/addQuestion", asUser(domain.RoleAdmin), Allowed},
		{"admin write as user", http.MethodPost, "/question/addQuestion", asUser(domain.RoleUser), Forbidden},
		{"admin write unauthenticated", http.MethodPost, "/question/addQuestion", AuthResult{}, NeedAuth},
		{"wildcard delete as admin", http.MethodDelete, "/question/deleteQuestion/abc", asUser(domain.RoleAdmin), Allowed},
		{"wildcard delete as user", http.MethodDelete, "/question/deleteQuestion/abc", asUser(domain.RoleUser), Forbidden},
		{"read as user", http.MethodGet, "/question/allQuestions", asUser(domain.RoleUser), Allowed},
		{"read unauthenticated", http.MethodGet, "/question/allQuestions", AuthResult{}, NeedAuth},
		{"unmatched route with principal", http.MethodGet, "/quiz/all", asUser(domain.RoleUser), Allowed},
		{"unmatched route unauthenticated", http.MethodGet, "/quiz/all", AuthResult{}, NeedAuth},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := policy.Evaluate(tc.method, tc.path, tc.auth); got != tc.want {
				t.Fatalf("Evaluate(%s %s) = %v, want %v", tc.method, tc.path, got, tc.want)
			}
		})
	}
}

func TestPolicy_FirstMatchWins(t *testing.T) {
	policy := NewPolicy(
		Rule{Method: http.MethodGet, Pattern: "/question/generate", Public: true},
		Rule{Method: "*", Pattern: "/question/*", Roles: []string{domain.RoleAdmin}},
	)

	if got := policy.Evaluate(http.MethodGet, "/question/generate", AuthResult{}); got != Allowed {
		t.Fatalf("public rule listed first must win, got %v", got)
	}
	if got := policy.Evaluate(http.MethodGet, "/question/allQuestions", asUser(domain.RoleUser)); got != Forbidden {
		t.Fatalf("expected later admin rule to apply, got %v", got)
	}
}

func TestPolicy_EmptyRolesMeansAnyAuthenticated(t *testing.T) {
	policy := NewPolicy(Rule{Method: http.MethodPost, Pattern: "/quiz/create"})

	if got := policy.Evaluate(http.MethodPost, "/quiz/create", asUser(domain.RoleUser)); got != Allowed {
		t.Fatalf("any authenticated role should pass, got %v", got)
	}
	if got := policy.Evaluate(http.MethodPost, "/quiz/create", AuthResult{}); got != NeedAuth {
		t.Fatalf("unauthenticated should need auth, got %v", got)
	}
}

func TestMatchPath(t *testing.T) {
	cases := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"/question/allQuestions", "/question/allQuestions", true},
		{"/question/allQuestions", "/question/addQuestion", false},
		{"/quiz/get/*", "/quiz/get/abc123", true},
		{"/quiz/get/*", "/quiz/get", false},
		{"/question/*", "/question/deleteQuestion/abc", true},
		{"/question/*", "/question", false},
		{"/*/health", "/internal/health", true},
		{"/*/health", "/internal/api/health", false},
	}
	for _, tc := range cases {
		if got := matchPath(tc.pattern, tc.path); got != tc.want {
			t.Fatalf("matchPath(%q, %q) = %v, want %v", tc.pattern, tc.path, got, tc.want)
		}
	}
}

func TestPolicy_Middleware(t *testing.T) {
	policy := NewPolicy(Rule{Method: http.MethodPost, Pattern: "/question/addQuestion", Roles: []string{domain.RoleAdmin}})

	run := func(auth AuthResult) (bool, error) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/question/addQuestion", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.Set("auth_result", auth)

		handlerRan := false
		err := policy.Middleware()(func(c echo.Context) error {
			handlerRan = true
			return nil
		})(c)
		return handlerRan, err
	}

	ran, err := run(asUser(domain.RoleAdmin))
	if !ran || err != nil {
		t.Fatalf("admin should reach handler, ran=%v err=%v", ran, err)
	}

	ran, err = run(asUser(domain.RoleUser))
	if ran {
		t.Fatalf("forbidden request must not reach handler")
	}
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	ran, err = run(AuthResult{})
	if ran {
		t.Fatalf("unauthenticated request must not reach handler")
	}
	if httpErr, ok := err.(*echo.HTTPError); !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
