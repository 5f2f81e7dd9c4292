package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/quizmesh/quiz-platform/internal/core/domain"
)

// Decision is the outcome of a policy evaluation.
type Decision int

const (
	// Allowed lets the handler run.
	Allowed Decision = iota
	// NeedAuth rejects with an authentication failure: the route requires a
	// principal and none is attached.
	NeedAuth
	// Forbidden rejects with an authorization failure: a principal exists
	// but its role is not permitted.
	Forbidden
)

// Rule maps (HTTP verb, path pattern) to an allowed-role set. Method "*"
// matches any verb. A pattern segment "*" matches one path segment; a
// trailing "*" matches the rest of the path. Public rules bypass role checks
// entirely, even with no principal.
type Rule struct {
	Method  string
	Pattern string
	Public  bool
	// Roles the principal must hold one of. Empty means any authenticated
	// principal.
	Roles []string
}

// Policy is a static, declarative authorization table evaluated after token
// verification. Rules are checked in declaration order; the first match
// wins. A route matched by no rule defaults to authenticated-any-role.
type Policy struct {
	rules []Rule
}

func NewPolicy(rules ...Rule) *Policy {
	return &Policy{rules: rules}
}

// Evaluate decides the outcome for a single request. It is a pure function
// of the verb, path, and verification result, so the authorization surface
// is testable without invoking any handler.
func (p *Policy) Evaluate(method, path string, auth AuthResult) Decision {
	for _, r := range p.rules {
		if !matchMethod(r.Method, method) || !matchPath(r.Pattern, path) {
			continue
		}
		if r.Public {
			return Allowed
		}
		if !auth.Authenticated {
			return NeedAuth
		}
		if len(r.Roles) == 0 {
			return Allowed
		}
		for _, role := range r.Roles {
			if auth.Principal.Role == role {
				return Allowed
			}
		}
		return Forbidden
	}

	// Default rule: principal must exist, role unconstrained.
	if !auth.Authenticated {
		return NeedAuth
	}
	return Allowed
}

// Middleware enforces the policy. Authentication and authorization failures
// are mutually exclusive: the first failure wins and the handler never runs.
func (p *Policy) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch p.Evaluate(c.Request().Method, c.Request().URL.Path, GetAuthResult(c)) {
			case Allowed:
				return next(c)
			case NeedAuth:
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			default:
				// Rendered by the central error handler as 403.
				return domain.ErrForbidden
			}
		}
	}
}

func matchMethod(pattern, method string) bool {
	return pattern == "*" || pattern == "" || strings.EqualFold(pattern, method)
}

func matchPath(pattern, path string) bool {
	pSegs := strings.Split(strings.Trim(pattern, "/"), "/")
	segs := strings.Split(strings.Trim(path, "/"), "/")

	for i, ps := range pSegs {
		// A trailing "*" swallows the rest of the path, one segment minimum.
		if ps == "*" && i == len(pSegs)-1 {
			return len(segs) > i
		}
		if i >= len(segs) {
			return false
		}
		if ps != "*" && ps != segs[i] {
			return false
		}
	}
	return len(segs) == len(pSegs)
}
