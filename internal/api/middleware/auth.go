package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/quizmesh/quiz-platform/internal/auth/token"
	"github.com/quizmesh/quiz-platform/internal/core/domain"
	"github.com/quizmesh/quiz-platform/internal/metrics"
)

// authResultKey is the context key under which the verifier stores its
// AuthResult for the remainder of request handling.
const authResultKey = "auth_result"

// AuthResult is the explicit outcome of token verification carried through
// the request pipeline. A rejected token never produces an AuthResult; the
// verifier short-circuits the request instead.
type AuthResult struct {
	Authenticated bool
	Principal     domain.Principal
}

// GetAuthResult returns the verification outcome attached to the request.
// Absent means the verifier did not run or saw no bearer token.
func GetAuthResult(c echo.Context) AuthResult {
	res, _ := c.Get(authResultKey).(AuthResult)
	return res
}

// Verifier extracts and validates a bearer token on every inbound request.
// Requests without a bearer-style authorization header pass through
// unauthenticated; enforcement is the policy's job. Invalid tokens
// short-circuit with 401 and never reach a handler.
func Verifier(codec *token.Codec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A principal attached earlier in the chain is left untouched.
			if _, ok := c.Get(authResultKey).(AuthResult); ok {
				return next(c)
			}

			authHeader := c.Request().Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if authHeader == "" || len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				c.Set(authResultKey, AuthResult{})
				return next(c)
			}

			claims, err := codec.Decode(parts[1])
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrTokenExpired):
					metrics.AuthFailuresTotal.WithLabelValues("expired").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
				case errors.Is(err, domain.ErrTokenSignatureInvalid):
					metrics.AuthFailuresTotal.WithLabelValues("signature").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token signature")
				default:
					metrics.AuthFailuresTotal.WithLabelValues("malformed").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "authentication failed")
				}
			}

			role := claims.Role
			if role == "" {
				role = domain.RoleUser
			}

			c.Set(authResultKey, AuthResult{
				Authenticated: true,
				Principal:     domain.Principal{Username: claims.Subject, Role: role},
			})
			return next(c)
		}
	}
}
