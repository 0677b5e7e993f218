package middleware // middleware provides reusable HTTP middleware functions

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/boy52hz/OASIP-US-3-V2/internal/booking"
)

// context key under which the request principal is stored.
const principalKey = "principal"

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and stores the derived booking.Principal in the request context. The
// token's subject carries the user's email and the role claim one of
// ADMIN, LECTURER or STUDENT. Requests without a valid token are
// rejected with 401.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, err := principalFromHeader(c, secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
			}
			if p.IsGuest() {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			c.Set(principalKey, p)
			return next(c)
		}
	}
}

// OptionalJWTAuth is like JWTAuth but lets unauthenticated requests
// through as guests. A present-but-invalid token is still rejected, so a
// client with an expired session gets a 401 instead of silently booking
// as a guest.
func OptionalJWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, err := principalFromHeader(c, secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
			}
			c.Set(principalKey, p)
			return next(c)
		}
	}
}

// Principal returns the principal stored by JWTAuth or OptionalJWTAuth,
// defaulting to guest when neither ran.
func Principal(c echo.Context) booking.Principal {
	if p, ok := c.Get(principalKey).(booking.Principal); ok {
		return p
	}
	return booking.Guest()
}

// principalFromHeader parses the Authorization header. A missing header
// yields the guest principal; a malformed or invalid token yields a
// plain error whose message is written to the 401 body as-is.
func principalFromHeader(c echo.Context, secret string) (booking.Principal, error) {
	auth := c.Request().Header.Get("Authorization")
	if auth == "" {
		return booking.Guest(), nil
	}
	if !strings.HasPrefix(auth, "Bearer ") {
		return booking.Principal{}, errors.New("malformed authorization header")
	}
	raw := strings.TrimPrefix(auth, "Bearer ")

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return booking.Principal{}, errors.New("invalid token")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return booking.Principal{}, errors.New("invalid claims")
	}
	email, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if email == "" {
		return booking.Principal{}, errors.New("invalid claims")
	}
	return booking.Principal{Role: booking.RoleFromString(role), Email: email}, nil
}
