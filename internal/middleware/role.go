package middleware

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/boy52hz/OASIP-US-3-V2/internal/booking"
)

// RequireRole returns a middleware that only admits principals holding
// one of the given roles. It assumes JWTAuth ran earlier in the chain.
func RequireRole(roles ...booking.Role) echo.MiddlewareFunc {
    allowed := make(map[booking.Role]bool, len(roles))
    for _, r := range roles {
        allowed[r] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if !allowed[Principal(c).Role] {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
            }
            return next(c)
        }
    }
}

// ForbidRole returns a middleware that rejects principals holding one of
// the given roles. Lecturers manage categories but never bookings, so the
// event mutation routes forbid the lecturer role while still admitting
// guests.
func ForbidRole(roles ...booking.Role) echo.MiddlewareFunc {
    denied := make(map[booking.Role]bool, len(roles))
    for _, r := range roles {
        denied[r] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if denied[Principal(c).Role] {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
            }
            return next(c)
        }
    }
}
