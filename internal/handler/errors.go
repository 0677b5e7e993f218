package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/boy52hz/OASIP-US-3-V2/internal/booking"
	"github.com/boy52hz/OASIP-US-3-V2/internal/repository"
)

// writeError maps the core error taxonomy onto HTTP status codes. Every
// handler funnels service and repository errors through here so the
// mapping stays in one place.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrOverlap):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "requested time slot is unavailable"})
	case errors.Is(err, booking.ErrInvalidArgument):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrNameTaken):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is already taken"})
	}

	var dep *booking.DependencyError
	if errors.As(err, &dep) {
		log.Printf("[handler] dependency failure: %v", dep)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "a backing service failed, try again later"})
	}

	log.Printf("[handler] internal error: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
