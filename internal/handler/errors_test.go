package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/boy52hz/OASIP-US-3-V2/internal/booking"
	"github.com/boy52hz/OASIP-US-3-V2/internal/repository"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("event with id 9: %w", booking.ErrNotFound), http.StatusNotFound},
		{"overlap", booking.ErrOverlap, http.StatusBadRequest},
		{"invalid argument", fmt.Errorf("%w: bad window", booking.ErrInvalidArgument), http.StatusBadRequest},
		{"forbidden", booking.ErrForbidden, http.StatusForbidden},
		{"name taken", repository.ErrNameTaken, http.StatusBadRequest},
		{"dependency", &booking.DependencyError{Op: "store attachment", Err: errors.New("disk full")}, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := writeError(c, tc.err); err != nil {
				t.Fatalf("writeError returned error: %v", err)
			}
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}
