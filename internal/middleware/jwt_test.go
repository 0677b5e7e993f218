package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/boy52hz/OASIP-US-3-V2/internal/booking"
	"github.com/boy52hz/OASIP-US-3-V2/internal/utils"
)

const testSecret = "test-secret"

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, booking.Principal) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen booking.Principal
	handler := mw(func(c echo.Context) error {
		seen = Principal(c)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec, seen
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, "lecturer@kmutt.ac.th", "LECTURER", 5)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	rec, p := doRequest(t, JWTAuth(testSecret), "Bearer "+tok.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if p.Email != "lecturer@kmutt.ac.th" || p.Role != booking.RoleLecturer {
		t.Errorf("unexpected principal: %+v", p)
	}
}

func TestJWTAuthPlainErrorMessage(t *testing.T) {
	rec, _ := doRequest(t, JWTAuth(testSecret), "Basic abc123")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"malformed authorization header"`) {
		t.Errorf("body = %s, want the plain error message", body)
	}
	if strings.Contains(body, "code=401") {
		t.Errorf("body = %s, must not leak the HTTPError wrapper", body)
	}
}

func TestJWTAuthRejectsMissingToken(t *testing.T) {
	rec, _ := doRequest(t, JWTAuth(testSecret), "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("other-secret", "a@b.c", "STUDENT", 5)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	rec, _ := doRequest(t, JWTAuth(testSecret), "Bearer "+tok.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestOptionalJWTAuthAdmitsGuests(t *testing.T) {
	rec, p := doRequest(t, OptionalJWTAuth(testSecret), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !p.IsGuest() {
		t.Errorf("expected guest principal, got %+v", p)
	}
}

func TestOptionalJWTAuthStillRejectsBadToken(t *testing.T) {
	rec, _ := doRequest(t, OptionalJWTAuth(testSecret), "Bearer not-a-jwt")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestForbidRole(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(principalKey, booking.Principal{Role: booking.RoleLecturer, Email: "l@kmutt.ac.th"})

	handler := ForbidRole(booking.RoleLecturer)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}
