package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

// The validation paths below reject the request before any collaborator
// is touched, so a zero-value handler is enough.

func multipartRequest(t *testing.T, fields map[string]string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/events", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req, httptest.NewRecorder()
}

func TestCreateRejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name   string
		fields map[string]string
	}{
		{"non-numeric category", map[string]string{
			"eventCategoryId": "abc", "bookingName": "A", "bookingEmail": "a@b.c",
			"eventStartTime": "2099-01-01T10:00:00Z",
		}},
		{"missing booking name", map[string]string{
			"eventCategoryId": "1", "bookingEmail": "a@b.c",
			"eventStartTime": "2099-01-01T10:00:00Z",
		}},
		{"invalid email", map[string]string{
			"eventCategoryId": "1", "bookingName": "A", "bookingEmail": "not-an-email",
			"eventStartTime": "2099-01-01T10:00:00Z",
		}},
		{"bad start time", map[string]string{
			"eventCategoryId": "1", "bookingName": "A", "bookingEmail": "a@b.c",
			"eventStartTime": "tomorrow",
		}},
		{"start time in the past", map[string]string{
			"eventCategoryId": "1", "bookingName": "A", "bookingEmail": "a@b.c",
			"eventStartTime": "2001-01-01T10:00:00Z",
		}},
	}
	h := &EventHandler{}
	e := echo.New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, rec := multipartRequest(t, tc.fields)
			if err := h.Create(e.NewContext(req, rec)); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestUpdateRequiresAtLeastOneField(t *testing.T) {
	h := &EventHandler{}
	e := echo.New()

	req, rec := multipartRequest(t, map[string]string{})
	req.Method = http.MethodPatch
	c := e.NewContext(req, rec)
	c.SetPath("/api/events/:id")
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
