package handler

import (
	"context"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/boy52hz/OASIP-US-3-V2/internal/booking"
	"github.com/boy52hz/OASIP-US-3-V2/internal/filestore"
	"github.com/boy52hz/OASIP-US-3-V2/internal/middleware"
	"github.com/boy52hz/OASIP-US-3-V2/internal/model"
)

// EventHandler bundles dependencies for the event endpoints.
type EventHandler struct {
	Svc   *booking.Service
	Files *filestore.Store
}

func NewEventHandler(svc *booking.Service, files *filestore.Store) *EventHandler {
	return &EventHandler{Svc: svc, Files: files}
}

// ----- DTOs -----

type eventResp struct {
	ID              int     `json:"id"`
	EventCategoryID int     `json:"eventCategoryId"`
	BookingName     string  `json:"bookingName"`
	BookingEmail    string  `json:"bookingEmail"`
	EventStartTime  string  `json:"eventStartTime"`
	EventEndTime    string  `json:"eventEndTime"`
	EventDuration   int     `json:"eventDuration"`
	EventNotes      *string `json:"eventNotes"`
	BucketUUID      *string `json:"bucketUuid"`
}

func toEventResp(e *model.Event) eventResp {
	return eventResp{
		ID:              e.ID,
		EventCategoryID: e.CategoryID,
		BookingName:     e.BookingName,
		BookingEmail:    e.BookingEmail,
		EventStartTime:  e.StartTime.UTC().Format(time.RFC3339),
		EventEndTime:    e.EndTime().UTC().Format(time.RFC3339),
		EventDuration:   e.DurationMin,
		EventNotes:      e.Notes,
		BucketUUID:      e.BucketUUID,
	}
}

// List returns the events visible to the caller, optionally narrowed by
// category and time window. Query params: categoryId, type
// (upcoming|past|day), startAt (RFC3339, required for day).
func (h *EventHandler) List(c echo.Context) error {
	p := middleware.Principal(c)

	opts := booking.ListOptions{WindowKind: c.QueryParam("type")}
	if raw := c.QueryParam("categoryId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "categoryId must be an integer"})
		}
		opts.CategoryID = &id
	}
	if raw := c.QueryParam("startAt"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "startAt must be RFC3339"})
		}
		opts.StartAt = &t
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	events, err := h.Svc.List(ctx, p, opts)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]eventResp, 0, len(events))
	for i := range events {
		out = append(out, toEventResp(&events[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// GetByID returns one event. Admins see any; everyone else only a booking
// made under their own email.
func (h *EventHandler) GetByID(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id must be an integer"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e, err := h.Svc.GetAuthorized(ctx, middleware.Principal(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toEventResp(e))
}

// Create books a new event from a multipart form. Fields: eventCategoryId,
// bookingName, bookingEmail, eventStartTime (RFC3339), eventNotes
// (optional) plus an optional `file` part.
func (h *EventHandler) Create(c echo.Context) error {
	categoryID, err := strconv.Atoi(strings.TrimSpace(c.FormValue("eventCategoryId")))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "eventCategoryId must be an integer"})
	}
	name := strings.TrimSpace(c.FormValue("bookingName"))
	email := strings.TrimSpace(c.FormValue("bookingEmail"))
	if name == "" || email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bookingName and bookingEmail are required"})
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bookingEmail is not a valid email address"})
	}
	start, err := time.Parse(time.RFC3339, strings.TrimSpace(c.FormValue("eventStartTime")))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "eventStartTime must be RFC3339"})
	}
	if start.Before(time.Now()) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "eventStartTime must not be in the past"})
	}

	in := booking.CreateEventInput{
		CategoryID:   categoryID,
		BookingName:  name,
		BookingEmail: email,
		StartTime:    start,
	}
	if notes := c.FormValue("eventNotes"); notes != "" {
		in.Notes = &notes
	}

	if fh, err := c.FormFile("file"); err == nil && fh.Filename != "" {
		src, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot read uploaded file"})
		}
		defer src.Close()
		in.Attachment = &booking.AttachmentPayload{Filename: fh.Filename, Content: src}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	res, err := h.Svc.Create(ctx, middleware.Principal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"event":            toEventResp(res.Event),
		"notificationSent": res.NotifyErr == nil,
	})
}

// Update edits an event from a multipart form. Only admins and the
// booking's owner may edit. Fields eventStartTime and
// eventNotes are optional; a `file` part replaces the attachment, and a
// file part with an empty filename clears it. A form that changes nothing
// is rejected.
func (h *EventHandler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id must be an integer"})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "multipart form required"})
	}

	var in booking.UpdateEventInput
	if vals, ok := form.Value["eventStartTime"]; ok && len(vals) > 0 {
		start, err := time.Parse(time.RFC3339, strings.TrimSpace(vals[0]))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "eventStartTime must be RFC3339"})
		}
		if start.Before(time.Now()) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "eventStartTime must not be in the past"})
		}
		in.StartTime = &start
	}
	if vals, ok := form.Value["eventNotes"]; ok && len(vals) > 0 {
		notes := vals[0]
		in.Notes = &notes
	}
	if files, ok := form.File["file"]; ok && len(files) > 0 {
		fh := files[0]
		if fh.Filename == "" {
			in.Attachment = &booking.AttachmentUpdate{Clear: true}
		} else {
			src, err := fh.Open()
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot read uploaded file"})
			}
			defer src.Close()
			in.Attachment = &booking.AttachmentUpdate{Filename: fh.Filename, Content: src}
		}
	}
	if in.StartTime == nil && in.Notes == nil && in.Attachment == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one of eventStartTime, eventNotes or file is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	e, err := h.Svc.Update(ctx, middleware.Principal(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toEventResp(e))
}

// Delete removes an event. Only admins and the booking's owner may
// delete; deleting an unknown id still answers 204.
func (h *EventHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id must be an integer"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	if err := h.Svc.Delete(ctx, middleware.Principal(c), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetFile streams a stored attachment with its original filename. With
// ?noContent=true only the filename is returned.
func (h *EventHandler) GetFile(c echo.Context) error {
	ref := c.Param("uuid")
	path, filename, err := h.Files.Fetch(ref)
	if err != nil {
		if err == filestore.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "file not found"})
		}
		return writeError(c, err)
	}
	if strings.EqualFold(c.QueryParam("noContent"), "true") {
		return c.JSON(http.StatusOK, echo.Map{"fileName": filename})
	}
	return c.Attachment(path, filename)
}

// AllocatedTimeSlots returns the booked intervals of a category on the
// calendar day of startAt. Query params: categoryId, startAt (both
// required), excludeEventId (optional).
func (h *EventHandler) AllocatedTimeSlots(c echo.Context) error {
	categoryID, err := strconv.Atoi(c.QueryParam("categoryId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "categoryId must be an integer"})
	}
	startAt, err := time.Parse(time.RFC3339, c.QueryParam("startAt"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "startAt must be RFC3339"})
	}
	var excludeID *int
	if raw := c.QueryParam("excludeEventId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "excludeEventId must be an integer"})
		}
		excludeID = &id
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	slots, err := h.Svc.AllocatedTimeSlots(ctx, categoryID, startAt, excludeID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, slots)
}
