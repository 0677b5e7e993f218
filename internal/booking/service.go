package booking

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/boy52hz/OASIP-US-3-V2/internal/model"
)

// EventFilter narrows a listing query. A nil CategoryIDs means every
// category; an empty non-nil slice must yield no rows. UserID, when set,
// restricts results to bookings owned by that user.
type EventFilter struct {
	CategoryIDs []int
	UserID      *int
	Time        TimeQuery
}

// EventStore is the persistence contract of the lifecycle service.
// Implementations return ErrNotFound (possibly wrapped) for missing rows.
// WithCategoryLock runs fn against a store view on which all mutations in
// the same category are serialized, so the conflict scan and the
// subsequent write behave as one atomic unit.
type EventStore interface {
	EventFinder
	FindByID(ctx context.Context, id int) (*model.Event, error)
	Insert(ctx context.Context, e *model.Event) error
	Update(ctx context.Context, e *model.Event) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, f EventFilter) ([]model.Event, error)
	WithCategoryLock(ctx context.Context, categoryID int, fn func(EventStore) error) error
}

// CategoryStore is the category lookup the lifecycle service needs.
type CategoryStore interface {
	FindByID(ctx context.Context, id int) (*model.EventCategory, error)
}

// AttachmentStore is the external file collaborator. References are
// opaque strings owned by the store.
type AttachmentStore interface {
	Store(ctx context.Context, filename string, content io.Reader) (string, error)
	Replace(ctx context.Context, ref, filename string, content io.Reader) error
	Delete(ctx context.Context, ref string) error
}

// Notifier delivers a booking confirmation. Failures never undo a
// committed booking; they are surfaced on CreateResult.NotifyErr.
type Notifier interface {
	Notify(ctx context.Context, e model.Event, categoryName string) error
}

// Service is the booking lifecycle manager. It validates inputs, runs the
// conflict detector under the category lock, coordinates attachment and
// notification side effects and persists the result.
type Service struct {
	events     EventStore
	categories CategoryStore
	users      UserDirectory
	scopes     *Resolver
	files      AttachmentStore
	notifier   Notifier
	now        func() time.Time
}

// NewService wires the lifecycle manager. The notifier may be nil when no
// broker is configured; now defaults to time.Now.
func NewService(events EventStore, categories CategoryStore, users UserDirectory, owners OwnershipDirectory, files AttachmentStore, notifier Notifier, now func() time.Time) *Service {
	if events == nil || categories == nil || users == nil || owners == nil || files == nil {
		panic("nil dependency passed to booking.NewService")
	}
	if now == nil {
		now = time.Now
	}
	return &Service{
		events:     events,
		categories: categories,
		users:      users,
		scopes:     NewResolver(users, owners),
		files:      files,
		notifier:   notifier,
		now:        now,
	}
}

// AttachmentPayload is an uploaded file to be stored with a booking.
type AttachmentPayload struct {
	Filename string
	Content  io.Reader
}

// CreateEventInput carries the fields of a new booking request.
type CreateEventInput struct {
	CategoryID   int
	BookingName  string
	BookingEmail string
	StartTime    time.Time
	Notes        *string
	Attachment   *AttachmentPayload
}

// CreateResult is the outcome of a successful create. NotifyErr carries a
// notification delivery failure for the transport layer to surface; the
// booking itself is committed either way.
type CreateResult struct {
	Event     *model.Event
	NotifyErr error
}

// Create books a new event. Authenticated non-admin principals must book
// under their own email and are attached as the owning user; guests and
// admins may book for anyone. The duration is copied from the category at
// this moment and never recomputed. The conflict check, attachment upload
// and insert run under the category lock so concurrent creates in the
// same category cannot both commit overlapping intervals.
func (s *Service) Create(ctx context.Context, p Principal, in CreateEventInput) (CreateResult, error) {
	category, err := s.categories.FindByID(ctx, in.CategoryID)
	if err != nil {
		return CreateResult{}, err
	}

	e := &model.Event{
		CategoryID:   category.ID,
		BookingName:  strings.TrimSpace(in.BookingName),
		BookingEmail: strings.TrimSpace(in.BookingEmail),
		StartTime:    in.StartTime,
		DurationMin:  category.DurationMin,
	}
	if in.Notes != nil {
		trimmed := strings.TrimSpace(*in.Notes)
		e.Notes = &trimmed
	}

	if !p.IsGuest() && !p.IsAdmin() {
		if e.BookingEmail != p.Email {
			return CreateResult{}, fmt.Errorf("%w: booking email does not match the authenticated user", ErrInvalidArgument)
		}
		user, err := s.users.FindByEmail(ctx, e.BookingEmail)
		if err != nil {
			return CreateResult{}, err
		}
		userID := user.ID
		e.UserID = &userID
	}

	var uploadedRef string
	err = s.events.WithCategoryLock(ctx, category.ID, func(events EventStore) error {
		conflict, err := NewDetector(events).HasConflict(ctx, category.ID, e.StartTime, e.DurationMin, nil)
		if err != nil {
			return err
		}
		if conflict {
			return ErrOverlap
		}

		if in.Attachment != nil {
			ref, err := s.files.Store(ctx, in.Attachment.Filename, in.Attachment.Content)
			if err != nil {
				return dependencyErr("store attachment", err)
			}
			uploadedRef = ref
			e.BucketUUID = &ref
		}
		return events.Insert(ctx, e)
	})
	if err != nil {
		// Covers both an insert failure and a commit failure: either way
		// the event never existed, so the uploaded bucket must not
		// survive it.
		if uploadedRef != "" {
			_ = s.files.Delete(ctx, uploadedRef)
		}
		return CreateResult{}, err
	}

	res := CreateResult{Event: e}
	if s.notifier != nil {
		if nErr := s.notifier.Notify(ctx, *e, category.Name); nErr != nil {
			res.NotifyErr = dependencyErr("send notification", nErr)
		}
	}
	return res, nil
}

// AttachmentUpdate instructs Update what to do with an event's file:
// Clear removes any stored attachment, otherwise the payload replaces the
// current one (or becomes the first one).
type AttachmentUpdate struct {
	Clear    bool
	Filename string
	Content  io.Reader
}

// UpdateEventInput carries the optional fields of an edit. A nil field is
// left unchanged.
type UpdateEventInput struct {
	Notes      *string
	StartTime  *time.Time
	Attachment *AttachmentUpdate
}

// Update edits an existing booking. Only admins and the booking's owner
// may edit it. A new start time is checked against every other event in
// the category, excluding the event itself, using the event's original
// duration. Attachment replacement happens in place so the event record
// never references a bucket that does not exist.
func (s *Service) Update(ctx context.Context, p Principal, id int, in UpdateEventInput) (*model.Event, error) {
	current, err := s.GetAuthorized(ctx, p, id)
	if err != nil {
		return nil, err
	}

	var updated *model.Event
	err = s.events.WithCategoryLock(ctx, current.CategoryID, func(events EventStore) error {
		e, err := events.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if in.Notes != nil {
			trimmed := strings.TrimSpace(*in.Notes)
			e.Notes = &trimmed
		}
		if in.StartTime != nil {
			conflict, err := NewDetector(events).HasConflict(ctx, e.CategoryID, *in.StartTime, e.DurationMin, &e.ID)
			if err != nil {
				return err
			}
			if conflict {
				return ErrOverlap
			}
			e.StartTime = *in.StartTime
		}
		if in.Attachment != nil {
			switch {
			case in.Attachment.Clear:
				if e.BucketUUID != nil {
					if err := s.files.Delete(ctx, *e.BucketUUID); err != nil {
						return dependencyErr("delete attachment", err)
					}
					e.BucketUUID = nil
				}
			case e.BucketUUID != nil:
				if err := s.files.Replace(ctx, *e.BucketUUID, in.Attachment.Filename, in.Attachment.Content); err != nil {
					return dependencyErr("replace attachment", err)
				}
			default:
				ref, err := s.files.Store(ctx, in.Attachment.Filename, in.Attachment.Content)
				if err != nil {
					return dependencyErr("store attachment", err)
				}
				e.BucketUUID = &ref
			}
		}
		if err := events.Update(ctx, e); err != nil {
			return err
		}
		updated = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a booking and releases its attachment. Only admins and
// the booking's owner may delete it. Deleting an id that does not exist
// is a no-op, not an error.
func (s *Service) Delete(ctx context.Context, p Principal, id int) error {
	e, err := s.GetAuthorized(ctx, p, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	if e.BucketUUID != nil {
		if err := s.files.Delete(ctx, *e.BucketUUID); err != nil {
			return dependencyErr("delete attachment", err)
		}
	}
	return s.events.Delete(ctx, id)
}

// GetAuthorized loads a booking by id and checks that the principal may
// read it: admins always, everyone else only when the booking was made
// under their own email.
func (s *Service) GetAuthorized(ctx context.Context, p Principal, id int) (*model.Event, error) {
	e, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.IsAdmin() {
		return e, nil
	}
	if !p.IsGuest() && e.BookingEmail == p.Email {
		return e, nil
	}
	return nil, fmt.Errorf("%w: event belongs to another booking identity", ErrForbidden)
}

// ListOptions are the caller-supplied filters of a listing query.
type ListOptions struct {
	CategoryID *int
	WindowKind string
	StartAt    *time.Time
}

// List returns the events the principal is authorized to see within the
// requested window. The scope resolver narrows the category and user
// filters first; an authorized scope that covers no category short-
// circuits to an empty result without touching the store.
func (s *Service) List(ctx context.Context, p Principal, opts ListOptions) ([]model.Event, error) {
	if p.IsGuest() {
		return nil, fmt.Errorf("%w: guests cannot list events", ErrForbidden)
	}

	var requested []int
	if opts.CategoryID != nil {
		requested = []int{*opts.CategoryID}
	}
	scope, err := s.scopes.Resolve(ctx, p, requested)
	if err != nil {
		return nil, err
	}
	timeQ, err := ClassifyWindow(opts.WindowKind, s.now(), opts.StartAt)
	if err != nil {
		return nil, err
	}
	if scope.CategoryIDs != nil && len(scope.CategoryIDs) == 0 {
		return []model.Event{}, nil
	}
	return s.events.List(ctx, EventFilter{CategoryIDs: scope.CategoryIDs, UserID: scope.UserID, Time: timeQ})
}

// TimeSlot is a booked interval exposed to clients picking a free slot.
type TimeSlot struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// AllocatedTimeSlots returns the booked intervals of a category on the
// calendar day of startAt, ordered by start time. excludeEventID hides
// the slot of the event a client is currently editing.
func (s *Service) AllocatedTimeSlots(ctx context.Context, categoryID int, startAt time.Time, excludeEventID *int) ([]TimeSlot, error) {
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		return nil, err
	}
	timeQ, err := ClassifyWindow(WindowDay, s.now(), &startAt)
	if err != nil {
		return nil, err
	}
	events, err := s.events.List(ctx, EventFilter{CategoryIDs: []int{categoryID}, Time: timeQ})
	if err != nil {
		return nil, err
	}
	slots := make([]TimeSlot, 0, len(events))
	for _, e := range events {
		if excludeEventID != nil && e.ID == *excludeEventID {
			continue
		}
		slots = append(slots, TimeSlot{StartTime: e.StartTime, EndTime: e.EndTime()})
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].StartTime.Before(slots[j].StartTime) })
	return slots, nil
}
