package model

import "time"

// Event records a single reserved time slot within a category. The
// duration is copied from the category when the booking is created and
// never recomputed, so later edits to the category do not move existing
// bookings. StartTime is stored in UTC; the (category_id, start_time)
// index backs the overlap scan.
//
// Fields:
//  ID           – primary key identifier.
//  CategoryID   – category the booking belongs to (immutable).
//  UserID       – booking user, nil for guest bookings.
//  BookingName  – name supplied by the booker, trimmed.
//  BookingEmail – email supplied by the booker, trimmed.
//  StartTime    – start instant of the slot.
//  DurationMin  – slot length in minutes, copied from the category.
//  Notes        – optional free-text notes (nullable).
//  BucketUUID   – opaque attachment reference, nil when no file is attached.
//  CreatedOn    – creation timestamp, DB-assigned.
//  UpdatedOn    – last-modified timestamp, DB-assigned.
type Event struct {
	ID           int        // event.id
	CategoryID   int        // event.category_id
	UserID       *int       // event.user_id (nullable)
	BookingName  string     // event.booking_name
	BookingEmail string     // event.booking_email
	StartTime    time.Time  // event.start_time
	DurationMin  int        // event.duration_min
	Notes        *string    // event.notes (nullable)
	BucketUUID   *string    // event.bucket_uuid (nullable)
	CreatedOn    time.Time  // event.created_on
	UpdatedOn    time.Time  // event.updated_on
}

// EndTime returns the exclusive end instant of the booking's half-open
// interval [StartTime, StartTime+DurationMin).
func (e *Event) EndTime() time.Time {
	return e.StartTime.Add(time.Duration(e.DurationMin) * time.Minute)
}
