package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/boy52hz/OASIP-US-3-V2/internal/booking"
	"github.com/boy52hz/OASIP-US-3-V2/internal/model"
)

// queryer is satisfied by both *sql.DB and *sql.Tx so the same query code
// serves the pool-backed repo and its transaction-bound view.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// EventRepo persists bookings in the `event` table. It implements
// booking.EventStore; the overlap predicate is pushed into an indexed
// range scan on (category_id, start_time).
type EventRepo struct {
	db *sql.DB
	q  queryer
}

// NewEventRepo returns an EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db, q: db} }

const eventColumns = `id, category_id, user_id, booking_name, booking_email,
       start_time, duration_min, notes, bucket_uuid, created_on, updated_on`

func scanEvent(row interface{ Scan(...any) error }) (*model.Event, error) {
	var (
		e      model.Event
		userID sql.NullInt64
		notes  sql.NullString
		bucket sql.NullString
	)
	if err := row.Scan(
		&e.ID, &e.CategoryID, &userID, &e.BookingName, &e.BookingEmail,
		&e.StartTime, &e.DurationMin, &notes, &bucket, &e.CreatedOn, &e.UpdatedOn,
	); err != nil {
		return nil, err
	}
	if userID.Valid {
		id := int(userID.Int64)
		e.UserID = &id
	}
	if notes.Valid {
		n := notes.String
		e.Notes = &n
	}
	if bucket.Valid {
		b := bucket.String
		e.BucketUUID = &b
	}
	return &e, nil
}

// FindByID loads a single booking. A missing id wraps booking.ErrNotFound.
func (r *EventRepo) FindByID(ctx context.Context, id int) (*model.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM event WHERE id = ?`
	e, err := scanEvent(r.q.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("event with id %d: %w", id, booking.ErrNotFound)
		}
		return nil, err
	}
	return e, nil
}

// FindOverlapping returns the bookings of a category whose half-open
// intervals intersect [start, end). Touching endpoints do not match
// because both comparisons are strict. excludeEventID, when set, removes
// the event being edited from the scan.
func (r *EventRepo) FindOverlapping(ctx context.Context, categoryID int, start, end time.Time, excludeEventID *int) ([]model.Event, error) {
	q := `SELECT ` + eventColumns + `
	      FROM event
	      WHERE category_id = ?
	        AND start_time < ?
	        AND DATE_ADD(start_time, INTERVAL duration_min MINUTE) > ?`
	args := []any{categoryID, end.UTC(), start.UTC()}
	if excludeEventID != nil {
		q += ` AND id <> ?`
		args = append(args, *excludeEventID)
	}
	q += ` ORDER BY start_time`
	return r.queryEvents(ctx, q, args...)
}

// Insert stores a new booking and populates its id and the DB-assigned
// timestamps on the given record.
func (r *EventRepo) Insert(ctx context.Context, e *model.Event) error {
	const q = `INSERT INTO event
	           (category_id, user_id, booking_name, booking_email, start_time, duration_min, notes, bucket_uuid)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.q.ExecContext(ctx, q,
		e.CategoryID, nullableInt(e.UserID), e.BookingName, e.BookingEmail,
		e.StartTime.UTC(), e.DurationMin, nullableStr(e.Notes), nullableStr(e.BucketUUID))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = int(id)
	return r.refresh(ctx, e)
}

// Update persists the mutable fields of a booking. Category and duration
// never change after creation, so they are not part of the statement.
func (r *EventRepo) Update(ctx context.Context, e *model.Event) error {
	const q = `UPDATE event
	           SET start_time = ?, notes = ?, bucket_uuid = ?
	           WHERE id = ?`
	res, err := r.q.ExecContext(ctx, q, e.StartTime.UTC(), nullableStr(e.Notes), nullableStr(e.BucketUUID), e.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is also zero for a no-change update, so confirm the
		// row is really gone before reporting it missing.
		if _, findErr := r.FindByID(ctx, e.ID); findErr != nil {
			return findErr
		}
	}
	return r.refresh(ctx, e)
}

// Delete removes a booking row. Deleting an absent id is not an error.
func (r *EventRepo) Delete(ctx context.Context, id int) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM event WHERE id = ?`, id)
	return err
}

// List returns bookings matching the filter, ordered by start time. An
// empty non-nil category set yields no rows without touching the DB.
func (r *EventRepo) List(ctx context.Context, f booking.EventFilter) ([]model.Event, error) {
	if f.CategoryIDs != nil && len(f.CategoryIDs) == 0 {
		return []model.Event{}, nil
	}

	q := `SELECT ` + eventColumns + ` FROM event WHERE 1=1`
	var args []any
	if f.CategoryIDs != nil {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(f.CategoryIDs)), ",")
		q += ` AND category_id IN (` + placeholders + `)`
		for _, id := range f.CategoryIDs {
			args = append(args, id)
		}
	}
	if f.UserID != nil {
		q += ` AND user_id = ?`
		args = append(args, *f.UserID)
	}
	if f.Time.StartsFrom != nil {
		q += ` AND start_time >= ?`
		args = append(args, f.Time.StartsFrom.UTC())
	}
	if f.Time.StartsBefore != nil {
		q += ` AND start_time < ?`
		args = append(args, f.Time.StartsBefore.UTC())
	}
	if f.Time.EndsOnOrAfter != nil {
		q += ` AND DATE_ADD(start_time, INTERVAL duration_min MINUTE) >= ?`
		args = append(args, f.Time.EndsOnOrAfter.UTC())
	}
	if f.Time.EndsBefore != nil {
		q += ` AND DATE_ADD(start_time, INTERVAL duration_min MINUTE) < ?`
		args = append(args, f.Time.EndsBefore.UTC())
	}
	q += ` ORDER BY start_time`
	return r.queryEvents(ctx, q, args...)
}

// WithCategoryLock serializes mutations per category. It opens a
// transaction, takes a row lock on the category, and runs fn with a
// transaction-bound store, so a concurrent create in the same category
// blocks until the conflict check and write of this one have committed.
// A missing category wraps booking.ErrNotFound.
func (r *EventRepo) WithCategoryLock(ctx context.Context, categoryID int, fn func(booking.EventStore) error) error {
	if _, isTx := r.q.(*sql.Tx); isTx {
		// Already inside a locked transaction.
		return fn(r)
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var locked int
	if err := tx.QueryRowContext(ctx, `SELECT id FROM event_category WHERE id = ? FOR UPDATE`, categoryID).Scan(&locked); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("event category with id %d: %w", categoryID, booking.ErrNotFound)
		}
		return err
	}
	if err := fn(&EventRepo{db: r.db, q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func (r *EventRepo) queryEvents(ctx context.Context, q string, args ...any) ([]model.Event, error) {
	rows, err := r.q.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// refresh re-reads the row to populate DB-assigned timestamps.
func (r *EventRepo) refresh(ctx context.Context, e *model.Event) error {
	fresh, err := r.FindByID(ctx, e.ID)
	if err != nil {
		return err
	}
	*e = *fresh
	return nil
}

func nullableInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullableStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
