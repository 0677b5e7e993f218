package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/boy52hz/OASIP-US-3-V2/internal/booking"
	"github.com/boy52hz/OASIP-US-3-V2/internal/model"
)

// CategoryRepo encapsulates all database queries for event categories and
// the lecturer ownership relation. It implements booking.CategoryStore
// and booking.OwnershipDirectory.
type CategoryRepo struct {
	db *sql.DB
}

// NewCategoryRepo constructs a CategoryRepo with the provided DB handle.
func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{db: db} }

const categoryColumns = `id, name, description, duration_min`

func scanCategory(row interface{ Scan(...any) error }) (*model.EventCategory, error) {
	var (
		c    model.EventCategory
		desc sql.NullString
	)
	if err := row.Scan(&c.ID, &c.Name, &desc, &c.DurationMin); err != nil {
		return nil, err
	}
	if desc.Valid {
		d := desc.String
		c.Description = &d
	}
	return &c, nil
}

// FindByID fetches a category by id. A missing id wraps
// booking.ErrNotFound.
func (r *CategoryRepo) FindByID(ctx context.Context, id int) (*model.EventCategory, error) {
	const q = `SELECT ` + categoryColumns + ` FROM event_category WHERE id = ?`
	c, err := scanCategory(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("event category with id %d: %w", id, booking.ErrNotFound)
		}
		return nil, err
	}
	return c, nil
}

// ListAll returns every category ordered by id.
func (r *CategoryRepo) ListAll(ctx context.Context) ([]model.EventCategory, error) {
	const q = `SELECT ` + categoryColumns + ` FROM event_category ORDER BY id`
	return r.queryCategories(ctx, q)
}

// ListByOwnerEmail returns the categories owned by a lecturer, ordered by
// id.
func (r *CategoryRepo) ListByOwnerEmail(ctx context.Context, ownerEmail string) ([]model.EventCategory, error) {
	const q = `SELECT c.id, c.name, c.description, c.duration_min
	           FROM event_category c
	           JOIN category_owner o ON o.category_id = c.id
	           WHERE o.owner_email = ?
	           ORDER BY c.id`
	return r.queryCategories(ctx, q, strings.ToLower(strings.TrimSpace(ownerEmail)))
}

// OwnedCategoryIDs returns the ids of the categories a lecturer owns. A
// lecturer owning nothing gets an empty slice, not an error.
func (r *CategoryRepo) OwnedCategoryIDs(ctx context.Context, ownerEmail string) ([]int, error) {
	const q = `SELECT category_id FROM category_owner WHERE owner_email = ? ORDER BY category_id`
	rows, err := r.db.QueryContext(ctx, q, strings.ToLower(strings.TrimSpace(ownerEmail)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// UpdateCategoryParams carries the optional fields of a category edit. A
// nil field is left unchanged.
type UpdateCategoryParams struct {
	Name        *string
	Description *string
	DurationMin *int
}

// Update edits a category. A duplicate name maps to ErrNameTaken and a
// missing id wraps booking.ErrNotFound. The updated row is returned.
func (r *CategoryRepo) Update(ctx context.Context, id int, params UpdateCategoryParams) (*model.EventCategory, error) {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)
	if params.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, strings.TrimSpace(*params.Name))
	}
	if params.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, strings.TrimSpace(*params.Description))
	}
	if params.DurationMin != nil {
		sets = append(sets, "duration_min = ?")
		args = append(args, *params.DurationMin)
	}
	if len(sets) > 0 {
		args = append(args, id)
		q := `UPDATE event_category SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
		if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
			// MySQL error 1062: duplicate entry on the unique name index.
			if strings.Contains(strings.ToLower(err.Error()), "1062") {
				return nil, ErrNameTaken
			}
			return nil, err
		}
	}
	return r.FindByID(ctx, id)
}

func (r *CategoryRepo) queryCategories(ctx context.Context, q string, args ...any) ([]model.EventCategory, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.EventCategory, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
