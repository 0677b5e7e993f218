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

// UserRepo fetches user identities from the `user` table. It implements
// booking.UserDirectory.
type UserRepo struct{ db *sql.DB }

// NewUserRepo returns a new UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = `id, name, email, password_hash, role, created_on, updated_on`

// FindByEmail fetches a user by normalized email. An unknown email wraps
// booking.ErrNotFound.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	const q = `SELECT ` + userColumns + ` FROM user WHERE email = ? LIMIT 1`
	var u model.User
	err := r.db.QueryRowContext(ctx, q, email).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedOn, &u.UpdatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with email %s: %w", email, booking.ErrNotFound)
		}
		return nil, err
	}
	return &u, nil
}

// FindByID fetches a user by id. A missing id wraps booking.ErrNotFound.
func (r *UserRepo) FindByID(ctx context.Context, id int) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM user WHERE id = ? LIMIT 1`
	var u model.User
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedOn, &u.UpdatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with id %d: %w", id, booking.ErrNotFound)
		}
		return nil, err
	}
	return &u, nil
}
