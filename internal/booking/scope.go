package booking

import (
	"context"
	"fmt"

	"github.com/boy52hz/OASIP-US-3-V2/internal/model"
)

// Scope is the restriction a listing query must honor for a principal.
// A nil CategoryIDs means every category; an empty non-nil slice means no
// category at all (a lecturer owning nothing sees nothing). A nil UserID
// means bookings of every user.
type Scope struct {
	CategoryIDs []int
	UserID      *int
}

// UserDirectory resolves persisted users from their authenticated email.
// Implementations return ErrNotFound (possibly wrapped) for unknown
// emails.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// OwnershipDirectory lists the category ids a lecturer owns.
type OwnershipDirectory interface {
	OwnedCategoryIDs(ctx context.Context, ownerEmail string) ([]int, error)
}

// Resolver computes the authorized scope for a principal. It performs no
// writes; its only I/O is the two directory lookups.
type Resolver struct {
	users  UserDirectory
	owners OwnershipDirectory
}

// NewResolver returns a Resolver backed by the given directories.
func NewResolver(users UserDirectory, owners OwnershipDirectory) *Resolver {
	return &Resolver{users: users, owners: owners}
}

// Resolve narrows a requested category filter to what the principal may
// see.
//
// Admins pass their filter through untouched. Lecturers are limited to
// categories they own: a requested id outside the owned set is silently
// dropped rather than rejected, and no filter at all means the owned set
// itself, which may be empty. Students keep the requested category filter
// but are pinned to their own resolved user id. Guests have no stable
// identity to scope by and are rejected with ErrForbidden.
func (r *Resolver) Resolve(ctx context.Context, p Principal, requestedCategoryIDs []int) (Scope, error) {
	switch p.Role {
	case RoleAdmin:
		return Scope{CategoryIDs: requestedCategoryIDs}, nil

	case RoleLecturer:
		owned, err := r.owners.OwnedCategoryIDs(ctx, p.Email)
		if err != nil {
			return Scope{}, err
		}
		if owned == nil {
			owned = []int{}
		}
		if requestedCategoryIDs == nil {
			return Scope{CategoryIDs: owned}, nil
		}
		ownedSet := make(map[int]struct{}, len(owned))
		for _, id := range owned {
			ownedSet[id] = struct{}{}
		}
		filtered := make([]int, 0, len(requestedCategoryIDs))
		for _, id := range requestedCategoryIDs {
			if _, ok := ownedSet[id]; ok {
				filtered = append(filtered, id)
			}
		}
		return Scope{CategoryIDs: filtered}, nil

	case RoleStudent:
		student, err := r.users.FindByEmail(ctx, p.Email)
		if err != nil {
			return Scope{}, err
		}
		id := student.ID
		return Scope{CategoryIDs: requestedCategoryIDs, UserID: &id}, nil

	default:
		return Scope{}, fmt.Errorf("%w: guests cannot list events", ErrForbidden)
	}
}
