package booking

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/boy52hz/OASIP-US-3-V2/internal/model"
)

type stubUsers struct {
	byEmail map[string]*model.User
}

func (s *stubUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
}

type stubOwners struct {
	owned map[string][]int
}

func (s *stubOwners) OwnedCategoryIDs(_ context.Context, email string) ([]int, error) {
	return s.owned[email], nil
}

func newTestResolver() *Resolver {
	return NewResolver(
		&stubUsers{byEmail: map[string]*model.User{
			"student@kmutt.ac.th": {ID: 42, Email: "student@kmutt.ac.th", Role: model.RoleStudent},
		}},
		&stubOwners{owned: map[string][]int{
			"lecturer@kmutt.ac.th": {1, 2},
		}},
	)
}

func TestResolveAdminPassesThrough(t *testing.T) {
	r := newTestResolver()
	scope, err := r.Resolve(context.Background(), Principal{Role: RoleAdmin, Email: "admin@kmutt.ac.th"}, []int{3, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(scope.CategoryIDs, []int{3, 4}) || scope.UserID != nil {
		t.Fatalf("unexpected scope: %+v", scope)
	}
}

func TestResolveAdminNoFilterMeansAll(t *testing.T) {
	r := newTestResolver()
	scope, err := r.Resolve(context.Background(), Principal{Role: RoleAdmin, Email: "admin@kmutt.ac.th"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scope.CategoryIDs != nil || scope.UserID != nil {
		t.Fatalf("expected unrestricted scope, got %+v", scope)
	}
}

func TestResolveLecturerIntersectsOwned(t *testing.T) {
	r := newTestResolver()
	p := Principal{Role: RoleLecturer, Email: "lecturer@kmutt.ac.th"}

	// Requesting {2,3} while owning {1,2} drops 3 silently.
	scope, err := r.Resolve(context.Background(), p, []int{2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(scope.CategoryIDs, []int{2}) {
		t.Fatalf("expected [2], got %v", scope.CategoryIDs)
	}

	// No requested filter means the owned set itself.
	scope, err = r.Resolve(context.Background(), p, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(scope.CategoryIDs, []int{1, 2}) {
		t.Fatalf("expected [1 2], got %v", scope.CategoryIDs)
	}
}

func TestResolveLecturerOwningNothingSeesNothing(t *testing.T) {
	r := newTestResolver()
	scope, err := r.Resolve(context.Background(), Principal{Role: RoleLecturer, Email: "new@kmutt.ac.th"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scope.CategoryIDs == nil || len(scope.CategoryIDs) != 0 {
		t.Fatalf("expected empty non-nil category set, got %#v", scope.CategoryIDs)
	}
}

func TestResolveStudentPinnedToOwnUser(t *testing.T) {
	r := newTestResolver()
	scope, err := r.Resolve(context.Background(), Principal{Role: RoleStudent, Email: "student@kmutt.ac.th"}, []int{5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scope.UserID == nil || *scope.UserID != 42 {
		t.Fatalf("expected user id 42, got %v", scope.UserID)
	}
	if !reflect.DeepEqual(scope.CategoryIDs, []int{5}) {
		t.Fatalf("expected [5], got %v", scope.CategoryIDs)
	}
}

func TestResolveGuestForbidden(t *testing.T) {
	r := newTestResolver()
	if _, err := r.Resolve(context.Background(), Guest(), nil); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
