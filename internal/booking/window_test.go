package booking

import (
	"errors"
	"testing"
	"time"
)

func TestClassifyWindowEmptyKindIsUnbounded(t *testing.T) {
	q, err := ClassifyWindow("", time.Now(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !q.IsUnbounded() {
		t.Fatalf("expected unbounded query, got %+v", q)
	}
}

func TestClassifyWindowUpcoming(t *testing.T) {
	ref := time.Date(2023, 4, 10, 12, 0, 0, 0, time.UTC)
	q, err := ClassifyWindow("upcoming", ref, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.EndsOnOrAfter == nil || !q.EndsOnOrAfter.Equal(ref) {
		t.Fatalf("expected EndsOnOrAfter = %v, got %+v", ref, q)
	}
	if q.StartsFrom != nil || q.StartsBefore != nil || q.EndsBefore != nil {
		t.Fatalf("unexpected extra bounds: %+v", q)
	}
}

func TestClassifyWindowPast(t *testing.T) {
	ref := time.Date(2023, 4, 10, 12, 0, 0, 0, time.UTC)
	q, err := ClassifyWindow("PAST", ref, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.EndsBefore == nil || !q.EndsBefore.Equal(ref) {
		t.Fatalf("expected EndsBefore = %v, got %+v", ref, q)
	}
}

func TestClassifyWindowDayUsesClientOffset(t *testing.T) {
	// 01:30 on April 11 in +07:00 is still April 10 in UTC; the day
	// window must follow the client's calendar day, not the server's.
	bangkok := time.FixedZone("UTC+7", 7*3600)
	startAt := time.Date(2023, 4, 11, 1, 30, 0, 0, bangkok)

	q, err := ClassifyWindow("day", time.Now(), &startAt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantFrom := time.Date(2023, 4, 11, 0, 0, 0, 0, bangkok)
	wantBefore := time.Date(2023, 4, 12, 0, 0, 0, 0, bangkok)
	if q.StartsFrom == nil || !q.StartsFrom.Equal(wantFrom) {
		t.Errorf("StartsFrom = %v, want %v", q.StartsFrom, wantFrom)
	}
	if q.StartsBefore == nil || !q.StartsBefore.Equal(wantBefore) {
		t.Errorf("StartsBefore = %v, want %v", q.StartsBefore, wantBefore)
	}
}

func TestClassifyWindowDayRequiresStartAt(t *testing.T) {
	_, err := ClassifyWindow("day", time.Now(), nil)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestClassifyWindowRejectsUnknownKind(t *testing.T) {
	for _, kind := range []string{"future", "today", "all"} {
		if _, err := ClassifyWindow(kind, time.Now(), nil); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("kind %q: expected ErrInvalidArgument, got %v", kind, err)
		}
	}
}
