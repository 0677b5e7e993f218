package booking

import (
	"context"
	"time"

	"github.com/boy52hz/OASIP-US-3-V2/internal/model"
)

// EventFinder is the single lookup the conflict detector needs: the
// events of a category whose intervals intersect [start, end), minus the
// event identified by excludeEventID when set. The MySQL implementation
// pushes the predicate into an indexed range scan; test doubles may apply
// Overlaps over an in-memory slice.
type EventFinder interface {
	FindOverlapping(ctx context.Context, categoryID int, start, end time.Time, excludeEventID *int) ([]model.Event, error)
}

// Overlaps reports whether the half-open intervals [aStart, aStart+aDur)
// and [bStart, bStart+bDur) intersect, with durations in minutes. Touching
// endpoints do not overlap, so back-to-back bookings are legal.
func Overlaps(aStart time.Time, aDurMin int, bStart time.Time, bDurMin int) bool {
	aEnd := aStart.Add(time.Duration(aDurMin) * time.Minute)
	bEnd := bStart.Add(time.Duration(bDurMin) * time.Minute)
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Detector decides whether a proposed booking interval collides with an
// existing booking in the same category.
type Detector struct {
	events EventFinder
}

// NewDetector returns a Detector scanning through the given finder.
func NewDetector(events EventFinder) *Detector {
	return &Detector{events: events}
}

// HasConflict reports whether a booking of durationMin minutes starting
// at start would overlap an existing event in the category. When checking
// an in-place edit, excludeEventID carries the id of the event being
// edited so it is never compared against itself. The caller is
// responsible for running the check and the subsequent write under the
// same category lock.
func (d *Detector) HasConflict(ctx context.Context, categoryID int, start time.Time, durationMin int, excludeEventID *int) (bool, error) {
	end := start.Add(time.Duration(durationMin) * time.Minute)
	existing, err := d.events.FindOverlapping(ctx, categoryID, start, end, excludeEventID)
	if err != nil {
		return false, err
	}
	return len(existing) > 0, nil
}
