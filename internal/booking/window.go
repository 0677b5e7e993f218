package booking

import (
	"fmt"
	"strings"
	"time"
)

// Window kinds accepted by listing queries. An absent kind means no time
// filter at all.
const (
	WindowUpcoming = "upcoming"
	WindowPast     = "past"
	WindowDay      = "day"
)

// TimeQuery is the concrete time restriction a classified window imposes
// on a listing query. At most one of the three predicates is populated.
//
// The day window constrains the event start instant to the half-open
// interval [StartsFrom, StartsBefore). The upcoming window matches events
// still ongoing or not yet started (event end at or after the reference),
// and the past window matches events already finished (event end strictly
// before the reference).
type TimeQuery struct {
	StartsFrom    *time.Time
	StartsBefore  *time.Time
	EndsOnOrAfter *time.Time
	EndsBefore    *time.Time
}

// IsUnbounded reports whether the query applies no time restriction.
func (q TimeQuery) IsUnbounded() bool {
	return q.StartsFrom == nil && q.StartsBefore == nil && q.EndsOnOrAfter == nil && q.EndsBefore == nil
}

// ClassifyWindow turns a requested window kind and a reference instant
// into the bounds a query must honor. Kinds are matched case-insensitively.
// The day kind requires explicitStart and yields the calendar day of
// explicitStart computed in explicitStart's own UTC offset. An empty kind
// yields the unbounded query; an unrecognized kind is ErrInvalidArgument.
func ClassifyWindow(kind string, ref time.Time, explicitStart *time.Time) (TimeQuery, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "":
		return TimeQuery{}, nil
	case WindowUpcoming:
		from := ref
		return TimeQuery{EndsOnOrAfter: &from}, nil
	case WindowPast:
		until := ref
		return TimeQuery{EndsBefore: &until}, nil
	case WindowDay:
		if explicitStart == nil {
			return TimeQuery{}, fmt.Errorf("%w: startAt is required for the day window", ErrInvalidArgument)
		}
		dayStart := midnightOf(*explicitStart)
		dayEnd := dayStart.AddDate(0, 0, 1)
		return TimeQuery{StartsFrom: &dayStart, StartsBefore: &dayEnd}, nil
	default:
		return TimeQuery{}, fmt.Errorf("%w: unrecognized window kind %q", ErrInvalidArgument, kind)
	}
}

// midnightOf returns midnight of t's calendar day in t's own location, so
// a client-supplied offset keeps its meaning instead of being collapsed
// into server-local time.
func midnightOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
