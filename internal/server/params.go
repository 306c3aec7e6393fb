package server

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"mailevents/internal/store"
)

// ValidationError reports a malformed query parameter.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// parseSearchFilter builds an EventFilter from search query parameters.
// exclude_recurring defaults to true; date bounds accept RFC 3339 or a
// bare date, interpreted as the start (for start_from) or end (for
// start_to) of that UTC day.
func parseSearchFilter(q url.Values) (store.EventFilter, *ValidationError) {
	filter := store.EventFilter{ExcludeRecurring: true}

	if text := q.Get("q"); text != "" {
		filter.Query = &text
	}

	from, verr := parseTimeParam(q, "start_from", false)
	if verr != nil {
		return filter, verr
	}
	filter.StartFrom = from

	to, verr := parseTimeParam(q, "start_to", true)
	if verr != nil {
		return filter, verr
	}
	filter.StartTo = to

	if raw := q.Get("exclude_recurring"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, &ValidationError{Field: "exclude_recurring", Msg: "must be a boolean"}
		}
		filter.ExcludeRecurring = v
	}

	limit, offset, verr := parsePagination(q)
	if verr != nil {
		return filter, verr
	}
	filter.Limit = limit
	filter.Offset = offset

	return filter, nil
}

// parseTimeParam parses an optional timestamp parameter. A date-only
// value covers the whole UTC day: its start for lower bounds, its last
// nanosecond for upper bounds.
func parseTimeParam(q url.Values, field string, endOfDay bool) (*time.Time, *ValidationError) {
	raw := q.Get(field)
	if raw == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}

	if t, err := time.Parse("2006-01-02", raw); err == nil {
		t = t.UTC()
		if endOfDay {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return &t, nil
	}

	return nil, &ValidationError{
		Field: field,
		Msg:   "must be an RFC 3339 timestamp or a YYYY-MM-DD date",
	}
}

// parsePagination parses limit and offset with the documented defaults.
// Oversized limits are clamped to the cap rather than rejected.
func parsePagination(q url.Values) (limit, offset int, verr *ValidationError) {
	limit = store.DefaultLimit
	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return 0, 0, &ValidationError{Field: "limit", Msg: "must be a positive integer"}
		}
		limit = v
		if limit > store.MaxLimit {
			limit = store.MaxLimit
		}
	}

	if raw := q.Get("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return 0, 0, &ValidationError{Field: "offset", Msg: "must be a non-negative integer"}
		}
		offset = v
	}

	return limit, offset, nil
}
