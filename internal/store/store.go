package store

import (
	"context"
	"errors"
	"time"

	"mailevents/internal/model"
)

// ErrNotFound is returned when a lookup matches no event.
var ErrNotFound = errors.New("event not found")

// Pagination bounds enforced on every query.
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// EventFilter controls filtering and pagination for event queries.
// All provided filters combine conjunctively; the free-text query is
// internally disjunctive across title, description, and location.
type EventFilter struct {
	// Query is a case-insensitive substring matched against title,
	// description, or location. Nil means no text filter.
	Query *string

	// StartFrom/StartTo are inclusive bounds on the start timestamp.
	StartFrom *time.Time
	StartTo   *time.Time

	// ExcludeRecurring omits recurring events when true.
	ExcludeRecurring bool

	// Limit is clamped to [1, MaxLimit]; 0 means DefaultLimit.
	Limit int

	// Offset skips rows; negative values are treated as 0.
	Offset int
}

// Store defines the persistence interface for events. Results from
// SearchEvents are always ordered ascending by start timestamp with ties
// broken by id.
type Store interface {
	// SaveEvents persists a batch of events, assigning ids and creation
	// timestamps. Rows are inserted independently; the returned count is
	// the number actually saved, alongside the first per-row error.
	SaveEvents(ctx context.Context, events []model.Event) (int, error)

	GetEventByID(ctx context.Context, id string) (*model.Event, error)

	// GetEventBySourceMessageID returns the earliest-created event
	// derived from the given source message.
	GetEventBySourceMessageID(ctx context.Context, sourceMessageID string) (*model.Event, error)

	SearchEvents(ctx context.Context, filter EventFilter) ([]model.Event, error)

	// Ping verifies backend reachability and reports round-trip latency.
	Ping(ctx context.Context) (time.Duration, error)

	Close() error
}
