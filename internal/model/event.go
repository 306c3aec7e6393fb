package model

import "time"

// Event is a normalized calendar-like record derived from a message.
// Events are created once during an import run and never mutated.
type Event struct {
	// ID is the internal unique identifier, generated on persist.
	ID string `json:"id"`

	// Title is the human-readable event title, always non-empty.
	Title string `json:"title"`

	// Description is an optional best-effort summary.
	Description string `json:"description,omitempty"`

	// Location is an optional physical or virtual location.
	Location string `json:"location,omitempty"`

	// StartsAt is the event start, always present.
	StartsAt time.Time `json:"starts_at"`

	// EndsAt is the optional event end.
	EndsAt *time.Time `json:"ends_at,omitempty"`

	// Recurring marks events the matching rule declared as repeating.
	// No schedule expansion is performed.
	Recurring bool `json:"recurring"`

	// SourceMessageID is a back-reference to the originating message.
	SourceMessageID string `json:"source_message_id"`

	// CreatedAt is when the event row was persisted.
	CreatedAt time.Time `json:"created_at"`
}
