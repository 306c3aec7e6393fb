// Package mock provides a fixed in-memory message source for local
// development and tests.
package mock

import (
	"context"
	"time"

	"mailevents/internal/model"
	"mailevents/internal/source"
)

// Source serves a fixed list of messages.
type Source struct {
	messages []model.Message
}

// New creates a mock source over the given messages.
func New(messages []model.Message) *Source {
	return &Source{messages: messages}
}

// Kind returns the mock source kind.
func (s *Source) Kind() source.Kind {
	return source.KindMock
}

// FetchUnread returns a copy of the configured messages that are marked
// unread.
func (s *Source) FetchUnread(_ context.Context) ([]model.Message, error) {
	out := make([]model.Message, 0, len(s.messages))
	for _, msg := range s.messages {
		if msg.Unread {
			out = append(out, msg)
		}
	}
	return out, nil
}

// SampleMessages returns the demo inbox used when the mock source is
// selected without explicit data.
func SampleMessages() []model.Message {
	return []model.Message{
		{
			ID:         "mock-1",
			Sender:     "team@example.com",
			Subject:    "Daily Standup",
			Body:       "Usual time.\nLocation: https://meet.google.com/abc-defg-hij",
			ReceivedAt: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC),
			Unread:     true,
		},
		{
			ID:         "mock-2",
			Sender:     "pm@example.com",
			Subject:    "Client Kickoff",
			Body:       "Kickoff on 2024-01-15 at 14:00.\nLocation: Conference Room 4B",
			ReceivedAt: time.Date(2024, 1, 3, 11, 30, 0, 0, time.UTC),
			Unread:     true,
		},
		{
			ID:         "mock-3",
			Sender:     "newsletter@example.com",
			Subject:    "Weekly digest",
			Body:       "Top stories this week.",
			ReceivedAt: time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC),
			Unread:     true,
		},
	}
}
