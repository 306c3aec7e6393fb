package model

import "time"

// Message is a raw email record as supplied by the message source,
// prior to any interpretation. Messages are immutable once fetched.
type Message struct {
	// ID is the provider-assigned message identifier.
	ID string `json:"id"`

	// Sender is the From header value (display name or address).
	Sender string `json:"sender"`

	// Subject is the decoded Subject header; may be empty.
	Subject string `json:"subject"`

	// Body is the readable plain-text body; may be empty.
	Body string `json:"body"`

	// ReceivedAt is the provider-supplied receive timestamp.
	// May be zero when the provider did not report one.
	ReceivedAt time.Time `json:"received_at"`

	// Unread reports the message's read-state flag at fetch time.
	Unread bool `json:"unread"`
}
