package imapmail

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMessageFromFetched(t *testing.T) {
	date := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	fm := fetchedMessage{
		UID:       42,
		MessageID: "abc@mail.example.com",
		Subject:   "Daily Standup",
		From:      "Alice",
		Date:      date,
		Body:      "see you at 9",
	}

	msg := messageFromFetched(fm)
	assert.Equal(t, "abc@mail.example.com", msg.ID)
	assert.Equal(t, "Alice", msg.Sender)
	assert.Equal(t, "Daily Standup", msg.Subject)
	assert.Equal(t, "see you at 9", msg.Body)
	assert.Equal(t, date, msg.ReceivedAt)
	assert.True(t, msg.Unread)
}

func TestMessageFromFetchedFallsBackToUID(t *testing.T) {
	msg := messageFromFetched(fetchedMessage{UID: 42})
	assert.Equal(t, "imap-uid-42", msg.ID)
}

func TestParseBodyTextPlain(t *testing.T) {
	raw := strings.Join([]string{
		"From: alice@example.com",
		"To: bob@example.com",
		"Subject: hi",
		"Content-Type: text/plain; charset=utf-8",
		"",
		"plain body here",
	}, "\r\n")

	assert.Equal(t, "plain body here", parseBodyText([]byte(raw)))
}

func TestParseBodyTextHTMLFallback(t *testing.T) {
	raw := strings.Join([]string{
		"From: alice@example.com",
		"To: bob@example.com",
		"Subject: hi",
		"Content-Type: text/html; charset=utf-8",
		"",
		"<p>html <b>body</b></p>",
	}, "\r\n")

	assert.Equal(t, "html body", parseBodyText([]byte(raw)))
}
