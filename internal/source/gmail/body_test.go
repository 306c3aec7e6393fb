package gmail

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	gmailv1 "google.golang.org/api/gmail/v1"
)

func b64(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

func TestBodyTextPrefersPlainText(t *testing.T) {
	payload := &gmailv1.MessagePart{
		MimeType: "multipart/alternative",
		Parts: []*gmailv1.MessagePart{
			{MimeType: "text/html", Body: &gmailv1.MessagePartBody{Data: b64("<p>html version</p>")}},
			{MimeType: "text/plain", Body: &gmailv1.MessagePartBody{Data: b64("plain version\n")}},
		},
	}

	assert.Equal(t, "plain version", bodyText(payload))
}

func TestBodyTextStripsHTMLFallback(t *testing.T) {
	payload := &gmailv1.MessagePart{
		MimeType: "multipart/alternative",
		Parts: []*gmailv1.MessagePart{
			{MimeType: "text/html", Body: &gmailv1.MessagePartBody{Data: b64("<p>only <b>html</b></p>")}},
		},
	}

	assert.Equal(t, "only html", bodyText(payload))
}

func TestBodyTextDirectBody(t *testing.T) {
	payload := &gmailv1.MessagePart{
		MimeType: "text/plain",
		Body:     &gmailv1.MessagePartBody{Data: b64("direct body")},
	}

	assert.Equal(t, "direct body", bodyText(payload))
}

func TestBodyTextNestedMultipart(t *testing.T) {
	payload := &gmailv1.MessagePart{
		MimeType: "multipart/mixed",
		Parts: []*gmailv1.MessagePart{
			{
				MimeType: "multipart/alternative",
				Parts: []*gmailv1.MessagePart{
					{MimeType: "text/plain", Body: &gmailv1.MessagePartBody{Data: b64("nested text")}},
				},
			},
		},
	}

	assert.Equal(t, "nested text", bodyText(payload))
}

func TestBodyTextEmpty(t *testing.T) {
	assert.Equal(t, "", bodyText(nil))
	assert.Equal(t, "", bodyText(&gmailv1.MessagePart{}))
}

func TestMessageFromAPI(t *testing.T) {
	m := &gmailv1.Message{
		Id:           "gm-1",
		Snippet:      "snippet text",
		InternalDate: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC).UnixMilli(),
		LabelIds:     []string{"INBOX", "UNREAD"},
		Payload: &gmailv1.MessagePart{
			MimeType: "text/plain",
			Headers: []*gmailv1.MessagePartHeader{
				{Name: "From", Value: "Alice <alice@example.com>"},
				{Name: "Subject", Value: "Daily Standup"},
			},
			Body: &gmailv1.MessagePartBody{Data: b64("see you at 9")},
		},
	}

	msg := messageFromAPI(m)
	assert.Equal(t, "gm-1", msg.ID)
	assert.Equal(t, "Alice <alice@example.com>", msg.Sender)
	assert.Equal(t, "Daily Standup", msg.Subject)
	assert.Equal(t, "see you at 9", msg.Body)
	assert.Equal(t, time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), msg.ReceivedAt)
	assert.True(t, msg.Unread)
}

func TestMessageFromAPISnippetFallback(t *testing.T) {
	m := &gmailv1.Message{
		Id:      "gm-2",
		Snippet: "fallback snippet",
		Payload: &gmailv1.MessagePart{MimeType: "text/plain"},
	}

	msg := messageFromAPI(m)
	assert.Equal(t, "fallback snippet", msg.Body)
	assert.True(t, msg.ReceivedAt.IsZero())
	assert.False(t, msg.Unread)
}
