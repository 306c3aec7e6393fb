package imapmail

import (
	"bytes"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"

	"mailevents/internal/mailtext"
)

// fetchedMessage holds the parsed fields of one fetched IMAP message.
type fetchedMessage struct {
	UID       uint32
	MessageID string
	Subject   string
	From      string
	Date      time.Time
	Body      string
}

// parseBodyText parses a raw RFC 2822 message with go-message and
// returns readable text, preferring text/plain over stripped text/html.
func parseBodyText(raw []byte) string {
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		// If MIME parsing fails, treat the whole thing as plain text.
		return strings.TrimSpace(string(raw))
	}
	defer mr.Close()

	var textBody, htmlBody string
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}

		h, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, _ := h.ContentType()
		body, readErr := io.ReadAll(part.Body)
		if readErr != nil {
			continue
		}

		switch {
		case strings.HasPrefix(contentType, "text/plain"):
			textBody = string(body)
		case strings.HasPrefix(contentType, "text/html"):
			htmlBody = string(body)
		}
	}

	if textBody != "" {
		return strings.TrimSpace(textBody)
	}
	return mailtext.StripHTML(htmlBody)
}
