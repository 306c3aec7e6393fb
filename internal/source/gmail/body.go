package gmail

import (
	"encoding/base64"
	"strings"

	gmailv1 "google.golang.org/api/gmail/v1"

	"mailevents/internal/mailtext"
)

// bodyText extracts the readable text of a message payload. Preference
// order: a direct body, then a text/plain part, then stripped text/html,
// then a recursive look into nested multiparts, then any decodable part.
func bodyText(payload *gmailv1.MessagePart) string {
	if payload == nil {
		return ""
	}

	if payload.Body != nil && payload.Body.Data != "" {
		raw := decodeBody(payload.Body.Data)
		if strings.HasPrefix(payload.MimeType, "text/html") {
			return mailtext.StripHTML(raw)
		}
		return strings.TrimSpace(raw)
	}

	for _, p := range payload.Parts {
		if p.MimeType == "text/plain" && p.Body != nil && p.Body.Data != "" {
			return strings.TrimSpace(decodeBody(p.Body.Data))
		}
	}

	for _, p := range payload.Parts {
		if p.MimeType == "text/html" && p.Body != nil && p.Body.Data != "" {
			return mailtext.StripHTML(decodeBody(p.Body.Data))
		}
	}

	for _, p := range payload.Parts {
		if len(p.Parts) > 0 {
			if nested := bodyText(p); nested != "" {
				return nested
			}
		}
	}

	for _, p := range payload.Parts {
		if p.Body != nil && p.Body.Data != "" {
			return strings.TrimSpace(decodeBody(p.Body.Data))
		}
	}

	return ""
}

// decodeBody decodes the Gmail API's URL-safe base64 body data.
func decodeBody(data string) string {
	b, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		b, err = base64.RawURLEncoding.DecodeString(data)
		if err != nil {
			return ""
		}
	}
	return string(b)
}
