// Package gmail fetches unread messages through the Gmail API using a
// long-lived refresh token with read-only scope.
package gmail

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailv1 "google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"mailevents/internal/logging"
	"mailevents/internal/model"
	"mailevents/internal/source"
)

// DefaultQuery selects recent unread inbox messages.
const DefaultQuery = "in:inbox is:unread newer_than:14d"

// defaultMaxResults bounds a single import batch when unconfigured.
const defaultMaxResults = 50

// Config holds the credentials and fetch settings for the Gmail source.
type Config struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	Query        string
	MaxResults   int64
}

// Source fetches unread messages from Gmail.
type Source struct {
	cfg Config
	svc *gmailv1.Service
}

// New builds a Gmail service from a refresh token. The token is never
// acquired interactively; it is injected via configuration.
func New(ctx context.Context, cfg Config) (*Source, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RefreshToken == "" {
		return nil, &source.AuthError{
			Kind:    source.KindGmail,
			Message: "missing client credentials or refresh token",
		}
	}

	oc := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gmailv1.GmailReadonlyScope},
	}
	ts := oc.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})

	svc, err := gmailv1.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("creating gmail service: %w", err)
	}

	return &Source{cfg: cfg, svc: svc}, nil
}

// Kind returns the Gmail source kind.
func (s *Source) Kind() source.Kind {
	return source.KindGmail
}

// FetchUnread lists messages matching the configured query and fetches
// each one in full. Individual message fetch failures are logged and
// skipped; the listing itself failing is an upstream (or auth) error.
func (s *Source) FetchUnread(ctx context.Context) ([]model.Message, error) {
	query := s.cfg.Query
	if query == "" {
		query = DefaultQuery
	}
	maxResults := s.cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	resp, err := s.svc.Users.Messages.List("me").
		Q(query).
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrapAPIError("listing messages", err)
	}

	messages := make([]model.Message, 0, len(resp.Messages))
	for _, ref := range resp.Messages {
		full, err := s.svc.Users.Messages.Get("me", ref.Id).
			Format("full").
			Context(ctx).
			Do()
		if err != nil {
			logging.Log.WithError(err).
				WithField("message_id", ref.Id).
				Warn("skipping message: fetch failed")
			continue
		}
		messages = append(messages, messageFromAPI(full))
	}

	return messages, nil
}

// messageFromAPI maps a Gmail API message to the normalized record.
func messageFromAPI(m *gmailv1.Message) model.Message {
	msg := model.Message{ID: m.Id}

	if m.Payload != nil {
		for _, h := range m.Payload.Headers {
			switch strings.ToLower(h.Name) {
			case "from":
				msg.Sender = h.Value
			case "subject":
				msg.Subject = h.Value
			}
		}
		msg.Body = bodyText(m.Payload)
	}
	if msg.Body == "" {
		msg.Body = m.Snippet
	}

	if m.InternalDate > 0 {
		msg.ReceivedAt = time.UnixMilli(m.InternalDate).UTC()
	}

	for _, label := range m.LabelIds {
		if label == "UNREAD" {
			msg.Unread = true
			break
		}
	}

	return msg
}

// wrapAPIError classifies a Gmail API failure: credential problems are
// auth errors, everything else is an upstream failure.
func wrapAPIError(op string, err error) error {
	if apiErr, ok := err.(*googleapi.Error); ok {
		if apiErr.Code == 401 || apiErr.Code == 403 {
			return &source.AuthError{
				Kind:    source.KindGmail,
				Message: fmt.Sprintf("%s: %v", op, err),
			}
		}
	}
	return &source.UpstreamError{Kind: source.KindGmail, Op: op, Err: err}
}
