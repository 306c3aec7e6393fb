// Package imapmail fetches unseen messages from an IMAP mailbox without
// altering their flags.
package imapmail

import (
	"context"
	"fmt"

	"mailevents/internal/model"
	"mailevents/internal/source"
)

// Config holds the IMAP connection settings.
type Config struct {
	Host       string
	Port       string
	Username   string
	Password   string
	Mailbox    string
	TLS        bool
	MaxResults int
}

// Source fetches unread messages over IMAP.
type Source struct {
	cfg    Config
	client *client
}

// New creates an IMAP source. The connection is established lazily on
// each fetch.
func New(cfg Config) *Source {
	if cfg.Mailbox == "" {
		cfg.Mailbox = "INBOX"
	}
	if cfg.Port == "" {
		cfg.Port = "993"
	}
	return &Source{
		cfg: cfg,
		client: &client{
			host:     cfg.Host,
			port:     cfg.Port,
			username: cfg.Username,
			password: cfg.Password,
			tls:      cfg.TLS,
		},
	}
}

// Kind returns the IMAP source kind.
func (s *Source) Kind() source.Kind {
	return source.KindIMAP
}

// FetchUnread retrieves the unseen messages in the configured mailbox.
func (s *Source) FetchUnread(ctx context.Context) ([]model.Message, error) {
	fetched, err := s.client.fetchUnseen(ctx, s.cfg.Mailbox, s.cfg.MaxResults)
	if err != nil {
		return nil, err
	}

	messages := make([]model.Message, 0, len(fetched))
	for _, fm := range fetched {
		messages = append(messages, messageFromFetched(fm))
	}
	return messages, nil
}

// messageFromFetched maps a fetched IMAP message to the normalized record.
func messageFromFetched(fm fetchedMessage) model.Message {
	id := fm.MessageID
	if id == "" {
		id = fmt.Sprintf("imap-uid-%d", fm.UID)
	}

	return model.Message{
		ID:         id,
		Sender:     fm.From,
		Subject:    fm.Subject,
		Body:       fm.Body,
		ReceivedAt: fm.Date.UTC(),
		Unread:     true,
	}
}
