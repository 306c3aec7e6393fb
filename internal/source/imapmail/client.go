package imapmail

import (
	"context"
	"fmt"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"

	"mailevents/internal/source"
)

// client wraps go-imap v2 for connecting to and querying IMAP servers.
type client struct {
	host     string
	port     string
	username string
	password string
	tls      bool
}

// connect establishes a connection to the IMAP server, authenticates,
// and returns the connected client. The caller is responsible for
// calling Logout on the returned client.
func (c *client) connect(_ context.Context) (*imapclient.Client, error) {
	addr := c.host + ":" + c.port

	var conn *imapclient.Client
	var err error

	if c.tls {
		conn, err = imapclient.DialTLS(addr, nil)
	} else {
		conn, err = imapclient.DialStartTLS(addr, nil)
	}
	if err != nil {
		return nil, &source.UpstreamError{
			Kind: source.KindIMAP,
			Op:   fmt.Sprintf("connecting to %s", addr),
			Err:  err,
		}
	}

	if err := conn.Login(c.username, c.password).Wait(); err != nil {
		_ = conn.Logout().Wait()
		return nil, &source.AuthError{
			Kind: source.KindIMAP,
			Message: fmt.Sprintf(
				"authentication failed for %s: %v", c.username, err,
			),
		}
	}

	return conn, nil
}

// fetchUnseen selects the mailbox, searches for unseen messages, and
// fetches their envelopes and bodies. Bodies are fetched with Peek so
// the \Seen flag is never set; the source stays read-only.
func (c *client) fetchUnseen(
	ctx context.Context, mailbox string, limit int,
) ([]fetchedMessage, error) {
	conn, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = conn.Logout().Wait() }()

	if _, err := conn.Select(mailbox, nil).Wait(); err != nil {
		return nil, &source.UpstreamError{
			Kind: source.KindIMAP,
			Op:   fmt.Sprintf("selecting %s", mailbox),
			Err:  err,
		}
	}

	criteria := &imap.SearchCriteria{
		NotFlag: []imap.Flag{imap.FlagSeen},
	}

	searchData, err := conn.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return nil, &source.UpstreamError{
			Kind: source.KindIMAP,
			Op:   "searching unseen messages",
			Err:  err,
		}
	}

	uids := searchData.AllUIDs()
	if len(uids) == 0 {
		return nil, nil
	}

	// Take the most recent messages when over the batch limit.
	if limit > 0 && len(uids) > limit {
		uids = uids[len(uids)-limit:]
	}

	uidSet := imap.UIDSetNum(uids...)
	bodySection := &imap.FetchItemBodySection{
		Peek: true,
	}
	fetchOpts := &imap.FetchOptions{
		Envelope:    true,
		Flags:       true,
		UID:         true,
		BodySection: []*imap.FetchItemBodySection{bodySection},
	}

	fetchCmd := conn.Fetch(uidSet, fetchOpts)
	defer fetchCmd.Close()

	var out []fetchedMessage
	for {
		msg := fetchCmd.Next()
		if msg == nil {
			break
		}

		buf, err := msg.Collect()
		if err != nil {
			continue
		}

		fm := fetchedMessage{UID: uint32(buf.UID)}
		if buf.Envelope != nil {
			fm.MessageID = buf.Envelope.MessageID
			fm.Subject = buf.Envelope.Subject
			fm.Date = buf.Envelope.Date
			if len(buf.Envelope.From) > 0 {
				from := buf.Envelope.From[0]
				if from.Name != "" {
					fm.From = from.Name
				} else {
					fm.From = from.Addr()
				}
			}
		}
		if raw := buf.FindBodySection(bodySection); raw != nil {
			fm.Body = parseBodyText(raw)
		}

		out = append(out, fm)
	}

	if err := fetchCmd.Close(); err != nil {
		return out, &source.UpstreamError{
			Kind: source.KindIMAP,
			Op:   "fetching messages",
			Err:  err,
		}
	}

	return out, nil
}
