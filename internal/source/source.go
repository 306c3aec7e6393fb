package source

import (
	"context"
	"errors"
	"fmt"

	"mailevents/internal/model"
)

// Kind identifies the kind of message source.
type Kind string

const (
	KindGmail Kind = "gmail"
	KindIMAP  Kind = "imap"
	KindMock  Kind = "mock"
)

// Source defines the contract every message source must implement.
// Implementations are read-only: fetching must not change any message's
// read state at the provider.
type Source interface {
	// Kind returns the source kind identifier.
	Kind() Kind

	// FetchUnread retrieves the currently unread messages as a bounded
	// batch, not a stream.
	FetchUnread(ctx context.Context) ([]model.Message, error)
}

// AuthError indicates that authentication with the message provider has
// failed or expired.
type AuthError struct {
	Kind    Kind
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error (%s): %s", e.Kind, e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// UpstreamError indicates that the message provider was unreachable or
// returned a server-side failure.
type UpstreamError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error (%s): %s: %v", e.Kind, e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsUpstreamError reports whether err (or any error in its chain) is an
// UpstreamError.
func IsUpstreamError(err error) bool {
	var upErr *UpstreamError
	return errors.As(err, &upErr)
}
