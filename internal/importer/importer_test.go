package importer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailevents/internal/model"
	"mailevents/internal/source"
	"mailevents/internal/source/mock"
	"mailevents/internal/store"
	"mailevents/tests/testutil"
)

func sampleMessages() []model.Message {
	received := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	return []model.Message{
		{ID: "m1", Subject: "Daily Standup", ReceivedAt: received, Unread: true},
		{ID: "m2", Subject: "Client Kickoff", ReceivedAt: received, Unread: true},
		{ID: "m3", Subject: "Your receipt", ReceivedAt: received, Unread: true},
	}
}

func TestRunImportsMatchedMessages(t *testing.T) {
	st := testutil.NewTestStore(t)
	imp := New(mock.New(sampleMessages()), st)

	sum, err := imp.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Summary{Fetched: 3, Imported: 2, Skipped: 1}, sum)

	events, err := st.SearchEvents(context.Background(), store.EventFilter{})
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestRunRepeatDuplicates(t *testing.T) {
	st := testutil.NewTestStore(t)
	imp := New(mock.New(sampleMessages()), st)
	ctx := context.Background()

	for run := 1; run <= 2; run++ {
		sum, err := imp.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, sum.Imported, "run %d", run)
	}

	events, err := st.SearchEvents(ctx, store.EventFilter{})
	require.NoError(t, err)
	assert.Len(t, events, 4, "each run adds exactly the matched count; no dedup")
}

func TestRunSourceFailure(t *testing.T) {
	st := testutil.NewTestStore(t)
	imp := New(&failingSource{}, st)

	_, err := imp.Run(context.Background())
	require.Error(t, err)
	assert.True(t, source.IsUpstreamError(err))
}

func TestRunCountsPersistFailures(t *testing.T) {
	st := &failingStore{}
	imp := New(mock.New(sampleMessages()), st)

	sum, err := imp.Run(context.Background())
	require.NoError(t, err, "per-message persistence failures do not abort the run")
	assert.Equal(t, Summary{Fetched: 3, Imported: 0, Skipped: 1, Failed: 2}, sum)
}

// failingSource always reports the provider as unreachable.
type failingSource struct{}

func (f *failingSource) Kind() source.Kind { return source.KindMock }

func (f *failingSource) FetchUnread(context.Context) ([]model.Message, error) {
	return nil, &source.UpstreamError{Kind: source.KindMock, Op: "fetching", Err: errors.New("connection refused")}
}

// failingStore rejects every save.
type failingStore struct{}

func (f *failingStore) SaveEvents(context.Context, []model.Event) (int, error) {
	return 0, errors.New("disk full")
}

func (f *failingStore) GetEventByID(context.Context, string) (*model.Event, error) {
	return nil, store.ErrNotFound
}

func (f *failingStore) GetEventBySourceMessageID(context.Context, string) (*model.Event, error) {
	return nil, store.ErrNotFound
}

func (f *failingStore) SearchEvents(context.Context, store.EventFilter) ([]model.Event, error) {
	return nil, nil
}

func (f *failingStore) Ping(context.Context) (time.Duration, error) { return 0, nil }

func (f *failingStore) Close() error { return nil }
