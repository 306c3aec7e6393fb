// Package importer runs the message-to-event import pipeline: fetch
// unread messages, extract events, persist them.
package importer

import (
	"context"
	"fmt"

	"mailevents/internal/extract"
	"mailevents/internal/logging"
	"mailevents/internal/model"
	"mailevents/internal/source"
	"mailevents/internal/store"
)

// Summary reports the outcome of one import run.
type Summary struct {
	// Fetched is the number of unread messages pulled from the source.
	Fetched int `json:"fetched"`

	// Imported is the number of events persisted.
	Imported int `json:"imported"`

	// Skipped counts messages that matched no extraction rule.
	Skipped int `json:"skipped"`

	// Failed counts messages whose extracted event could not be persisted.
	Failed int `json:"failed"`
}

// Importer wires a message source to the event store.
type Importer struct {
	src source.Source
	st  store.Store
}

// New creates an Importer over the given source and store.
func New(src source.Source, st store.Store) *Importer {
	return &Importer{src: src, st: st}
}

// Run performs a single synchronous import pass over the currently
// unread messages. Per-message persistence failures are counted and the
// run continues; there is no batch transaction and no retry. A source
// fetch failure aborts the run.
func (i *Importer) Run(ctx context.Context) (Summary, error) {
	messages, err := i.src.FetchUnread(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("fetching unread messages: %w", err)
	}

	sum := Summary{Fetched: len(messages)}
	for _, msg := range messages {
		ev, ok := extract.Extract(msg)
		if !ok {
			sum.Skipped++
			continue
		}

		if _, err := i.st.SaveEvents(ctx, []model.Event{ev}); err != nil {
			logging.Log.WithError(err).
				WithField("message_id", msg.ID).
				Error("failed to persist extracted event")
			sum.Failed++
			continue
		}
		sum.Imported++
	}

	logging.Log.WithFields(map[string]interface{}{
		"source":   string(i.src.Kind()),
		"fetched":  sum.Fetched,
		"imported": sum.Imported,
		"skipped":  sum.Skipped,
		"failed":   sum.Failed,
	}).Info("import run finished")

	return sum, nil
}
