package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"mailevents/internal/model"
)

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

const insertEventSQL = `
	INSERT INTO events (
		id, title, description, location,
		starts_at, ends_at, recurring,
		source_message_id, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

// SaveEvents inserts a batch of events, assigning a fresh UUID and
// creation timestamp per row. Rows are inserted independently: a failure
// on one row does not roll back the rows already saved. Returns the
// number of rows inserted and the first insert error, if any.
func (s *SQLiteStore) SaveEvents(
	ctx context.Context,
	events []model.Event,
) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	stmt, err := s.db.PreparexContext(ctx, insertEventSQL)
	if err != nil {
		return 0, fmt.Errorf("preparing event insert: %w", err)
	}
	defer stmt.Close()

	saved := 0
	var firstErr error
	for _, ev := range events {
		if ev.ID == "" {
			ev.ID = uuid.New().String()
		}
		if ev.CreatedAt.IsZero() {
			ev.CreatedAt = time.Now().UTC()
		}

		var endsAt interface{}
		if ev.EndsAt != nil {
			endsAt = ev.EndsAt.UTC()
		}

		_, err := stmt.ExecContext(ctx,
			ev.ID, ev.Title, ev.Description, ev.Location,
			ev.StartsAt.UTC(), endsAt, boolToInt(ev.Recurring),
			ev.SourceMessageID, ev.CreatedAt.UTC(),
		)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("inserting event for message %s: %w", ev.SourceMessageID, err)
			}
			continue
		}
		saved++
	}

	return saved, firstErr
}

// GetEventByID retrieves a single event by its ID.
func (s *SQLiteStore) GetEventByID(
	ctx context.Context,
	id string,
) (*model.Event, error) {
	row := s.db.QueryRowxContext(ctx, "SELECT * FROM events WHERE id = ?", id)

	ev, err := scanEventRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting event %s: %w", id, err)
	}

	return ev, nil
}

// GetEventBySourceMessageID retrieves the earliest-created event derived
// from the given source message. With no dedup in place a message can
// map to several events; the oldest row is the stable answer.
func (s *SQLiteStore) GetEventBySourceMessageID(
	ctx context.Context,
	sourceMessageID string,
) (*model.Event, error) {
	row := s.db.QueryRowxContext(ctx, `
		SELECT * FROM events
		WHERE source_message_id = ?
		ORDER BY created_at ASC, id ASC
		LIMIT 1`,
		sourceMessageID,
	)

	ev, err := scanEventRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting event for message %s: %w", sourceMessageID, err)
	}

	return ev, nil
}

// SearchEvents retrieves events matching the provided filter, ordered
// ascending by start timestamp with ties broken by id.
func (s *SQLiteStore) SearchEvents(
	ctx context.Context,
	filter EventFilter,
) ([]model.Event, error) {
	var conditions []string
	var args []interface{}

	if filter.Query != nil && *filter.Query != "" {
		q := "%" + strings.ToLower(*filter.Query) + "%"
		conditions = append(conditions,
			"(LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(location) LIKE ?)")
		args = append(args, q, q, q)
	}
	if filter.StartFrom != nil {
		conditions = append(conditions, "starts_at >= ?")
		args = append(args, filter.StartFrom.UTC())
	}
	if filter.StartTo != nil {
		conditions = append(conditions, "starts_at <= ?")
		args = append(args, filter.StartTo.UTC())
	}
	if filter.ExcludeRecurring {
		conditions = append(conditions, "recurring = 0")
	}

	query := "SELECT * FROM events"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY starts_at ASC, id ASC"

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	query += fmt.Sprintf(" LIMIT %d", limit)

	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	events := []model.Event{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	return events, rows.Err()
}

// Ping verifies the database connection and reports round-trip latency.
func (s *SQLiteStore) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	var one int
	if err := s.db.GetContext(ctx, &one, "SELECT 1"); err != nil {
		return 0, fmt.Errorf("pinging database: %w", err)
	}
	return time.Since(start), nil
}

// eventRow mirrors the events table for scanning.
type eventRow struct {
	ID              string       `db:"id"`
	Title           string       `db:"title"`
	Description     string       `db:"description"`
	Location        string       `db:"location"`
	StartsAt        time.Time    `db:"starts_at"`
	EndsAt          sql.NullTime `db:"ends_at"`
	Recurring       bool         `db:"recurring"`
	SourceMessageID string       `db:"source_message_id"`
	CreatedAt       time.Time    `db:"created_at"`
}

func (r eventRow) toEvent() model.Event {
	ev := model.Event{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		Location:        r.Location,
		StartsAt:        r.StartsAt.UTC(),
		Recurring:       r.Recurring,
		SourceMessageID: r.SourceMessageID,
		CreatedAt:       r.CreatedAt.UTC(),
	}
	if r.EndsAt.Valid {
		t := r.EndsAt.Time.UTC()
		ev.EndsAt = &t
	}
	return ev
}

func scanEvent(rows *sqlx.Rows) (model.Event, error) {
	var r eventRow
	if err := rows.StructScan(&r); err != nil {
		return model.Event{}, fmt.Errorf("scanning event row: %w", err)
	}
	return r.toEvent(), nil
}

func scanEventRow(row *sqlx.Row) (*model.Event, error) {
	var r eventRow
	if err := row.StructScan(&r); err != nil {
		return nil, err
	}
	ev := r.toEvent()
	return &ev, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
