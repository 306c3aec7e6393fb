package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
//
// Note: source_message_id deliberately carries no UNIQUE constraint.
// Re-importing the same messages creates duplicate events; that is the
// documented behavior until deduplication lands.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS events (
	id                TEXT PRIMARY KEY,
	title             TEXT NOT NULL,
	description       TEXT NOT NULL DEFAULT '',
	location          TEXT NOT NULL DEFAULT '',
	starts_at         DATETIME NOT NULL,
	ends_at           DATETIME,
	recurring         INTEGER NOT NULL DEFAULT 0,
	source_message_id TEXT NOT NULL,
	created_at        DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_events_starts_at ON events(starts_at);
CREATE INDEX IF NOT EXISTS idx_events_recurring ON events(recurring);
CREATE INDEX IF NOT EXISTS idx_events_source_message_id ON events(source_message_id);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
