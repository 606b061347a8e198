package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS videos (
	id            INTEGER PRIMARY KEY,
	title         TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	script        TEXT NOT NULL DEFAULT '',
	avatar_id     INTEGER NOT NULL DEFAULT 1,
	language      TEXT NOT NULL DEFAULT 'en',
	status        TEXT NOT NULL DEFAULT 'pending',
	progress      REAL NOT NULL DEFAULT 0,
	error_message TEXT NOT NULL DEFAULT '',
	output_path   TEXT NOT NULL DEFAULT '',
	created_at    DATETIME NOT NULL,
	updated_at    DATETIME NOT NULL,
	fetched_at    DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS avatars (
	id          INTEGER PRIMARY KEY,
	name        TEXT NOT NULL,
	image_path  TEXT NOT NULL DEFAULT '',
	category    TEXT NOT NULL DEFAULT '',
	gender      TEXT NOT NULL DEFAULT '',
	usage_count INTEGER NOT NULL DEFAULT 0,
	fetched_at  DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_videos_status ON videos(status);
CREATE INDEX IF NOT EXISTS idx_videos_created_at ON videos(created_at);
CREATE INDEX IF NOT EXISTS idx_avatars_category ON avatars(category);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE TABLE IF NOT EXISTS drafts (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	body       TEXT NOT NULL DEFAULT '',
	avatar_id  INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_drafts_updated_at ON drafts(updated_at);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
