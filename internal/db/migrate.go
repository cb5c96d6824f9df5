package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS url_infos (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		url        TEXT NOT NULL,
		title      TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		UNIQUE (project_id, url)
	)`,

	`CREATE TABLE IF NOT EXISTS questions (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		text       TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'to_research'
		           CHECK(status IN ('to_research','finished')),
		hierarchy  INTEGER NOT NULL DEFAULT 0 CHECK(hierarchy >= 0),
		parent_id  TEXT REFERENCES questions(id) ON DELETE SET NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_questions_project ON questions(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_questions_parent ON questions(parent_id)`,

	`CREATE TABLE IF NOT EXISTS question_notes (
		id          TEXT PRIMARY KEY,
		question_id TEXT NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
		url_id      TEXT REFERENCES url_infos(id) ON DELETE SET NULL,
		note        TEXT NOT NULL,
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_question_notes_question ON question_notes(question_id)`,
	`CREATE INDEX IF NOT EXISTS idx_question_notes_url ON question_notes(url_id)`,

	// Databases created before question nesting lack these columns.
	`ALTER TABLE questions ADD COLUMN hierarchy INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE questions ADD COLUMN parent_id TEXT REFERENCES questions(id) ON DELETE SET NULL`,
}
