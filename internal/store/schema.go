package store

import (
	"context"
	"fmt"
)

// Table names.
const (
	tableSequence   = "global_sequence"
	tableLLMEvents  = "llm_request_events"
	tableKV         = "kv_entries"
	tableChat       = "chat_messages"
	tableCategories = "exercise_categories"
	tableExercises  = "exercises"
)

// ddl lists the table definitions in creation order. The column types are
// accepted by both SQLite and Postgres.
var ddl = []string{
	`CREATE TABLE IF NOT EXISTS ` + tableSequence + ` (
		id       INTEGER NOT NULL PRIMARY KEY,
		next_val BIGINT  NOT NULL
	)`,

	// Event IDs come from the global sequence, so no auto-increment.
	`CREATE TABLE IF NOT EXISTS ` + tableLLMEvents + ` (
		id            BIGINT  NOT NULL PRIMARY KEY,
		created_at    BIGINT  NOT NULL,
		provider      TEXT    NOT NULL,
		model         TEXT    NOT NULL,
		purpose       TEXT    NOT NULL,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    BIGINT  NOT NULL DEFAULT 0,
		success       BOOLEAN NOT NULL,
		error_message TEXT    NOT NULL DEFAULT '',
		request_body  TEXT    NOT NULL DEFAULT '',
		response_body TEXT    NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS ` + tableKV + ` (
		name       TEXT   NOT NULL PRIMARY KEY,
		value      TEXT   NOT NULL,
		updated_at BIGINT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS ` + tableChat + ` (
		id           BIGINT NOT NULL PRIMARY KEY,
		conversation TEXT   NOT NULL,
		sender       TEXT   NOT NULL,
		body         TEXT   NOT NULL,
		created_at   BIGINT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS ` + tableCategories + ` (
		id          INTEGER NOT NULL PRIMARY KEY,
		name        TEXT    NOT NULL UNIQUE,
		description TEXT    NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS ` + tableExercises + ` (
		id               INTEGER NOT NULL PRIMARY KEY,
		category_id      INTEGER NOT NULL,
		title            TEXT    NOT NULL,
		description      TEXT    NOT NULL DEFAULT '',
		duration_minutes INTEGER NOT NULL DEFAULT 0,
		benefits         TEXT    NOT NULL DEFAULT '[]',
		created_at       BIGINT  NOT NULL
	)`,
}

// migrate creates any missing tables. Columns are never altered; the
// profile payload is schemaless JSON so no versioning is needed.
func (s *Store) migrate(ctx context.Context) error {
	for _, stmt := range ddl {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}
