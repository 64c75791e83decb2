// Package sqlite implements the repository ports on SQLite.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS audio_files (
	id                TEXT PRIMARY KEY,
	original_filename TEXT NOT NULL,
	file_path         TEXT NOT NULL,
	file_size_bytes   INTEGER NOT NULL,
	mime_type         TEXT NOT NULL,
	duration_seconds  REAL,
	uploaded_at       TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS transcriptions (
	id                          TEXT PRIMARY KEY,
	audio_file_id               TEXT NOT NULL,
	text                        TEXT,
	status                      TEXT NOT NULL,
	language                    TEXT,
	duration_seconds            REAL NOT NULL,
	created_at                  TIMESTAMP NOT NULL,
	completed_at                TIMESTAMP,
	error_message               TEXT,
	model                       TEXT NOT NULL,
	processing_time_seconds     REAL,
	vad_filter_used             BOOLEAN NOT NULL DEFAULT 0,
	enable_llm_enhancement      BOOLEAN NOT NULL DEFAULT 0,
	enable_tashkeel             BOOLEAN NOT NULL DEFAULT 0,
	enhanced_text               TEXT,
	llm_enhancement_status      TEXT NOT NULL DEFAULT 'none',
	llm_error_message           TEXT,
	llm_processing_time_seconds REAL
);

CREATE INDEX IF NOT EXISTS idx_transcriptions_audio_file_id
	ON transcriptions (audio_file_id);
CREATE INDEX IF NOT EXISTS idx_transcriptions_created_at
	ON transcriptions (created_at DESC);
`

// Open opens the database file and ensures the schema exists.
func Open(dbFilePath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbFilePath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %s: %w", dbFilePath, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return db, nil
}
