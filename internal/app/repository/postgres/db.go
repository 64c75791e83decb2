// Package postgres implements the repository ports on PostgreSQL.
package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS audio_files (
	id                TEXT PRIMARY KEY,
	original_filename TEXT NOT NULL,
	file_path         TEXT NOT NULL,
	file_size_bytes   BIGINT NOT NULL,
	mime_type         TEXT NOT NULL,
	duration_seconds  DOUBLE PRECISION,
	uploaded_at       TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS transcriptions (
	id                          TEXT PRIMARY KEY,
	audio_file_id               TEXT NOT NULL,
	text                        TEXT,
	status                      TEXT NOT NULL,
	language                    TEXT,
	duration_seconds            DOUBLE PRECISION NOT NULL,
	created_at                  TIMESTAMPTZ NOT NULL,
	completed_at                TIMESTAMPTZ,
	error_message               TEXT,
	model                       TEXT NOT NULL,
	processing_time_seconds     DOUBLE PRECISION,
	vad_filter_used             BOOLEAN NOT NULL DEFAULT FALSE,
	enable_llm_enhancement      BOOLEAN NOT NULL DEFAULT FALSE,
	enable_tashkeel             BOOLEAN NOT NULL DEFAULT FALSE,
	enhanced_text               TEXT,
	llm_enhancement_status      TEXT NOT NULL DEFAULT 'none',
	llm_error_message           TEXT,
	llm_processing_time_seconds DOUBLE PRECISION
);

CREATE INDEX IF NOT EXISTS idx_transcriptions_audio_file_id
	ON transcriptions (audio_file_id);
CREATE INDEX IF NOT EXISTS idx_transcriptions_created_at
	ON transcriptions (created_at DESC);
`

// Open connects to the database and ensures the schema exists.
func Open(connectionString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("open postgres database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return db, nil
}
