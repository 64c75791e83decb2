package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/anashammo/whisper-ui/internal/app/repository"
	"github.com/anashammo/whisper-ui/internal/domain/entity"
)

var _ repository.TranscriptionRepository = (*TranscriptionRepository)(nil)

// TranscriptionRepository stores transcriptions in PostgreSQL.
type TranscriptionRepository struct {
	db *sql.DB
}

func NewTranscriptionRepository(db *sql.DB) *TranscriptionRepository {
	return &TranscriptionRepository{db: db}
}

const transcriptionColumns = `
	id, audio_file_id, text, status, language, duration_seconds,
	created_at, completed_at, error_message, model,
	processing_time_seconds, vad_filter_used,
	enable_llm_enhancement, enable_tashkeel, enhanced_text,
	llm_enhancement_status, llm_error_message, llm_processing_time_seconds`

func (r *TranscriptionRepository) Create(ctx context.Context, t *entity.Transcription) error {
	query := `
		INSERT INTO transcriptions (` + transcriptionColumns + `
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		          $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.AudioFileID, t.Text, t.Status, t.Language, t.DurationSeconds,
		t.CreatedAt, t.CompletedAt, t.ErrorMessage, t.Model,
		t.ProcessingTimeSeconds, t.VADFilterUsed,
		t.EnableLLMEnhancement, t.EnableTashkeel, t.EnhancedText,
		t.LLMEnhancementStatus, t.LLMErrorMessage, t.LLMProcessingTimeSeconds)
	if err != nil {
		return fmt.Errorf("insert transcription: %w", err)
	}
	return nil
}

func (r *TranscriptionRepository) GetByID(ctx context.Context, id string) (*entity.Transcription, error) {
	query := `SELECT` + transcriptionColumns + ` FROM transcriptions WHERE id = $1`

	t, err := scanTranscription(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query transcription: %w", err)
	}
	return t, nil
}

func (r *TranscriptionRepository) GetAll(ctx context.Context, limit, offset int) ([]*entity.Transcription, error) {
	query := `
		SELECT` + transcriptionColumns + `
		FROM transcriptions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query transcriptions: %w", err)
	}
	defer rows.Close()
	return collectTranscriptions(rows)
}

func (r *TranscriptionRepository) GetByAudioFileID(ctx context.Context, audioFileID string) ([]*entity.Transcription, error) {
	query := `
		SELECT` + transcriptionColumns + `
		FROM transcriptions
		WHERE audio_file_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, audioFileID)
	if err != nil {
		return nil, fmt.Errorf("query transcriptions by audio file: %w", err)
	}
	defer rows.Close()
	return collectTranscriptions(rows)
}

func (r *TranscriptionRepository) Update(ctx context.Context, t *entity.Transcription) error {
	query := `
		UPDATE transcriptions
		SET text = $1, status = $2, language = $3, duration_seconds = $4,
		    completed_at = $5, error_message = $6, model = $7,
		    processing_time_seconds = $8, vad_filter_used = $9,
		    enable_llm_enhancement = $10, enable_tashkeel = $11,
		    enhanced_text = $12, llm_enhancement_status = $13,
		    llm_error_message = $14, llm_processing_time_seconds = $15
		WHERE id = $16`

	result, err := r.db.ExecContext(ctx, query,
		t.Text, t.Status, t.Language, t.DurationSeconds,
		t.CompletedAt, t.ErrorMessage, t.Model,
		t.ProcessingTimeSeconds, t.VADFilterUsed,
		t.EnableLLMEnhancement, t.EnableTashkeel,
		t.EnhancedText, t.LLMEnhancementStatus,
		t.LLMErrorMessage, t.LLMProcessingTimeSeconds, t.ID)
	if err != nil {
		return fmt.Errorf("update transcription: %w", err)
	}
	return requireRowAffected(result)
}

func (r *TranscriptionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transcriptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transcription: %w", err)
	}
	return requireRowAffected(result)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTranscription(row rowScanner) (*entity.Transcription, error) {
	var t entity.Transcription
	var text, language, errorMessage, enhancedText, llmErrorMessage sql.NullString
	var completedAt sql.NullTime
	var processingTime, llmProcessingTime sql.NullFloat64

	err := row.Scan(
		&t.ID, &t.AudioFileID, &text, &t.Status, &language, &t.DurationSeconds,
		&t.CreatedAt, &completedAt, &errorMessage, &t.Model,
		&processingTime, &t.VADFilterUsed,
		&t.EnableLLMEnhancement, &t.EnableTashkeel, &enhancedText,
		&t.LLMEnhancementStatus, &llmErrorMessage, &llmProcessingTime)
	if err != nil {
		return nil, err
	}

	if text.Valid {
		t.Text = &text.String
	}
	if language.Valid {
		t.Language = &language.String
	}
	if completedAt.Valid {
		t.CompletedAt = &completedAt.Time
	}
	if errorMessage.Valid {
		t.ErrorMessage = &errorMessage.String
	}
	if processingTime.Valid {
		t.ProcessingTimeSeconds = &processingTime.Float64
	}
	if enhancedText.Valid {
		t.EnhancedText = &enhancedText.String
	}
	if llmErrorMessage.Valid {
		t.LLMErrorMessage = &llmErrorMessage.String
	}
	if llmProcessingTime.Valid {
		t.LLMProcessingTimeSeconds = &llmProcessingTime.Float64
	}
	return &t, nil
}

func collectTranscriptions(rows *sql.Rows) ([]*entity.Transcription, error) {
	transcriptions := make([]*entity.Transcription, 0)
	for rows.Next() {
		t, err := scanTranscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transcription: %w", err)
		}
		transcriptions = append(transcriptions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transcriptions: %w", err)
	}
	return transcriptions, nil
}
