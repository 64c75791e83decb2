package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/anashammo/whisper-ui/internal/app/repository"
	"github.com/anashammo/whisper-ui/internal/domain/entity"
)

var _ repository.AudioFileRepository = (*AudioFileRepository)(nil)

// AudioFileRepository stores audio file metadata in SQLite.
type AudioFileRepository struct {
	db *sql.DB
}

func NewAudioFileRepository(db *sql.DB) *AudioFileRepository {
	return &AudioFileRepository{db: db}
}

func (r *AudioFileRepository) Create(ctx context.Context, file *entity.AudioFile) error {
	query := `
		INSERT INTO audio_files (
			id, original_filename, file_path, file_size_bytes,
			mime_type, duration_seconds, uploaded_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		file.ID, file.OriginalFilename, file.FilePath, file.FileSizeBytes,
		file.MIMEType, file.DurationSeconds, file.UploadedAt)
	if err != nil {
		return fmt.Errorf("insert audio file: %w", err)
	}
	return nil
}

func (r *AudioFileRepository) GetByID(ctx context.Context, id string) (*entity.AudioFile, error) {
	query := `
		SELECT id, original_filename, file_path, file_size_bytes,
		       mime_type, duration_seconds, uploaded_at
		FROM audio_files
		WHERE id = ?`

	var file entity.AudioFile
	var duration sql.NullFloat64
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&file.ID, &file.OriginalFilename, &file.FilePath, &file.FileSizeBytes,
		&file.MIMEType, &duration, &file.UploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query audio file: %w", err)
	}
	if duration.Valid {
		file.DurationSeconds = &duration.Float64
	}
	return &file, nil
}

func (r *AudioFileRepository) GetAll(ctx context.Context, limit, offset int) ([]*entity.AudioFile, error) {
	query := `
		SELECT id, original_filename, file_path, file_size_bytes,
		       mime_type, duration_seconds, uploaded_at
		FROM audio_files
		ORDER BY uploaded_at DESC
		LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query audio files: %w", err)
	}
	defer rows.Close()
	return collectAudioFiles(rows)
}

func collectAudioFiles(rows *sql.Rows) ([]*entity.AudioFile, error) {
	var files []*entity.AudioFile
	for rows.Next() {
		var file entity.AudioFile
		var duration sql.NullFloat64
		if err := rows.Scan(
			&file.ID, &file.OriginalFilename, &file.FilePath, &file.FileSizeBytes,
			&file.MIMEType, &duration, &file.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan audio file: %w", err)
		}
		if duration.Valid {
			file.DurationSeconds = &duration.Float64
		}
		files = append(files, &file)
	}
	return files, rows.Err()
}

func (r *AudioFileRepository) Update(ctx context.Context, file *entity.AudioFile) error {
	query := `
		UPDATE audio_files
		SET original_filename = ?, file_path = ?, file_size_bytes = ?,
		    mime_type = ?, duration_seconds = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		file.OriginalFilename, file.FilePath, file.FileSizeBytes,
		file.MIMEType, file.DurationSeconds, file.ID)
	if err != nil {
		return fmt.Errorf("update audio file: %w", err)
	}
	return requireRowAffected(result)
}

func (r *AudioFileRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM audio_files WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete audio file: %w", err)
	}
	return requireRowAffected(result)
}

func requireRowAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
