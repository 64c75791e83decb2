// Package repository defines the persistence ports for audio files and
// transcriptions.
package repository

import (
	"context"
	"errors"

	"github.com/anashammo/whisper-ui/internal/domain/entity"
)

// ErrNotFound is returned when the requested record does not exist. Callers
// test for it with errors.Is.
var ErrNotFound = errors.New("record not found")

// AudioFileRepository persists audio file metadata. List results come back
// newest first.
type AudioFileRepository interface {
	Create(ctx context.Context, file *entity.AudioFile) error
	GetByID(ctx context.Context, id string) (*entity.AudioFile, error)
	GetAll(ctx context.Context, limit, offset int) ([]*entity.AudioFile, error)
	Update(ctx context.Context, file *entity.AudioFile) error
	Delete(ctx context.Context, id string) error
}

// TranscriptionRepository persists transcriptions. List results come back
// newest first.
type TranscriptionRepository interface {
	Create(ctx context.Context, t *entity.Transcription) error
	GetByID(ctx context.Context, id string) (*entity.Transcription, error)
	GetAll(ctx context.Context, limit, offset int) ([]*entity.Transcription, error)
	GetByAudioFileID(ctx context.Context, audioFileID string) ([]*entity.Transcription, error)
	Update(ctx context.Context, t *entity.Transcription) error
	Delete(ctx context.Context, id string) error
}
