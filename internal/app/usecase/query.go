package usecase

import (
	"context"

	"github.com/anashammo/whisper-ui/internal/domain/entity"
)

const (
	defaultHistoryLimit = 100
	maxHistoryLimit     = 100
)

// GetTranscription fetches one transcription by id.
func (s *Service) GetTranscription(ctx context.Context, id string) (*entity.Transcription, error) {
	return s.transcriptions.GetByID(ctx, id)
}

// ListTranscriptions returns the history newest first. Out-of-range limits
// and offsets are clamped rather than rejected.
func (s *Service) ListTranscriptions(ctx context.Context, limit, offset int) ([]*entity.Transcription, error) {
	if limit <= 0 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.transcriptions.GetAll(ctx, limit, offset)
}

// ListByAudioFile returns every transcription of one audio file, newest
// first. The audio file must exist.
func (s *Service) ListByAudioFile(ctx context.Context, audioFileID string) ([]*entity.Transcription, error) {
	if _, err := s.audioFiles.GetByID(ctx, audioFileID); err != nil {
		return nil, err
	}
	return s.transcriptions.GetByAudioFileID(ctx, audioFileID)
}

// GetAudioFile fetches one audio file by id.
func (s *Service) GetAudioFile(ctx context.Context, id string) (*entity.AudioFile, error) {
	return s.audioFiles.GetByID(ctx, id)
}
